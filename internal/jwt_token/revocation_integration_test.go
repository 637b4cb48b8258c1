//go:build integration

package jwttoken_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	jwttoken "walletcore/internal/jwt_token"
	"walletcore/pkg/testutil/containers"
)

type RevocationSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *jwttoken.RevocationStore
}

func TestRevocationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RevocationSuite))
}

func (s *RevocationSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = jwttoken.NewRevocationStore(s.redis.Client)
}

func (s *RevocationSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RevocationSuite) TestRevoke() {
	ctx := context.Background()

	revoked, err := s.store.IsTokenRevoked(ctx, "jti-1")
	s.Require().NoError(err)
	s.False(revoked)

	s.Require().NoError(s.store.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = s.store.IsTokenRevoked(ctx, "jti-1")
	s.Require().NoError(err)
	s.True(revoked)

	s.Run("non-positive ttl is a no-op", func() {
		s.Require().NoError(s.store.Revoke(ctx, "jti-2", 0))
		revoked, err := s.store.IsTokenRevoked(ctx, "jti-2")
		s.Require().NoError(err)
		s.False(revoked)
	})
}
