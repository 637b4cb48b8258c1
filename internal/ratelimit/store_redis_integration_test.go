//go:build integration

package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"walletcore/internal/ratelimit"
	"walletcore/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *ratelimit.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = ratelimit.NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestSlidingWindow() {
	ctx := context.Background()
	for i := range 3 {
		res, err := s.store.Allow(ctx, "0xcaller", 3, time.Minute)
		s.Require().NoError(err)
		s.True(res.Allowed)
		s.Equal(2-i, res.Remaining)
	}

	res, err := s.store.Allow(ctx, "0xcaller", 3, time.Minute)
	s.Require().NoError(err)
	s.False(res.Allowed)
	s.WithinDuration(time.Now().Add(time.Minute), res.ResetAt, 5*time.Second)

	res, err = s.store.Allow(ctx, "0xother", 3, time.Minute)
	s.Require().NoError(err)
	s.True(res.Allowed)
}

func (s *RedisStoreSuite) TestShortWindowExpires() {
	ctx := context.Background()
	res, err := s.store.Allow(ctx, "0xshort", 1, 200*time.Millisecond)
	s.Require().NoError(err)
	s.True(res.Allowed)

	res, err = s.store.Allow(ctx, "0xshort", 1, 200*time.Millisecond)
	s.Require().NoError(err)
	s.False(res.Allowed)

	s.Eventually(func() bool {
		res, err := s.store.Allow(ctx, "0xshort", 1, 200*time.Millisecond)
		return err == nil && res.Allowed
	}, 2*time.Second, 50*time.Millisecond)
}
