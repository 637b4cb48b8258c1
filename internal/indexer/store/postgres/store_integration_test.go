//go:build integration

package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"walletcore/internal/indexer"
	"walletcore/internal/indexer/store/postgres"
	"walletcore/internal/indexer/storetest"
	"walletcore/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *postgres.Store
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = postgres.New(s.postgres.DB)
	s.Require().NoError(s.store.Migrate(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "ledger_records")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestStore() {
	storetest.Run(s.T(), func(t *testing.T) indexer.Store {
		s.Require().NoError(s.postgres.TruncateTables(context.Background(), "ledger_records"))
		return s.store
	})
}

func (s *PostgresStoreSuite) TestMigrateIsRepeatable() {
	s.Require().NoError(s.store.Migrate(context.Background()))
}
