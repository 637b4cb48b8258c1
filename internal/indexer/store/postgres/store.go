package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"walletcore/internal/indexer"
	"walletcore/internal/indexer/store/postgres/migrations"
	"walletcore/internal/platform/migrate"
	"walletcore/pkg/platform/sentinel"
)

// Store implements indexer.Store on PostgreSQL. Appends are idempotent via
// ON CONFLICT DO NOTHING so replays after a crash are harmless.
type Store struct {
	db *sql.DB
}

// New wraps an open database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects with dsn and applies embedded migrations.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := New(db)
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate applies the embedded schema.
func (s *Store) Migrate(ctx context.Context) error {
	if err := migrate.Apply(ctx, s.db, migrations.FS, migrate.Postgres); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Append(ctx context.Context, records []indexer.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO ledger_records (
			tx_hash, log_index, id, block_number, block_time,
			contract, event, wallet, sequence, payload
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (tx_hash, log_index) DO NOTHING
	`
	for _, rec := range records {
		if _, err := tx.ExecContext(ctx, query,
			rec.TxHash.Hex(),
			int64(rec.LogIndex),
			rec.ID,
			int64(rec.BlockNumber),
			int64(rec.BlockTime),
			rec.Contract.Hex(),
			rec.Event,
			rec.Wallet.Hex(),
			int64(rec.Sequence),
			[]byte(rec.Payload),
		); err != nil {
			return fmt.Errorf("insert ledger record: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append: %w", err)
	}
	return nil
}

const selectColumns = `
	SELECT tx_hash, log_index, id, block_number, block_time,
		contract, event, wallet, sequence, payload
	FROM ledger_records`

// Get returns the record at (txHash, logIndex).
func (s *Store) Get(ctx context.Context, txHash common.Hash, logIndex uint) (indexer.Record, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE tx_hash = $1 AND log_index = $2`,
		txHash.Hex(), int64(logIndex))
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return indexer.Record{}, sentinel.ErrNotFound
	}
	return rec, err
}

// ListByWallet returns records concerning wallet in ledger order.
func (s *Store) ListByWallet(ctx context.Context, wallet common.Address, limit int) ([]indexer.Record, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+`
		WHERE wallet = $1
		ORDER BY block_number, log_index
		LIMIT $2`, wallet.Hex(), indexer.NormalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query ledger records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ListTransactions returns execution records after afterSequence in sequence order.
func (s *Store) ListTransactions(ctx context.Context, afterSequence uint64, limit int) ([]indexer.Record, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+`
		WHERE event = $1 AND sequence > $2
		ORDER BY sequence
		LIMIT $3`, indexer.TransactionEvent, int64(afterSequence), indexer.NormalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (indexer.Record, error) {
	var (
		rec                        indexer.Record
		txHash, contract, wallet   string
		id                         uuid.UUID
		logIndex, block, blockTime int64
		sequence                   int64
		payload                    []byte
	)
	if err := row.Scan(&txHash, &logIndex, &id, &block, &blockTime,
		&contract, &rec.Event, &wallet, &sequence, &payload); err != nil {
		return indexer.Record{}, err
	}
	rec.ID = id
	rec.TxHash = common.HexToHash(txHash)
	rec.LogIndex = uint(logIndex)
	rec.BlockNumber = uint64(block)
	rec.BlockTime = uint64(blockTime)
	rec.Contract = common.HexToAddress(contract)
	rec.Wallet = common.HexToAddress(wallet)
	rec.Sequence = uint64(sequence)
	rec.Payload = payload
	return rec, nil
}

// scanRecords scans multiple rows into records.
func scanRecords(rows *sql.Rows) ([]indexer.Record, error) {
	var out []indexer.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger records: %w", err)
	}
	return out, nil
}
