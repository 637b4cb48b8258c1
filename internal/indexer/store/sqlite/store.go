// Package sqlite provides a SQLite-backed record store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"walletcore/internal/indexer"
	"walletcore/internal/indexer/store/sqlite/migrations"
	"walletcore/internal/platform/migrate"
	"walletcore/pkg/platform/sentinel"
)

// Store persists records in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite record store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One writer; SQLite serializes writes anyway.
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := migrate.Apply(ctx, sqlDB, migrations.FS, migrate.SQLite); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Append inserts records in one transaction. Records already present are
// left untouched.
func (s *Store) Append(ctx context.Context, records []indexer.Record) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ledger_records (
			tx_hash, log_index, id, block_number, block_time,
			contract, event, wallet, sequence, payload
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (tx_hash, log_index) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("prepare append: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			rec.TxHash.Hex(),
			int64(rec.LogIndex),
			rec.ID.String(),
			int64(rec.BlockNumber),
			int64(rec.BlockTime),
			rec.Contract.Hex(),
			rec.Event,
			rec.Wallet.Hex(),
			int64(rec.Sequence),
			string(rec.Payload),
		); err != nil {
			return fmt.Errorf("insert record: %w", err)
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

func (s *Store) Get(ctx context.Context, txHash common.Hash, logIndex uint) (indexer.Record, error) {
	row := s.sqlDB.QueryRowContext(ctx, selectColumns+` WHERE tx_hash = ? AND log_index = ?`,
		txHash.Hex(), int64(logIndex))
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return indexer.Record{}, sentinel.ErrNotFound
	}
	return rec, err
}

func (s *Store) ListByWallet(ctx context.Context, wallet common.Address, limit int) ([]indexer.Record, error) {
	rows, err := s.sqlDB.QueryContext(ctx, selectColumns+`
		WHERE wallet = ?
		ORDER BY block_number, log_index
		LIMIT ?`, wallet.Hex(), indexer.NormalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query records by wallet: %w", err)
	}
	return scanRecords(rows)
}

func (s *Store) ListTransactions(ctx context.Context, afterSequence uint64, limit int) ([]indexer.Record, error) {
	rows, err := s.sqlDB.QueryContext(ctx, selectColumns+`
		WHERE event = ? AND sequence > ?
		ORDER BY sequence
		LIMIT ?`, indexer.TransactionEvent, int64(afterSequence), indexer.NormalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	return scanRecords(rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (indexer.Record, error) {
	var (
		rec                          indexer.Record
		txHash, id, contract, wallet string
		logIndex, block, blockTime   int64
		sequence                     int64
		payload                      string
	)
	if err := row.Scan(&txHash, &logIndex, &id, &block, &blockTime,
		&contract, &rec.Event, &wallet, &sequence, &payload); err != nil {
		return indexer.Record{}, err
	}
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return indexer.Record{}, fmt.Errorf("parse record id: %w", err)
	}
	rec.ID = parsedID
	rec.TxHash = common.HexToHash(txHash)
	rec.LogIndex = uint(logIndex)
	rec.BlockNumber = uint64(block)
	rec.BlockTime = uint64(blockTime)
	rec.Contract = common.HexToAddress(contract)
	rec.Wallet = common.HexToAddress(wallet)
	rec.Sequence = uint64(sequence)
	rec.Payload = []byte(payload)
	return rec, nil
}

func scanRecords(rows *sql.Rows) ([]indexer.Record, error) {
	defer rows.Close()
	var out []indexer.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}
