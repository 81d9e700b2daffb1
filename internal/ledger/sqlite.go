package ledger

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"StreetDash/internal/model"
)

// SQLiteStore keeps the ledger in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	slog.Info("sqlite ledger opened", "path", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ledger_entries (
			position INTEGER PRIMARY KEY,
			date     TEXT NOT NULL,
			asset    TEXT NOT NULL,
			amount   TEXT NOT NULL,
			type     TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_date ON ledger_entries(date)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) Load() ([]model.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT date, asset, amount, type FROM ledger_entries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}
	defer rows.Close()

	var entries []model.LedgerEntry
	for rows.Next() {
		var date, asset, amount, typ string
		if err := rows.Scan(&date, &asset, &amount, &typ); err != nil {
			return nil, err
		}
		d, err := time.Parse(DateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("row date %q: %w", date, err)
		}
		amt, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("row amount %q: %w", amount, err)
		}
		t, ok := model.ParseAssetType(typ)
		if !ok {
			return nil, fmt.Errorf("row type %q: unknown", typ)
		}
		entries = append(entries, model.LedgerEntry{Date: d, Asset: asset, Amount: amt, Type: t})
	}
	return entries, rows.Err()
}

// Save replaces the stored ledger in one transaction.
func (s *SQLiteStore) Save(entries []model.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM ledger_entries`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO ledger_entries (position, date, asset, amount, type) VALUES (?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, e := range entries {
		if _, err := stmt.Exec(i, e.Date.Format(DateLayout), e.Asset, e.Amount.String(), string(e.Type)); err != nil {
			return fmt.Errorf("insert entry %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	slog.Info("closing sqlite ledger")
	return s.db.Close()
}
