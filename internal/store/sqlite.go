// Package store snapshots a finalized ledger into a SQLite file so other
// tooling can query lot history without re-parsing the source reports.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/ledger"
)

type DB struct {
	conn *sql.DB
	path string
}

// Open creates or opens the snapshot database.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{conn: conn, path: dbPath}, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS lots (
	lot_id         TEXT PRIMARY KEY,
	instrument     TEXT NOT NULL,
	chain_position INTEGER NOT NULL,
	purchase_date  TEXT NOT NULL,
	purchase_price TEXT NOT NULL,
	quantity       TEXT NOT NULL,
	sell_date      TEXT,
	sell_price     TEXT
);
CREATE INDEX IF NOT EXISTS idx_lots_instrument ON lots(instrument, chain_position);

CREATE TABLE IF NOT EXISTS positions (
	instrument TEXT PRIMARY KEY,
	quantity   TEXT NOT NULL
);
`

// Migrate creates the snapshot tables.
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.conn.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveSnapshot replaces the stored snapshot with the ledger's current
// state, atomically.
func (db *DB) SaveSnapshot(ctx context.Context, l *ledger.Ledger) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{"DELETE FROM lots", "DELETE FROM positions"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	insertLot, err := tx.PrepareContext(ctx, `
		INSERT INTO lots (lot_id, instrument, chain_position, purchase_date, purchase_price, quantity, sell_date, sell_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insertLot.Close()

	for _, instrument := range l.Instruments() {
		for i, lot := range l.Lots(instrument) {
			var sellDate, sellPrice interface{}
			if lot.Sold() {
				sellDate = lot.SellDate.Format("2006-01-02")
				sellPrice = lot.SellPrice.String()
			}
			_, err := insertLot.ExecContext(ctx,
				lot.LotID.String(),
				lot.Instrument,
				i,
				lot.PurchaseDate.Format("2006-01-02"),
				lot.PurchasePrice.String(),
				lot.Quantity.String(),
				sellDate,
				sellPrice,
			)
			if err != nil {
				return fmt.Errorf("failed to insert lot for %s: %w", instrument, err)
			}
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO positions (instrument, quantity) VALUES (?, ?)",
			instrument, l.Quantity(instrument).String())
		if err != nil {
			return fmt.Errorf("failed to insert position for %s: %w", instrument, err)
		}
	}

	return tx.Commit()
}
