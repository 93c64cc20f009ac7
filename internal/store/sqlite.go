// Package store writes funding datasets to SQLite files.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/fundboard/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// dateFormat keeps dates sortable inside SQLite.
const dateFormat = "2006-01-02"

// DB is an export database.
type DB struct {
	db *sql.DB
}

// Meta describes the dataset held by an export database.
type Meta struct {
	SourcePath  string
	Criteria    string
	RecordCount int
	ExportedAt  time.Time
}

// Open opens or creates the export database at dbPath.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening export db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// WriteDataset replaces the stored records with ds in one transaction.
func (d *DB) WriteDataset(ds model.Dataset, meta Meta) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM startups"); err != nil {
		return fmt.Errorf("clearing startups: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO startups
		(row_num, date, startup_name, industry_vertical, sub_vertical,
		 city_location, investors_name, investment_type, amount_usd)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	var insertErr error
	ds.Each(func(i int, r model.Record) bool {
		var date any
		if r.HasDate() {
			date = r.Date.Format(dateFormat)
		}
		var amount any
		if r.AmountUSD != nil {
			amount = *r.AmountUSD
		}
		_, insertErr = stmt.Exec(i,
			date, nullString(r.StartupName), nullString(r.IndustryVertical),
			nullString(r.SubVertical), nullString(r.CityLocation),
			nullString(r.InvestorsName), nullString(r.InvestmentType), amount,
		)
		return insertErr == nil
	})
	if insertErr != nil {
		return fmt.Errorf("inserting startup: %w", insertErr)
	}

	if meta.ExportedAt.IsZero() {
		meta.ExportedAt = time.Now()
	}
	_, err = tx.Exec(`INSERT OR REPLACE INTO export_meta
		(id, source_path, criteria, record_count, exported_at) VALUES (1, ?, ?, ?, ?)`,
		meta.SourcePath, meta.Criteria, ds.Len(), meta.ExportedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing export meta: %w", err)
	}

	return tx.Commit()
}

// Meta returns the export metadata, or sql.ErrNoRows if nothing was written.
func (d *DB) Meta() (Meta, error) {
	var m Meta
	var exportedAt string
	err := d.db.QueryRow(`SELECT source_path, criteria, record_count, exported_at
		FROM export_meta WHERE id = 1`).Scan(&m.SourcePath, &m.Criteria, &m.RecordCount, &exportedAt)
	if err != nil {
		return Meta{}, err
	}
	m.ExportedAt, _ = time.Parse(time.RFC3339, exportedAt)
	return m, nil
}

// RecordCount returns the number of stored records.
func (d *DB) RecordCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM startups").Scan(&n)
	return n, err
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
