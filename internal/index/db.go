// Package index provides the SQLite-backed citation index: dataset-scoped
// listing, full-text and structural search, doctype sampling, and
// reference resolution.
//
// Datasets are ingested from JSONL files (see internal/dataset); the
// database is a derived cache and can always be rebuilt. All read
// operations are safe for concurrent use.
package index

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/QPC-github/bibxml-service/internal/relaton"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection holding indexed citation data.
type DB struct {
	db *sql.DB
}

// selectRefFields is the standard field list for SELECT queries over refs.
const selectRefFields = `id, dataset, ref, body, representations`

// OpenDB opens or creates a citation index database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- Indexed citation records, one row per (dataset, ref)
		CREATE TABLE IF NOT EXISTS refs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			dataset TEXT NOT NULL,
			ref TEXT NOT NULL,
			body TEXT NOT NULL,
			representations TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_refs_dataset ON refs(dataset COLLATE NOCASE);
		CREATE INDEX IF NOT EXISTS idx_refs_ref ON refs(ref COLLATE NOCASE);

		-- Full-text search over a flattened text cast of body
		-- (standalone, not external content). The id column only links
		-- back to refs and must not be searchable.
		CREATE VIRTUAL TABLE IF NOT EXISTS refs_fts USING fts5(
			id UNINDEXED,
			body_text
		);

		-- Per-dataset ingestion metadata for staleness detection
		CREATE TABLE IF NOT EXISTS sync_meta (
			dataset TEXT PRIMARY KEY,
			content_hash TEXT NOT NULL,
			synced_at INTEGER NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}

// ReplaceDataset clears all records of a dataset and inserts the given
// ones, keeping the FTS table in step. Returns the number of records
// inserted.
func (d *DB) ReplaceDataset(dataset string, refs []RefData) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		DELETE FROM refs_fts
		WHERE id IN (SELECT id FROM refs WHERE dataset = ? COLLATE NOCASE)
	`, dataset); err != nil {
		return 0, fmt.Errorf("clearing fts rows: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM refs WHERE dataset = ? COLLATE NOCASE`, dataset); err != nil {
		return 0, fmt.Errorf("clearing dataset rows: %w", err)
	}

	refStmt, err := tx.Prepare(`
		INSERT INTO refs (dataset, ref, body, representations)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing refs insert: %w", err)
	}
	defer refStmt.Close()

	ftsStmt, err := tx.Prepare(`INSERT INTO refs_fts (id, body_text) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for _, ref := range refs {
		bodyJSON, err := relaton.MarshalDoc(ref.Body)
		if err != nil {
			return 0, fmt.Errorf("marshaling body for %s: %w", ref.Ref, err)
		}

		var reprs any
		if len(ref.Representations) > 0 {
			data, err := json.Marshal(ref.Representations)
			if err != nil {
				return 0, fmt.Errorf("marshaling representations for %s: %w", ref.Ref, err)
			}
			reprs = string(data)
		}

		res, err := refStmt.Exec(dataset, ref.Ref, string(bodyJSON), reprs)
		if err != nil {
			return 0, fmt.Errorf("inserting ref %s: %w", ref.Ref, err)
		}
		rowID, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("reading row id for %s: %w", ref.Ref, err)
		}

		if _, err := ftsStmt.Exec(rowID, relaton.FlattenText(ref.Body)); err != nil {
			return 0, fmt.Errorf("inserting fts for %s: %w", ref.Ref, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing dataset %s: %w", dataset, err)
	}
	return len(refs), nil
}

// Count returns the total number of indexed records.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM refs").Scan(&count)
	return count, err
}

// ListDatasets returns the distinct dataset names present in the index.
func (d *DB) ListDatasets() ([]string, error) {
	rows, err := d.db.Query(`SELECT DISTINCT dataset FROM refs ORDER BY dataset`)
	if err != nil {
		return nil, fmt.Errorf("listing datasets: %w", err)
	}
	defer rows.Close()

	var datasets []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		datasets = append(datasets, name)
	}
	return datasets, rows.Err()
}

// GetDatasetHash returns the recorded content hash for a dataset, or ""
// when the dataset has never been imported.
func (d *DB) GetDatasetHash(dataset string) (string, error) {
	var hash string
	err := d.db.QueryRow(`
		SELECT content_hash FROM sync_meta WHERE dataset = ? COLLATE NOCASE
	`, dataset).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading sync metadata: %w", err)
	}
	return hash, nil
}

// SetDatasetHash records the content hash and import time for a dataset.
func (d *DB) SetDatasetHash(dataset, hash string, syncedAt time.Time) error {
	_, err := d.db.Exec(`
		INSERT OR REPLACE INTO sync_meta (dataset, content_hash, synced_at)
		VALUES (?, ?, ?)
	`, dataset, hash, syncedAt.Unix())
	if err != nil {
		return fmt.Errorf("updating sync metadata: %w", err)
	}
	return nil
}
