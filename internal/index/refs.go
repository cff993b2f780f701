package index

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/QPC-github/bibxml-service/internal/relaton"
)

// RefData is an indexed citation record: a Relaton body keyed by dataset
// and reference identifier, with optional pre-rendered representations
// (e.g. "bibxml").
type RefData struct {
	ID              int64             `json:"-"`
	Dataset         string            `json:"dataset"`
	Ref             string            `json:"ref"`
	Body            relaton.Doc       `json:"body"`
	Representations map[string]string `json:"representations,omitempty"`
}

// ListRefs returns all records belonging to a dataset, matched
// case-insensitively. Order is unspecified.
func (d *DB) ListRefs(dataset string) ([]RefData, error) {
	rows, err := d.db.Query(`
		SELECT `+selectRefFields+` FROM refs WHERE dataset = ? COLLATE NOCASE
	`, dataset)
	if err != nil {
		return nil, fmt.Errorf("listing refs for %s: %w", dataset, err)
	}
	defer rows.Close()

	return scanRefs(rows)
}

// SearchText returns records whose body text matches a websearch-syntax
// query (quoted phrases, +/- inclusion and exclusion, implicit AND,
// explicit OR). Degenerate queries return no results rather than an
// error.
func (d *DB) SearchText(text string) ([]RefData, error) {
	ftsQuery, ok := websearchToFTS(text)
	if !ok {
		return nil, nil
	}

	rows, err := d.db.Query(`
		SELECT `+selectRefFields+`
		FROM refs
		WHERE id IN (SELECT id FROM refs_fts WHERE refs_fts MATCH ?)
	`, ftsQuery)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanRefs(rows)
}

// SearchStruct returns records whose body structurally contains at least
// one of the given patterns (OR semantics). The containment predicate is
// applied in Go (relaton.Contains); pattern content never reaches SQL.
// Zero patterns yield an empty result.
func (d *DB) SearchStruct(patterns ...relaton.Doc) ([]RefData, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	rows, err := d.db.Query(`SELECT ` + selectRefFields + ` FROM refs`)
	if err != nil {
		return nil, fmt.Errorf("scanning refs: %w", err)
	}
	defer rows.Close()

	var matches []RefData
	for rows.Next() {
		ref, err := scanRef(rows)
		if err != nil {
			return nil, err
		}
		for _, pattern := range patterns {
			if relaton.Contains(ref.Body, pattern) {
				matches = append(matches, *ref)
				break
			}
		}
	}
	return matches, rows.Err()
}

// DoctypeSample pairs a document type tag with one document identifier
// carrying it.
type DoctypeSample struct {
	Doctype  string `json:"doctype"`
	SampleID string `json:"sample_id"`
}

// ListDoctypes returns one (doctype, sample id) pair per distinct
// docid[*].type value across all records. The sample per type is
// arbitrary: the bare-column GROUP BY lets SQLite pick any row of the
// group. Docid entries lacking an id cannot be elected as samples.
func (d *DB) ListDoctypes() ([]DoctypeSample, error) {
	rows, err := d.db.Query(`
		SELECT json_extract(j.value, '$.type') AS doctype,
		       json_extract(j.value, '$.id') AS sample_id
		FROM refs, json_each(refs.body, '$.docid') AS j
		WHERE json_extract(j.value, '$.type') IS NOT NULL
		  AND json_extract(j.value, '$.id') IS NOT NULL
		GROUP BY doctype
	`)
	if err != nil {
		return nil, fmt.Errorf("listing doctypes: %w", err)
	}
	defer rows.Close()

	var samples []DoctypeSample
	for rows.Next() {
		var s DoctypeSample
		if err := rows.Scan(&s.Doctype, &s.SampleID); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanRef reads one record from a positioned row set.
func scanRef(s scanner) (*RefData, error) {
	var ref RefData
	var body string
	var reprs sql.NullString

	if err := s.Scan(&ref.ID, &ref.Dataset, &ref.Ref, &body, &reprs); err != nil {
		return nil, err
	}

	doc, err := relaton.ParseDoc([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("parsing body for %s/%s: %w", ref.Dataset, ref.Ref, err)
	}
	ref.Body = doc

	if reprs.Valid && reprs.String != "" {
		if err := json.Unmarshal([]byte(reprs.String), &ref.Representations); err != nil {
			return nil, fmt.Errorf("parsing representations for %s/%s: %w", ref.Dataset, ref.Ref, err)
		}
	}

	return &ref, nil
}

func scanRefs(rows *sql.Rows) ([]RefData, error) {
	var refs []RefData
	for rows.Next() {
		ref, err := scanRef(rows)
		if err != nil {
			return nil, err
		}
		refs = append(refs, *ref)
	}
	return refs, rows.Err()
}
