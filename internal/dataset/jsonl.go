// Package dataset handles citation dataset ingestion: JSONL files on
// disk are the source of truth, the SQLite index is derived from them.
package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/QPC-github/bibxml-service/internal/index"
	"github.com/QPC-github/bibxml-service/internal/relaton"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines
// (4MB per line; citation bodies with deep relation trees get large).
const MaxJSONLLineCapacity = 4 * 1024 * 1024

// Record is one line of a dataset JSONL file. The dataset name itself
// comes from the file, not the line.
type Record struct {
	Ref             string            `json:"ref"`
	Body            relaton.Doc       `json:"body"`
	Representations map[string]string `json:"representations,omitempty"`
}

// RefData converts the record for insertion into a named dataset.
func (r Record) RefData(dataset string) index.RefData {
	return index.RefData{
		Dataset:         dataset,
		Ref:             r.Ref,
		Body:            r.Body,
		Representations: r.Representations,
	}
}

// ReadAll reads all records from a dataset JSONL file. A missing file
// yields an empty slice.
func ReadAll(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening dataset file: %w", err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)

	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		if rec.Ref == "" {
			return nil, fmt.Errorf("line %d: missing ref", lineNum)
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dataset file: %w", err)
	}

	return records, nil
}

// WriteAll writes records to a dataset JSONL file, replacing existing
// content.
func WriteAll(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dataset file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding record %s: %w", rec.Ref, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing record %s: %w", rec.Ref, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	return w.Flush()
}
