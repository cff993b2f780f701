package index

import (
	"fmt"

	"github.com/QPC-github/bibxml-service/internal/relaton"
)

// Format selects the projection of a resolved citation.
type Format string

const (
	// FormatRelaton returns the stored Relaton body as-is.
	FormatRelaton Format = "relaton"

	// FormatBibxml returns the pre-rendered bibxml representation.
	FormatBibxml Format = "bibxml"
)

// Predicate is a bound-parameter filter over refs columns. Expr must be a
// SQL condition using ? placeholders only; values go in Args and are
// never interpolated into the query text.
type Predicate struct {
	Expr string
	Args []any
}

// RefEquals is the default lookup predicate: case-insensitive equality on
// the reference identifier.
func RefEquals(ref string) Predicate {
	return Predicate{Expr: "ref = ? COLLATE NOCASE", Args: []any{ref}}
}

// String renders the predicate for error reporting.
func (p Predicate) String() string {
	return fmt.Sprintf("%s %v", p.Expr, p.Args)
}

// Resolved is the projection of a citation produced by Resolve. Exactly
// one of Body and Bibxml is populated, according to Format.
type Resolved struct {
	Format Format      `json:"format"`
	Body   relaton.Doc `json:"body,omitempty"`
	Bibxml string      `json:"bibxml,omitempty"`
}

// GetRef resolves a citation by dataset and reference identifier, both
// matched case-insensitively.
func (d *DB) GetRef(dataset, ref string, format Format) (*Resolved, error) {
	return d.Resolve(dataset, RefEquals(ref), format)
}

// Resolve looks up exactly one record matching the predicate within a
// dataset and projects it into the requested format.
//
// An unsupported format fails with InvalidFormatError before any query
// runs. Zero matches fail with NotFoundError; more than one with
// AmbiguousReferenceError. FormatBibxml additionally fails with
// NotFoundError when the record has no stored bibxml representation.
func (d *DB) Resolve(dataset string, p Predicate, format Format) (*Resolved, error) {
	if format != FormatRelaton && format != FormatBibxml {
		return nil, &InvalidFormatError{Format: string(format)}
	}

	query := `SELECT ` + selectRefFields + ` FROM refs WHERE (` + p.Expr + `) AND dataset = ? COLLATE NOCASE LIMIT 2`
	args := append(append([]any{}, p.Args...), dataset)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("resolving reference: %w", err)
	}
	defer rows.Close()

	refs, err := scanRefs(rows)
	if err != nil {
		return nil, err
	}

	switch {
	case len(refs) == 0:
		return nil, &NotFoundError{
			Message: "cannot find matching reference in given dataset",
			Query:   p.String(),
		}
	case len(refs) > 1:
		return nil, &AmbiguousReferenceError{
			Message: "multiple references match query in given dataset",
			Query:   p.String(),
		}
	}
	ref := refs[0]

	if format == FormatRelaton {
		return &Resolved{Format: FormatRelaton, Body: ref.Body}, nil
	}

	bibxml, ok := ref.Representations[string(FormatBibxml)]
	if !ok || bibxml == "" {
		return nil, &NotFoundError{
			Message: "bibxml representation not found for requested reference",
			Query:   p.String(),
		}
	}
	return &Resolved{Format: FormatBibxml, Bibxml: bibxml}, nil
}
