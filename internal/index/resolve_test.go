package index

import (
	"errors"
	"strings"
	"testing"

	"github.com/QPC-github/bibxml-service/internal/relaton"
)

func TestGetRef_Relaton(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.GetRef("ietf-rfcs", "RFC1917", FormatRelaton)
	if err != nil {
		t.Fatalf("GetRef() error = %v", err)
	}
	if got.Format != FormatRelaton {
		t.Errorf("Format = %q, want relaton", got.Format)
	}

	// The body comes back unchanged.
	if id := relaton.GetString(got.Body, "id"); id != "RFC1917" {
		t.Errorf("body id = %q, want RFC1917", id)
	}
	if title := relaton.GetString(relaton.GetList(got.Body, "title")[0], "content"); !strings.Contains(title, "Appeal") {
		t.Errorf("body title = %q, want original title", title)
	}
	if got.Bibxml != "" {
		t.Errorf("Bibxml = %q, want empty for relaton format", got.Bibxml)
	}
}

func TestGetRef_CaseInsensitive(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.GetRef("IETF-RFCS", "rfc1917", FormatRelaton)
	if err != nil {
		t.Fatalf("GetRef() with mixed case error = %v", err)
	}
	if id := relaton.GetString(got.Body, "id"); id != "RFC1917" {
		t.Errorf("body id = %q, want RFC1917", id)
	}
}

func TestGetRef_Bibxml(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.GetRef("ietf-rfcs", "RFC1917", FormatBibxml)
	if err != nil {
		t.Fatalf("GetRef() error = %v", err)
	}
	if !strings.Contains(got.Bibxml, `anchor="RFC1917"`) {
		t.Errorf("Bibxml = %q, want stored representation", got.Bibxml)
	}
	if got.Body != nil {
		t.Errorf("Body = %v, want nil for bibxml format", got.Body)
	}
}

func TestGetRef_BibxmlRepresentationMissing(t *testing.T) {
	db := setupTestDB(t)

	// RFC1918 exists but has no stored bibxml representation.
	_, err := db.GetRef("ietf-rfcs", "RFC1918", FormatBibxml)
	if err == nil {
		t.Fatal("GetRef() = nil error, want NotFound")
	}
	if !IsNotFound(err) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %T, want *NotFoundError", err)
	}
	if !strings.Contains(nf.Message, "bibxml representation") {
		t.Errorf("message = %q, want representation-specific text", nf.Message)
	}
}

func TestGetRef_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetRef("ietf-rfcs", "RFC9999", FormatRelaton)
	if !IsNotFound(err) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}

	// Wrong dataset for an existing ref is also a miss.
	_, err = db.GetRef("nist-pubs", "RFC1917", FormatRelaton)
	if !IsNotFound(err) {
		t.Errorf("error = %v, want ErrNotFound across datasets", err)
	}
}

func TestGetRef_InvalidFormat(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetRef("ietf-rfcs", "RFC1917", Format("xyz"))
	if err == nil {
		t.Fatal("GetRef() = nil error, want InvalidFormat")
	}
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("error = %v, want ErrInvalidFormat", err)
	}
	var inv *InvalidFormatError
	if !errors.As(err, &inv) {
		t.Fatalf("error = %T, want *InvalidFormatError", err)
	}
	if inv.Format != "xyz" {
		t.Errorf("Format = %q, want xyz", inv.Format)
	}
}

func TestResolve_Ambiguous(t *testing.T) {
	db := setupTestDB(t)

	// Two records with the same ref in one dataset: exact lookup must
	// refuse to pick one.
	dupes := []RefData{
		{Ref: "DUP", Body: mustDoc(t, `{"id": "first"}`)},
		{Ref: "DUP", Body: mustDoc(t, `{"id": "second"}`)},
	}
	if _, err := db.ReplaceDataset("dupes", dupes); err != nil {
		t.Fatalf("ReplaceDataset() error = %v", err)
	}

	_, err := db.GetRef("dupes", "DUP", FormatRelaton)
	if err == nil {
		t.Fatal("GetRef() = nil error, want AmbiguousReference")
	}
	if !IsAmbiguous(err) {
		t.Errorf("error = %v, want ErrAmbiguousReference", err)
	}
	if IsNotFound(err) {
		t.Error("ambiguous lookup must not satisfy IsNotFound")
	}
	var amb *AmbiguousReferenceError
	if !errors.As(err, &amb) {
		t.Fatalf("error = %T, want *AmbiguousReferenceError", err)
	}
	if amb.Query == "" {
		t.Error("AmbiguousReferenceError.Query is empty, want query repr")
	}
}

func TestResolve_CustomPredicate(t *testing.T) {
	db := setupTestDB(t)

	// Predicate matching several records in the dataset.
	p := Predicate{Expr: "ref LIKE ?", Args: []any{"RFC%"}}
	_, err := db.Resolve("ietf-rfcs", p, FormatRelaton)
	if !IsAmbiguous(err) {
		t.Errorf("Resolve(RFC%%) error = %v, want ambiguous", err)
	}

	// Narrowed predicate resolves.
	got, err := db.Resolve("ietf-rfcs", Predicate{Expr: "ref = ?", Args: []any{"RFC1918"}}, FormatRelaton)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if id := relaton.GetString(got.Body, "id"); id != "RFC1918" {
		t.Errorf("body id = %q, want RFC1918", id)
	}
}
