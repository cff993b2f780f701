package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFetcher_Fetch(t *testing.T) {
	content := `{"ref":"RFC1918","body":{"id":"RFC1918"}}` + "\n"
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(content))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "ietf-rfcs.jsonl")
	f := NewFetcher(WithToken("sekrit"))

	n, err := f.Fetch(context.Background(), srv.URL, dest)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Fetch() = %d records, want 1", n)
	}
	if gotAuth != "Bearer sekrit" {
		t.Errorf("Authorization header = %q, want bearer token", gotAuth)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if string(data) != content {
		t.Errorf("downloaded content = %q, want %q", data, content)
	}
}

func TestFetcher_FetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "ds.jsonl")
	_, err := NewFetcher().Fetch(context.Background(), srv.URL, dest)
	if err == nil {
		t.Fatal("Fetch() = nil error, want status failure")
	}
	if !strings.Contains(err.Error(), "unexpected status") {
		t.Errorf("Fetch() error = %q, want status message", err)
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("failed fetch left a destination file behind")
	}
}

func TestFetcher_FetchRejectsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not jsonl</html>"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "ds.jsonl")

	// Pre-existing dataset must survive a bad download.
	if err := os.WriteFile(dest, []byte(`{"ref":"A","body":{}}`+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFetcher().Fetch(context.Background(), srv.URL, dest)
	if err == nil {
		t.Fatal("Fetch() = nil error, want validation failure")
	}

	data, readErr := os.ReadFile(dest)
	if readErr != nil {
		t.Fatalf("reading dataset: %v", readErr)
	}
	if !strings.Contains(string(data), `"ref":"A"`) {
		t.Errorf("existing dataset clobbered by failed fetch: %q", data)
	}
}
