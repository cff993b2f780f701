package relaton

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, s string) Doc {
	t.Helper()
	doc, err := ParseDoc([]byte(s))
	if err != nil {
		t.Fatalf("ParseDoc(%q) error = %v", s, err)
	}
	return doc
}

func TestContains(t *testing.T) {
	body := mustParse(t, `{
		"id": "RFC1917",
		"docid": [
			{"type": "RFC", "id": "RFC1917"},
			{"type": "DOI", "id": "10.17487/RFC1917"}
		],
		"title": [{"content": "An Appeal to the Internet Community", "language": "en"}],
		"date": [{"type": "published", "value": "1996-02"}]
	}`)

	tests := []struct {
		name    string
		pattern string
		want    bool
	}{
		{"empty object matches anything", `{}`, true},
		{"scalar field", `{"id": "RFC1917"}`, true},
		{"scalar mismatch", `{"id": "RFC1918"}`, false},
		{"missing key", `{"abstract": "x"}`, false},
		{"array element by subset", `{"docid": [{"type": "RFC"}]}`, true},
		{"array element full", `{"docid": [{"type": "DOI", "id": "10.17487/RFC1917"}]}`, true},
		{"array element absent", `{"docid": [{"type": "ISO"}]}`, false},
		{"two array elements", `{"docid": [{"type": "RFC"}, {"type": "DOI"}]}`, true},
		{"nested object subset", `{"title": [{"language": "en"}]}`, true},
		{"nested scalar mismatch", `{"title": [{"language": "fr"}]}`, false},
		{"type mismatch object vs array", `{"docid": {"type": "RFC"}}`, false},
		{"empty array matches any array", `{"docid": []}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern := mustParse(t, tt.pattern)
			if got := Contains(body, pattern); got != tt.want {
				t.Errorf("Contains() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContains_Scalars(t *testing.T) {
	if !Contains("x", "x") {
		t.Error("Contains(x, x) = false, want true")
	}
	if Contains("x", "y") {
		t.Error("Contains(x, y) = true, want false")
	}
	if !Contains(mustParse(t, `{"n": 2}`), mustParse(t, `{"n": 2}`)) {
		t.Error("numeric equality should match")
	}
	if Contains(mustParse(t, `{"n": 2}`), mustParse(t, `{"n": "2"}`)) {
		t.Error("number should not match string")
	}
}

func TestGetString(t *testing.T) {
	doc := mustParse(t, `{"a": {"b": {"c": "deep"}}, "s": "flat"}`)

	if got := GetString(doc, "s"); got != "flat" {
		t.Errorf("GetString(s) = %q, want %q", got, "flat")
	}
	if got := GetString(doc, "a", "b", "c"); got != "deep" {
		t.Errorf("GetString(a.b.c) = %q, want %q", got, "deep")
	}
	if got := GetString(doc, "a", "missing"); got != "" {
		t.Errorf("GetString(a.missing) = %q, want empty", got)
	}
	if got := GetString(doc, "a", "b", "c", "d"); got != "" {
		t.Errorf("GetString past a scalar = %q, want empty", got)
	}
}

func TestGetList(t *testing.T) {
	doc := mustParse(t, `{"docid": [{"type": "RFC"}], "id": "x"}`)

	if got := GetList(doc, "docid"); len(got) != 1 {
		t.Errorf("GetList(docid) len = %d, want 1", len(got))
	}
	if got := GetList(doc, "id"); got != nil {
		t.Errorf("GetList on scalar = %v, want nil", got)
	}
	if got := GetList("scalar", "x"); got != nil {
		t.Errorf("GetList on non-object = %v, want nil", got)
	}
}

func TestFlattenText(t *testing.T) {
	doc := mustParse(t, `{
		"title": [{"content": "Address Allocation", "language": "en"}],
		"docnumber": "RFC1918"
	}`)

	text := FlattenText(doc)
	for _, want := range []string{"Address Allocation", "en", "RFC1918", "title", "docnumber"} {
		if !strings.Contains(text, want) {
			t.Errorf("FlattenText() = %q, missing %q", text, want)
		}
	}
}

func TestFlattenText_Stable(t *testing.T) {
	doc := mustParse(t, `{"b": "two", "a": "one", "c": [1, true, null]}`)
	first := FlattenText(doc)
	for i := 0; i < 5; i++ {
		if got := FlattenText(doc); got != first {
			t.Fatalf("FlattenText not stable: %q vs %q", got, first)
		}
	}
}

func TestMarshalDoc_RoundTrip(t *testing.T) {
	src := `{"docid":[{"id":"RFC1917","type":"RFC"}],"id":"ref_01"}`
	doc := mustParse(t, src)

	data, err := MarshalDoc(doc)
	if err != nil {
		t.Fatalf("MarshalDoc() error = %v", err)
	}
	again := mustParse(t, string(data))
	if !Contains(doc, again) || !Contains(again, doc) {
		t.Errorf("round trip changed document: %s", data)
	}
}
