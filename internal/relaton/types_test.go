package relaton

import (
	"strings"
	"testing"
)

func orgContributor() Contributor {
	return Contributor{
		Organization: &Organization{Name: "Internet Engineering Task Force"},
		Role:         "publisher",
	}
}

func personContributor() Contributor {
	return Contributor{
		Person: &Person{
			Name: PersonName{
				Initial:      []FormattedString{{Content: "Mr", Language: "en"}},
				Surname:      &FormattedString{Content: "Cerf", Language: "en"},
				Completename: &FormattedString{Content: "Mr Cerf", Language: "en"},
			},
		},
		Role: "author",
	}
}

func TestContributorValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Contributor)
		wantErr string
	}{
		{"valid organization", func(c *Contributor) {}, ""},
		{"missing role", func(c *Contributor) { c.Role = "" }, "missing role"},
		{"unknown role", func(c *Contributor) { c.Role = "janitor" }, "incompatible role"},
		{"neither person nor organization", func(c *Contributor) {
			c.Organization = nil
			c.Person = nil
		}, "missing person or organization"},
		{"both person and organization", func(c *Contributor) {
			c.Person = &Person{}
		}, "both person and organization"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := orgContributor()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestContributorValidate_Person(t *testing.T) {
	if err := personContributor().Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestBibliographicItemValidate(t *testing.T) {
	item := BibliographicItem{
		ID:    "ref_01",
		Title: []FormattedString{{Content: "title", Language: "en"}},
	}
	if err := item.Validate(); err != nil {
		t.Errorf("Validate() with title error = %v, want nil", err)
	}

	item.Title = nil
	item.Relation = []Relation{{Type: "includes", Bibitem: &BibliographicItem{ID: "child"}}}
	if err := item.Validate(); err != nil {
		t.Errorf("Validate() with relation error = %v, want nil", err)
	}

	item.Relation = nil
	err := item.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want missing titles and relations error")
	}
	if !strings.Contains(err.Error(), "missing titles and relations") {
		t.Errorf("Validate() error = %q, want missing titles and relations", err)
	}
}

func TestRoleKnown(t *testing.T) {
	for _, role := range KnownRoles {
		if !RoleKnown(role) {
			t.Errorf("RoleKnown(%q) = false, want true", role)
		}
	}
	if RoleKnown("janitor") {
		t.Error("RoleKnown(janitor) = true, want false")
	}
	if RoleKnown("") {
		t.Error("RoleKnown(\"\") = true, want false")
	}
}
