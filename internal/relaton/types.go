// Package relaton defines the Relaton bibliographic data model: a typed
// object graph for well-formed items, and a loosely-typed Doc for raw
// citation bodies as stored in indexed datasets.
package relaton

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FormattedString is a localized text value used for titles, names and
// formatted references.
type FormattedString struct {
	Content  string `json:"content"`
	Language string `json:"language,omitempty"`
	Script   string `json:"script,omitempty"`
	Format   string `json:"format,omitempty"`
}

// DocID identifies a document within some identifier scheme, e.g.
// {Type: "RFC", ID: "RFC1917"}.
type DocID struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Date is a typed bibliographic date. Value uses ISO 8601 prefixes
// ("1996", "1996-02" or "1996-02-14").
type Date struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Link is a typed URL attached to an item.
type Link struct {
	Content string `json:"content"`
	Type    string `json:"type,omitempty"`
}

// Relation ties an item to another bibliographic item, which it owns
// outright. Relations nest arbitrarily deep.
type Relation struct {
	Type    string             `json:"type"`
	Bibitem *BibliographicItem `json:"bibitem,omitempty"`
}

// Organization is an organizational contributor.
type Organization struct {
	Name string `json:"name"`
}

// PersonName holds the name parts of a personal contributor.
type PersonName struct {
	Initial      []FormattedString `json:"initial,omitempty"`
	Surname      *FormattedString  `json:"surname,omitempty"`
	Completename *FormattedString  `json:"completename,omitempty"`
}

// Person is an individual contributor.
type Person struct {
	Name PersonName `json:"name"`
}

// Contributor attaches an organization or a person to an item in a given
// role. Exactly one of Organization and Person must be set.
type Contributor struct {
	Organization *Organization `json:"organization,omitempty"`
	Person       *Person       `json:"person,omitempty"`
	Role         string        `json:"role,omitempty"`
}

// KnownRoles lists the contributor roles recognized by the xml2rfc role
// mapping.
var KnownRoles = []string{"author", "editor", "publisher", "distributor", "translator"}

// RoleKnown reports whether role is one of the recognized contributor roles.
func RoleKnown(role string) bool {
	for _, r := range KnownRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Validate checks the contributor invariants: a recognized role, and
// exactly one of organization or person.
func (c Contributor) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Role,
			validation.Required.Error("missing role"),
			validation.By(func(v interface{}) error {
				role, _ := v.(string)
				if role != "" && !RoleKnown(role) {
					return errIncompatibleRole
				}
				return nil
			})),
		validation.Field(&c.Organization,
			validation.By(func(interface{}) error {
				if c.Organization == nil && c.Person == nil {
					return errMissingPersonOrOrg
				}
				if c.Organization != nil && c.Person != nil {
					return errBothPersonAndOrg
				}
				return nil
			})),
	)
}

// BibliographicItem is a typed Relaton citation, the input to the xml2rfc
// serializer.
type BibliographicItem struct {
	ID           string            `json:"id,omitempty"`
	Title        []FormattedString `json:"title,omitempty"`
	DocID        []DocID           `json:"docid,omitempty"`
	Formattedref *FormattedString  `json:"formattedref,omitempty"`
	Contributor  []Contributor     `json:"contributor,omitempty"`
	Date         []Date            `json:"date,omitempty"`
	Relation     []Relation        `json:"relation,omitempty"`
	Type         string            `json:"type,omitempty"`
	Docnumber    string            `json:"docnumber,omitempty"`
	Link         []Link            `json:"link,omitempty"`
}

// Validate checks the serializer precondition: an item must carry at least
// one title or at least one relation.
func (b BibliographicItem) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Title,
			validation.By(func(interface{}) error {
				if len(b.Title) == 0 && len(b.Relation) == 0 {
					return errMissingTitlesAndRelations
				}
				return nil
			})),
	)
}
