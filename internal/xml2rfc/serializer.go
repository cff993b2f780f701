// Package xml2rfc converts Relaton bibliographic items into xml2rfc v3
// reference element trees.
//
// Each builder validates its own input and fails fast; the output of
// CreateReference is intended to validate against the xml2rfc v3 schema.
// Builders are stateless and perform no I/O, so repeated calls on the same
// item yield structurally identical trees.
package xml2rfc

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/QPC-github/bibxml-service/internal/relaton"
)

// roleAttrs maps recognized Relaton contributor roles to the xml2rfc
// author role attribute. Built from relaton.KnownRoles; the v3 schema
// only distinguishes editors, other recognized roles carry no attribute.
var roleAttrs = func() map[string]string {
	m := make(map[string]string, len(relaton.KnownRoles))
	for _, role := range relaton.KnownRoles {
		m[role] = ""
	}
	m["editor"] = "editor"
	return m
}()

// ToXML serializes a bibliographic item as an xml2rfc reference document.
func ToXML(item *relaton.BibliographicItem) (string, error) {
	ref, err := CreateReference(item)
	if err != nil {
		return "", err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.SetRoot(ref)
	doc.Indent(2)

	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("serializing reference: %w", err)
	}
	return out, nil
}

// CreateReference builds a <reference> element for a bibliographic item.
// The item must carry at least one title or one relation; when titles are
// absent the reference title falls back to the first related item's title.
// Related items become nested references, built recursively.
func CreateReference(item *relaton.BibliographicItem) (*etree.Element, error) {
	if item == nil {
		return nil, &ValidationError{Message: "missing bibliographic item"}
	}
	if err := item.Validate(); err != nil {
		return nil, &ValidationError{Message: "invalid bibliographic item", Err: err}
	}

	title, err := referenceTitle(item)
	if err != nil {
		return nil, err
	}

	ref := etree.NewElement("reference")
	if item.ID != "" {
		ref.CreateAttr("anchor", item.ID)
	}
	if target := sourceLink(item.Link); target != "" {
		ref.CreateAttr("target", target)
	}

	front := ref.CreateElement("front")
	front.CreateElement("title").SetText(title)

	for _, c := range item.Contributor {
		author, err := CreateAuthor(c)
		if err != nil {
			return nil, err
		}
		front.AddChild(author)
	}

	for _, d := range item.Date {
		front.AddChild(createDate(d))
	}

	for _, docid := range item.DocID {
		ref.AddChild(createSeriesInfo(docid))
	}

	if item.Formattedref != nil && item.Formattedref.Content != "" {
		ref.CreateElement("refcontent").SetText(item.Formattedref.Content)
	}

	for _, rel := range item.Relation {
		if rel.Bibitem == nil {
			continue
		}
		child, err := CreateReference(rel.Bibitem)
		if err != nil {
			return nil, err
		}
		ref.AddChild(child)
	}

	return ref, nil
}

// referenceTitle picks the reference title: the item's first title, else
// the first title found on a related item.
func referenceTitle(item *relaton.BibliographicItem) (string, error) {
	if len(item.Title) > 0 {
		return item.Title[0].Content, nil
	}
	for _, rel := range item.Relation {
		if rel.Bibitem != nil && len(rel.Bibitem.Title) > 0 {
			return rel.Bibitem.Title[0].Content, nil
		}
	}
	return "", &ValidationError{Message: "missing titles and relations"}
}

// CreateAuthor builds an <author> element for a contributor. The
// contributor must carry a recognized role and exactly one of organization
// or person. Organizations become an <organization> child; person names
// are mapped onto the v3 author attributes (initials, surname, fullname).
func CreateAuthor(c relaton.Contributor) (*etree.Element, error) {
	if err := c.Validate(); err != nil {
		return nil, &ValidationError{Message: "invalid contributor", Err: err}
	}

	author := etree.NewElement("author")
	if role := roleAttrs[c.Role]; role != "" {
		author.CreateAttr("role", role)
	}

	switch {
	case c.Organization != nil:
		author.CreateElement("organization").SetText(c.Organization.Name)
	case c.Person != nil:
		name := c.Person.Name
		if initials := joinInitials(name.Initial); initials != "" {
			author.CreateAttr("initials", initials)
		}
		if name.Surname != nil && name.Surname.Content != "" {
			author.CreateAttr("surname", name.Surname.Content)
		}
		if name.Completename != nil && name.Completename.Content != "" {
			author.CreateAttr("fullname", name.Completename.Content)
		}
	}

	return author, nil
}

// joinInitials flattens the initial name parts into a single attribute
// value.
func joinInitials(initials []relaton.FormattedString) string {
	var parts []string
	for _, i := range initials {
		if i.Content != "" {
			parts = append(parts, i.Content)
		}
	}
	return strings.Join(parts, " ")
}

// createDate builds a <date> element from a typed date value, splitting
// an ISO 8601 prefix into year/month/day attributes.
func createDate(d relaton.Date) *etree.Element {
	date := etree.NewElement("date")

	parts := strings.SplitN(d.Value, "-", 3)
	if len(parts) > 0 && parts[0] != "" {
		date.CreateAttr("year", parts[0])
	}
	if len(parts) > 1 {
		date.CreateAttr("month", parts[1])
	}
	if len(parts) > 2 {
		date.CreateAttr("day", parts[2])
	}

	return date
}

// createSeriesInfo builds a <seriesInfo> element from a document identifier.
func createSeriesInfo(docid relaton.DocID) *etree.Element {
	si := etree.NewElement("seriesInfo")
	si.CreateAttr("name", docid.Type)
	si.CreateAttr("value", docid.ID)
	return si
}

// sourceLink returns the first usable link target, preferring links
// typed "src".
func sourceLink(links []relaton.Link) string {
	for _, l := range links {
		if l.Type == "src" && l.Content != "" {
			return l.Content
		}
	}
	for _, l := range links {
		if l.Content != "" {
			return l.Content
		}
	}
	return ""
}
