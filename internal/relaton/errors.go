package relaton

import "errors"

// Validation failures surfaced by Contributor.Validate and
// BibliographicItem.Validate.
var (
	errIncompatibleRole          = errors.New("incompatible role")
	errMissingPersonOrOrg        = errors.New("missing person or organization")
	errBothPersonAndOrg          = errors.New("contributor has both person and organization")
	errMissingTitlesAndRelations = errors.New("missing titles and relations")
)
