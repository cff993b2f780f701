package index

import (
	"strings"
	"unicode"
)

// websearchToFTS compiles a websearch-style query (quoted phrases, +/-
// prefixes, implicit AND, explicit OR) into an FTS5 MATCH expression.
// Every term is emitted as a quoted FTS5 string, so user input can never
// inject FTS5 syntax.
//
// Returns ok = false when the query contains no positive terms: FTS5 NOT
// is binary, so a purely negative query cannot match anything.
func websearchToFTS(query string) (fts string, ok bool) {
	tokens := tokenizeWebsearch(query)
	if len(tokens) == 0 {
		return "", false
	}

	var expr strings.Builder
	var negated []string
	positives := 0
	pendingOR := false

	for _, tok := range tokens {
		if tok.isOR {
			// OR applies between the surrounding positive terms.
			if positives > 0 {
				pendingOR = true
			}
			continue
		}
		if tok.negate {
			negated = append(negated, quoteFTS(tok.text))
			continue
		}

		if positives > 0 {
			if pendingOR {
				expr.WriteString(" OR ")
			} else {
				expr.WriteString(" AND ")
			}
		}
		pendingOR = false
		expr.WriteString(quoteFTS(tok.text))
		positives++
	}

	if positives == 0 {
		return "", false
	}

	out := "(" + expr.String() + ")"
	for _, n := range negated {
		out += " NOT " + n
	}
	return out, true
}

type websearchToken struct {
	text   string
	negate bool
	isOR   bool
}

// tokenizeWebsearch splits a query into phrase and word tokens. Quoted
// segments become single phrase tokens; an unterminated quote swallows
// the rest of the query rather than failing.
func tokenizeWebsearch(query string) []websearchToken {
	var tokens []websearchToken
	runes := []rune(query)
	i := 0

	for i < len(runes) {
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			i++
		}
		if i >= len(runes) {
			break
		}

		negate := false
		for i < len(runes) && (runes[i] == '-' || runes[i] == '+') {
			if runes[i] == '-' {
				negate = true
			}
			i++
		}
		if i >= len(runes) {
			break
		}

		var text string
		if runes[i] == '"' {
			i++
			start := i
			for i < len(runes) && runes[i] != '"' {
				i++
			}
			text = string(runes[start:i])
			if i < len(runes) {
				i++ // closing quote
			}
		} else {
			start := i
			for i < len(runes) && !unicode.IsSpace(runes[i]) {
				i++
			}
			text = string(runes[start:i])
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if !negate && strings.EqualFold(text, "or") {
			tokens = append(tokens, websearchToken{isOR: true})
			continue
		}
		tokens = append(tokens, websearchToken{text: text, negate: negate})
	}

	return tokens
}

// quoteFTS wraps a term in FTS5 string quotes, doubling any embedded
// quote characters.
func quoteFTS(term string) string {
	return `"` + strings.ReplaceAll(term, `"`, `""`) + `"`
}
