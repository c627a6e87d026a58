// Package screening compares the entered identity against a static watch-list.
//
// Matching is deliberately crude: plain substring and equality checks with no
// normalization or case folding. Screening is pure; it performs no I/O.
package screening

import "strings"

// Screen checks the entered name and identifier against the registry.
//
// Both inputs are trimmed. A record matches when the name is non-empty and
// either contains or is contained in the record's display name, or when the
// identifier is non-empty and equals the record's identifier exactly. The
// first matching record in registry order is reported.
func Screen(registry *Registry, name, identifierCode string) Result {
	name = strings.TrimSpace(name)
	identifierCode = strings.TrimSpace(identifierCode)
	if registry == nil || (name == "" && identifierCode == "") {
		return Clear()
	}

	for _, rec := range registry.records {
		if nameMatches(rec.DisplayName, name) || (identifierCode != "" && rec.IdentifierCode == identifierCode) {
			return Flagged(rec)
		}
	}
	return Clear()
}

func nameMatches(displayName, name string) bool {
	if name == "" {
		return false
	}
	return strings.Contains(displayName, name) || strings.Contains(name, displayName)
}
