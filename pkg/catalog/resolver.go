package catalog

import "strings"

// uuidMinLength guards the id-vs-name heuristic: backend ids are
// UUID-shaped (hyphenated, 36 chars), human names are shorter.
const uuidMinLength = 30

// LooksLikeId reports whether ref should be treated as a canonical
// identifier rather than a product name.
func LooksLikeId(ref string) bool {
	return strings.Contains(ref, "-") && len(ref) > uuidMinLength
}

// ResolveProduct resolves a name-or-identifier string to a single record
// from candidates. Identifier-shaped refs match by exact id equality only.
// Names match case-insensitively: exact match first, then first substring
// match in list order. Returns nil when nothing matches.
func ResolveProduct(ref string, candidates []Product) *Product {
	if LooksLikeId(ref) {
		for i := range candidates {
			if candidates[i].Id == ref {
				return &candidates[i]
			}
		}
		return nil
	}

	lower := strings.ToLower(ref)
	for i := range candidates {
		if strings.ToLower(candidates[i].Name) == lower {
			return &candidates[i]
		}
	}
	for i := range candidates {
		if strings.Contains(strings.ToLower(candidates[i].Name), lower) {
			return &candidates[i]
		}
	}
	return nil
}

// ResolveProducts returns every candidate whose name contains ref
// (case-insensitive), in list order. Used for bulk "all X" operations
// where "MacBook" should match "MacBook Air" and "MacBook Pro".
func ResolveProducts(ref string, candidates []Product) []Product {
	lower := strings.ToLower(ref)
	var matches []Product
	for _, p := range candidates {
		if strings.Contains(strings.ToLower(p.Name), lower) {
			matches = append(matches, p)
		}
	}
	return matches
}
