package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

// FilterCriteria is the structured filter derived from a bulk command.
// At most one field is populated per extraction pass. An empty criteria
// means "undetermined", never "match everything".
type FilterCriteria struct {
	Segment     string `json:"segment,omitempty"`
	Category    string `json:"category,omitempty"`
	NamePattern string `json:"namePattern,omitempty"`
}

// IsEmpty reports whether no filter dimension could be determined.
func (c FilterCriteria) IsEmpty() bool {
	return c.Segment == "" && c.Category == "" && c.NamePattern == ""
}

// String renders the populated dimension for error messages.
func (c FilterCriteria) String() string {
	switch {
	case c.Segment != "":
		return "segment=" + c.Segment
	case c.Category != "":
		return "category=" + c.Category
	case c.NamePattern != "":
		return "name~" + c.NamePattern
	default:
		return "(none)"
	}
}

// nameKeywords are the recognized brand/model tokens for name-pattern
// filtering. Checked in order; aliases map to the canonical token.
var nameKeywords = []struct {
	aliases []string
	pattern string
}{
	{[]string{"macbook", "mac book"}, "macbook"},
	{[]string{"iphone"}, "iphone"},
	{[]string{"laptop"}, "laptop"},
}

var (
	segmentRe     = regexp.MustCompile(`(?i)(\w+)\s+segment`)
	categoryRe    = regexp.MustCompile(`(?i)(\w+)\s+category`)
	targetPriceRe = regexp.MustCompile(`(?i)(?:to|price)\s+(\d+(?:\.\d+)?)`)
)

// ExtractCriteria derives filter criteria from command text. Rules are
// evaluated in order, first match wins:
//  1. "home office"/"homeoffice" → segment HomeOffice
//  2. "<word> segment" → segment
//  3. "<word> category" → category
//  4. known product-name keyword → namePattern
func ExtractCriteria(command string) FilterCriteria {
	lower := strings.ToLower(command)

	if strings.Contains(lower, "home office") || strings.Contains(lower, "homeoffice") {
		return FilterCriteria{Segment: "HomeOffice"}
	}
	if strings.Contains(lower, "segment") {
		if m := segmentRe.FindStringSubmatch(command); m != nil {
			return FilterCriteria{Segment: m[1]}
		}
	}
	if strings.Contains(lower, "category") {
		if m := categoryRe.FindStringSubmatch(command); m != nil {
			return FilterCriteria{Category: m[1]}
		}
	}
	if kw := MatchNameKeyword(command); kw != "" {
		return FilterCriteria{NamePattern: kw}
	}

	return FilterCriteria{}
}

// MatchNameKeyword returns the canonical name keyword mentioned in the
// command, or "" when none of the recognized tokens appear.
func MatchNameKeyword(command string) string {
	lower := strings.ToLower(command)
	for _, kw := range nameKeywords {
		for _, alias := range kw.aliases {
			if strings.Contains(lower, alias) {
				return kw.pattern
			}
		}
	}
	return ""
}

// ExtractTargetPrice pulls the target numeric value from "to <n>" or
// "price <n>". The second return is false when no price is present.
func ExtractTargetPrice(command string) (float64, bool) {
	m := targetPriceRe.FindStringSubmatch(command)
	if m == nil {
		return 0, false
	}
	price, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

// FilterByCriteria returns the products matching the single populated
// dimension of criteria. Segment and category compare case-insensitively
// on equality; namePattern is a case-insensitive substring match on name.
// A record with no value in the checked field never matches, and an
// empty criteria matches nothing.
func FilterByCriteria(products []Product, criteria FilterCriteria) []Product {
	var matched []Product
	for _, p := range products {
		switch {
		case criteria.Segment != "":
			if p.Segment != "" && strings.EqualFold(p.Segment, criteria.Segment) {
				matched = append(matched, p)
			}
		case criteria.Category != "":
			if p.Category != "" && strings.EqualFold(p.Category, criteria.Category) {
				matched = append(matched, p)
			}
		case criteria.NamePattern != "":
			if p.Name != "" && strings.Contains(strings.ToLower(p.Name), strings.ToLower(criteria.NamePattern)) {
				matched = append(matched, p)
			}
		}
	}
	return matched
}
