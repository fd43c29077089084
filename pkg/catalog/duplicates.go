package catalog

import (
	"sort"
	"strings"
)

// DuplicateGroup is the ordered set of products sharing a normalized
// name, in discovery order. Groups always have at least two members.
type DuplicateGroup struct {
	Name     string
	Products []Product
}

// CleanupRecommendation says which record of a duplicate group to keep
// and which to delete. Keep is always a member of the group and Delete
// holds exactly the remaining members.
type CleanupRecommendation struct {
	ProductName    string    `json:"productName"`
	DuplicateCount int       `json:"duplicateCount"`
	Keep           Product   `json:"keep"`
	Delete         []Product `json:"delete"`
}

// CleanupSummary aggregates a recommendation pass.
type CleanupSummary struct {
	DuplicateGroups     int `json:"duplicateGroups"`
	TotalProducts       int `json:"totalProducts"`
	RecommendedToDelete int `json:"recommendedToDelete"`
}

// IdentifyDuplicates groups products by lower-cased, trimmed name and
// keeps only groups with two or more members. Products without a name
// are skipped. Group order follows first discovery in the input list.
func IdentifyDuplicates(products []Product) []DuplicateGroup {
	byName := make(map[string][]Product)
	var order []string
	for _, p := range products {
		if p.Name == "" {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(p.Name))
		if _, seen := byName[key]; !seen {
			order = append(order, key)
		}
		byName[key] = append(byName[key], p)
	}

	var groups []DuplicateGroup
	for _, key := range order {
		if len(byName[key]) > 1 {
			groups = append(groups, DuplicateGroup{Name: key, Products: byName[key]})
		}
	}
	return groups
}

// RecommendCleanup decides keep/delete per group: highest price is kept;
// on a price tie the lexicographically smaller id wins. Pure function,
// performs no deletion.
func RecommendCleanup(groups []DuplicateGroup) ([]CleanupRecommendation, CleanupSummary) {
	var recommendations []CleanupRecommendation
	summary := CleanupSummary{DuplicateGroups: len(groups)}

	for _, group := range groups {
		sorted := make([]Product, len(group.Products))
		copy(sorted, group.Products)
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Price != sorted[j].Price {
				return sorted[i].Price > sorted[j].Price
			}
			return sorted[i].Id < sorted[j].Id
		})

		recommendations = append(recommendations, CleanupRecommendation{
			ProductName:    group.Name,
			DuplicateCount: len(group.Products),
			Keep:           sorted[0],
			Delete:         sorted[1:],
		})

		summary.TotalProducts += len(group.Products)
		summary.RecommendedToDelete += len(sorted) - 1
	}

	return recommendations, summary
}
