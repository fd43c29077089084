package dto

import (
	"encoding/json"

	"catalog-command-be/pkg/catalog"
)

type CommandRequest struct {
	Command string `json:"command" validate:"required"`
}

// ProductUpdate captures the before/after of one priced product.
type ProductUpdate struct {
	Id       string  `json:"id"`
	Name     string  `json:"name"`
	OldPrice float64 `json:"oldPrice"`
	NewPrice float64 `json:"newPrice"`
}

type DuplicateAnalysisResult struct {
	Message         string                          `json:"message"`
	Summary         catalog.CleanupSummary          `json:"summary"`
	Recommendations []catalog.CleanupRecommendation `json:"recommendations"`
}

// CategoryGroup is one bucket of a grouped listing.
type CategoryGroup struct {
	Category string            `json:"category"`
	Count    int               `json:"count"`
	Products []catalog.Product `json:"products"`
}

// GroupingResult is the envelope for category-grouped listings.
// Categories keep catalog discovery order.
type GroupingResult struct {
	TotalProducts   int             `json:"totalProducts"`
	TotalCategories int             `json:"totalCategories"`
	Categories      []CategoryGroup `json:"categories"`
}

type CleanupResult struct {
	Message         string            `json:"message"`
	DeletedCount    int               `json:"deletedCount"`
	DuplicateGroups int               `json:"duplicateGroups"`
	DeletedProducts []catalog.Product `json:"deletedProducts"`
	KeptProducts    []catalog.Product `json:"keptProducts"`
}

// CommandResult is the shaped outcome of one command. Exactly the fields
// relevant to the command's intent are populated; the rest stay empty.
type CommandResult struct {
	Tool    string `json:"tool"`
	Intent  string `json:"intent"`
	Cached  bool   `json:"cached"`
	Message string `json:"message,omitempty"`

	Products []catalog.Product `json:"products,omitempty"`
	Count    *int              `json:"count,omitempty"`
	Context  string            `json:"context,omitempty"`
	Groups   *GroupingResult   `json:"groups,omitempty"`

	Duplicates   *DuplicateAnalysisResult `json:"duplicates,omitempty"`
	Cleanup      *CleanupResult           `json:"cleanup,omitempty"`
	Updated      []ProductUpdate          `json:"updated,omitempty"`
	UpdatedCount int                      `json:"updatedCount,omitempty"`
	Deleted      []catalog.Product        `json:"deleted,omitempty"`

	// Raw carries backend payloads that need no reshaping (list_tools,
	// create results and similar passthroughs).
	Raw json.RawMessage `json:"raw,omitempty"`
}
