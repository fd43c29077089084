package router

import (
	"testing"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		command string
		want    Intent
	}{
		{"Show duplicates", IntentDuplicateAnalysis},
		{"find duplicates in the catalog", IntentDuplicateAnalysis},
		{"Clean up duplicate products", IntentDuplicateCleanup},
		{"Remove duplicates", IntentDuplicateCleanup},
		{"How many products are there", IntentCount},
		{"count Electronics", IntentCount},
		{"number of iphones", IntentCount},
		{"show products grouped by category", IntentGroupByCategory},
		{"group products by category", IntentGroupByCategory},
		{"Set all MacBook to 2800", IntentBulkUpdate},
		{"update every product in HomeOffice segment to 500", IntentBulkUpdate},
		{"Update iPhone 17 to 799", IntentUpdate},
		{"set iPhone to 899", IntentUpdate},
		{"Delete all Laptop products", IntentBulkDelete},
		{"Delete HP Spectre", IntentDelete},
		{"Remove iPhone 16", IntentDelete},
		{"show all products", IntentQuery},
		{"Find Laptops", IntentQuery},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			if got := ClassifyIntent(tt.command); got != tt.want {
				t.Errorf("ClassifyIntent(%q) = %s, want %s", tt.command, got, tt.want)
			}
		})
	}
}

func TestIntentIsMutation(t *testing.T) {
	if IntentQuery.IsMutation() || IntentCount.IsMutation() || IntentDuplicateAnalysis.IsMutation() {
		t.Error("read intents misclassified as mutations")
	}
	if !IntentDelete.IsMutation() || !IntentBulkUpdate.IsMutation() || !IntentDuplicateCleanup.IsMutation() {
		t.Error("mutation intents misclassified as reads")
	}
}
