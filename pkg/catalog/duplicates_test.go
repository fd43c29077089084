package catalog

import (
	"reflect"
	"testing"
)

func TestIdentifyDuplicates(t *testing.T) {
	products := []Product{
		{Id: "a1", Name: "Laptop1", Price: 900},
		{Id: "b2", Name: "iPhone 15", Price: 999},
		{Id: "c3", Name: "laptop1 ", Price: 1200},
		{Id: "d4", Name: "Desk Lamp", Price: 45},
	}

	groups := IdentifyDuplicates(products)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if groups[0].Name != "laptop1" {
		t.Errorf("group name = %q, want laptop1", groups[0].Name)
	}
	if len(groups[0].Products) != 2 {
		t.Errorf("group size = %d, want 2", len(groups[0].Products))
	}
	// Discovery order within the group
	if groups[0].Products[0].Id != "a1" || groups[0].Products[1].Id != "c3" {
		t.Errorf("group order = %v, want [a1 c3]", groups[0].Products)
	}

	// Idempotent on the same input
	again := IdentifyDuplicates(products)
	if !reflect.DeepEqual(groups, again) {
		t.Error("IdentifyDuplicates is not idempotent")
	}
}

func TestRecommendCleanupKeepsHighestPrice(t *testing.T) {
	groups := IdentifyDuplicates([]Product{
		{Id: "a1", Name: "Laptop1", Price: 900},
		{Id: "c3", Name: "Laptop1", Price: 1200},
	})

	recs, summary := RecommendCleanup(groups)
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}

	rec := recs[0]
	if rec.Keep.Id != "c3" {
		t.Errorf("keep = %s, want c3 (higher price)", rec.Keep.Id)
	}
	if len(rec.Delete) != 1 || rec.Delete[0].Id != "a1" {
		t.Errorf("delete = %v, want [a1]", rec.Delete)
	}
	for _, d := range rec.Delete {
		if d.Price > rec.Keep.Price {
			t.Errorf("kept %v but deleting higher-priced %v", rec.Keep, d)
		}
	}

	want := CleanupSummary{DuplicateGroups: 1, TotalProducts: 2, RecommendedToDelete: 1}
	if summary != want {
		t.Errorf("summary = %+v, want %+v", summary, want)
	}
}

func TestRecommendCleanupPriceTieBreaksOnId(t *testing.T) {
	groups := IdentifyDuplicates([]Product{
		{Id: "zz", Name: "Monitor", Price: 300},
		{Id: "aa", Name: "Monitor", Price: 300},
	})

	recs, _ := RecommendCleanup(groups)
	if recs[0].Keep.Id != "aa" {
		t.Errorf("keep = %s, want aa (lexicographically smaller id)", recs[0].Keep.Id)
	}
	if recs[0].Delete[0].Id != "zz" {
		t.Errorf("delete = %v, want [zz]", recs[0].Delete)
	}
}
