package catalog

import (
	"testing"
)

var resolverFixtures = []Product{
	{Id: "0a0c5e52-8a15-4f5c-9d0a-111111111111", Name: "MacBook Air", Price: 1200},
	{Id: "1b1d6f63-9b26-5a6d-ae1b-222222222222", Name: "MacBook Pro", Price: 2400},
	{Id: "2c2e7a74-ac37-6b7e-bf2c-333333333333", Name: "HP Spectre", Price: 1400},
	{Id: "3d3f8b85-bd48-7c8f-ca3d-444444444444", Name: "hp spectre", Price: 900},
}

func TestResolveProductById(t *testing.T) {
	p := ResolveProduct("2c2e7a74-ac37-6b7e-bf2c-333333333333", resolverFixtures)
	if p == nil || p.Name != "HP Spectre" {
		t.Fatalf("ResolveProduct by id = %v, want HP Spectre", p)
	}

	// Identifier-shaped refs never fall back to name matching
	if got := ResolveProduct("9f9f9f9f-0000-0000-0000-999999999999", resolverFixtures); got != nil {
		t.Errorf("unknown id resolved to %v, want nil", got)
	}
}

func TestResolveProductByName(t *testing.T) {
	tests := []struct {
		name   string
		ref    string
		wantId string
	}{
		{"exact match", "MacBook Air", "0a0c5e52-8a15-4f5c-9d0a-111111111111"},
		{"case-insensitive exact, first in list order", "HP SPECTRE", "2c2e7a74-ac37-6b7e-bf2c-333333333333"},
		{"substring fallback", "Spectre", "2c2e7a74-ac37-6b7e-bf2c-333333333333"},
		{"substring first match wins", "MacBook", "0a0c5e52-8a15-4f5c-9d0a-111111111111"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ResolveProduct(tt.ref, resolverFixtures)
			if p == nil {
				t.Fatalf("ResolveProduct(%q) = nil", tt.ref)
			}
			if p.Id != tt.wantId {
				t.Errorf("ResolveProduct(%q).Id = %s, want %s", tt.ref, p.Id, tt.wantId)
			}
		})
	}

	if got := ResolveProduct("ThinkPad", resolverFixtures); got != nil {
		t.Errorf("ResolveProduct(ThinkPad) = %v, want nil", got)
	}
}

func TestResolveProducts(t *testing.T) {
	matches := ResolveProducts("macbook", resolverFixtures)
	if len(matches) != 2 {
		t.Fatalf("ResolveProducts(macbook) = %d matches, want 2", len(matches))
	}
	if matches[0].Name != "MacBook Air" || matches[1].Name != "MacBook Pro" {
		t.Errorf("matches out of list order: %v", matches)
	}

	if got := ResolveProducts("tablet", resolverFixtures); len(got) != 0 {
		t.Errorf("ResolveProducts(tablet) = %v, want empty", got)
	}
}

func TestLooksLikeId(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"0a0c5e52-8a15-4f5c-9d0a-111111111111", true},
		{"HP Spectre", false},
		{"mac-book", false}, // hyphen but short
		{"a very long product name without hyphens at all", false},
	}
	for _, tt := range tests {
		if got := LooksLikeId(tt.ref); got != tt.want {
			t.Errorf("LooksLikeId(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}
