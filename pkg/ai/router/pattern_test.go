package router

import (
	"testing"

	"catalog-command-be/pkg/mcp"
)

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		name         string
		command      string
		wantTool     string
		wantCategory string
	}{
		{"bare show products", "show all products", mcp.ToolListProducts, ""},
		{"bare list singular", "list product", mcp.ToolListProducts, ""},
		{"get products", "get products", mcp.ToolListProducts, ""},
		{"list tools", "list tools", mcp.ToolListTools, ""},
		{"show all tools", "show all tools", mcp.ToolListTools, ""},
		{"category query", "show all products in electronics category", mcp.ToolGetByCategory, "Electronics"},
		{"category recased", "list products in FURNITURE category", mcp.ToolGetByCategory, "Furniture"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := MatchPattern(tt.command)
			if inv == nil {
				t.Fatalf("MatchPattern(%q) = nil, want %s", tt.command, tt.wantTool)
			}
			if inv.Tool != tt.wantTool {
				t.Errorf("tool = %s, want %s", inv.Tool, tt.wantTool)
			}
			if tt.wantCategory != "" && inv.Parameters["category"] != tt.wantCategory {
				t.Errorf("category = %v, want %s", inv.Parameters["category"], tt.wantCategory)
			}
		})
	}
}

func TestMatchPatternFallsThrough(t *testing.T) {
	// Near-misses must reach the classifier, never be guessed at here.
	commands := []string{
		"show all products in electronics", // no trailing "category"
		"delete hp spectre",
		"show macbook products",
		"how many products",
		"",
	}
	for _, cmd := range commands {
		if inv := MatchPattern(cmd); inv != nil {
			t.Errorf("MatchPattern(%q) = %+v, want nil", cmd, inv)
		}
	}
}
