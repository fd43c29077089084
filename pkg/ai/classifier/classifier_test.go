package classifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"catalog-command-be/pkg/llm"
	"catalog-command-be/pkg/mcp"
)

type stubProvider struct {
	response string
	err      error
	prompt   string
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

type stubCatalog struct {
	tools []mcp.ToolSchema
	err   error
}

func (s *stubCatalog) Tools(ctx context.Context) ([]mcp.ToolSchema, error) {
	return s.tools, s.err
}

func TestClassifyParsesCleanJSON(t *testing.T) {
	p := &stubProvider{response: `{"tool":"get_products_by_category","parameters":{"category":"Furniture"}}`}
	c := NewClassifier(p, &stubCatalog{})

	inv, err := c.Classify(context.Background(), "Show Furniture")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if inv.Tool != mcp.ToolGetByCategory {
		t.Errorf("tool = %s", inv.Tool)
	}
	if inv.Parameters["category"] != "Furniture" {
		t.Errorf("parameters = %v", inv.Parameters)
	}
}

func TestClassifyExtractsFromMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"json fence", "Here you go:\n```json\n{\"tool\":\"list_products\",\"parameters\":{}}\n```"},
		{"plain fence", "```\n{\"tool\":\"list_products\",\"parameters\":{}}\n```"},
		{"leading prose", "Sure! The call is {\"tool\":\"list_products\",\"parameters\":{}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(&stubProvider{response: tt.response}, &stubCatalog{})
			inv, err := c.Classify(context.Background(), "show all products")
			if err != nil {
				t.Fatalf("Classify failed: %v", err)
			}
			if inv.Tool != mcp.ToolListProducts {
				t.Errorf("tool = %s", inv.Tool)
			}
		})
	}
}

func TestClassifyMalformedResponse(t *testing.T) {
	responses := []string{
		"I cannot help with that.",
		"```json\nnot json at all\n```",
		`{"parameters":{}}`, // missing tool name
	}
	for _, resp := range responses {
		c := NewClassifier(&stubProvider{response: resp}, &stubCatalog{})
		_, err := c.Classify(context.Background(), "delete hp spectre")
		if !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("response %q: err = %v, want ErrMalformedResponse", resp, err)
		}
	}
}

func TestClassifyEmbedsToolCatalog(t *testing.T) {
	p := &stubProvider{response: `{"tool":"list_products","parameters":{}}`}
	c := NewClassifier(p, &stubCatalog{tools: []mcp.ToolSchema{
		{Name: "list_products", Description: "List all products", InputSchema: []byte(`{"type":"object"}`)},
		{Name: "delete_product", Description: "Delete a product by id"},
	}})

	if _, err := c.Classify(context.Background(), "show all products"); err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if !strings.Contains(p.prompt, "1. list_products: List all products") {
		t.Errorf("prompt missing first tool:\n%s", p.prompt)
	}
	if !strings.Contains(p.prompt, "2. delete_product") {
		t.Errorf("prompt missing second tool")
	}
	if !strings.Contains(p.prompt, `User command: show all products`) {
		t.Errorf("prompt missing command")
	}
}

func TestClassifyCatalogFailure(t *testing.T) {
	c := NewClassifier(&stubProvider{}, &stubCatalog{err: errors.New("backend down")})
	if _, err := c.Classify(context.Background(), "show all products"); err == nil {
		t.Fatal("expected error when tool catalog is unavailable")
	}
}
