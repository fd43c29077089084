package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSchemaCacheFetchesOnceWhileFresh(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"tools":[
			{"name":"list_products","description":"List all products"}
		]}}`))
	}))
	defer srv.Close()

	sc := NewSchemaCache(NewClient(srv.URL, ""))

	for i := 0; i < 3; i++ {
		tools, err := sc.Tools(context.Background())
		if err != nil {
			t.Fatalf("Tools failed: %v", err)
		}
		if len(tools) != 1 || tools[0].Name != "list_products" {
			t.Fatalf("tools = %+v", tools)
		}
	}
	if requests != 1 {
		t.Errorf("backend hit %d times, want 1", requests)
	}
}

func TestSchemaCacheServesStaleOnRefreshFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sc := NewSchemaCache(NewClient(srv.URL, ""))
	sc.schemas = []ToolSchema{{Name: "list_products", Description: "List all products"}}
	sc.fetchedAt = time.Now().Add(-2 * schemaCacheTTL) // force a refresh attempt

	tools, err := sc.Tools(context.Background())
	if err != nil {
		t.Fatalf("expected stale catalog, got error: %v", err)
	}
	if len(tools) != 1 || tools[0].Name != "list_products" {
		t.Errorf("tools = %+v", tools)
	}
}

func TestSchemaCacheErrorsWithoutFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sc := NewSchemaCache(NewClient(srv.URL, ""))
	if _, err := sc.Tools(context.Background()); err == nil {
		t.Fatal("expected error when no catalog has ever been fetched")
	}
}
