package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// ToolSchema describes one backend tool for the classifier prompt.
type ToolSchema struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema,omitempty"`
}

const schemaCacheTTL = 10 * time.Minute

// SchemaCache fetches and caches the backend's tool catalog. When a
// refresh fails, the stale catalog keeps being served so the classifier
// can degrade instead of going blind.
//
// Kept as a hand-rolled guard around the fetched slice rather than a
// go-cache entry: the stale-read-after-expiry fallback requires holding
// on to entries past their TTL, which an evicting cache cannot do.
type SchemaCache struct {
	client *Client

	mu        sync.Mutex
	schemas   []ToolSchema
	fetchedAt time.Time
}

func NewSchemaCache(client *Client) *SchemaCache {
	return &SchemaCache{client: client}
}

// Tools returns the current tool catalog, refreshing it when older than
// the cache TTL. On refresh failure the stale catalog is returned when
// one exists; the error is only surfaced when there is nothing to serve.
func (s *SchemaCache) Tools(ctx context.Context) ([]ToolSchema, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.schemas) > 0 && time.Since(s.fetchedAt) < schemaCacheTTL {
		return s.schemas, nil
	}

	schemas, err := s.fetch(ctx)
	if err != nil {
		if len(s.schemas) > 0 {
			return s.schemas, nil
		}
		return nil, err
	}

	s.schemas = schemas
	s.fetchedAt = time.Now()
	return s.schemas, nil
}

func (s *SchemaCache) fetch(ctx context.Context) ([]ToolSchema, error) {
	resp, err := s.client.Call(ctx, ToolInvocation{Tool: ToolListTools})
	if err != nil {
		return nil, fmt.Errorf("fetch tool schemas: %w", err)
	}
	if resp.Err != nil {
		return nil, fmt.Errorf("fetch tool schemas: %w", resp.Err)
	}

	var payload struct {
		Tools []ToolSchema `json:"tools"`
	}
	if err := json.Unmarshal(resp.Result, &payload); err != nil {
		return nil, fmt.Errorf("decode tool schemas: %w", err)
	}
	return payload.Tools, nil
}
