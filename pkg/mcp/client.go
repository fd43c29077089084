package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"catalog-command-be/pkg/catalog"
)

// Known backend tool names (the backend's tools/call vocabulary).
const (
	ToolListProducts   = "list_products"
	ToolGetProduct     = "get_product"
	ToolGetByCategory  = "get_products_by_category"
	ToolGetBySegment   = "get_products_by_segment"
	ToolGetByName      = "get_product_by_name"
	ToolCreateProduct  = "create_product"
	ToolCreateProducts = "create_multiple_products"
	ToolUpdateProduct  = "update_product"
	ToolUpdateProducts = "update_products"
	ToolDeleteProduct  = "delete_product"
	ToolDeleteProducts = "delete_products"
	ToolListTools      = "list_tools"
	ToolHealthCheck    = "health_check"
)

// knownTools maps each supported tool to whether it mutates the catalog.
var knownTools = map[string]bool{
	ToolListProducts:   false,
	ToolGetProduct:     false,
	ToolGetByCategory:  false,
	ToolGetBySegment:   false,
	ToolGetByName:      false,
	ToolCreateProduct:  true,
	ToolCreateProducts: true,
	ToolUpdateProduct:  true,
	ToolUpdateProducts: true,
	ToolDeleteProduct:  true,
	ToolDeleteProducts: true,
	ToolListTools:      false,
	ToolHealthCheck:    false,
}

// KnownTool reports whether name is in the supported tool set.
func KnownTool(name string) bool {
	_, ok := knownTools[name]
	return ok
}

// IsMutationTool reports whether a tool creates, updates or deletes
// catalog records (single or bulk).
func IsMutationTool(name string) bool {
	return knownTools[name]
}

// ToolInvocation is a resolved tool call: produced by the pattern
// matcher or the classifier, consumed by the dispatcher.
type ToolInvocation struct {
	Tool       string                 `json:"tool"`
	Parameters map[string]interface{} `json:"parameters"`
}

// RPCError is the backend's error envelope.
type RPCError struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	if e.Data != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Data)
	}
	return e.Message
}

// IsNotFound recognizes the backend's "entity missing" error shape,
// the one error the pipeline may locally recover from.
func (e *RPCError) IsNotFound() bool {
	return e.Message == "Internal error" && strings.Contains(e.Data, "404")
}

// Response is the JSON-RPC result envelope from the backend. Exactly
// one of Result and Err is set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	Id      int64           `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Err     *RPCError       `json:"error,omitempty"`
}

// Products decodes the result as a product list, canonicalizing
// category casing at this fetch boundary.
func (r *Response) Products() ([]catalog.Product, bool) {
	if r == nil || len(r.Result) == 0 {
		return nil, false
	}
	var products []catalog.Product
	if err := json.Unmarshal(r.Result, &products); err != nil {
		return nil, false
	}
	return catalog.Canonicalize(products), true
}

type rpcRequest struct {
	JSONRPC string     `json:"jsonrpc"`
	Id      int64      `json:"id"`
	Method  string     `json:"method"`
	Params  *rpcParams `json:"params,omitempty"`
}

type rpcParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments,omitempty"`
}

// Client dispatches tool invocations to the remote catalog backend over
// JSON-RPC. It attaches a bearer token when configured.
type Client struct {
	baseURL   string
	authToken string
	client    *http.Client
}

func NewClient(baseURL, authToken string) *Client {
	return &Client{
		baseURL:   baseURL,
		authToken: authToken,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Call dispatches inv and returns the backend's response envelope.
// Unknown tool names are rejected before any network traffic.
func (c *Client) Call(ctx context.Context, inv ToolInvocation) (*Response, error) {
	if !KnownTool(inv.Tool) {
		return nil, fmt.Errorf("unsupported tool: %s", inv.Tool)
	}

	req := rpcRequest{
		JSONRPC: "2.0",
		Id:      time.Now().UnixMilli(),
	}
	if inv.Tool == ToolListTools {
		req.Method = "tools/list"
	} else {
		req.Method = "tools/call"
		req.Params = &rpcParams{Name: inv.Tool, Arguments: inv.Parameters}
	}

	return c.post(ctx, req)
}

// ListProducts fetches the full catalog, the working set for every
// resolution pass.
func (c *Client) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	resp, err := c.Call(ctx, ToolInvocation{Tool: ToolListProducts, Parameters: map[string]interface{}{}})
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	products, ok := resp.Products()
	if !ok {
		return nil, fmt.Errorf("list_products returned a non-list result")
	}
	return products, nil
}

func (c *Client) post(ctx context.Context, payload interface{}) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var rpcResp Response
	if err := json.Unmarshal(bodyBytes, &rpcResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &rpcResp, nil
}
