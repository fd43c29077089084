package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"catalog-command-be/internal/constant"
	"catalog-command-be/pkg/llm"
	"catalog-command-be/pkg/mcp"
)

// ErrMalformedResponse is returned when no JSON object can be recovered
// from the model output, even after the markdown fallbacks.
var ErrMalformedResponse = errors.New("classifier returned no parseable JSON")

var (
	fencedJSONRe = regexp.MustCompile("```json\\s*(\\{[\\s\\S]*?\\})\\s*```")
	fencedRe     = regexp.MustCompile("```\\s*(\\{[\\s\\S]*?\\})\\s*```")
	braceRe      = regexp.MustCompile(`\{[\s\S]*\}`)
)

// ToolCatalog supplies the tool definitions embedded in the prompt.
type ToolCatalog interface {
	Tools(ctx context.Context) ([]mcp.ToolSchema, error)
}

// Classifier turns a free-text command into a tool invocation by asking
// the model. Its output is advisory: callers validate the tool name and
// may override the parameters from their own parsing of the command.
type Classifier struct {
	provider llm.LLMProvider
	catalog  ToolCatalog
}

func NewClassifier(provider llm.LLMProvider, catalog ToolCatalog) *Classifier {
	return &Classifier{provider: provider, catalog: catalog}
}

type classifierOutput struct {
	Tool       string                 `json:"tool"`
	Parameters map[string]interface{} `json:"parameters"`
}

func (c *Classifier) Classify(ctx context.Context, command string) (*mcp.ToolInvocation, error) {
	prompt, err := c.buildPrompt(ctx, command)
	if err != nil {
		return nil, err
	}

	raw, err := c.provider.Generate(ctx, prompt,
		llm.WithTemperature(0),
		llm.WithJSONFormat(),
	)
	if err != nil {
		return nil, fmt.Errorf("classifier generate: %w", err)
	}

	body, ok := extractJSON(raw)
	if !ok {
		return nil, ErrMalformedResponse
	}

	var out classifierOutput
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if out.Tool == "" {
		return nil, ErrMalformedResponse
	}
	if out.Parameters == nil {
		out.Parameters = map[string]interface{}{}
	}

	return &mcp.ToolInvocation{Tool: out.Tool, Parameters: out.Parameters}, nil
}

// buildPrompt assembles rules, the live tool catalog and few-shot
// examples around the user command.
func (c *Classifier) buildPrompt(ctx context.Context, command string) (string, error) {
	tools, err := c.catalog.Tools(ctx)
	if err != nil {
		return "", fmt.Errorf("load tool catalog: %w", err)
	}

	var b strings.Builder
	b.WriteString(constant.ClassifierPromptHeader)
	for i, tool := range tools {
		fmt.Fprintf(&b, "\n%d. %s: %s", i+1, tool.Name, tool.Description)
		if len(tool.InputSchema) > 0 {
			fmt.Fprintf(&b, "\n  Parameters: %s", string(tool.InputSchema))
		}
	}
	fmt.Fprintf(&b, constant.ClassifierPromptExamples, command)
	return b.String(), nil
}

// extractJSON recovers the JSON object from raw model output. Fenced
// ```json blocks win over plain fences; a bare brace scan is the last
// resort.
func extractJSON(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)

	if strings.Contains(raw, "```json") {
		if m := fencedJSONRe.FindStringSubmatch(raw); m != nil {
			return m[1], true
		}
	} else if strings.Contains(raw, "```") {
		if m := fencedRe.FindStringSubmatch(raw); m != nil {
			return m[1], true
		}
	}

	if strings.HasPrefix(raw, "{") {
		return raw, true
	}
	if m := braceRe.FindString(raw); m != "" {
		return m, true
	}
	return "", false
}
