package router

import (
	"regexp"

	"catalog-command-be/pkg/catalog"
	"catalog-command-be/pkg/mcp"
)

// Anchored fast-path shapes. Anything not matching exactly falls
// through to the classifier; the matcher never guesses.
var (
	listProductsRe = regexp.MustCompile(`^(show|list|get)\s+(all\s+)?products?\s*$`)
	listToolsRe    = regexp.MustCompile(`^(show|list|get)\s+(all\s+)?tools?\s*$`)
	categoryRe     = regexp.MustCompile(`^(show|list|get)\s+.*products?\s+in\s+(\w+)\s+category$`)
)

// MatchPattern recognizes a small set of canonical command shapes on
// the normalized (trimmed, lower-cased) command and returns the tool
// call directly, skipping the classifier. Returns nil on no match.
func MatchPattern(normalizedCommand string) *mcp.ToolInvocation {
	if listProductsRe.MatchString(normalizedCommand) {
		return &mcp.ToolInvocation{Tool: mcp.ToolListProducts, Parameters: map[string]interface{}{}}
	}

	if listToolsRe.MatchString(normalizedCommand) {
		return &mcp.ToolInvocation{Tool: mcp.ToolListTools, Parameters: map[string]interface{}{}}
	}

	if m := categoryRe.FindStringSubmatch(normalizedCommand); m != nil {
		return &mcp.ToolInvocation{
			Tool: mcp.ToolGetByCategory,
			Parameters: map[string]interface{}{
				// Re-case to the backend's canonical category format
				"category": catalog.CanonicalCategory(m[2]),
			},
		}
	}

	return nil
}
