package router

import "strings"

// Intent is the single classified tag for a command. Downstream code
// consumes the tag instead of re-testing the raw text.
type Intent string

const (
	IntentDuplicateCleanup  Intent = "DUPLICATE_CLEANUP"  // find and delete duplicates
	IntentDuplicateAnalysis Intent = "DUPLICATE_ANALYSIS" // find duplicates, read-only
	IntentCount             Intent = "COUNT"              // "how many" style queries
	IntentGroupByCategory   Intent = "GROUP_BY_CATEGORY"  // bucket listing by category
	IntentBulkUpdate        Intent = "BULK_UPDATE"        // "set all X to N"
	IntentUpdate            Intent = "UPDATE"             // single-entity update
	IntentBulkDelete        Intent = "BULK_DELETE"        // "delete all X"
	IntentDelete            Intent = "DELETE"             // single-entity delete
	IntentQuery             Intent = "QUERY"              // everything else (reads)
)

// IsMutation reports whether the intent implies a catalog mutation.
func (i Intent) IsMutation() bool {
	switch i {
	case IntentDuplicateCleanup, IntentBulkUpdate, IntentUpdate, IntentBulkDelete, IntentDelete:
		return true
	}
	return false
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func mentionsDuplicate(s string) bool {
	return containsAny(s, "duplicate", "find duplicates")
}

func mentionsCleanup(s string) bool {
	return containsAny(s, "clean", "remove", "delete")
}

func mentionsAll(s string) bool {
	return containsAny(s, "all ", "every ")
}

func mentionsUpdate(s string) bool {
	return containsAny(s, "update", "set ", "change ")
}

func mentionsDelete(s string) bool {
	return containsAny(s, "delete", "remove")
}

// intentRules is the ordered predicate table: the first matching rule
// decides the intent. Order matters: duplicate handling outranks the
// generic delete words it shares ("remove duplicates" is a cleanup, not
// a bulk delete).
var intentRules = []struct {
	name   string
	match  func(string) bool
	intent Intent
}{
	{"duplicate-cleanup", func(s string) bool { return mentionsDuplicate(s) && mentionsCleanup(s) }, IntentDuplicateCleanup},
	{"duplicate-analysis", mentionsDuplicate, IntentDuplicateAnalysis},
	{"count", func(s string) bool { return containsAny(s, "how many", "count", "number of") }, IntentCount},
	{"group-by-category", func(s string) bool {
		return (strings.Contains(s, "group") && strings.Contains(s, "by category")) ||
			strings.Contains(s, "grouped by category")
	}, IntentGroupByCategory},
	{"bulk-update", func(s string) bool { return mentionsUpdate(s) && mentionsAll(s) }, IntentBulkUpdate},
	{"update", mentionsUpdate, IntentUpdate},
	{"bulk-delete", func(s string) bool { return mentionsDelete(s) && mentionsAll(s) }, IntentBulkDelete},
	{"delete", mentionsDelete, IntentDelete},
}

// ClassifyIntent evaluates the rule table once against the lower-cased
// command and returns the single intent tag. Commands matching no rule
// are plain queries.
func ClassifyIntent(command string) Intent {
	lower := strings.ToLower(strings.TrimSpace(command))
	for _, rule := range intentRules {
		if rule.match(lower) {
			return rule.intent
		}
	}
	return IntentQuery
}
