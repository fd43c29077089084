package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"catalog-command-be/internal/apperror"
	"catalog-command-be/internal/dto"
	"catalog-command-be/internal/pkg/logger"
	"catalog-command-be/pkg/ai/classifier"
	"catalog-command-be/pkg/ai/router"
	respcache "catalog-command-be/pkg/cache"
	"catalog-command-be/pkg/catalog"
	"catalog-command-be/pkg/events"
	"catalog-command-be/pkg/mcp"

	"github.com/google/uuid"
)

// Dispatcher sends a tool invocation to the catalog backend.
type Dispatcher interface {
	Call(ctx context.Context, inv mcp.ToolInvocation) (*mcp.Response, error)
}

// IntentClassifier proposes a tool call for commands the pattern matcher
// does not recognize. Its output is advisory and re-validated here.
type IntentClassifier interface {
	Classify(ctx context.Context, command string) (*mcp.ToolInvocation, error)
}

// EventPublisher pushes mutation events to the outward bus. Best effort:
// a publish failure never fails the command.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type ICommandService interface {
	Execute(ctx context.Context, req *dto.CommandRequest) (*dto.CommandResult, error)
	ListTools(ctx context.Context) (json.RawMessage, error)
	Health(ctx context.Context) error
}

type commandService struct {
	dispatcher Dispatcher
	classifier IntentClassifier
	cache      *respcache.ResponseCache
	log        logger.ILogger
	publisher  IPublisherService
	eventPub   EventPublisher
}

func NewCommandService(
	dispatcher Dispatcher,
	intentClassifier IntentClassifier,
	responseCache *respcache.ResponseCache,
	sysLogger logger.ILogger,
	publisher IPublisherService,
	eventPub EventPublisher,
) ICommandService {
	return &commandService{
		dispatcher: dispatcher,
		classifier: intentClassifier,
		cache:      responseCache,
		log:        sysLogger,
		publisher:  publisher,
		eventPub:   eventPub,
	}
}

var (
	// updateNameRe pulls the product reference out of a single update
	// command, e.g. "Update iPhone 17 to 799" -> "iPhone 17".
	updateNameRe = regexp.MustCompile(`(?i)^(?:update|set|change)\s+(?:the\s+)?(?:price\s+of\s+)?(.+?)\s+(?:to|with)\s+\d`)
	// deleteNameRe pulls the product reference out of a delete command.
	deleteNameRe = regexp.MustCompile(`(?i)^(?:delete|remove)\s+(?:the\s+)?(?:product\s+named\s+)?(.+?)\s*$`)
)

func (s *commandService) Execute(ctx context.Context, req *dto.CommandRequest) (*dto.CommandResult, error) {
	command := req.Command
	key := respcache.NormalizeKey(command)
	start := time.Now()

	if hit, ok := s.cache.Get(key); ok {
		if cached, isResult := hit.(*dto.CommandResult); isResult {
			out := *cached
			out.Cached = true
			s.log.Info("command", "serving cached response", map[string]interface{}{"key": key})
			s.audit(command, &out, nil, start)
			s.notifyExecuted(ctx, command, &out)
			return &out, nil
		}
	}

	result, err := s.process(ctx, command, key)
	s.audit(command, result, err, start)
	if err != nil {
		return nil, err
	}

	if respcache.Cacheable(key) {
		s.cache.Set(key, result)
	}
	s.notifyExecuted(ctx, command, result)
	return result, nil
}

// notifyExecuted emits the outward execution event. Best effort.
func (s *commandService) notifyExecuted(ctx context.Context, command string, result *dto.CommandResult) {
	if s.eventPub == nil {
		return
	}
	if err := s.eventPub.Publish(ctx, events.NewCommandExecuted(command, result.Tool, result.Cached)); err != nil {
		s.log.Warn("command", "failed to publish execution event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *commandService) ListTools(ctx context.Context) (json.RawMessage, error) {
	resp, err := s.dispatch(ctx, mcp.ToolInvocation{Tool: mcp.ToolListTools, Parameters: map[string]interface{}{}})
	if err != nil {
		return nil, err
	}
	return resp.Result, nil
}

func (s *commandService) Health(ctx context.Context) error {
	resp, err := s.dispatch(ctx, mcp.ToolInvocation{Tool: mcp.ToolHealthCheck, Parameters: map[string]interface{}{}})
	if err != nil {
		return err
	}
	if resp.Err != nil {
		return s.rpcError(resp.Err)
	}
	return nil
}

func (s *commandService) process(ctx context.Context, command, key string) (*dto.CommandResult, error) {
	intent := router.ClassifyIntent(command)

	inv := router.MatchPattern(key)
	source := "pattern"
	if inv == nil {
		source = "classifier"
		classified, err := s.classifier.Classify(ctx, command)
		if err != nil {
			if errors.Is(err, classifier.ErrMalformedResponse) {
				return nil, apperror.Wrap(apperror.KindClassifierFormat,
					"Classifier returned invalid JSON. Please try rephrasing your command", err)
			}
			return nil, apperror.Wrap(apperror.KindBackend, "Classifier call failed", err)
		}
		inv = classified
	}

	if !mcp.KnownTool(inv.Tool) {
		return nil, apperror.Newf(apperror.KindUnsupportedTool, "Unsupported tool '%s'", inv.Tool)
	}

	s.log.Info("command", "command routed", map[string]interface{}{
		"command": command,
		"intent":  string(intent),
		"tool":    inv.Tool,
		"source":  source,
	})

	switch intent {
	case router.IntentDuplicateAnalysis, router.IntentDuplicateCleanup:
		return s.handleDuplicates(ctx, command, intent)
	case router.IntentCount:
		return s.handleCount(ctx, command, intent, inv)
	case router.IntentGroupByCategory:
		return s.handleGrouping(ctx, command, intent, inv)
	case router.IntentBulkUpdate:
		return s.handleBulkUpdate(ctx, command, intent)
	case router.IntentUpdate:
		return s.handleSingleUpdate(ctx, command, intent, inv)
	case router.IntentBulkDelete:
		return s.handleBulkDelete(ctx, command, intent)
	case router.IntentDelete:
		return s.handleSingleDelete(ctx, command, intent, inv)
	default:
		return s.handleQuery(ctx, command, intent, inv)
	}
}

// --- Intent handlers ---

func (s *commandService) handleQuery(ctx context.Context, command string, intent router.Intent, inv *mcp.ToolInvocation) (*dto.CommandResult, error) {
	resp, err := s.dispatch(ctx, *inv)
	if err != nil {
		return nil, err
	}

	if resp.Err != nil {
		// Exact name lookups that 404 fall back to a substring scan over
		// the full catalog before giving up.
		if inv.Tool == mcp.ToolGetByName && resp.Err.IsNotFound() {
			name := stringParam(inv.Parameters, "name")
			return s.partialMatchFallback(ctx, command, intent, name)
		}
		return nil, s.rpcError(resp.Err)
	}

	result := &dto.CommandResult{Tool: inv.Tool, Intent: string(intent)}

	products, isList := resp.Products()

	// Creates resolved by the classifier land here rather than in a
	// dedicated handler; the cache contract still applies to them.
	if mcp.IsMutationTool(inv.Tool) {
		affected := 1
		if isList {
			affected = len(products)
		}
		s.afterMutation(ctx, command, inv.Tool, affected)
		result.Raw = resp.Result
		if isList {
			result.Products = products
		}
		return result, nil
	}

	if !isList {
		result.Raw = resp.Result
		return result, nil
	}

	if inv.Tool == mcp.ToolListProducts {
		products = filterByNameKeyword(command, products)
	}
	result.Products = products
	result.Message = fmt.Sprintf("Found %d products", len(products))
	return result, nil
}

func (s *commandService) partialMatchFallback(ctx context.Context, command string, intent router.Intent, name string) (*dto.CommandResult, error) {
	if name == "" {
		return nil, apperror.New(apperror.KindEntityNotFound, "Product not found")
	}

	all, err := s.fetchAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	matches := catalog.ResolveProducts(name, all)
	if len(matches) == 0 {
		return nil, apperror.Newf(apperror.KindEntityNotFound, "Product '%s' not found", name)
	}

	s.log.Info("command", "partial match fallback applied", map[string]interface{}{
		"name":    name,
		"matched": len(matches),
	})
	return &dto.CommandResult{
		Tool:     mcp.ToolGetByName,
		Intent:   string(intent),
		Products: matches,
		Message:  fmt.Sprintf("Found %d products matching '%s'", len(matches), name),
	}, nil
}

func (s *commandService) handleCount(ctx context.Context, command string, intent router.Intent, inv *mcp.ToolInvocation) (*dto.CommandResult, error) {
	resp, err := s.dispatch(ctx, *inv)
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return nil, s.rpcError(resp.Err)
	}

	products, isList := resp.Products()
	if !isList {
		return &dto.CommandResult{Tool: inv.Tool, Intent: string(intent), Raw: resp.Result}, nil
	}

	label := ""
	switch {
	case inv.Tool == mcp.ToolListProducts:
		if kw := catalog.MatchNameKeyword(command); kw != "" {
			products = catalog.FilterByCriteria(products, catalog.FilterCriteria{NamePattern: kw})
			label = kw + " products"
		}
	case inv.Tool == mcp.ToolGetByCategory:
		if cat := stringParam(inv.Parameters, "category"); cat != "" {
			label = cat + " category"
		}
	case inv.Tool == mcp.ToolGetBySegment:
		if seg := stringParam(inv.Parameters, "segment"); seg != "" {
			label = seg + " segment"
		}
	}
	if label == "" {
		label = "total products"
	}

	count := len(products)
	return &dto.CommandResult{
		Tool:    inv.Tool,
		Intent:  string(intent),
		Count:   &count,
		Context: label,
		Message: fmt.Sprintf("Found %d %s", count, label),
	}, nil
}

func (s *commandService) handleGrouping(ctx context.Context, command string, intent router.Intent, inv *mcp.ToolInvocation) (*dto.CommandResult, error) {
	resp, err := s.dispatch(ctx, *inv)
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return nil, s.rpcError(resp.Err)
	}

	products, isList := resp.Products()
	if !isList {
		return &dto.CommandResult{Tool: inv.Tool, Intent: string(intent), Raw: resp.Result}, nil
	}

	// Buckets keep catalog discovery order.
	index := make(map[string]int)
	var groups []dto.CategoryGroup
	for _, p := range products {
		category := p.Category
		if category == "" {
			category = "Uncategorized"
		}
		i, seen := index[category]
		if !seen {
			i = len(groups)
			index[category] = i
			groups = append(groups, dto.CategoryGroup{Category: category})
		}
		groups[i].Products = append(groups[i].Products, p)
		groups[i].Count++
	}

	return &dto.CommandResult{
		Tool:   inv.Tool,
		Intent: string(intent),
		Groups: &dto.GroupingResult{
			TotalProducts:   len(products),
			TotalCategories: len(groups),
			Categories:      groups,
		},
		Message: fmt.Sprintf("Grouped %d products into %d categories", len(products), len(groups)),
	}, nil
}

func (s *commandService) handleDuplicates(ctx context.Context, command string, intent router.Intent) (*dto.CommandResult, error) {
	all, err := s.fetchAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	groups := catalog.IdentifyDuplicates(all)
	isCleanup := intent == router.IntentDuplicateCleanup

	if len(groups) == 0 {
		message := "No duplicate products found! All product names are unique."
		if isCleanup {
			message = "No duplicates found to clean up."
		}
		result := &dto.CommandResult{
			Tool:    mcp.ToolListProducts,
			Intent:  string(intent),
			Message: message,
		}
		if isCleanup {
			result.Cleanup = &dto.CleanupResult{Message: message}
		}
		return result, nil
	}

	recommendations, summary := catalog.RecommendCleanup(groups)

	if !isCleanup {
		return &dto.CommandResult{
			Tool:   mcp.ToolListProducts,
			Intent: string(intent),
			Duplicates: &dto.DuplicateAnalysisResult{
				Message:         fmt.Sprintf("Found %d duplicate product groups", summary.DuplicateGroups),
				Summary:         summary,
				Recommendations: recommendations,
			},
			Message: fmt.Sprintf("Found %d duplicate product groups", summary.DuplicateGroups),
		}, nil
	}

	var idsToDelete []string
	var deleted []catalog.Product
	var kept []catalog.Product
	for _, rec := range recommendations {
		kept = append(kept, rec.Keep)
		for _, p := range rec.Delete {
			idsToDelete = append(idsToDelete, p.Id)
			deleted = append(deleted, p)
		}
	}

	resp, err := s.dispatch(ctx, mcp.ToolInvocation{
		Tool:       mcp.ToolDeleteProducts,
		Parameters: map[string]interface{}{"ids": idsToDelete},
	})
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return nil, s.rpcError(resp.Err)
	}

	s.afterMutation(ctx, command, mcp.ToolDeleteProducts, len(idsToDelete))

	message := fmt.Sprintf("Successfully cleaned up %d duplicate products", len(idsToDelete))
	return &dto.CommandResult{
		Tool:    mcp.ToolDeleteProducts,
		Intent:  string(intent),
		Message: message,
		Cleanup: &dto.CleanupResult{
			Message:         message,
			DeletedCount:    len(idsToDelete),
			DuplicateGroups: summary.DuplicateGroups,
			DeletedProducts: deleted,
			KeptProducts:    kept,
		},
	}, nil
}

func (s *commandService) handleSingleUpdate(ctx context.Context, command string, intent router.Intent, inv *mcp.ToolInvocation) (*dto.CommandResult, error) {
	name := stringParam(inv.Parameters, "name")
	if name == "" {
		name = stringParam(inv.Parameters, "id")
	}
	if name == "" {
		if m := updateNameRe.FindStringSubmatch(command); m != nil {
			name = strings.TrimSpace(m[1])
		}
	}
	if name == "" {
		return nil, apperror.New(apperror.KindCriteriaUndetermined,
			"Could not extract product name from update command")
	}

	newPrice, hasPrice := catalog.ExtractTargetPrice(command)
	if !hasPrice {
		if p, ok := floatParam(inv.Parameters, "price"); ok {
			newPrice, hasPrice = p, true
		}
	}
	if !hasPrice {
		return nil, apperror.New(apperror.KindCriteriaUndetermined,
			"Could not extract price from update command")
	}

	all, err := s.fetchAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	target := catalog.ResolveProduct(name, all)
	if target == nil {
		return nil, apperror.Newf(apperror.KindEntityNotFound, "Product '%s' not found", name)
	}

	resp, err := s.dispatch(ctx, mcp.ToolInvocation{
		Tool: mcp.ToolUpdateProduct,
		Parameters: map[string]interface{}{
			"id":       target.Id,
			"name":     target.Name,
			"category": target.Category,
			"segment":  target.Segment,
			"price":    newPrice,
		},
	})
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return nil, s.rpcError(resp.Err)
	}

	s.afterMutation(ctx, command, mcp.ToolUpdateProduct, 1)

	return &dto.CommandResult{
		Tool:    mcp.ToolUpdateProduct,
		Intent:  string(intent),
		Message: fmt.Sprintf("Successfully updated '%s' price to %v", target.Name, newPrice),
		Updated: []dto.ProductUpdate{{
			Id:       target.Id,
			Name:     target.Name,
			OldPrice: target.Price,
			NewPrice: newPrice,
		}},
		UpdatedCount: 1,
	}, nil
}

func (s *commandService) handleBulkUpdate(ctx context.Context, command string, intent router.Intent) (*dto.CommandResult, error) {
	newPrice, hasPrice := catalog.ExtractTargetPrice(command)
	if !hasPrice {
		return nil, apperror.New(apperror.KindCriteriaUndetermined,
			"Could not determine new price from command")
	}

	criteria := catalog.ExtractCriteria(command)
	if criteria.IsEmpty() {
		return nil, apperror.New(apperror.KindCriteriaUndetermined,
			"Could not determine which products to update")
	}

	all, err := s.fetchAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	matched := catalog.FilterByCriteria(all, criteria)
	if len(matched) == 0 {
		return nil, apperror.Newf(apperror.KindNoMatch,
			"No products found matching criteria: %s", criteria.String())
	}

	payload := make([]map[string]interface{}, 0, len(matched))
	updates := make([]dto.ProductUpdate, 0, len(matched))
	for _, p := range matched {
		payload = append(payload, map[string]interface{}{
			"id":       p.Id,
			"name":     p.Name,
			"category": p.Category,
			"segment":  p.Segment,
			"price":    newPrice,
		})
		updates = append(updates, dto.ProductUpdate{
			Id:       p.Id,
			Name:     p.Name,
			OldPrice: p.Price,
			NewPrice: newPrice,
		})
	}

	resp, err := s.dispatch(ctx, mcp.ToolInvocation{
		Tool:       mcp.ToolUpdateProducts,
		Parameters: map[string]interface{}{"products": payload},
	})
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return nil, s.rpcError(resp.Err)
	}

	s.afterMutation(ctx, command, mcp.ToolUpdateProducts, len(matched))

	return &dto.CommandResult{
		Tool:         mcp.ToolUpdateProducts,
		Intent:       string(intent),
		Message:      fmt.Sprintf("Successfully updated %d products to price %v", len(matched), newPrice),
		Updated:      updates,
		UpdatedCount: len(matched),
	}, nil
}

func (s *commandService) handleSingleDelete(ctx context.Context, command string, intent router.Intent, inv *mcp.ToolInvocation) (*dto.CommandResult, error) {
	ref := stringParam(inv.Parameters, "id")
	if ref == "" {
		ref = stringParam(inv.Parameters, "name")
	}
	if ref == "" {
		if m := deleteNameRe.FindStringSubmatch(command); m != nil {
			ref = strings.TrimSpace(m[1])
		}
	}
	if ref == "" {
		return nil, apperror.New(apperror.KindCriteriaUndetermined,
			"Could not extract product name from delete command")
	}

	all, err := s.fetchAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	target := catalog.ResolveProduct(ref, all)
	if target == nil {
		return nil, apperror.Newf(apperror.KindEntityNotFound, "Product '%s' not found", ref)
	}

	resp, err := s.dispatch(ctx, mcp.ToolInvocation{
		Tool:       mcp.ToolDeleteProduct,
		Parameters: map[string]interface{}{"id": target.Id},
	})
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return nil, s.rpcError(resp.Err)
	}

	s.afterMutation(ctx, command, mcp.ToolDeleteProduct, 1)

	return &dto.CommandResult{
		Tool:    mcp.ToolDeleteProduct,
		Intent:  string(intent),
		Message: fmt.Sprintf("Successfully deleted '%s'", target.Name),
		Deleted: []catalog.Product{*target},
	}, nil
}

func (s *commandService) handleBulkDelete(ctx context.Context, command string, intent router.Intent) (*dto.CommandResult, error) {
	criteria := catalog.ExtractCriteria(command)
	if criteria.IsEmpty() {
		return nil, apperror.New(apperror.KindCriteriaUndetermined,
			"Could not determine which products to delete")
	}

	all, err := s.fetchAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	matched := catalog.FilterByCriteria(all, criteria)
	if len(matched) == 0 {
		return nil, apperror.Newf(apperror.KindNoMatch,
			"No products found matching criteria: %s", criteria.String())
	}

	ids := make([]string, 0, len(matched))
	for _, p := range matched {
		ids = append(ids, p.Id)
	}

	resp, err := s.dispatch(ctx, mcp.ToolInvocation{
		Tool:       mcp.ToolDeleteProducts,
		Parameters: map[string]interface{}{"ids": ids},
	})
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return nil, s.rpcError(resp.Err)
	}

	s.afterMutation(ctx, command, mcp.ToolDeleteProducts, len(matched))

	return &dto.CommandResult{
		Tool:    mcp.ToolDeleteProducts,
		Intent:  string(intent),
		Message: fmt.Sprintf("Successfully deleted %d products", len(matched)),
		Deleted: matched,
	}, nil
}

// --- Shared plumbing ---

func (s *commandService) dispatch(ctx context.Context, inv mcp.ToolInvocation) (*mcp.Response, error) {
	resp, err := s.dispatcher.Call(ctx, inv)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindBackend, "Catalog backend unavailable", err)
	}
	return resp, nil
}

func (s *commandService) fetchAllProducts(ctx context.Context) ([]catalog.Product, error) {
	resp, err := s.dispatch(ctx, mcp.ToolInvocation{Tool: mcp.ToolListProducts, Parameters: map[string]interface{}{}})
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return nil, s.rpcError(resp.Err)
	}
	products, ok := resp.Products()
	if !ok {
		return nil, apperror.New(apperror.KindBackend, "Catalog backend returned an unexpected product list shape")
	}
	return products, nil
}

func (s *commandService) rpcError(rpcErr *mcp.RPCError) error {
	if rpcErr.IsNotFound() {
		return apperror.Wrap(apperror.KindEntityNotFound, "Product not found", rpcErr)
	}
	return apperror.Wrap(apperror.KindBackend, "Catalog backend returned an error", rpcErr)
}

// afterMutation clears product-related cache entries and emits mutation
// events. Both are best effort; the mutation already succeeded.
func (s *commandService) afterMutation(ctx context.Context, command, tool string, affected int) {
	removed := s.cache.Invalidate()
	s.log.Info("command", "cache invalidated after mutation", map[string]interface{}{
		"tool":        tool,
		"removedKeys": removed,
	})

	if s.eventPub != nil {
		if err := s.eventPub.Publish(ctx, events.NewCatalogMutated(command, tool, affected)); err != nil {
			s.log.Warn("command", "failed to publish mutation event", map[string]interface{}{
				"tool":  tool,
				"error": err.Error(),
			})
		}
	}
}

func (s *commandService) audit(command string, result *dto.CommandResult, err error, start time.Time) {
	if s.publisher == nil {
		return
	}

	msg := &dto.CommandAuditMessage{
		ExecutionId: uuid.NewString(),
		Command:     command,
		Success:     err == nil,
		DurationMs:  time.Since(start).Milliseconds(),
		At:          time.Now(),
	}
	if result != nil {
		msg.Intent = result.Intent
		msg.Tool = result.Tool
		msg.Cached = result.Cached
	}
	if err != nil {
		msg.ErrorKind = string(apperror.KindOf(err))
	}

	if pubErr := s.publisher.PublishCommandAudit(msg); pubErr != nil {
		s.log.Warn("command", "failed to publish audit message", map[string]interface{}{
			"error": pubErr.Error(),
		})
	}
}

func stringParam(params map[string]interface{}, key string) string {
	if params == nil {
		return ""
	}
	if v, ok := params[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func floatParam(params map[string]interface{}, key string) (float64, bool) {
	if params == nil {
		return 0, false
	}
	switch v := params[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

func filterByNameKeyword(command string, products []catalog.Product) []catalog.Product {
	kw := catalog.MatchNameKeyword(command)
	if kw == "" {
		return products
	}
	return catalog.FilterByCriteria(products, catalog.FilterCriteria{NamePattern: kw})
}
