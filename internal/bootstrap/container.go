package bootstrap

import (
	"log"
	"time"

	"catalog-command-be/internal/config"
	"catalog-command-be/internal/controller"
	"catalog-command-be/internal/pkg/logger"
	"catalog-command-be/internal/service"
	"catalog-command-be/pkg/ai/classifier"
	respcache "catalog-command-be/pkg/cache"
	"catalog-command-be/pkg/llm/factory"
	"catalog-command-be/pkg/mcp"

	pktNats "catalog-command-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const commandAuditTopic = "COMMAND_AUDIT"

type Container struct {
	// Controllers
	CommandController controller.ICommandController

	// Background Services (Exposed for main.go to run)
	AuditService service.IAuditService
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL(cfg),
		cfg.Ai.LLMAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Catalog backend client + tool schema cache
	mcpClient := mcp.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.AuthToken)
	schemaCache := mcp.NewSchemaCache(mcpClient)

	// NATS (best effort; pipeline runs without the outward bus)
	var eventPub service.EventPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventPub = natsPub
	}

	// Response cache
	responseCache := respcache.NewResponseCache(time.Duration(cfg.Cache.ResponseTTLSeconds) * time.Second)

	// 4. Services
	intentClassifier := classifier.NewClassifier(llmProvider, schemaCache)

	publisherService := service.NewPublisherService(commandAuditTopic, pubSub)

	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)
	auditService := service.NewAuditService(pubSub, commandAuditTopic, auditLogger)

	commandService := service.NewCommandService(
		mcpClient,
		intentClassifier,
		responseCache,
		sysLogger,
		publisherService,
		eventPub,
	)

	// 5. Controllers
	return &Container{
		CommandController: controller.NewCommandController(commandService),
		AuditService:      auditService,
	}
}

func llmBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMBaseURL != "" {
		return cfg.Ai.LLMBaseURL
	}
	if cfg.Ai.LLMProvider == "ollama" {
		return cfg.Ai.OllamaBaseURL
	}
	return ""
}
