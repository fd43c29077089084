package service

import (
	"context"
	"encoding/json"
	"log"

	"catalog-command-be/internal/dto"
	"catalog-command-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IAuditService interface {
	Consume(ctx context.Context) error
}

// auditService drains the audit topic into an isolated log file, keeping
// the command trail out of the main application log.
type auditService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	auditLog  logger.ILogger
}

func NewAuditService(pubSub *gochannel.GoChannel, topicName string, auditLog logger.ILogger) IAuditService {
	return &auditService{
		pubSub:    pubSub,
		topicName: topicName,
		auditLog:  auditLog,
	}
}

func (as *auditService) Consume(ctx context.Context) error {
	messages, err := as.pubSub.Subscribe(ctx, as.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			as.processMessage(msg)
		}
	}()

	return nil
}

func (as *auditService) processMessage(msg *message.Message) {
	var payload dto.CommandAuditMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal audit message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	level := as.auditLog.Info
	if !payload.Success {
		level = as.auditLog.Warn
	}
	level("audit", "command processed", map[string]interface{}{
		"command":    payload.Command,
		"intent":     payload.Intent,
		"tool":       payload.Tool,
		"cached":     payload.Cached,
		"success":    payload.Success,
		"errorKind":  payload.ErrorKind,
		"durationMs": payload.DurationMs,
		"at":         payload.At,
	})

	msg.Ack()
}
