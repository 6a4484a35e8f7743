package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/suggestion-box/internal/config"
	"github.com/spec-kit/suggestion-box/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventSuggestionCreated, n.handleSuggestionCreated)
	n.dispatcher.Subscribe(events.EventSuggestionStatusChanged, n.handleSuggestionStatusChanged)
	n.dispatcher.Subscribe(events.EventVoteSessionStarted, n.handleVoteSessionChanged)
	n.dispatcher.Subscribe(events.EventVoteSessionEnded, n.handleVoteSessionChanged)
	n.dispatcher.Subscribe(events.EventVoteCast, n.handleVoteCast)
	n.dispatcher.Subscribe(events.EventRoadmapItemCreated, n.handleRoadmapItemCreated)
}

func (n *NotificationService) handleSuggestionCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("SuggestionCreated", zap.String("suggestion_id", event.SuggestionID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleSuggestionStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("SuggestionStatusChanged", zap.String("suggestion_id", event.SuggestionID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleVoteSessionChanged(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type), zap.String("suggestion_id", event.SuggestionID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleVoteCast(_ context.Context, event events.Event) error {
	n.logger.Debug("VoteCast", zap.String("suggestion_id", event.SuggestionID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleRoadmapItemCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("RoadmapItemCreated", zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("suggestion_id", event.SuggestionID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("suggestion_id", event.SuggestionID),
		zap.String("event_type", string(event.Type)))
}
