package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/mail"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	users      repository.UserRepository
	mailer     mail.Mailer
	logger     *zap.Logger
	cfg        config.MailConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, users repository.UserRepository, mailer mail.Mailer, logger *zap.Logger, cfg config.MailConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		users:      users,
		mailer:     mailer,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventProductOutOfStock, n.handleProductOutOfStock)
	n.dispatcher.Subscribe(events.EventProductPublished, n.handleProductPublished)
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventUserActivated, n.handleUserActivated)
	n.dispatcher.Subscribe(events.EventProductQuestionNew, n.handleQuestionAdded)
}

// handleProductOutOfStock mails the product owner. The send is fail-loud:
// an error here surfaces through the dispatcher to the triggering request.
func (n *NotificationService) handleProductOutOfStock(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ProductOutOfStockPayload)
	if !ok {
		n.logger.Warn("unexpected payload type", zap.String("event_type", string(event.Type)))
		return nil
	}

	owner, err := n.users.GetByID(ctx, payload.OwnerID)
	if err != nil {
		return apperrors.MapError(err)
	}

	n.logger.Info("ProductOutOfStock",
		zap.String("product_id", payload.ProductID),
		zap.String("owner_id", payload.OwnerID))

	subject := "Out of Stock"
	body := fmt.Sprintf(
		"Hi %s,\nYour product %q is out of stock. Please update the product quantity as soon as possible.",
		owner.FullName(), payload.ProductTitle,
	)
	if err := n.mailer.Send(ctx, []string{owner.Email}, subject, body); err != nil {
		return apperrors.NewMailDeliveryError(err)
	}
	return nil
}

func (n *NotificationService) handleProductPublished(_ context.Context, event events.Event) error {
	n.logger.Info("ProductPublished", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleUserRegistered(_ context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleUserActivated(_ context.Context, event events.Event) error {
	n.logger.Info("UserActivated", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleQuestionAdded(_ context.Context, event events.Event) error {
	n.logger.Info("ProductQuestionAdded", zap.Any("payload", event.Payload))
	return nil
}
