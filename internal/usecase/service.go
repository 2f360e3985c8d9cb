package usecase

import (
	"context"
	"fmt"
	"time"

	"healthhive/internal/apperr"
	"healthhive/internal/authz"
	"healthhive/internal/data/repository"
	"healthhive/internal/gateway"
	"healthhive/pkg/utils"

	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

type Service struct {
	Account AccountService
	Listing ListingService
	Order   OrderService
}

// Dependencies are the collaborators every workflow is built from.
type Dependencies struct {
	Repo     *repository.Repository
	Policy   *authz.Policy
	Payments gateway.PaymentGateway
	Events   gateway.EventPublisher
	Config   *utils.Config
	Log      *zap.Logger
}

func NewService(deps Dependencies) *Service {
	if deps.Events == nil {
		deps.Events = gateway.NopPublisher{}
	}
	return &Service{
		Account: NewAccountService(deps),
		Listing: NewListingService(deps),
		Order:   NewOrderService(deps),
	}
}

// events publishes domain events. Delivery failures are logged and never
// fail the operation that produced them.
type events struct {
	publisher gateway.EventPublisher
	log       *zap.Logger
}

func (e events) publish(ctx context.Context, eventType, key string, payload map[string]any) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	err := e.publisher.Publish(ctx, gateway.Event{
		Type:       eventType,
		Key:        key,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		e.log.Error("Event publish failed",
			zap.Error(err),
			zap.String("event", eventType),
			zap.String("key", key),
		)
	}
}

func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperr.Validation(utils.FormatValidationErrors(errs), errs)
	}
	return nil
}

func validID(kind, id string) error {
	if !utils.IsValidID(id) {
		return apperr.Validation(fmt.Sprintf("invalid %s ID", kind), map[string]string{"id": "Must be a valid UUID"})
	}
	return nil
}

func internalErr(log *zap.Logger, msg string, err error) error {
	log.Error(msg, zap.Error(err))
	return fmt.Errorf("%w: %s", apperr.ErrInternal, msg)
}
