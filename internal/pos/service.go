package pos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veermani/kitchen-backend/internal/cart"
	"github.com/veermani/kitchen-backend/internal/checkout"
	"github.com/veermani/kitchen-backend/internal/orders"
	"github.com/veermani/kitchen-backend/pkg/db"
	"github.com/veermani/kitchen-backend/pkg/db/models"
	"github.com/veermani/kitchen-backend/pkg/enums"
	pkgerrors "github.com/veermani/kitchen-backend/pkg/errors"
	"github.com/veermani/kitchen-backend/pkg/logger"
	"github.com/veermani/kitchen-backend/pkg/metrics"
	"github.com/veermani/kitchen-backend/pkg/ordernum"
	"github.com/veermani/kitchen-backend/pkg/outbox"
)

const maxOrderNumberAttempts = 3

type cartAccess interface {
	Get(ctx context.Context, token string) (*cart.Cart, error)
	Clear(ctx context.Context, token string) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service finalizes counter sales from the staff working cart.
type Service interface {
	Finalize(ctx context.Context, sessionID string, input FinalizeInput) (*models.Order, error)
}

type service struct {
	carts cartAccess
	repo  *orders.Repository
	tx    txRunner
	out   outboxPublisher
	logg  *logger.Logger
	stats *metrics.ShopMetrics
	now   func() time.Time
}

// FinalizeInput captures the counter billing form. Payment is collected in
// person before the sale is recorded, so the order lands already completed.
type FinalizeInput struct {
	CustomerName  string              `json:"customer_name" validate:"required"`
	CustomerPhone string              `json:"customer_phone" validate:"required"`
	PaymentMethod enums.PaymentMethod `json:"payment_method" validate:"required"`
	UPIConfirmed  bool                `json:"upi_confirmed"`
	ActorUserID   uuid.UUID           `json:"-"`
	ActorRole     enums.UserRole      `json:"-"`
}

// NewService builds a POS service with the required dependencies.
func NewService(carts cartAccess, repo *orders.Repository, tx txRunner, out outboxPublisher, logg *logger.Logger, stats *metrics.ShopMetrics) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart access required")
	}
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if out == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{
		carts: carts,
		repo:  repo,
		tx:    tx,
		out:   out,
		logg:  logg,
		stats: stats,
		now:   time.Now,
	}, nil
}

func validateInput(input FinalizeInput) error {
	if input.CustomerName == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}
	if input.CustomerPhone == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer phone required")
	}
	if !input.PaymentMethod.IsSettled() {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment method must be cash or upi")
	}
	if input.PaymentMethod == enums.PaymentMethodUPI && !input.UPIConfirmed {
		return pkgerrors.New(pkgerrors.CodeValidation, "upi collection not confirmed")
	}
	return nil
}

func (s *service) Finalize(ctx context.Context, sessionID string, input FinalizeInput) (*models.Order, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	current, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if current.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	order := &models.Order{
		Type:            enums.OrderTypeCounter,
		Status:          enums.OrderStatusCompleted,
		PaymentMethod:   input.PaymentMethod,
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		FulfillmentType: enums.FulfillmentTypeTakeAway,
		CustomPacking:   false,
		Items:           current.Snapshot(),
		TotalAmount:     current.TotalAmount(),
	}

	if err := s.persist(ctx, order, input); err != nil {
		return nil, err
	}
	s.stats.IncOrderCreated(string(enums.OrderTypeCounter))
	s.stats.IncOrderSettled(string(input.PaymentMethod))

	if err := s.carts.Clear(ctx, sessionID); err != nil && s.logg != nil {
		logCtx := s.logg.WithOrderNumber(ctx, order.OrderNumber)
		s.logg.Warn(logCtx, fmt.Sprintf("pos cart clear failed after sale: %v", err))
	}
	return order, nil
}

func (s *service) persist(ctx context.Context, order *models.Order, input FinalizeInput) error {
	var lastErr error
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		order.ID = uuid.New()
		order.OrderNumber = ordernum.Generate(s.now())

		err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.repo.WithTx(tx)
			if err := repo.Create(ctx, order); err != nil {
				return err
			}
			event := outbox.DomainEvent{
				EventType:     enums.EventOrderCreated,
				AggregateType: enums.AggregateOrder,
				AggregateID:   order.ID,
				Version:       1,
				Actor:         &outbox.ActorRef{UserID: input.ActorUserID, Role: string(input.ActorRole)},
				Data: checkout.OrderCreatedEvent{
					OrderID:     order.ID,
					OrderNumber: order.OrderNumber,
					Type:        order.Type,
					TotalAmount: order.TotalAmount.StringFixed(2),
					ItemCount:   len(order.Items),
				},
			}
			return s.out.Emit(ctx, tx, event)
		})
		if err == nil {
			return nil
		}
		if db.IsUniqueViolation(err, "order_number") {
			lastErr = err
			continue
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, lastErr, "order number collision")
}
