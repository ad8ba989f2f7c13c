package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veermani/kitchen-backend/internal/cart"
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

// Unique collisions on the 4-digit suffix are rare; a couple of regenerated
// numbers is plenty before giving up.
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

// Service turns a storefront cart into a persisted online order.
type Service interface {
	Checkout(ctx context.Context, token string, input CheckoutInput) (*CheckoutResult, error)
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

// CheckoutInput carries the customer-facing checkout form.
type CheckoutInput struct {
	CustomerName        string                `json:"customer_name" validate:"required"`
	CustomerPhone       string                `json:"customer_phone" validate:"required"`
	FulfillmentType     enums.FulfillmentType `json:"fulfillment_type" validate:"required"`
	PickupDate          *string               `json:"pickup_date"`
	PickupTime          *string               `json:"pickup_time"`
	SpecialInstructions *string               `json:"special_instructions"`
}

// CheckoutResult reports the created order. CartCleared is false when the
// order committed but the cart delete failed; the order still stands.
type CheckoutResult struct {
	Order       *models.Order `json:"order"`
	CartCleared bool          `json:"cart_cleared"`
}

// OrderCreatedEvent is emitted inside the checkout transaction.
type OrderCreatedEvent struct {
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	Type        enums.OrderType `json:"type"`
	TotalAmount string          `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
}

// NewService builds a checkout service with the required dependencies.
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

func validateInput(input CheckoutInput) error {
	if input.CustomerName == "" || input.CustomerPhone == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing information")
	}
	if !input.FulfillmentType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid fulfillment type")
	}
	if input.FulfillmentType == enums.FulfillmentTypeTakeAway {
		if input.PickupDate == nil || *input.PickupDate == "" ||
			input.PickupTime == nil || *input.PickupTime == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "missing pickup details")
		}
	}
	return nil
}

func (s *service) Checkout(ctx context.Context, token string, input CheckoutInput) (*CheckoutResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	current, err := s.carts.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if current.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	order := &models.Order{
		Type:                enums.OrderTypeOnline,
		Status:              enums.OrderStatusReceived,
		PaymentMethod:       enums.PaymentMethodPending,
		CustomerName:        input.CustomerName,
		CustomerPhone:       input.CustomerPhone,
		FulfillmentType:     input.FulfillmentType,
		PickupDate:          input.PickupDate,
		PickupTime:          input.PickupTime,
		CustomPacking:       current.CustomPacking,
		SpecialInstructions: input.SpecialInstructions,
		Items:               current.Snapshot(),
		TotalAmount:         current.TotalAmount(),
	}

	if err := s.persist(ctx, order); err != nil {
		return nil, err
	}
	s.stats.IncOrderCreated(string(enums.OrderTypeOnline))

	result := &CheckoutResult{Order: order, CartCleared: true}
	if err := s.carts.Clear(ctx, token); err != nil {
		result.CartCleared = false
		if s.logg != nil {
			logCtx := s.logg.WithOrderNumber(ctx, order.OrderNumber)
			s.logg.Warn(logCtx, fmt.Sprintf("cart clear failed after checkout: %v", err))
		}
	}
	return result, nil
}

func (s *service) persist(ctx context.Context, order *models.Order) error {
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
				Data: OrderCreatedEvent{
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
