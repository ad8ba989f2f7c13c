package payments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/veermani/kitchen-backend/pkg/db/models"
	"github.com/veermani/kitchen-backend/pkg/enums"
	pkgerrors "github.com/veermani/kitchen-backend/pkg/errors"
	"github.com/veermani/kitchen-backend/pkg/outbox"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service records ad-hoc payments collected outside the order flow.
type Service interface {
	Record(ctx context.Context, input RecordPaymentInput) (*models.OtherPayment, error)
	ListRecent(ctx context.Context, limit int) ([]models.OtherPayment, error)
}

type service struct {
	repo         *Repository
	tx           txRunner
	out          outboxPublisher
	defaultLimit int
}

// RecordPaymentInput captures the ledger entry form.
type RecordPaymentInput struct {
	CustomerName  string              `json:"customer_name" validate:"required"`
	CustomerPhone *string             `json:"customer_phone"`
	Amount        decimal.Decimal     `json:"amount" validate:"required"`
	Description   string              `json:"description" validate:"required"`
	PaymentMethod enums.PaymentMethod `json:"payment_method" validate:"required"`
	UPIConfirmed  bool                `json:"upi_confirmed"`
	ActorUserID   uuid.UUID           `json:"-"`
	ActorRole     enums.UserRole      `json:"-"`
}

// PaymentRecordedEvent is emitted for every ledger entry.
type PaymentRecordedEvent struct {
	PaymentID    uuid.UUID           `json:"payment_id"`
	CustomerName string              `json:"customer_name"`
	Amount       string              `json:"amount"`
	Method       enums.PaymentMethod `json:"method"`
}

// NewService builds a payments service. defaultLimit bounds ListRecent when
// callers pass zero.
func NewService(repo *Repository, tx txRunner, out outboxPublisher, defaultLimit int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if out == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	return &service{repo: repo, tx: tx, out: out, defaultLimit: defaultLimit}, nil
}

func (s *service) Record(ctx context.Context, input RecordPaymentInput) (*models.OtherPayment, error) {
	if input.CustomerName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}
	if input.Description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description required")
	}
	if input.Amount.Sign() <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if !input.PaymentMethod.IsSettled() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment method must be cash or upi")
	}
	if input.PaymentMethod == enums.PaymentMethodUPI && !input.UPIConfirmed {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "upi collection not confirmed")
	}

	payment := &models.OtherPayment{
		ID:            uuid.New(),
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		Amount:        input.Amount,
		Description:   input.Description,
		PaymentMethod: input.PaymentMethod,
	}
	if input.ActorUserID != uuid.Nil {
		actorID := input.ActorUserID
		payment.RecordedBy = &actorID
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, payment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record payment")
		}
		var actor *outbox.ActorRef
		if input.ActorUserID != uuid.Nil {
			actor = &outbox.ActorRef{UserID: input.ActorUserID, Role: string(input.ActorRole)}
		}
		event := outbox.DomainEvent{
			EventType:     enums.EventPaymentRecorded,
			AggregateType: enums.AggregateOtherPayment,
			AggregateID:   payment.ID,
			Version:       1,
			Actor:         actor,
			Data: PaymentRecordedEvent{
				PaymentID:    payment.ID,
				CustomerName: payment.CustomerName,
				Amount:       payment.Amount.StringFixed(2),
				Method:       payment.PaymentMethod,
			},
		}
		return s.out.Emit(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *service) ListRecent(ctx context.Context, limit int) ([]models.OtherPayment, error) {
	if limit <= 0 || limit > 100 {
		limit = s.defaultLimit
	}
	payments, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	return payments, nil
}
