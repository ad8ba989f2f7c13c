package bulkorders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
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

// Service handles bulk order inquiries from intake to resolution. Statuses
// are a flat three-state selector; any state may move to any other.
type Service interface {
	Create(ctx context.Context, input CreateInquiryInput) (*models.BulkOrderInquiry, error)
	List(ctx context.Context, status *enums.BulkOrderStatus) ([]models.BulkOrderInquiry, error)
	SetStatus(ctx context.Context, input SetStatusInput) (*models.BulkOrderInquiry, error)
}

type service struct {
	repo *Repository
	tx   txRunner
	out  outboxPublisher
}

// CreateInquiryInput captures the storefront bulk order form.
type CreateInquiryInput struct {
	CustomerName        string  `json:"customer_name" validate:"required"`
	CustomerPhone       string  `json:"customer_phone" validate:"required"`
	ItemsDescription    string  `json:"items_description" validate:"required"`
	SpecialInstructions *string `json:"special_instructions"`
}

// SetStatusInput captures a staff status change on an inquiry.
type SetStatusInput struct {
	InquiryID   uuid.UUID
	Status      enums.BulkOrderStatus
	ActorUserID uuid.UUID
	ActorRole   enums.UserRole
}

// InquiryCreatedEvent is emitted when a new inquiry lands.
type InquiryCreatedEvent struct {
	InquiryID    uuid.UUID `json:"inquiry_id"`
	CustomerName string    `json:"customer_name"`
}

// InquiryStatusChangedEvent is emitted on staff status changes.
type InquiryStatusChangedEvent struct {
	InquiryID uuid.UUID             `json:"inquiry_id"`
	From      enums.BulkOrderStatus `json:"from"`
	To        enums.BulkOrderStatus `json:"to"`
}

// NewService builds a bulk orders service with the required dependencies.
func NewService(repo *Repository, tx txRunner, out outboxPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("bulk orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if out == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{repo: repo, tx: tx, out: out}, nil
}

func (s *service) Create(ctx context.Context, input CreateInquiryInput) (*models.BulkOrderInquiry, error) {
	if input.CustomerName == "" || input.CustomerPhone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing information")
	}
	if input.ItemsDescription == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "items description required")
	}

	inquiry := &models.BulkOrderInquiry{
		ID:                  uuid.New(),
		CustomerName:        input.CustomerName,
		CustomerPhone:       input.CustomerPhone,
		ItemsDescription:    input.ItemsDescription,
		SpecialInstructions: input.SpecialInstructions,
		Status:              enums.BulkOrderStatusNew,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, inquiry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create inquiry")
		}
		event := outbox.DomainEvent{
			EventType:     enums.EventBulkOrderCreated,
			AggregateType: enums.AggregateBulkOrder,
			AggregateID:   inquiry.ID,
			Version:       1,
			Data: InquiryCreatedEvent{
				InquiryID:    inquiry.ID,
				CustomerName: inquiry.CustomerName,
			},
		}
		return s.out.Emit(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}
	return inquiry, nil
}

func (s *service) List(ctx context.Context, status *enums.BulkOrderStatus) ([]models.BulkOrderInquiry, error) {
	if status != nil && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid inquiry status")
	}
	inquiries, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inquiries")
	}
	return inquiries, nil
}

func (s *service) SetStatus(ctx context.Context, input SetStatusInput) (*models.BulkOrderInquiry, error) {
	if input.InquiryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inquiry id required")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid inquiry status")
	}

	var updated *models.BulkOrderInquiry
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		inquiry, err := repo.FindByID(ctx, input.InquiryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "inquiry not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inquiry")
		}
		if inquiry.Status == input.Status {
			updated = inquiry
			return nil
		}

		if _, err := repo.UpdateStatus(ctx, inquiry.ID, input.Status); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update inquiry status")
		}

		var actor *outbox.ActorRef
		if input.ActorUserID != uuid.Nil {
			actor = &outbox.ActorRef{UserID: input.ActorUserID, Role: string(input.ActorRole)}
		}
		event := outbox.DomainEvent{
			EventType:     enums.EventBulkOrderStatusChanged,
			AggregateType: enums.AggregateBulkOrder,
			AggregateID:   inquiry.ID,
			Version:       1,
			Actor:         actor,
			Data: InquiryStatusChangedEvent{
				InquiryID: inquiry.ID,
				From:      inquiry.Status,
				To:        input.Status,
			},
		}
		if err := s.out.Emit(ctx, tx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit inquiry event")
		}

		inquiry.Status = input.Status
		updated = inquiry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
