package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/veermani/kitchen-backend/pkg/enums"
	"github.com/veermani/kitchen-backend/pkg/types"
)

// Order is a persisted sale with an immutable item snapshot. Items are
// copied from the cart at checkout and never re-priced afterwards.
type Order struct {
	ID                  uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber         string                `gorm:"column:order_number;type:text;not null;uniqueIndex"`
	Type                enums.OrderType       `gorm:"column:type;type:text;not null"`
	Status              enums.OrderStatus     `gorm:"column:status;type:text;not null;default:'received'"`
	PaymentMethod       enums.PaymentMethod   `gorm:"column:payment_method;type:text;not null;default:'pending'"`
	CustomerName        string                `gorm:"column:customer_name;type:text;not null"`
	CustomerPhone       string                `gorm:"column:customer_phone;type:text;not null"`
	FulfillmentType     enums.FulfillmentType `gorm:"column:fulfillment_type;type:text;not null"`
	PickupDate          *string               `gorm:"column:pickup_date;type:text"`
	PickupTime          *string               `gorm:"column:pickup_time;type:text"`
	CustomPacking       bool                  `gorm:"column:custom_packing;not null;default:false"`
	SpecialInstructions *string               `gorm:"column:special_instructions;type:text"`
	Items               types.OrderItems      `gorm:"column:items;type:jsonb;not null"`
	TotalAmount         decimal.Decimal       `gorm:"column:total_amount;type:numeric(10,2);not null"`
	CreatedAt           time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
