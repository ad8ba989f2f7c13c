package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/veermani/kitchen-backend/pkg/enums"
)

// OtherPayment is an append-only ledger entry for money collected outside
// of a regular order, advance payments and dues mostly.
type OtherPayment struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerName  string              `gorm:"column:customer_name;type:text;not null"`
	CustomerPhone *string             `gorm:"column:customer_phone;type:text"`
	Amount        decimal.Decimal     `gorm:"column:amount;type:numeric(10,2);not null"`
	Description   string              `gorm:"column:description;type:text;not null"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;type:text;not null"`
	RecordedBy    *uuid.UUID          `gorm:"column:recorded_by;type:uuid"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
}
