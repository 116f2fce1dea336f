package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ramyastore/ramyastore-backend/pkg/enums"
)

// PaymentOrder is one checkout attempt. AmountCents is fixed when the
// row is created and never recomputed from the orders afterwards.
// SettledAt doubles as the idempotency marker for confirmations.
type PaymentOrder struct {
	ID             uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID                `gorm:"column:user_id;type:uuid;not null;index"`
	AmountCents    int                      `gorm:"column:amount_cents;not null"`
	Method         enums.PaymentMethod      `gorm:"column:method;type:text;not null"`
	Status         enums.PaymentOrderStatus `gorm:"column:status;type:text;not null;default:'pending_link'"`
	PaymentID      *string                  `gorm:"column:payment_id"`
	PaymentLinkID  *string                  `gorm:"column:payment_link_id;uniqueIndex"`
	PaymentLinkURL *string                  `gorm:"column:payment_link_url"`
	SettledAt      *time.Time               `gorm:"column:settled_at"`
	Orders         []Order                  `gorm:"foreignKey:PaymentOrderID"`
	CreatedAt      time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
