package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ramyastore/ramyastore-backend/pkg/enums"
	"github.com/ramyastore/ramyastore-backend/pkg/types"
)

// Order is the per-seller order produced from a checkout. A multi-seller
// cart fans out into one Order per seller, all pointing at the same
// PaymentOrder.
type Order struct {
	ID                     uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID                 uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	SellerID               uuid.UUID         `gorm:"column:seller_id;type:uuid;not null;index"`
	PaymentOrderID         *uuid.UUID        `gorm:"column:payment_order_id;type:uuid;index"`
	Status                 enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	TotalMRPCents          int               `gorm:"column:total_mrp_cents;not null"`
	TotalSellingPriceCents int               `gorm:"column:total_selling_price_cents;not null"`
	TotalItems             int               `gorm:"column:total_items;not null"`
	ShippingAddress        *types.Address    `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	Items                  []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	DeliveredAt            *time.Time        `gorm:"column:delivered_at"`
	CancelledAt            *time.Time        `gorm:"column:cancelled_at"`
	CreatedAt              time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
