package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one product line inside a cart. Seller id is denormalized
// so checkout can partition lines without loading products.
type CartItem struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID            uuid.UUID `gorm:"column:cart_id;type:uuid;not null;index"`
	ProductID         uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	SellerID          uuid.UUID `gorm:"column:seller_id;type:uuid;not null"`
	Quantity          int       `gorm:"column:quantity;not null;default:1"`
	MRPCents          int       `gorm:"column:mrp_cents;not null"`
	SellingPriceCents int       `gorm:"column:selling_price_cents;not null"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
