package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a seller listing. Prices are stored as integer cents.
type Product struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID          uuid.UUID `gorm:"column:seller_id;type:uuid;not null;index"`
	Title             string    `gorm:"column:title;not null"`
	Description       *string   `gorm:"column:description"`
	MRPCents          int       `gorm:"column:mrp_cents;not null"`
	SellingPriceCents int       `gorm:"column:selling_price_cents;not null"`
	Quantity          int       `gorm:"column:quantity;not null;default:0"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
