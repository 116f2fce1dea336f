package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart holds the user's pending items plus any applied coupon snapshot.
// CouponCode and CouponPriceCents are reset once the cart settles.
type Cart struct {
	ID               uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID           uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	CouponCode       *string    `gorm:"column:coupon_code"`
	CouponPriceCents int        `gorm:"column:coupon_price_cents;not null;default:0"`
	Items            []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TotalSellingPriceCents sums line selling prices across the cart.
func (c *Cart) TotalSellingPriceCents() int {
	total := 0
	for _, item := range c.Items {
		total += item.SellingPriceCents * item.Quantity
	}
	return total
}
