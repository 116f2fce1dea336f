package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Coupon is a percentage discount code. UsedBy tracks which users have
// redeemed it so a code applies once per user.
type Coupon struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code            string          `gorm:"column:code;not null;uniqueIndex"`
	DiscountPercent decimal.Decimal `gorm:"column:discount_percent;type:numeric(5,2);not null"`
	MinOrderCents   int             `gorm:"column:min_order_cents;not null;default:0"`
	ValidFrom       time.Time       `gorm:"column:valid_from;not null"`
	ValidUntil      time.Time       `gorm:"column:valid_until;not null"`
	Active          bool            `gorm:"column:active;not null;default:true"`
	UsedBy          pq.StringArray  `gorm:"column:used_by;type:text[]"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
