package models

import (
	"time"

	"github.com/google/uuid"
)

// SellerReport aggregates lifetime counters per seller. Rows are locked
// FOR UPDATE while settlement or cancellation mutates them.
type SellerReport struct {
	ID                 uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID           uuid.UUID `gorm:"column:seller_id;type:uuid;not null;uniqueIndex"`
	TotalOrders        int64     `gorm:"column:total_orders;not null;default:0"`
	TotalEarningsCents int64     `gorm:"column:total_earnings_cents;not null;default:0"`
	TotalSalesCount    int64     `gorm:"column:total_sales_count;not null;default:0"`
	TotalRefundsCents  int64     `gorm:"column:total_refunds_cents;not null;default:0"`
	CanceledOrders     int64     `gorm:"column:canceled_orders;not null;default:0"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
