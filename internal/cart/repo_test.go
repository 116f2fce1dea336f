package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ramyastore/ramyastore-backend/pkg/db/models"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	carts := `
CREATE TABLE IF NOT EXISTS carts (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE,
  coupon_code TEXT,
  coupon_price_cents INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	items := `
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  seller_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  mrp_cents INTEGER NOT NULL,
  selling_price_cents INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(carts).Error)
	require.NoError(t, db.Exec(items).Error)
	return db
}

func newCart(t *testing.T, db *gorm.DB, userID uuid.UUID, couponCode *string, couponPrice int) *models.Cart {
	t.Helper()

	cart := &models.Cart{
		ID:               uuid.New(),
		UserID:           userID,
		CouponCode:       couponCode,
		CouponPriceCents: couponPrice,
	}
	require.NoError(t, db.Create(cart).Error)

	item := &models.CartItem{
		ID:                uuid.New(),
		CartID:            cart.ID,
		ProductID:         uuid.New(),
		SellerID:          uuid.New(),
		Quantity:          2,
		MRPCents:          1500,
		SellingPriceCents: 1000,
	}
	require.NoError(t, db.Create(item).Error)
	return cart
}

func TestRepositoryFindByUserPreloadsItems(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New()
	newCart(t, db, userID, nil, 0)

	cart, err := repo.FindByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2000, cart.TotalSellingPriceCents())

	_, err = repo.FindByUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryResetCoupon(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New()
	code := "SAVE10"
	cart := newCart(t, db, userID, &code, 500)

	require.NoError(t, repo.ResetCoupon(context.Background(), cart.ID))

	reloaded, err := repo.FindByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.CouponCode)
	assert.Equal(t, 0, reloaded.CouponPriceCents)
}
