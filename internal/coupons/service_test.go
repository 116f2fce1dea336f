package coupons

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	cartsvc "github.com/ramyastore/ramyastore-backend/internal/cart"
	"github.com/ramyastore/ramyastore-backend/pkg/db/models"
	pkgerrors "github.com/ramyastore/ramyastore-backend/pkg/errors"
)

func activeCoupon(code string, percent int64, minOrder int) *models.Coupon {
	now := time.Now().UTC()
	return &models.Coupon{
		ID:              uuid.New(),
		Code:            code,
		DiscountPercent: decimal.NewFromInt(percent),
		MinOrderCents:   minOrder,
		ValidFrom:       now.Add(-time.Hour),
		ValidUntil:      now.Add(time.Hour),
		Active:          true,
	}
}

func cartWithTotal(userID uuid.UUID, totalCents int) *models.Cart {
	return &models.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items: []models.CartItem{
			{ID: uuid.New(), ProductID: uuid.New(), SellerID: uuid.New(), Quantity: 1, MRPCents: totalCents, SellingPriceCents: totalCents},
		},
	}
}

func newCouponService(t *testing.T, coupon *models.Coupon, cart *models.Cart) (Service, *stubCouponRepo, *stubCartRepo) {
	t.Helper()

	repo := &stubCouponRepo{coupon: coupon}
	carts := &stubCartRepo{cart: cart}
	service, err := NewService(repo, carts, stubTxRunner{})
	if err != nil {
		t.Fatalf("build coupon service: %v", err)
	}
	return service, repo, carts
}

func TestApplyDiscountsCart(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	service, repo, _ := newCouponService(t, activeCoupon("SAVE10", 10, 0), cartWithTotal(userID, 5000))

	cart, err := service.Apply(context.Background(), ApplyInput{UserID: userID, Code: "SAVE10"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cart.CouponCode == nil || *cart.CouponCode != "SAVE10" {
		t.Fatalf("coupon code not set on cart")
	}
	if cart.CouponPriceCents != 500 {
		t.Fatalf("discount mismatch: %d", cart.CouponPriceCents)
	}
	if len(repo.coupon.UsedBy) != 1 || repo.coupon.UsedBy[0] != userID.String() {
		t.Fatalf("user not recorded on coupon: %v", repo.coupon.UsedBy)
	}
}

func TestApplyRoundsFractionalDiscount(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	coupon := activeCoupon("SAVE", 0, 0)
	coupon.DiscountPercent = decimal.RequireFromString("12.5")
	service, _, _ := newCouponService(t, coupon, cartWithTotal(userID, 999))

	cart, err := service.Apply(context.Background(), ApplyInput{UserID: userID, Code: "SAVE"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	// 999 * 12.5% = 124.875, rounds to 125
	if cart.CouponPriceCents != 125 {
		t.Fatalf("discount mismatch: %d", cart.CouponPriceCents)
	}
}

func TestApplyRejectsSecondUse(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	coupon := activeCoupon("ONCE", 10, 0)
	coupon.UsedBy = []string{userID.String()}
	service, _, _ := newCouponService(t, coupon, cartWithTotal(userID, 5000))

	_, err := service.Apply(context.Background(), ApplyInput{UserID: userID, Code: "ONCE"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestApplyRejectsExpiredCoupon(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	coupon := activeCoupon("OLD", 10, 0)
	coupon.ValidUntil = time.Now().UTC().Add(-time.Minute)
	service, _, _ := newCouponService(t, coupon, cartWithTotal(userID, 5000))

	_, err := service.Apply(context.Background(), ApplyInput{UserID: userID, Code: "OLD"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestApplyRejectsBelowMinimum(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	service, _, _ := newCouponService(t, activeCoupon("BIG", 10, 10000), cartWithTotal(userID, 5000))

	_, err := service.Apply(context.Background(), ApplyInput{UserID: userID, Code: "BIG"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestApplyUnknownCode(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	service, _, _ := newCouponService(t, activeCoupon("REAL", 10, 0), cartWithTotal(userID, 5000))

	_, err := service.Apply(context.Background(), ApplyInput{UserID: userID, Code: "FAKE"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubCouponRepo struct {
	coupon *models.Coupon
}

func (s *stubCouponRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubCouponRepo) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	if s.coupon == nil || s.coupon.Code != code {
		return nil, gorm.ErrRecordNotFound
	}
	return s.coupon, nil
}

func (s *stubCouponRepo) FindByCodeForUpdate(ctx context.Context, code string) (*models.Coupon, error) {
	return s.FindByCode(ctx, code)
}

func (s *stubCouponRepo) Save(ctx context.Context, coupon *models.Coupon) error {
	s.coupon = coupon
	return nil
}

type stubCartRepo struct {
	cart *models.Cart
}

func (s *stubCartRepo) WithTx(tx *gorm.DB) cartsvc.Repository { return s }

func (s *stubCartRepo) FindByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if s.cart == nil || s.cart.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.cart, nil
}

func (s *stubCartRepo) Save(ctx context.Context, cart *models.Cart) error {
	s.cart = cart
	return nil
}

func (s *stubCartRepo) ResetCoupon(ctx context.Context, cartID uuid.UUID) error {
	if s.cart == nil || s.cart.ID != cartID {
		return gorm.ErrRecordNotFound
	}
	s.cart.CouponCode = nil
	s.cart.CouponPriceCents = 0
	return nil
}
