package coupons

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ramyastore/ramyastore-backend/internal/cart"
	"github.com/ramyastore/ramyastore-backend/pkg/db/models"
	pkgerrors "github.com/ramyastore/ramyastore-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service applies percentage coupons to carts. A code is single-use per
// user; redemption is tracked on the coupon row itself.
type Service interface {
	Apply(ctx context.Context, input ApplyInput) (*models.Cart, error)
}

type service struct {
	repo  Repository
	carts cart.Repository
	tx    txRunner
}

// ApplyInput identifies the coupon being applied to the user's cart.
type ApplyInput struct {
	UserID uuid.UUID
	Code   string
}

// NewService builds a coupon service with the required dependencies.
func NewService(repo Repository, carts cart.Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("coupons repository required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, carts: carts, tx: tx}, nil
}

func (s *service) Apply(ctx context.Context, input ApplyInput) (*models.Cart, error) {
	code := strings.TrimSpace(input.Code)
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}

	var updated *models.Cart
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		coupon, err := s.repo.WithTx(tx).FindByCodeForUpdate(ctx, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading coupon")
		}

		now := time.Now().UTC()
		if !coupon.Active || now.Before(coupon.ValidFrom) || now.After(coupon.ValidUntil) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "coupon is not currently valid")
		}

		userKey := input.UserID.String()
		for _, used := range coupon.UsedBy {
			if used == userKey {
				return pkgerrors.New(pkgerrors.CodeConflict, "coupon already used")
			}
		}

		userCart, err := s.carts.WithTx(tx).FindByUser(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
		}
		total := userCart.TotalSellingPriceCents()
		if total <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}
		if total < coupon.MinOrderCents {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart total below coupon minimum")
		}

		discount := decimal.NewFromInt(int64(total)).
			Mul(coupon.DiscountPercent).
			Div(decimal.NewFromInt(100)).
			Round(0).
			IntPart()

		userCart.CouponCode = &coupon.Code
		userCart.CouponPriceCents = int(discount)
		if err := s.carts.WithTx(tx).Save(ctx, userCart); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving cart")
		}

		coupon.UsedBy = append(coupon.UsedBy, userKey)
		if err := s.repo.WithTx(tx).Save(ctx, coupon); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving coupon")
		}

		updated = userCart
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
