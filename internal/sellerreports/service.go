package sellerreports

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ramyastore/ramyastore-backend/pkg/db/models"
	pkgerrors "github.com/ramyastore/ramyastore-backend/pkg/errors"
)

// Service maintains the per-seller lifetime counters. Mutating methods
// require the caller's transaction handle; the underlying row is locked
// FOR UPDATE so concurrent settlements for one seller serialize.
type Service interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, sellerID uuid.UUID) (*models.SellerReport, error)
	ApplySettlement(ctx context.Context, tx *gorm.DB, order *models.Order) (*models.SellerReport, error)
	ApplyCancellation(ctx context.Context, tx *gorm.DB, order *models.Order) (*models.SellerReport, error)
	GetBySeller(ctx context.Context, sellerID uuid.UUID) (*models.SellerReport, error)
}

type service struct {
	repo Repository
}

// NewService wires a seller report service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("seller report repository required")
	}
	return &service{repo: repo}, nil
}

// GetOrCreate returns the locked report for the seller, creating a row
// with zero counters on first settlement.
func (s *service) GetOrCreate(ctx context.Context, tx *gorm.DB, sellerID uuid.UUID) (*models.SellerReport, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller id is required")
	}

	repo := s.repo.WithTx(tx)

	report, err := repo.FindBySellerForUpdate(ctx, sellerID)
	if err == nil {
		return report, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading seller report")
	}

	report = &models.SellerReport{SellerID: sellerID}
	if err := repo.Create(ctx, report); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating seller report")
	}
	return report, nil
}

// ApplySettlement folds one settled order into the seller's counters.
func (s *service) ApplySettlement(ctx context.Context, tx *gorm.DB, order *models.Order) (*models.SellerReport, error) {
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order is required")
	}

	report, err := s.GetOrCreate(ctx, tx, order.SellerID)
	if err != nil {
		return nil, err
	}

	report.TotalOrders++
	report.TotalEarningsCents += int64(order.TotalSellingPriceCents)
	report.TotalSalesCount += int64(order.TotalItems)

	if err := s.repo.WithTx(tx).Save(ctx, report); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving seller report")
	}
	return report, nil
}

// ApplyCancellation records a cancelled order. Earnings already counted
// for the order are left untouched; the refund total carries the value.
func (s *service) ApplyCancellation(ctx context.Context, tx *gorm.DB, order *models.Order) (*models.SellerReport, error) {
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order is required")
	}

	report, err := s.GetOrCreate(ctx, tx, order.SellerID)
	if err != nil {
		return nil, err
	}

	report.CanceledOrders++
	report.TotalRefundsCents += int64(order.TotalSellingPriceCents)

	if err := s.repo.WithTx(tx).Save(ctx, report); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving seller report")
	}
	return report, nil
}

func (s *service) GetBySeller(ctx context.Context, sellerID uuid.UUID) (*models.SellerReport, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller id is required")
	}

	report, err := s.repo.FindBySeller(ctx, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.SellerReport{SellerID: sellerID}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading seller report")
	}
	return report, nil
}
