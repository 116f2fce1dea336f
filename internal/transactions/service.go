package transactions

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ramyastore/ramyastore-backend/pkg/db/models"
	pkgerrors "github.com/ramyastore/ramyastore-backend/pkg/errors"
)

// Service records the immutable settlement ledger. One transaction per
// order; the unique order_id index backs that up at the storage level.
type Service interface {
	Record(ctx context.Context, tx *gorm.DB, order *models.Order) (*models.Transaction, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Transaction, error)
}

type service struct {
	repo Repository
}

// NewService wires a transactions service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("transactions repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Record(ctx context.Context, tx *gorm.DB, order *models.Order) (*models.Transaction, error) {
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order is required")
	}
	if order.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}

	transaction := &models.Transaction{
		OrderID:     order.ID,
		SellerID:    order.SellerID,
		UserID:      order.UserID,
		AmountCents: order.TotalSellingPriceCents,
	}
	if err := s.repo.WithTx(tx).Create(ctx, transaction); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "recording transaction")
	}
	return transaction, nil
}

func (s *service) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Transaction, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller id is required")
	}
	transactions, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing transactions")
	}
	return transactions, nil
}
