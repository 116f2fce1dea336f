package sellerreports

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ramyastore/ramyastore-backend/pkg/db/models"
)

// Repository manages persistence for seller reports.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindBySeller(ctx context.Context, sellerID uuid.UUID) (*models.SellerReport, error)
	FindBySellerForUpdate(ctx context.Context, sellerID uuid.UUID) (*models.SellerReport, error)
	Create(ctx context.Context, report *models.SellerReport) error
	Save(ctx context.Context, report *models.SellerReport) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a seller report repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindBySeller(ctx context.Context, sellerID uuid.UUID) (*models.SellerReport, error) {
	var report models.SellerReport
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *repository) FindBySellerForUpdate(ctx context.Context, sellerID uuid.UUID) (*models.SellerReport, error) {
	var report models.SellerReport
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("seller_id = ?", sellerID).
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *repository) Create(ctx context.Context, report *models.SellerReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *repository) Save(ctx context.Context, report *models.SellerReport) error {
	return r.db.WithContext(ctx).Save(report).Error
}
