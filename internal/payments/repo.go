package payments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ramyastore/ramyastore-backend/pkg/db/models"
	"github.com/ramyastore/ramyastore-backend/pkg/enums"
)

// Repository manages persistence for payment orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, paymentOrder *models.PaymentOrder) (*models.PaymentOrder, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.PaymentOrder, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.PaymentOrder, error)
	FindByLinkID(ctx context.Context, linkID string) (*models.PaymentOrder, error)
	FindPendingLinkByUser(ctx context.Context, userID uuid.UUID) (*models.PaymentOrder, error)
	Save(ctx context.Context, paymentOrder *models.PaymentOrder) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a payments repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, paymentOrder *models.PaymentOrder) (*models.PaymentOrder, error) {
	if err := r.db.WithContext(ctx).Create(paymentOrder).Error; err != nil {
		return nil, err
	}
	return paymentOrder, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PaymentOrder, error) {
	var paymentOrder models.PaymentOrder
	err := r.db.WithContext(ctx).
		Preload("Orders").
		Where("id = ?", id).
		First(&paymentOrder).Error
	if err != nil {
		return nil, err
	}
	return &paymentOrder, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.PaymentOrder, error) {
	var paymentOrder models.PaymentOrder
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&paymentOrder).Error
	if err != nil {
		return nil, err
	}
	return &paymentOrder, nil
}

func (r *repository) FindByLinkID(ctx context.Context, linkID string) (*models.PaymentOrder, error) {
	var paymentOrder models.PaymentOrder
	err := r.db.WithContext(ctx).
		Preload("Orders").
		Where("payment_link_id = ?", linkID).
		First(&paymentOrder).Error
	if err != nil {
		return nil, err
	}
	return &paymentOrder, nil
}

// FindPendingLinkByUser returns the user's most recent payment order
// still waiting for a provider link, so a retried checkout can pick it
// up instead of creating a new one.
func (r *repository) FindPendingLinkByUser(ctx context.Context, userID uuid.UUID) (*models.PaymentOrder, error) {
	var paymentOrder models.PaymentOrder
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, enums.PaymentOrderStatusPendingLink).
		Order("created_at DESC").
		First(&paymentOrder).Error
	if err != nil {
		return nil, err
	}
	return &paymentOrder, nil
}

func (r *repository) Save(ctx context.Context, paymentOrder *models.PaymentOrder) error {
	return r.db.WithContext(ctx).Save(paymentOrder).Error
}
