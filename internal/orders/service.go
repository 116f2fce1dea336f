package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ramyastore/ramyastore-backend/pkg/db/models"
	"github.com/ramyastore/ramyastore-backend/pkg/enums"
	pkgerrors "github.com/ramyastore/ramyastore-backend/pkg/errors"
	"github.com/ramyastore/ramyastore-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines order lifecycle operations. Mutating methods that are
// part of a larger settlement flow take an explicit transaction handle
// so callers control atomicity.
type Service interface {
	CreateFromCart(ctx context.Context, tx *gorm.DB, input CreateFromCartInput) ([]models.Order, error)
	Cancel(ctx context.Context, tx *gorm.DB, orderID, userID uuid.UUID) (*models.Order, error)
	Transition(ctx context.Context, tx *gorm.DB, orderID uuid.UUID, target enums.OrderStatus) (*models.Order, error)
	UpdateStatusAsSeller(ctx context.Context, orderID, sellerID uuid.UUID, target enums.OrderStatus) (*models.Order, error)
	GetForUser(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// CreateFromCartInput carries the cart snapshot checkout fans out from.
type CreateFromCartInput struct {
	UserID          uuid.UUID
	PaymentOrderID  *uuid.UUID
	Cart            *models.Cart
	ShippingAddress *types.Address
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// CreateFromCart partitions the cart by seller and creates one pending
// order per seller, preserving first-seen seller ordering.
func (s *service) CreateFromCart(ctx context.Context, tx *gorm.DB, input CreateFromCartInput) ([]models.Order, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.Cart == nil || len(input.Cart.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	repo := s.repo.WithTx(tx)

	sellerOrder := make([]uuid.UUID, 0, len(input.Cart.Items))
	bySeller := make(map[uuid.UUID][]models.CartItem)
	for _, item := range input.Cart.Items {
		if _, seen := bySeller[item.SellerID]; !seen {
			sellerOrder = append(sellerOrder, item.SellerID)
		}
		bySeller[item.SellerID] = append(bySeller[item.SellerID], item)
	}

	orders := make([]models.Order, 0, len(sellerOrder))
	for _, sellerID := range sellerOrder {
		lines := bySeller[sellerID]

		totalMRP := 0
		totalSelling := 0
		for _, line := range lines {
			totalMRP += line.MRPCents * line.Quantity
			totalSelling += line.SellingPriceCents * line.Quantity
		}

		order := &models.Order{
			UserID:                 input.UserID,
			SellerID:               sellerID,
			PaymentOrderID:         input.PaymentOrderID,
			Status:                 enums.OrderStatusPending,
			TotalMRPCents:          totalMRP,
			TotalSellingPriceCents: totalSelling,
			TotalItems:             len(lines),
			ShippingAddress:        input.ShippingAddress,
		}
		created, err := repo.Create(ctx, order)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
		}

		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, models.OrderItem{
				OrderID:           created.ID,
				ProductID:         line.ProductID,
				SellerID:          line.SellerID,
				Quantity:          line.Quantity,
				MRPCents:          line.MRPCents,
				SellingPriceCents: line.SellingPriceCents,
			})
		}
		if err := repo.CreateItems(ctx, items); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order items")
		}
		created.Items = items

		orders = append(orders, *created)
	}

	return orders, nil
}

// Cancel moves the order to cancelled after ownership and state checks.
func (s *service) Cancel(ctx context.Context, tx *gorm.DB, orderID, userID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	repo := s.repo.WithTx(tx)

	order, err := repo.FindByIDForUpdate(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}

	if order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
	}
	if order.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order in status %q cannot be cancelled", order.Status))
	}

	now := time.Now().UTC()
	order.Status = enums.OrderStatusCancelled
	order.CancelledAt = &now
	if err := repo.Save(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving cancelled order")
	}
	return order, nil
}

// Transition applies the forward state machine to the order.
func (s *service) Transition(ctx context.Context, tx *gorm.DB, orderID uuid.UUID, target enums.OrderStatus) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", target))
	}

	repo := s.repo.WithTx(tx)

	order, err := repo.FindByIDForUpdate(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}

	if !order.Status.CanTransitionTo(target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order cannot move from %q to %q", order.Status, target))
	}

	now := time.Now().UTC()
	order.Status = target
	switch target {
	case enums.OrderStatusDelivered:
		order.DeliveredAt = &now
	case enums.OrderStatusCancelled:
		order.CancelledAt = &now
	}
	if err := repo.Save(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving order status")
	}
	return order, nil
}

// UpdateStatusAsSeller lets the owning seller advance the order.
func (s *service) UpdateStatusAsSeller(ctx context.Context, orderID, sellerID uuid.UUID, target enums.OrderStatus) (*models.Order, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller id is required")
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		order, err := s.repo.WithTx(tx).FindByIDForUpdate(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
		}
		if order.SellerID != sellerID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another seller")
		}
		updated, err = s.Transition(ctx, tx, orderID, target)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) GetForUser(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil || userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id and user id are required")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	if order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
	}
	return order, nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	return orders, nil
}
