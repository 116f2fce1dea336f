package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ramyastore/ramyastore-backend/internal/cart"
	"github.com/ramyastore/ramyastore-backend/internal/orders"
	"github.com/ramyastore/ramyastore-backend/internal/payments"
	"github.com/ramyastore/ramyastore-backend/internal/payments/gateway"
	"github.com/ramyastore/ramyastore-backend/internal/sellerreports"
	"github.com/ramyastore/ramyastore-backend/internal/transactions"
	"github.com/ramyastore/ramyastore-backend/internal/users"
	"github.com/ramyastore/ramyastore-backend/pkg/db/models"
	"github.com/ramyastore/ramyastore-backend/pkg/enums"
	pkgerrors "github.com/ramyastore/ramyastore-backend/pkg/errors"
	"github.com/ramyastore/ramyastore-backend/pkg/metrics"
	"github.com/ramyastore/ramyastore-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service orchestrates checkout, confirmation and cancellation across
// orders, payment orders, the transaction ledger and seller reports.
type Service interface {
	InitiateCheckout(ctx context.Context, input InitiateCheckoutInput) (*CheckoutResult, error)
	ConfirmSettlement(ctx context.Context, input ConfirmSettlementInput) (*ConfirmResult, error)
	CancelOrder(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error)
}

type service struct {
	tx            txRunner
	paymentOrders payments.Repository
	orders        orders.Service
	orderRepo     orders.Repository
	reports       sellerreports.Service
	ledger        transactions.Service
	carts         cart.Repository
	users         users.Repository
	gateways      *gateway.Registry
	metrics       *metrics.SettlementMetrics
}

// InitiateCheckoutInput starts a checkout for the user's current cart.
type InitiateCheckoutInput struct {
	UserID          uuid.UUID
	Method          enums.PaymentMethod
	ShippingAddress *types.Address
}

// CheckoutResult carries the issued payment link back to the client.
type CheckoutResult struct {
	PaymentOrderID uuid.UUID           `json:"payment_order_id"`
	PaymentLinkID  string              `json:"payment_link_id"`
	PaymentLinkURL string              `json:"payment_link_url"`
	AmountCents    int                 `json:"amount_cents"`
	Method         enums.PaymentMethod `json:"method"`
	OrderIDs       []uuid.UUID         `json:"order_ids"`
}

// ConfirmSettlementInput identifies the payment being confirmed.
type ConfirmSettlementInput struct {
	PaymentID     string
	PaymentLinkID string
}

// ConfirmResult reports the confirmation outcome. Settled is false when
// the provider did not capture the payment; AlreadySettled marks a
// duplicate confirmation that was absorbed without mutations.
type ConfirmResult struct {
	PaymentOrderID uuid.UUID `json:"payment_order_id"`
	Settled        bool      `json:"settled"`
	AlreadySettled bool      `json:"already_settled"`
}

// NewService builds a settlement service with the required dependencies.
func NewService(
	tx txRunner,
	paymentOrders payments.Repository,
	orderSvc orders.Service,
	orderRepo orders.Repository,
	reports sellerreports.Service,
	ledger transactions.Service,
	carts cart.Repository,
	userRepo users.Repository,
	gateways *gateway.Registry,
	settlementMetrics *metrics.SettlementMetrics,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if paymentOrders == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	if orderSvc == nil {
		return nil, fmt.Errorf("orders service required")
	}
	if orderRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if reports == nil {
		return nil, fmt.Errorf("seller reports service required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("transactions service required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if gateways == nil {
		return nil, fmt.Errorf("gateway registry required")
	}
	return &service{
		tx:            tx,
		paymentOrders: paymentOrders,
		orders:        orderSvc,
		orderRepo:     orderRepo,
		reports:       reports,
		ledger:        ledger,
		carts:         carts,
		users:         userRepo,
		gateways:      gateways,
		metrics:       settlementMetrics,
	}, nil
}

// InitiateCheckout fans the cart out into per-seller orders, creates the
// payment order, then asks the provider for a payment link. The gateway
// call happens after the storage transaction commits so a provider
// outage never leaves orders referencing a link that was never issued;
// the payment order stays in pending_link until the link lands.
func (s *service) InitiateCheckout(ctx context.Context, input InitiateCheckoutInput) (*CheckoutResult, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	gw, err := s.gateways.ForMethod(input.Method)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}

	// A checkout stranded by a link failure keeps its payment order and
	// orders; a retry re-issues the link onto them instead of fanning
	// the cart out a second time.
	stranded, err := s.paymentOrders.FindPendingLinkByUser(ctx, input.UserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking pending checkouts")
	}
	if stranded != nil {
		existing, err := s.orderRepo.ListByPaymentOrder(ctx, stranded.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
		}
		ids := make([]uuid.UUID, 0, len(existing))
		for _, order := range existing {
			ids = append(ids, order.ID)
		}
		stranded.Method = input.Method
		return s.issueLink(ctx, gw, stranded, user, ids)
	}

	var (
		paymentOrder *models.PaymentOrder
		orderIDs     []uuid.UUID
	)
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		userCart, err := s.carts.WithTx(tx).FindByUser(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
		}
		if len(userCart.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		amount := userCart.TotalSellingPriceCents() - userCart.CouponPriceCents
		if amount < 0 {
			amount = 0
		}

		paymentOrder = &models.PaymentOrder{
			UserID:      input.UserID,
			AmountCents: amount,
			Method:      input.Method,
			Status:      enums.PaymentOrderStatusPendingLink,
		}
		if _, err := s.paymentOrders.WithTx(tx).Create(ctx, paymentOrder); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating payment order")
		}

		created, err := s.orders.CreateFromCart(ctx, tx, orders.CreateFromCartInput{
			UserID:          input.UserID,
			PaymentOrderID:  &paymentOrder.ID,
			Cart:            userCart,
			ShippingAddress: input.ShippingAddress,
		})
		if err != nil {
			return err
		}
		for _, order := range created {
			orderIDs = append(orderIDs, order.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.issueLink(ctx, gw, paymentOrder, user, orderIDs)
}

// issueLink asks the provider for a payment link and promotes the
// payment order from pending_link to pending. On failure the row keeps
// its pending_link status so the checkout can be retried.
func (s *service) issueLink(ctx context.Context, gw gateway.Gateway, paymentOrder *models.PaymentOrder, user *models.User, orderIDs []uuid.UUID) (*CheckoutResult, error) {
	link, err := gw.CreateLink(ctx, gateway.CreateLinkInput{
		PaymentOrderID: paymentOrder.ID,
		AmountCents:    paymentOrder.AmountCents,
		CustomerName:   user.FullName,
		CustomerEmail:  user.Email,
		Description:    fmt.Sprintf("ramyastore order (%d items)", len(orderIDs)),
	})
	if err != nil {
		typed := pkgerrors.As(err)
		if typed == nil {
			typed = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "payment link creation failed")
		}
		return nil, typed.WithDetails(map[string]any{
			"payment_order_id": paymentOrder.ID,
			"step":             "create_link",
		})
	}

	paymentOrder.PaymentLinkID = &link.ID
	paymentOrder.PaymentLinkURL = &link.URL
	paymentOrder.Status = enums.PaymentOrderStatusPending
	if err := s.paymentOrders.Save(ctx, paymentOrder); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving payment link")
	}

	return &CheckoutResult{
		PaymentOrderID: paymentOrder.ID,
		PaymentLinkID:  link.ID,
		PaymentLinkURL: link.URL,
		AmountCents:    paymentOrder.AmountCents,
		Method:         paymentOrder.Method,
		OrderIDs:       orderIDs,
	}, nil
}

// ConfirmSettlement verifies the payment with the provider and, when
// captured, settles every order under the payment order in one
// transaction. Replays after settlement are absorbed as no-ops.
func (s *service) ConfirmSettlement(ctx context.Context, input ConfirmSettlementInput) (*ConfirmResult, error) {
	if input.PaymentLinkID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment link id is required")
	}

	paymentOrder, err := s.paymentOrders.FindByLinkID(ctx, input.PaymentLinkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading payment order")
	}

	method := string(paymentOrder.Method)

	if paymentOrder.SettledAt != nil {
		s.metrics.IncDuplicate(method)
		return &ConfirmResult{
			PaymentOrderID: paymentOrder.ID,
			Settled:        true,
			AlreadySettled: true,
		}, nil
	}

	gw, err := s.gateways.ForMethod(paymentOrder.Method)
	if err != nil {
		return nil, err
	}

	captured, err := gw.Confirm(ctx, gateway.ConfirmInput{
		PaymentID:     input.PaymentID,
		PaymentLinkID: input.PaymentLinkID,
	})
	if err != nil {
		s.metrics.IncFailure(method)
		return nil, err
	}
	if !captured {
		return &ConfirmResult{PaymentOrderID: paymentOrder.ID, Settled: false}, nil
	}

	start := time.Now()
	alreadySettled := false
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		locked, err := s.paymentOrders.WithTx(tx).FindByIDForUpdate(ctx, paymentOrder.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "locking payment order")
		}
		if locked.SettledAt != nil {
			alreadySettled = true
			return nil
		}

		settling, err := s.orderRepo.WithTx(tx).ListByPaymentOrder(ctx, locked.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
		}

		for i := range settling {
			order := &settling[i]
			// orders cancelled while the payment was in flight stay out
			// of the ledger; the rest of the payment order still settles
			if order.Status == enums.OrderStatusCancelled {
				continue
			}
			if _, err := s.ledger.Record(ctx, tx, order); err != nil {
				return err
			}
			if _, err := s.reports.ApplySettlement(ctx, tx, order); err != nil {
				return err
			}
			if _, err := s.orders.Transition(ctx, tx, order.ID, enums.OrderStatusPlaced); err != nil {
				return err
			}
		}

		userCart, err := s.carts.WithTx(tx).FindByUser(ctx, locked.UserID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
		}
		if userCart != nil {
			if err := s.carts.WithTx(tx).ResetCoupon(ctx, userCart.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resetting cart coupon")
			}
		}

		now := time.Now().UTC()
		locked.SettledAt = &now
		locked.Status = enums.PaymentOrderStatusSettled
		if input.PaymentID != "" {
			locked.PaymentID = &input.PaymentID
		}
		if err := s.paymentOrders.WithTx(tx).Save(ctx, locked); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marking payment order settled")
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(method)
		typed := pkgerrors.As(err)
		if typed == nil {
			typed = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "settlement failed")
		}
		return nil, typed.WithDetails(map[string]any{
			"payment_order_id": paymentOrder.ID,
			"step":             "settle",
		})
	}

	if alreadySettled {
		s.metrics.IncDuplicate(method)
	} else {
		s.metrics.IncSettled(method)
		s.metrics.ObserveDuration(method, time.Since(start))
	}

	return &ConfirmResult{
		PaymentOrderID: paymentOrder.ID,
		Settled:        true,
		AlreadySettled: alreadySettled,
	}, nil
}

// CancelOrder cancels one order and folds the cancellation into the
// seller's report inside a single transaction.
func (s *service) CancelOrder(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	var cancelled *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		order, err := s.orders.Cancel(ctx, tx, orderID, userID)
		if err != nil {
			return err
		}
		if _, err := s.reports.ApplyCancellation(ctx, tx, order); err != nil {
			return err
		}
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}
