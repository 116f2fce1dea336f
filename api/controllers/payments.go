package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ramyastore/ramyastore-backend/api/responses"
	"github.com/ramyastore/ramyastore-backend/api/validators"
	"github.com/ramyastore/ramyastore-backend/internal/settlement"
	"github.com/ramyastore/ramyastore-backend/pkg/enums"
	pkgerrors "github.com/ramyastore/ramyastore-backend/pkg/errors"
	"github.com/ramyastore/ramyastore-backend/pkg/logger"
	"github.com/ramyastore/ramyastore-backend/pkg/types"
)

// Checkout turns the user's cart into per-seller orders and returns the
// provider payment link.
func Checkout(svc settlement.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settlement service unavailable"))
			return
		}

		userID, err := userIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.Method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		result, err := svc.InitiateCheckout(r.Context(), settlement.InitiateCheckoutInput{
			UserID:          userID,
			Method:          method,
			ShippingAddress: payload.ShippingAddress,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ConfirmPayment verifies a payment with its provider and settles the
// orders behind it. The response shape is the same whether the payment
// was captured, already settled, or not captured at all.
func ConfirmPayment(svc settlement.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settlement service unavailable"))
			return
		}

		var payload confirmPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ConfirmSettlement(r.Context(), settlement.ConfirmSettlementInput{
			PaymentID:     payload.PaymentID,
			PaymentLinkID: payload.PaymentLinkID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, confirmPaymentResponse{
			Message:        "Payment successful",
			PaymentOrderID: result.PaymentOrderID,
			Settled:        result.Settled,
			AlreadySettled: result.AlreadySettled,
		})
	}
}

type checkoutRequest struct {
	Method          string         `json:"method" validate:"required"`
	ShippingAddress *types.Address `json:"shipping_address,omitempty"`
}

type confirmPaymentRequest struct {
	PaymentID     string `json:"payment_id"`
	PaymentLinkID string `json:"payment_link_id" validate:"required"`
}

type confirmPaymentResponse struct {
	Message        string    `json:"message"`
	PaymentOrderID uuid.UUID `json:"payment_order_id"`
	Settled        bool      `json:"settled"`
	AlreadySettled bool      `json:"already_settled"`
}
