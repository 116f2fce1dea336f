package controllers

import (
	"net/http"

	"github.com/ramyastore/ramyastore-backend/api/responses"
	"github.com/ramyastore/ramyastore-backend/api/validators"
	cartsvc "github.com/ramyastore/ramyastore-backend/internal/cart"
	"github.com/ramyastore/ramyastore-backend/internal/coupons"
	"github.com/ramyastore/ramyastore-backend/pkg/logger"
)

// CartFetch returns the caller's cart with its items.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.GetForUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}

// CouponApply applies a coupon code to the caller's cart.
func CouponApply(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload couponApplyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.Apply(r.Context(), coupons.ApplyInput{
			UserID: userID,
			Code:   payload.Code,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}

type couponApplyRequest struct {
	Code string `json:"code" validate:"required,min=3,max=64"`
}
