package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/ramyastore/ramyastore-backend/api/middleware"
	"github.com/ramyastore/ramyastore-backend/internal/settlement"
	"github.com/ramyastore/ramyastore-backend/pkg/db/models"
	"github.com/ramyastore/ramyastore-backend/pkg/enums"
	pkgerrors "github.com/ramyastore/ramyastore-backend/pkg/errors"
	"github.com/ramyastore/ramyastore-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

type stubSettlementService struct {
	checkoutResult *settlement.CheckoutResult
	checkoutErr    error
	checkoutInput  settlement.InitiateCheckoutInput

	confirmResult *settlement.ConfirmResult
	confirmErr    error
	confirmInput  settlement.ConfirmSettlementInput
}

func (s *stubSettlementService) InitiateCheckout(ctx context.Context, input settlement.InitiateCheckoutInput) (*settlement.CheckoutResult, error) {
	s.checkoutInput = input
	return s.checkoutResult, s.checkoutErr
}

func (s *stubSettlementService) ConfirmSettlement(ctx context.Context, input settlement.ConfirmSettlementInput) (*settlement.ConfirmResult, error) {
	s.confirmInput = input
	return s.confirmResult, s.confirmErr
}

func (s *stubSettlementService) CancelOrder(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func TestCheckoutReturnsPaymentLink(t *testing.T) {
	userID := uuid.New()
	svc := &stubSettlementService{
		checkoutResult: &settlement.CheckoutResult{
			PaymentOrderID: uuid.New(),
			PaymentLinkID:  "plink_123",
			PaymentLinkURL: "https://rzp.io/l/plink_123",
			AmountCents:    5500,
			Method:         enums.PaymentMethodRazorpay,
		},
	}
	handler := Checkout(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{"method":"razorpay"}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.checkoutInput.UserID != userID {
		t.Fatalf("user id not forwarded to service")
	}
	if svc.checkoutInput.Method != enums.PaymentMethodRazorpay {
		t.Fatalf("method not parsed, got %s", svc.checkoutInput.Method)
	}

	var envelope struct {
		Data settlement.CheckoutResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.PaymentLinkID != "plink_123" {
		t.Fatalf("unexpected link id %s", envelope.Data.PaymentLinkID)
	}
}

func TestCheckoutRejectsUnknownMethod(t *testing.T) {
	svc := &stubSettlementService{}
	handler := Checkout(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{"method":"cash"}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown method, got %d", resp.Code)
	}
}

func TestCheckoutRequiresAuthenticatedUser(t *testing.T) {
	handler := Checkout(&stubSettlementService{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{"method":"razorpay"}`))
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user context, got %d", resp.Code)
	}
}

func TestConfirmPaymentReturnsSameShapeForUncaptured(t *testing.T) {
	paymentOrderID := uuid.New()
	svc := &stubSettlementService{
		confirmResult: &settlement.ConfirmResult{PaymentOrderID: paymentOrderID, Settled: false},
	}
	handler := ConfirmPayment(svc, testLogger())

	body := `{"payment_id":"pay_1","payment_link_id":"plink_123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/confirm", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.confirmInput.PaymentLinkID != "plink_123" {
		t.Fatalf("link id not forwarded")
	}

	var envelope struct {
		Data confirmPaymentResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.PaymentOrderID != paymentOrderID {
		t.Fatalf("unexpected payment order id %s", envelope.Data.PaymentOrderID)
	}
	if envelope.Data.Settled {
		t.Fatalf("settled flag should be false for uncaptured payment")
	}
	if envelope.Data.Message != "Payment successful" {
		t.Fatalf("unexpected message %q", envelope.Data.Message)
	}
}

func TestConfirmPaymentRequiresLinkID(t *testing.T) {
	handler := ConfirmPayment(&stubSettlementService{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/confirm", strings.NewReader(`{"payment_id":"pay_1"}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing link id, got %d", resp.Code)
	}
}

func TestConfirmPaymentMapsUnknownLink(t *testing.T) {
	svc := &stubSettlementService{
		confirmErr: pkgerrors.New(pkgerrors.CodeNotFound, "payment order not found"),
	}
	handler := ConfirmPayment(svc, testLogger())

	body := `{"payment_id":"pay_1","payment_link_id":"plink_missing"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/confirm", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
