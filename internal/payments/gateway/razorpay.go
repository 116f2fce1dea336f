package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/ramyastore/ramyastore-backend/pkg/config"
	"github.com/ramyastore/ramyastore-backend/pkg/enums"
	pkgerrors "github.com/ramyastore/ramyastore-backend/pkg/errors"
)

const razorpayCapturedStatus = "captured"

type razorpayGateway struct {
	client      *razorpay.Client
	callbackURL string
	timeout     time.Duration
}

// NewRazorpay builds the payment-link gateway backed by Razorpay.
func NewRazorpay(cfg config.RazorpayConfig, gwCfg config.GatewayConfig) (Gateway, error) {
	keyID := strings.TrimSpace(cfg.KeyID)
	keySecret := strings.TrimSpace(cfg.KeySecret)
	if keyID == "" || keySecret == "" {
		return nil, fmt.Errorf("razorpay key id and secret are required")
	}
	return &razorpayGateway{
		client:      razorpay.NewClient(keyID, keySecret),
		callbackURL: gwCfg.CallbackURL,
		timeout:     gwCfg.CallTimeout,
	}, nil
}

func (g *razorpayGateway) Method() enums.PaymentMethod {
	return enums.PaymentMethodRazorpay
}

func (g *razorpayGateway) CreateLink(ctx context.Context, input CreateLinkInput) (*Link, error) {
	currency := input.Currency
	if currency == "" {
		currency = "INR"
	}

	data := map[string]interface{}{
		"amount":       input.AmountCents,
		"currency":     currency,
		"description":  input.Description,
		"reference_id": input.PaymentOrderID.String(),
		"customer": map[string]interface{}{
			"name":  input.CustomerName,
			"email": input.CustomerEmail,
		},
		"callback_url":    g.callbackURL,
		"callback_method": "get",
	}

	body, err := callWithTimeout(ctx, g.timeout, func() (map[string]interface{}, error) {
		return g.client.PaymentLink.Create(data, nil)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "razorpay payment link creation failed")
	}

	id, _ := body["id"].(string)
	shortURL, _ := body["short_url"].(string)
	if id == "" || shortURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "razorpay returned an incomplete payment link")
	}

	return &Link{ID: id, URL: shortURL}, nil
}

func (g *razorpayGateway) Confirm(ctx context.Context, input ConfirmInput) (bool, error) {
	if strings.TrimSpace(input.PaymentID) == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "payment id is required")
	}

	body, err := callWithTimeout(ctx, g.timeout, func() (map[string]interface{}, error) {
		return g.client.Payment.Fetch(input.PaymentID, nil, nil)
	})
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "razorpay payment lookup failed")
	}

	status, _ := body["status"].(string)
	return status == razorpayCapturedStatus, nil
}
