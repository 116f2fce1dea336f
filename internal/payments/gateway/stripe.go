package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/checkout/session"

	"github.com/ramyastore/ramyastore-backend/pkg/config"
	"github.com/ramyastore/ramyastore-backend/pkg/enums"
	pkgerrors "github.com/ramyastore/ramyastore-backend/pkg/errors"
)

type stripeGateway struct {
	successURL string
	cancelURL  string
	timeout    time.Duration
}

// NewStripe builds the hosted-checkout gateway backed by Stripe. The
// global API key is set once here, matching the SDK's package-level API.
func NewStripe(cfg config.StripeConfig, gwCfg config.GatewayConfig) (Gateway, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("stripe api key is required")
	}
	stripe.Key = apiKey

	return &stripeGateway{
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
		timeout:    gwCfg.CallTimeout,
	}, nil
}

func (g *stripeGateway) Method() enums.PaymentMethod {
	return enums.PaymentMethodStripe
}

func (g *stripeGateway) CreateLink(ctx context.Context, input CreateLinkInput) (*Link, error) {
	currency := strings.ToLower(input.Currency)
	if currency == "" {
		currency = "inr"
	}

	description := input.Description
	if description == "" {
		description = "ramyastore order"
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(g.successURL),
		CancelURL:         stripe.String(g.cancelURL),
		CustomerEmail:     stripe.String(input.CustomerEmail),
		ClientReferenceID: stripe.String(input.PaymentOrderID.String()),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currency),
					UnitAmount: stripe.Int64(int64(input.AmountCents)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(description),
					},
				},
			},
		},
	}
	params.Context = ctx

	created, err := callWithTimeout(ctx, g.timeout, func() (*stripe.CheckoutSession, error) {
		return session.New(params)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "stripe checkout session creation failed")
	}
	if created.ID == "" || created.URL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "stripe returned an incomplete checkout session")
	}

	return &Link{ID: created.ID, URL: created.URL}, nil
}

func (g *stripeGateway) Confirm(ctx context.Context, input ConfirmInput) (bool, error) {
	if strings.TrimSpace(input.PaymentLinkID) == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "payment link id is required")
	}

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	found, err := callWithTimeout(ctx, g.timeout, func() (*stripe.CheckoutSession, error) {
		return session.Get(input.PaymentLinkID, params)
	})
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "stripe checkout session lookup failed")
	}

	return found.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid, nil
}
