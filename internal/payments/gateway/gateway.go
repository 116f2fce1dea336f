package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ramyastore/ramyastore-backend/pkg/enums"
	pkgerrors "github.com/ramyastore/ramyastore-backend/pkg/errors"
)

// CreateLinkInput carries everything a provider needs to issue a
// hosted payment link for one payment order.
type CreateLinkInput struct {
	PaymentOrderID uuid.UUID
	AmountCents    int
	Currency       string
	CustomerName   string
	CustomerEmail  string
	Description    string
}

// Link is the provider-issued payment link.
type Link struct {
	ID  string
	URL string
}

// ConfirmInput identifies the payment being verified against the provider.
type ConfirmInput struct {
	PaymentID     string
	PaymentLinkID string
}

// Gateway abstracts one payment provider. Confirm returns false (not an
// error) when the provider reports the payment as not captured.
type Gateway interface {
	Method() enums.PaymentMethod
	CreateLink(ctx context.Context, input CreateLinkInput) (*Link, error)
	Confirm(ctx context.Context, input ConfirmInput) (bool, error)
}

// Registry resolves gateways by payment method.
type Registry struct {
	gateways map[enums.PaymentMethod]Gateway
}

// NewRegistry indexes the provided gateways by method.
func NewRegistry(gateways ...Gateway) (*Registry, error) {
	indexed := make(map[enums.PaymentMethod]Gateway, len(gateways))
	for _, gw := range gateways {
		if gw == nil {
			continue
		}
		method := gw.Method()
		if !method.IsValid() {
			return nil, fmt.Errorf("gateway with invalid method %q", method)
		}
		if _, exists := indexed[method]; exists {
			return nil, fmt.Errorf("duplicate gateway for method %q", method)
		}
		indexed[method] = gw
	}
	if len(indexed) == 0 {
		return nil, fmt.Errorf("at least one gateway required")
	}
	return &Registry{gateways: indexed}, nil
}

// ForMethod returns the gateway registered for the method.
func (r *Registry) ForMethod(method enums.PaymentMethod) (Gateway, error) {
	if r == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "gateway registry not configured")
	}
	gw, ok := r.gateways[method]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported payment method %q", method))
	}
	return gw, nil
}

// callWithTimeout runs fn under the deadline, for SDK calls that do not
// accept a context themselves.
func callWithTimeout[T any](ctx context.Context, timeout time.Duration, fn func() (T, error)) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		value, err := fn()
		done <- outcome{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case out := <-done:
		return out.value, out.err
	}
}
