package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ramyastore/ramyastore-backend/pkg/enums"
	pkgerrors "github.com/ramyastore/ramyastore-backend/pkg/errors"
)

type fakeGateway struct {
	method enums.PaymentMethod
}

func (f fakeGateway) Method() enums.PaymentMethod { return f.method }

func (fakeGateway) CreateLink(ctx context.Context, input CreateLinkInput) (*Link, error) {
	return &Link{ID: "link", URL: "https://example.com/link"}, nil
}

func (fakeGateway) Confirm(ctx context.Context, input ConfirmInput) (bool, error) {
	return true, nil
}

func TestRegistryResolvesByMethod(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(
		fakeGateway{method: enums.PaymentMethodRazorpay},
		fakeGateway{method: enums.PaymentMethodStripe},
	)
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}

	gw, err := registry.ForMethod(enums.PaymentMethodStripe)
	if err != nil {
		t.Fatalf("for method: %v", err)
	}
	if gw.Method() != enums.PaymentMethodStripe {
		t.Fatalf("resolved wrong gateway: %s", gw.Method())
	}
}

func TestRegistryRejectsUnknownMethod(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(fakeGateway{method: enums.PaymentMethodRazorpay})
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}

	_, err = registry.ForMethod(enums.PaymentMethodStripe)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry(
		fakeGateway{method: enums.PaymentMethodRazorpay},
		fakeGateway{method: enums.PaymentMethodRazorpay},
	)
	if err == nil {
		t.Fatalf("expected error for duplicate gateways")
	}
}

func TestRegistryRequiresAGateway(t *testing.T) {
	t.Parallel()

	if _, err := NewRegistry(); err == nil {
		t.Fatalf("expected error for empty registry")
	}
}

func TestCallWithTimeoutReturnsValue(t *testing.T) {
	t.Parallel()

	value, err := callWithTimeout(context.Background(), time.Second, func() (string, error) {
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "ok" {
		t.Fatalf("value mismatch: %s", value)
	}
}

func TestCallWithTimeoutPropagatesError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("provider down")
	_, err := callWithTimeout(context.Background(), time.Second, func() (string, error) {
		return "", wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestCallWithTimeoutExpires(t *testing.T) {
	t.Parallel()

	done := make(chan struct{})
	_, err := callWithTimeout(context.Background(), 10*time.Millisecond, func() (string, error) {
		<-done
		return "late", nil
	})
	close(done)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
