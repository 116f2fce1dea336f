package enums

import "fmt"

// PaymentOrderStatus tracks one checkout attempt's payment progress.
type PaymentOrderStatus string

const (
	// PaymentOrderStatusPendingLink means the row exists but no gateway link was issued yet.
	PaymentOrderStatusPendingLink PaymentOrderStatus = "pending_link"
	PaymentOrderStatusPending     PaymentOrderStatus = "pending"
	PaymentOrderStatusSettled     PaymentOrderStatus = "settled"
	PaymentOrderStatusFailed      PaymentOrderStatus = "failed"
)

var validPaymentOrderStatuses = []PaymentOrderStatus{
	PaymentOrderStatusPendingLink,
	PaymentOrderStatusPending,
	PaymentOrderStatusSettled,
	PaymentOrderStatusFailed,
}

// String implements fmt.Stringer.
func (p PaymentOrderStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentOrderStatus.
func (p PaymentOrderStatus) IsValid() bool {
	for _, candidate := range validPaymentOrderStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentOrderStatus converts raw input into a PaymentOrderStatus.
func ParsePaymentOrderStatus(value string) (PaymentOrderStatus, error) {
	for _, candidate := range validPaymentOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment order status %q", value)
}
