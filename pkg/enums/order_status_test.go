package enums

import "testing"

func TestOrderStatusForwardChain(t *testing.T) {
	chain := []OrderStatus{
		OrderStatusPending,
		OrderStatusPlaced,
		OrderStatusConfirmed,
		OrderStatusShipped,
		OrderStatusDelivered,
	}
	for i := 0; i < len(chain)-1; i++ {
		if !chain[i].CanTransitionTo(chain[i+1]) {
			t.Fatalf("%s should transition to %s", chain[i], chain[i+1])
		}
	}

	// skipping a step is never allowed
	if OrderStatusPlaced.CanTransitionTo(OrderStatusShipped) {
		t.Fatalf("placed should not jump to shipped")
	}
	if OrderStatusConfirmed.CanTransitionTo(OrderStatusPlaced) {
		t.Fatalf("backward transition should be rejected")
	}
}

func TestOrderStatusCancellation(t *testing.T) {
	for _, status := range []OrderStatus{
		OrderStatusPending,
		OrderStatusPlaced,
		OrderStatusConfirmed,
		OrderStatusShipped,
	} {
		if !status.CanTransitionTo(OrderStatusCancelled) {
			t.Fatalf("%s should allow cancellation", status)
		}
	}

	if OrderStatusDelivered.CanTransitionTo(OrderStatusCancelled) {
		t.Fatalf("delivered is terminal")
	}
	if OrderStatusCancelled.CanTransitionTo(OrderStatusPlaced) {
		t.Fatalf("cancelled is terminal")
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	terminal := map[OrderStatus]bool{
		OrderStatusPending:   false,
		OrderStatusPlaced:    false,
		OrderStatusConfirmed: false,
		OrderStatusShipped:   false,
		OrderStatusDelivered: true,
		OrderStatusCancelled: true,
	}
	for status, want := range terminal {
		if status.IsTerminal() != want {
			t.Fatalf("%s terminal mismatch", status)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("shipped")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if status != OrderStatusShipped {
		t.Fatalf("unexpected status %s", status)
	}

	if _, err := ParseOrderStatus("teleported"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}
