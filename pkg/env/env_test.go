package env

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("RAMYASTORE_ENV_TEST", "value")
	if got := Get("RAMYASTORE_ENV_TEST", "fallback"); got != "value" {
		t.Fatalf("expected set value, got %q", got)
	}

	if got := Get("RAMYASTORE_ENV_UNSET", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for unset key, got %q", got)
	}

	t.Setenv("RAMYASTORE_ENV_BLANK", "   ")
	if got := Get("RAMYASTORE_ENV_BLANK", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for blank value, got %q", got)
	}
}
