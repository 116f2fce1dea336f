package env

import (
	"os"
	"strings"
)

// Get reads an environment variable, treating unset and blank values
// as absent so callers always receive a usable value.
func Get(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
