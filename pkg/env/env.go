// Package env has small helpers for reading process environment values
// outside the envconfig-managed config struct.
package env

import "os"

// Get returns the value of the environment variable or the fallback when
// the variable is unset or empty.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
