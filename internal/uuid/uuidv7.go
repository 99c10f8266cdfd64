// Package uuid generates time-ordered identifiers for Projefa records.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New generates a new UUIDv7 string. UUIDv7 is time-ordered, which keeps
// primary keys roughly insertion-ordered in both backends.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Entropy exhaustion is the only failure mode; fall back to v4.
		return googleuuid.NewString()
	}
	return id.String()
}

// IsValid checks if a string is a valid UUID.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
