// Package id generates record identifiers.
package id

import (
	"fmt"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ReviewPrefix marks review identifiers, e.g. "rev-V1StGXR8_Z5jdHi6B-myT".
const ReviewPrefix = "rev"

// NewUUID returns a random (v4) UUID string, used for books and tags.
func NewUUID() string {
	return uuid.NewString()
}

// Generate returns prefix-<nanoid>. It fails only when the system cannot
// supply enough randomness.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// IsUUID reports whether s is a UUID in canonical 8-4-4-4-12 form.
func IsUUID(s string) bool {
	return len(s) == 36 && uuid.Validate(s) == nil
}
