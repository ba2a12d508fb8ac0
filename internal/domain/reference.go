package domain

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var referencePattern = regexp.MustCompile(`^[A-Z0-9]+-[0-9A-F]{6}$`)

// NewReference builds a human friendly booking code: prefix + 6 uppercase hex characters
// taken from a fresh random UUID.
func NewReference(prefix string) string {
	return NewReferenceFrom(prefix, uuid.New())
}

// NewReferenceFrom is NewReference with an explicit source UUID.
func NewReferenceFrom(prefix string, id uuid.UUID) string {
	hex := strings.ReplaceAll(id.String(), "-", "")
	return prefix + strings.ToUpper(hex[:ReferenceHexLength])
}

// IsValidReference checks the PREFIX-XXXXXX shape.
func IsValidReference(ref string) bool {
	return referencePattern.MatchString(ref)
}
