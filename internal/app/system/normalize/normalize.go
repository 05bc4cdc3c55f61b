// Package normalize provides the canonical forms used when comparing and
// storing request input.
package normalize

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Email trims surrounding whitespace. Case is preserved: the identity
// provider's spelling of the address is the key users are stored under.
func Email(s string) string {
	return strings.TrimSpace(s)
}

// Name trims surrounding whitespace and preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Status trims and lowercases a club status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Role trims a role name. Role names are camelCase ("clubManager"), so case
// is preserved and matching is exact.
func Role(s string) string {
	return strings.TrimSpace(s)
}

// Currency trims and lowercases an ISO 4217 currency code.
func Currency(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ObjectID parses a trimmed hex ObjectID. ok is false for empty or
// malformed input.
func ObjectID(s string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
