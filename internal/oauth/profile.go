package oauth

import (
	"crypto/rand"
	"encoding/base64"
)

// Profile is the provider-agnostic identity returned by an OAuth exchange.
// ID is the provider's subject identifier. Email is empty when the provider
// did not grant or verify one.
type Profile struct {
	ID      string
	Email   string
	Name    string
	Picture string
}

// RandState generates the random state value carried through the OAuth
// redirect round-trip.
func RandState() string {
	b := make([]byte, 32)

	// rand.Read never returns an error
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
