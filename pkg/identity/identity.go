package identity

import (
	"context"
	"time"
)

// contextKey is a type for context keys to avoid collisions.
type contextKey string

const key contextKey = "identity"

// Identity represents the authenticated principal for a request.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`

	// Token timestamps, zero when the identity was not decoded from a token
	IssuedAt  time.Time `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

// Equal reports whether both identities name the same principal.
// Token timestamps are ignored.
func (i Identity) Equal(other Identity) bool {
	return i.ID == other.ID && i.Username == other.Username
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(key).(*Identity)
	return id, ok && id != nil
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, key, id)
}
