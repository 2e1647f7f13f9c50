// Package credential hashes and verifies user passwords with bcrypt.
package credential

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the bcrypt work factor used when none is configured.
	DefaultCost = 10

	// MaxPasswordLength is the largest input bcrypt accepts, in bytes.
	MaxPasswordLength = 72
)

// fallbackDummyHash is a cost 10 bcrypt hash Burn compares against if a
// dummy of the configured cost cannot be generated.
const fallbackDummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

var generateHash = bcrypt.GenerateFromPassword

// Hasher hashes and verifies passwords at a fixed cost.
// It is safe for concurrent use.
type Hasher struct {
	cost int

	dummyOnce sync.Once
	dummy     []byte
}

// NewHasher returns a Hasher using cost, or DefaultCost when cost is zero.
// Costs outside bcrypt's range are clamped.
func NewHasher(cost int) *Hasher {
	switch {
	case cost == 0:
		cost = DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &Hasher{cost: cost}
}

// Cost returns the bcrypt work factor.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash returns a salted bcrypt hash of plaintext. Two calls with the same
// input return different hashes.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches stored. A malformed stored hash
// is a mismatch.
func (h *Hasher) Verify(plaintext, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext)) == nil
}

// Burn performs a comparison against a throwaway hash of the same cost.
// Call it when there is no stored hash to check, so the caller spends the
// same time as a real mismatch.
func (h *Hasher) Burn(plaintext string) {
	h.dummyOnce.Do(func() {
		dummy, err := generateHash([]byte("shiplog-dummy-password"), h.cost)
		if err != nil {
			dummy = []byte(fallbackDummyHash)
		}
		h.dummy = dummy
	})
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(plaintext))
}
