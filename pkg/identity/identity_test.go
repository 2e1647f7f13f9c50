package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextGetSet(t *testing.T) {
	ctx := context.Background()

	// Initially no identity
	id, ok := Get(ctx)
	assert.False(t, ok)
	assert.Nil(t, id)

	expected := &Identity{
		ID:       "5b0d1d8e-8f6a-4c59-9d7e-5e0c7d1f2a11",
		Username: "alice",
	}
	ctx = Set(ctx, expected)

	id, ok = Get(ctx)
	assert.True(t, ok)
	require.NotNil(t, id)
	assert.Equal(t, expected.ID, id.ID)
	assert.Equal(t, expected.Username, id.Username)
}

func TestGet_NilIdentity(t *testing.T) {
	ctx := Set(context.Background(), nil)

	id, ok := Get(ctx)
	assert.False(t, ok)
	assert.Nil(t, id)
}

func TestIdentity_Equal(t *testing.T) {
	now := time.Now()
	base := Identity{ID: "1", Username: "alice", IssuedAt: now, ExpiresAt: now.Add(time.Hour)}

	tests := []struct {
		name     string
		other    Identity
		expected bool
	}{
		{
			name:     "same principal without timestamps",
			other:    Identity{ID: "1", Username: "alice"},
			expected: true,
		},
		{
			name:     "different id",
			other:    Identity{ID: "2", Username: "alice"},
			expected: false,
		},
		{
			name:     "different username",
			other:    Identity{ID: "1", Username: "bob"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base.Equal(tt.other))
		})
	}
}
