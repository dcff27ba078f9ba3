package spotify

import (
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateIsAcceptedExactlyOnce(t *testing.T) {
	store := NewPKCEStore()

	state, challenge, err := store.Begin()
	assert.NoError(t, err)
	assert.Len(t, state, 16)
	assert.NotEmpty(t, challenge)
	assert.Equal(t, 1, store.Pending())

	verifier, found := store.Take(state)
	assert.True(t, found)
	assert.NotEmpty(t, verifier)
	assert.Equal(t, 0, store.Pending())

	// Replay with the same state must fail.
	_, found = store.Take(state)
	assert.False(t, found)
}

func TestChallengeIsSHA256OfVerifier(t *testing.T) {
	store := NewPKCEStore()

	state, challenge, err := store.Begin()
	assert.NoError(t, err)

	verifier, found := store.Take(state)
	assert.True(t, found)

	digest := sha256.Sum256([]byte(verifier))
	assert.Equal(t, base64.RawURLEncoding.EncodeToString(digest[:]), challenge)
	// base64url without padding
	assert.NotContains(t, challenge, "=")
	assert.NotContains(t, challenge, "+")
	assert.NotContains(t, challenge, "/")
}

func TestStatesAreUnique(t *testing.T) {
	store := NewPKCEStore()
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		state, _, err := store.Begin()
		assert.NoError(t, err)
		assert.False(t, seen[state], "duplicate state %s", state)
		seen[state] = true
	}
}
