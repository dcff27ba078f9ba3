package spotify

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"sync"
)

// PKCEStore holds the state -> code-verifier pairs for in-flight
// authorization attempts. Entries are one-shot: Take removes the entry,
// so a state token can complete the flow exactly once.
type PKCEStore struct {
	mutex     sync.Mutex
	verifiers map[string]string
}

func NewPKCEStore() *PKCEStore {
	return &PKCEStore{verifiers: make(map[string]string)}
}

// Begin generates a fresh state token and PKCE pair and remembers the
// verifier under the state. Returns the state and the challenge to embed
// in the authorize URL.
func (s *PKCEStore) Begin() (state string, challenge string, err error) {
	state, err = generateRandomString(16)
	if err != nil {
		return "", "", err
	}
	verifier, challenge, err := generateCodeChallenge()
	if err != nil {
		return "", "", err
	}

	s.mutex.Lock()
	s.verifiers[state] = verifier
	s.mutex.Unlock()

	return state, challenge, nil
}

// Take returns the verifier stored for state and deletes it. The second
// call with the same state reports not found, which covers replayed and
// forged callbacks alike.
func (s *PKCEStore) Take(state string) (string, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	verifier, found := s.verifiers[state]
	if found {
		delete(s.verifiers, state)
	}
	return verifier, found
}

// Pending reports how many authorization attempts are in flight.
func (s *PKCEStore) Pending() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.verifiers)
}

func generateRandomString(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf)[:length], nil
}

// generateCodeChallenge produces a PKCE verifier and its S256 challenge,
// both base64url encoded without padding.
func generateCodeChallenge() (verifier string, challenge string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	verifier = base64.RawURLEncoding.EncodeToString(buf)
	digest := sha256.Sum256([]byte(verifier))
	challenge = base64.RawURLEncoding.EncodeToString(digest[:])
	return verifier, challenge, nil
}
