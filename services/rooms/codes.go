package rooms

import (
	"crypto/rand"
	"math/big"
)

// Alphabet excludes ambiguous characters: 0, O, 1, I, L
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const codeLength = 6

// GenerateCode returns a random room code. With 30^6 possible codes the
// collision probability stays negligible for the expected number of
// concurrent rooms; the registry still re-checks on creation.
func GenerateCode() (string, error) {
	code := make([]byte, codeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code), nil
}
