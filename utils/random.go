package utils

import (
	"crypto/rand"
	"math/big"
)

const refAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// RandomRef returns a short uppercase reference suffix for document numbers.
func RandomRef(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(refAlphabet)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			b[i] = refAlphabet[0]
			continue
		}
		b[i] = refAlphabet[idx.Int64()]
	}
	return string(b)
}
