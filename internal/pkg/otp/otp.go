package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Length is the fixed width of generated codes.
const Length = 6

var max = big.NewInt(1000000)

// New generates an unpredictable zero-padded 6-digit code.
func New() (string, error) {
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
