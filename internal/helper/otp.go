package helper

import (
	"crypto/rand"
	"math/big"
)

// GenerateOTPCode returns a numeric one-time code of the given length.
func GenerateOTPCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
