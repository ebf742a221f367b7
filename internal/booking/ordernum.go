package booking

import (
	"crypto/rand"
	"math/big"
)

const (
	orderNumberLetters = 3
	orderNumberDigits  = 5
)

// GenerateOrderNumber returns a candidate order number of 3 uppercase
// letters followed by 5 digits, e.g. "KQZ03174". Uniqueness is not
// guaranteed here; the caller inserts under the unique constraint and
// retries on collision.
func GenerateOrderNumber() (string, error) {
	buf := make([]byte, 0, orderNumberLetters+orderNumberDigits)

	for i := 0; i < orderNumberLetters; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(26))
		if err != nil {
			return "", err
		}
		buf = append(buf, byte('A'+n.Int64()))
	}
	for i := 0; i < orderNumberDigits; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		buf = append(buf, byte('0'+n.Int64()))
	}

	return string(buf), nil
}
