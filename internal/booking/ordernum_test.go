package booking

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderNumberPattern = regexp.MustCompile(`^[A-Z]{3}[0-9]{5}$`)

func TestGenerateOrderNumberFormat(t *testing.T) {
	for i := 0; i < 500; i++ {
		number, err := GenerateOrderNumber()
		require.NoError(t, err)
		assert.Regexp(t, orderNumberPattern, number)
	}
}

func TestGenerateOrderNumberVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		number, err := GenerateOrderNumber()
		require.NoError(t, err)
		seen[number] = true
	}
	// 100 draws from a 1.7M space colliding down to a handful would mean
	// the generator is broken, not unlucky.
	assert.Greater(t, len(seen), 90)
}
