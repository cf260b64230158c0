package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(99), New(99)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Int64(), b.Int64())
	}
}

func TestSeed(t *testing.T) {
	assert.Equal(t, int64(5), Seed(5))
	assert.NotZero(t, Seed(0))
}

func TestSplit(t *testing.T) {
	seeds := Split(1, 4)
	assert.Len(t, seeds, 4)
	assert.Equal(t, seeds, Split(1, 4))
	assert.NotEqual(t, seeds[0], seeds[1])
}
