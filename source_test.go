package quickcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceReplaysFromSeed(t *testing.T) {
	a := NewSource(42)
	b := NewSource(42)

	for i := 0; i < 1000; i++ {
		assert.Equal(t, a.Int63(), b.Int63())
	}

	x, err := a.UniformInt(-50, 50)
	require.NoError(t, err)
	y, err := b.UniformInt(-50, 50)
	require.NoError(t, err)
	assert.Equal(t, x, y)
	assert.Equal(t, a.Float64(), b.Float64())
	assert.Equal(t, a.UniformLength(17), b.UniformLength(17))
}

func TestSourceSeedReported(t *testing.T) {
	assert.Equal(t, int64(7), NewSource(7).Seed())
}

func TestUniformIntStaysInRange(t *testing.T) {
	src := NewSource(1)
	for i := 0; i < 2000; i++ {
		n, err := src.UniformInt(-3, 12)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, int64(-3))
		assert.LessOrEqual(t, n, int64(12))
	}
}

func TestUniformIntSingleton(t *testing.T) {
	src := NewSource(1)
	n, err := src.UniformInt(9, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)
}

func TestUniformIntEmptyRange(t *testing.T) {
	src := NewSource(1)
	_, err := src.UniformInt(1, 0)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestUniformLengthBounds(t *testing.T) {
	src := NewSource(3)
	seenZero, seenMax := false, false
	for i := 0; i < 5000; i++ {
		n := src.UniformLength(4)
		assert.GreaterOrEqual(t, n, 0)
		assert.LessOrEqual(t, n, 4)
		seenZero = seenZero || n == 0
		seenMax = seenMax || n == 4
	}
	assert.True(t, seenZero, "length 0 never drawn")
	assert.True(t, seenMax, "max length never drawn")

	assert.Equal(t, 0, src.UniformLength(0))
	assert.Equal(t, 0, src.UniformLength(-5))
}
