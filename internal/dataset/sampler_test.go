package dataset

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampler_DrawIsDistinct(t *testing.T) {
	s, err := NewSampler(100, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	for trial := 0; trial < 20; trial++ {
		idx, err := s.Draw(30)
		require.NoError(t, err)
		require.Len(t, idx, 30)

		seen := make(map[int]bool)
		for _, i := range idx {
			assert.False(t, seen[i], "index %d repeated within one draw", i)
			assert.True(t, i >= 0 && i < 100)
			seen[i] = true
		}
	}
}

func TestSampler_FullPopulationDraws(t *testing.T) {
	const n = 50
	s, err := NewSampler(n, rand.New(rand.NewSource(2)))
	require.NoError(t, err)

	for trial := 0; trial < 5; trial++ {
		idx, err := s.Draw(n)
		require.NoError(t, err)

		seen := make(map[int]bool)
		for _, i := range idx {
			require.False(t, seen[i])
			seen[i] = true
		}
		assert.Len(t, seen, n)
		assert.Equal(t, 0, s.Remaining())
	}
}

func TestSampler_NoRepeatsBetweenRefills(t *testing.T) {
	const n = 10
	s, err := NewSampler(n, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	// 3 + 3 + 3 fit in one cycle; the fourth draw finds 1 left and refills.
	seen := make(map[int]bool)
	for d := 0; d < 3; d++ {
		idx, err := s.Draw(3)
		require.NoError(t, err)
		for _, i := range idx {
			require.False(t, seen[i], "index %d repeated before refill", i)
			seen[i] = true
		}
	}
	assert.Equal(t, 1, s.Remaining())

	_, err = s.Draw(3)
	require.NoError(t, err)
	assert.Equal(t, n-3, s.Remaining())
}

func TestSampler_InvalidBatch(t *testing.T) {
	s, err := NewSampler(5, rand.New(rand.NewSource(4)))
	require.NoError(t, err)

	for _, b := range []int{0, -1, 6} {
		_, err := s.Draw(b)
		assert.ErrorIs(t, err, ErrInvalidBatch)
	}
	assert.Equal(t, 5, s.Remaining(), "failed draws must not consume the pool")
}

func TestSampler_Reproducible(t *testing.T) {
	a, err := NewSampler(1000, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	b, err := NewSampler(1000, rand.New(rand.NewSource(9)))
	require.NoError(t, err)

	for trial := 0; trial < 10; trial++ {
		x, _ := a.Draw(64)
		y, _ := b.Draw(64)
		assert.Equal(t, x, y)
	}
}

func TestNewSampler_Invalid(t *testing.T) {
	_, err := NewSampler(0, rand.New(rand.NewSource(1)))
	assert.Error(t, err)

	_, err = NewSampler(3, nil)
	assert.Error(t, err)
}
