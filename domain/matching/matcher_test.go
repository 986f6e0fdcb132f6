package matching

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	t.Run("computes euclidean distance", func(t *testing.T) {
		d, err := Distance([]float32{0, 0}, []float32{3, 4})
		require.NoError(t, err)
		assert.InDelta(t, 5.0, d, 1e-9)
	})

	t.Run("identical vectors have zero distance", func(t *testing.T) {
		d, err := Distance([]float32{1.5, -2.5, 3}, []float32{1.5, -2.5, 3})
		require.NoError(t, err)
		assert.Zero(t, d)
	})

	t.Run("rejects mismatched dimensions", func(t *testing.T) {
		_, err := Distance([]float32{1, 2, 3}, []float32{1, 2})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})
}

func TestMatch(t *testing.T) {
	idA := uuid.New()
	idB := uuid.New()

	t.Run("matches the first entry within threshold", func(t *testing.T) {
		roster := []RosterEntry{
			{EmployeeID: idA, Embedding: []float32{0, 0}},
			{EmployeeID: idB, Embedding: []float32{10, 10}},
		}

		id, ok, err := Match([]float32{0.1, 0.1}, roster, DefaultThreshold)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, idA, id)
	})

	t.Run("first passing entry wins over a closer later one", func(t *testing.T) {
		roster := []RosterEntry{
			{EmployeeID: idA, Embedding: []float32{0.5, 0}},
			{EmployeeID: idB, Embedding: []float32{0.1, 0}},
		}

		// Both pass, B is closer, but A comes first in roster order.
		id, ok, err := Match([]float32{0, 0}, roster, 0.6)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, idA, id)
	})

	t.Run("distance exactly at threshold matches", func(t *testing.T) {
		// 0.5 is exact in binary, so the boundary is not blurred by
		// float32 rounding.
		roster := []RosterEntry{
			{EmployeeID: idA, Embedding: []float32{0.5, 0}},
		}

		id, ok, err := Match([]float32{0, 0}, roster, 0.5)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, idA, id)
	})

	t.Run("distance just over threshold does not match", func(t *testing.T) {
		roster := []RosterEntry{
			{EmployeeID: idA, Embedding: []float32{float32(math.Nextafter32(0.5, 1)), 0}},
		}

		_, ok, err := Match([]float32{0, 0}, roster, 0.5)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("empty roster is no match, not an error", func(t *testing.T) {
		id, ok, err := Match([]float32{1, 2}, nil, DefaultThreshold)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, uuid.Nil, id)
	})

	t.Run("dimension mismatch fails the whole call", func(t *testing.T) {
		roster := []RosterEntry{
			{EmployeeID: idA, Embedding: []float32{0, 0, 0}},
		}

		_, _, err := Match([]float32{0, 0}, roster, DefaultThreshold)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})

	t.Run("mismatch later in the roster still fails", func(t *testing.T) {
		roster := []RosterEntry{
			{EmployeeID: idA, Embedding: []float32{5, 5}},
			{EmployeeID: idB, Embedding: []float32{0, 0, 0}},
		}

		_, _, err := Match([]float32{0, 0}, roster, DefaultThreshold)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})
}
