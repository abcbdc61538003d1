package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	name, err := NormalizeName("  Eggs ")
	require.NoError(t, err)
	assert.Equal(t, "Eggs", name)

	_, err = NormalizeName("   ")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NormalizeName("")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name     string
		current  State
		quantity int
		want     State
	}{
		{"creates absent record", Absent(), 3, Present(3)},
		{"creates with quantity one", Absent(), 1, Present(1)},
		{"accumulates onto existing", Present(2), 5, Present(7)},
		{"accumulates by one", Present(1), 1, Present(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := Add(tt.current, tt.quantity)
			require.NoError(t, err)
			assert.Equal(t, tt.want, next)
		})
	}
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	for _, quantity := range []int{0, -1, -42} {
		next, err := Add(Present(2), quantity)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Equal(t, Present(2), next, "failed Add must not change state")
	}
}

func TestIncrement(t *testing.T) {
	assert.Equal(t, Present(2), Increment(Present(1)))
	assert.Equal(t, Present(10), Increment(Present(9)))

	// Incrementing an absent key must not materialize a record.
	assert.Equal(t, Absent(), Increment(Absent()))
}

func TestDecrement(t *testing.T) {
	assert.Equal(t, Present(1), Decrement(Present(2)))
	assert.Equal(t, Present(41), Decrement(Present(42)))

	// Quantity 1 is the floor: the record is deleted, never stored at 0.
	assert.Equal(t, Absent(), Decrement(Present(1)))
	assert.Equal(t, Absent(), Decrement(Absent()))
}

func TestDecrementSequenceReachesAbsence(t *testing.T) {
	state := Present(3)
	state = Decrement(state)
	assert.Equal(t, Present(2), state)
	state = Decrement(state)
	assert.Equal(t, Present(1), state)
	state = Decrement(state)
	assert.Equal(t, Absent(), state)
}

func TestRemoveIsIdempotent(t *testing.T) {
	state := Remove(Present(7))
	assert.Equal(t, Absent(), state)
	assert.Equal(t, Absent(), Remove(state))
}

func TestAddThenDecrementRoundTrip(t *testing.T) {
	state, err := Add(Absent(), 1)
	require.NoError(t, err)
	assert.Equal(t, Absent(), Decrement(state))
}
