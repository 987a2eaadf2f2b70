package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestIsExpired_Boundary treats the expiration second itself as still fresh.
func TestIsExpired_Boundary(t *testing.T) {
	e := NewEntry("v", 0, 5, 0)

	require.False(t, e.IsExpired(4))
	require.False(t, e.IsExpired(5))
	require.True(t, e.IsExpired(6))
}

// TestIsOverHit_Cap evicts only once hits exceed the cap.
func TestIsOverHit_Cap(t *testing.T) {
	e := NewEntry("v", 0, 60, 2)

	e.Hit()
	e.Hit()
	require.False(t, e.IsOverHit(), "hits == max hits is still valid")

	e.Hit()
	require.True(t, e.IsOverHit())
}

// TestIsOverHit_Unlimited ignores hits when the cap is zero or negative.
func TestIsOverHit_Unlimited(t *testing.T) {
	for _, maxHits := range []int64{0, -1} {
		e := NewEntry("v", 0, 60, maxHits)
		for i := 0; i < 1000; i++ {
			e.Hit()
		}
		require.False(t, e.IsOverHit())
	}
}

// TestIsValid_EitherConditionInvalidates checks both eviction causes independently.
func TestIsValid_EitherConditionInvalidates(t *testing.T) {
	fresh := NewEntry("v", 0, 10, 1)
	require.True(t, fresh.IsValid(5))

	expired := NewEntry("v", 0, 10, 1)
	require.False(t, expired.IsValid(11))

	overHit := NewEntry("v", 0, 10, 1)
	overHit.Hit()
	overHit.Hit()
	require.False(t, overHit.IsValid(5))
}
