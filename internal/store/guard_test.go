package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGuard_RunsFunction(t *testing.T) {
	var g guard
	ran := false
	require.NoError(t, g.with(func() { ran = true }))
	require.True(t, ran)
	require.False(t, g.isPoisoned())
}

func TestGuard_PanicPoisonsAndPropagates(t *testing.T) {
	var g guard
	require.PanicsWithValue(t, "boom", func() {
		_ = g.with(func() { panic("boom") })
	})
	require.True(t, g.isPoisoned())

	ran := false
	err := g.with(func() { ran = true })
	require.ErrorIs(t, err, ErrLockPoisoned)
	require.False(t, ran)
}
