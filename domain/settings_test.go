package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCardVariantCycle(t *testing.T) {
	require.Equal(t, CardVariantCompact, CardVariantFull.Next())
	require.Equal(t, CardVariantMinimal, CardVariantCompact.Next())
	require.Equal(t, CardVariantFull, CardVariantMinimal.Next())

	// Unknown values reset to the default.
	require.Equal(t, CardVariantFull, CardVariant("BROKEN").Next())
}

func TestCardVariantValidity(t *testing.T) {
	require.True(t, CardVariantFull.IsValid())
	require.True(t, CardVariantCompact.IsValid())
	require.True(t, CardVariantMinimal.IsValid())
	require.False(t, CardVariant("").IsValid())
}
