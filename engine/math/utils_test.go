package math

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	require.Equal(t, uint32(3), Clamp(uint32(3), 2, 8))
	require.Equal(t, uint32(4), Clamp(uint32(3), 4, 8))
	require.Equal(t, uint32(2), Clamp(uint32(3), 2, 2))
	require.Equal(t, -1.5, Clamp(-4.0, -1.5, 1.5))
}
