package customer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRegion(t *testing.T) {
	tests := []struct {
		in   string
		want Region
	}{
		{"SOUTHEAST", RegionSoutheast},
		{"southeast", RegionSoutheast},
		{" North ", RegionNorth},
		{"midwest", RegionMidwest},
	}
	for _, tt := range tests {
		got, err := ParseRegion(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got)
	}

	for _, bad := range []string{"", "WEST", "BR-SOUTH"} {
		_, err := ParseRegion(bad)
		require.Error(t, err, bad)
	}
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		in   string
		want Tier
	}{
		{"GOLD", TierGold},
		{"silver", TierSilver},
		{" bronze ", TierBronze},
	}
	for _, tt := range tests {
		got, err := ParseTier(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got)
	}

	for _, bad := range []string{"", "PLATINUM"} {
		_, err := ParseTier(bad)
		require.Error(t, err, bad)
	}
}
