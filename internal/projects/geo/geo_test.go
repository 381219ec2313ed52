package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earthstream/projects-backend/internal/projects/geo"
)

func TestHaversine(t *testing.T) {
	t.Run("zero distance", func(t *testing.T) {
		assert.Zero(t, geo.Haversine(52.52, 13.405, 52.52, 13.405))
	})

	t.Run("berlin to munich", func(t *testing.T) {
		d := geo.Haversine(52.5200, 13.4050, 48.1351, 11.5820)
		assert.InDelta(t, 504.0, d, 5.0)
	})

	t.Run("symmetric", func(t *testing.T) {
		ab := geo.Haversine(52.52, 13.405, -33.9249, 18.4241)
		ba := geo.Haversine(-33.9249, 18.4241, 52.52, 13.405)
		assert.InDelta(t, ab, ba, 1e-9)
	})

	t.Run("antipodal is half the circumference", func(t *testing.T) {
		d := geo.Haversine(0, 0, 0, 180)
		assert.InDelta(t, 20015.0, d, 5.0)
	})
}

func TestEncodeDecode(t *testing.T) {
	hash := geo.Encode(52.5200, 13.4050)
	require.Len(t, hash, geo.EncodePrecision)

	lat, lng := geo.Decode(hash)
	assert.InDelta(t, 52.5200, lat, 0.001)
	assert.InDelta(t, 13.4050, lng, 0.001)
}

func TestPrecisionForRadius(t *testing.T) {
	cases := []struct {
		radius float64
		lat    float64
		want   uint
	}{
		{3000, 0, 0},
		{1000, 0, 1},
		{600, 0, 2},
		{200, 0, 2},
		{150, 0, 3},
		{25, 0, 3},
		{18, 0, 4},
		{10, 0, 4},
		{4.5, 0, 5},
		{1, 0, 5},
		{0.5, 0, 6},
		// cells narrow toward the poles, forcing coarser precisions
		{18, 80, 3},
		{10, 45, 4},
		{10, 85, 3},
		{1, 89.9, 2},
		{50, 89.8, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, geo.PrecisionForRadius(tc.radius, tc.lat),
			"radius %v at lat %v", tc.radius, tc.lat)
	}
}

func TestValidHash(t *testing.T) {
	for _, hash := range []string{"u", "u33db", "u33dbczvhrmp", "0123456789bc"} {
		assert.True(t, geo.ValidHash(hash), hash)
	}
	for _, hash := range []string{"", "u33a", "U33DB", "u33 db", "u33dbczvhrmp0"} {
		assert.False(t, geo.ValidHash(hash), hash)
	}
}

func TestCells(t *testing.T) {
	cells := geo.Cells(52.5200, 13.4050, 4)
	require.Len(t, cells, 9)

	seen := make(map[string]struct{})
	for _, c := range cells {
		assert.Len(t, c, 4)
		seen[c] = struct{}{}
	}
	assert.Len(t, seen, 9)
	assert.Contains(t, cells, geo.Encode(52.5200, 13.4050)[:4])
}

func TestPrefixes(t *testing.T) {
	hash := geo.Encode(52.5200, 13.4050)
	prefixes := geo.Prefixes(hash)
	require.Len(t, prefixes, 6)
	for i, p := range prefixes {
		assert.Equal(t, hash[:i+1], p)
	}

	assert.Equal(t, []string{"u", "u3"}, geo.Prefixes("u3"))
}

// Points inside the disc must land in one of the nine cells at the pruning
// precision, otherwise radius queries would drop matches.
func TestCellsCoverSearchDisc(t *testing.T) {
	for _, tc := range []struct {
		lat, lng   float64
		radius     float64
		dLat, dLng float64
		name       string
	}{
		{52.5200, 13.4050, 0.5, 0.004, 0, "north edge at smallest precision"},
		{52.5200, 13.4050, 0.5, 0, -0.007, "west edge at smallest precision"},
		{52.5200, 13.4050, 4.0, 0.025, 0.025, "diagonal inside a 4 km disc"},
		{52.5200, 13.4050, 18.0, -0.16, 0, "south edge of an 18 km disc"},
		{80.0, 0.35, 18.0, 0, 0.9, "due east at latitude 80"},
		{-75.0, 100.0, 10.0, 0, -0.3, "due west at latitude -75"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			precision := geo.PrecisionForRadius(tc.radius, tc.lat)
			require.Greater(t, precision, uint(0))

			pLat, pLng := tc.lat+tc.dLat, tc.lng+tc.dLng
			require.LessOrEqual(t, geo.Haversine(tc.lat, tc.lng, pLat, pLng), tc.radius)

			cells := geo.Cells(tc.lat, tc.lng, precision)
			prefix := geo.Encode(pLat, pLng)[:precision]
			assert.Contains(t, cells, prefix)
		})
	}
}
