// Package geo provides great-circle distance and geohash bucket helpers for
// radius queries. All distances are in kilometers.
package geo

import (
	"math"
	"strings"

	"github.com/mmcloughlin/geohash"
)

const earthRadiusKm = 6371.0

// EncodePrecision is the geohash length stored on every project (~5 m cells).
const EncodePrecision = 9

// maxPrunableRadiusKm bounds the radius the bucket index can serve without
// risking false negatives; larger radii require a full scan.
const maxPrunableRadiusKm = 2500.0

// Haversine returns the great-circle distance in kilometers between two
// coordinate pairs.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLng := (lng2 - lng1) * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180.0)*math.Cos(lat2*math.Pi/180.0)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// Encode returns the stored geohash for a coordinate pair.
func Encode(lat, lng float64) string {
	return geohash.EncodeWithPrecision(lat, lng, EncodePrecision)
}

// Decode returns the coordinates at the center of a geohash cell.
func Decode(hash string) (lat, lng float64) {
	return geohash.DecodeCenter(hash)
}

// geohashAlphabet is the base32 character set geohashes are encoded with.
const geohashAlphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

// ValidHash reports whether hash is a well-formed geohash: non-empty, at
// most 12 characters, all from the base32 alphabet. Decode does not check
// this itself; malformed input decodes into garbage coordinates.
func ValidHash(hash string) bool {
	if hash == "" || len(hash) > 12 {
		return false
	}
	for _, r := range hash {
		if !strings.ContainsRune(geohashAlphabet, r) {
			return false
		}
	}
	return true
}

// kmPerDegreeLat is the north-south extent of one degree of latitude.
const kmPerDegreeLat = 2 * math.Pi * earthRadiusKm / 360

// Cell extents in kilometers per precision, north-south and east-west at the
// equator. East-west extents shrink by cos(latitude).
var (
	cellLatKm = [7]float64{0, 5003, 625.4, 156.4, 19.55, 4.89, 0.611}
	cellLngKm = [7]float64{0, 5003, 1251, 156.4, 39.1, 4.89, 1.222}
)

// PrecisionForRadius maps a search radius at a given latitude to the finest
// geohash precision whose cell still exceeds the radius in both dimensions,
// so the cell containing the query point plus its eight neighbors always
// cover the search disc. East-west extents are evaluated at the highest
// latitude the disc can reach, where cells are at their narrowest.
//
// Returns 0 when no precision can prune safely; callers fall back to a full
// scan.
func PrecisionForRadius(radiusKm, lat float64) uint {
	if radiusKm > maxPrunableRadiusKm {
		return 0
	}
	edgeLat := math.Abs(lat) + radiusKm/kmPerDegreeLat
	if edgeLat >= 90 {
		return 0
	}
	cosLat := math.Cos(edgeLat * math.Pi / 180.0)

	var best uint
	for p := uint(1); p <= 6; p++ {
		if radiusKm <= cellLatKm[p] && radiusKm <= cellLngKm[p]*cosLat {
			best = p
		}
	}
	return best
}

// Cells returns the geohash bucket keys that cover a search disc at the
// given precision: the cell containing the point and its eight neighbors.
func Cells(lat, lng float64, precision uint) []string {
	center := geohash.EncodeWithPrecision(lat, lng, precision)
	cells := []string{center}
	cells = append(cells, geohash.Neighbors(center)...)
	return cells
}

// Prefixes returns the bucket keys a stored geohash is indexed under, one
// per pruning precision.
func Prefixes(hash string) []string {
	out := make([]string, 0, 6)
	for p := 1; p <= 6 && p <= len(hash); p++ {
		out = append(out, hash[:p])
	}
	return out
}
