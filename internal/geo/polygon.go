// Package geo holds the planar predicates used to tag scans with a sector.
//
// Coordinates follow orb's convention: X is longitude, Y is latitude.
// Polygons are small municipal zones, so no spherical correction is made.
package geo

import "github.com/paulmach/orb"

// MinVertices is the smallest vertex count that can enclose an area.
const MinVertices = 3

// Contains reports whether p lies inside ring using the even-odd rule.
//
// A horizontal ray is cast from p toward increasing longitude. An edge is
// considered when exactly one of its endpoints has a latitude strictly
// greater than p's, and it counts as a crossing when p's longitude is
// strictly less than the edge's longitude at p's latitude. Points on a
// boundary therefore resolve deterministically: for axis-aligned edges the
// south and west sides are inside, the north and east sides are outside.
//
// The ring may be open or closed; the closing edge is implied.
func Contains(ring orb.Ring, p orb.Point) bool {
	n := len(ring)
	if n > 1 && ring[0] == ring[n-1] {
		n--
	}
	if n < MinVertices {
		return false
	}
	if !ring.Bound().Contains(p) {
		return false
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if a.Y() == b.Y() {
			// horizontal edge, never crossed by a horizontal ray
			continue
		}
		if (a.Y() > p.Y()) == (b.Y() > p.Y()) {
			continue
		}
		x := a.X() + (p.Y()-a.Y())*(b.X()-a.X())/(b.Y()-a.Y())
		if p.X() < x {
			inside = !inside
		}
	}
	return inside
}

// ValidCoordinate reports whether lat/lng are finite WGS84 degrees.
func ValidCoordinate(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
