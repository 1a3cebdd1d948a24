package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

var unitSquare = orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

func TestContains_InteriorAndExterior(t *testing.T) {
	tests := []struct {
		name string
		ring orb.Ring
		p    orb.Point
		want bool
	}{
		{"center of square", unitSquare, orb.Point{0.5, 0.5}, true},
		{"left of square", unitSquare, orb.Point{-0.5, 0.5}, false},
		{"right of square", unitSquare, orb.Point{1.5, 0.5}, false},
		{"above square", unitSquare, orb.Point{0.5, 1.5}, false},
		{"closed ring", append(orb.Ring{}, append(unitSquare, unitSquare[0])...), orb.Point{0.5, 0.5}, true},
		{"triangle interior", orb.Ring{{0, 0}, {4, 0}, {2, 3}}, orb.Point{2, 1}, true},
		{"triangle exterior", orb.Ring{{0, 0}, {4, 0}, {2, 3}}, orb.Point{0.2, 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contains(tt.ring, tt.p))
		})
	}
}

func TestContains_ConcavePolygon(t *testing.T) {
	// U shape: the notch between the arms is outside.
	u := orb.Ring{{0, 0}, {3, 0}, {3, 3}, {2, 3}, {2, 1}, {1, 1}, {1, 3}, {0, 3}}

	assert.True(t, Contains(u, orb.Point{0.5, 2}))
	assert.True(t, Contains(u, orb.Point{2.5, 2}))
	assert.True(t, Contains(u, orb.Point{1.5, 0.5}))
	assert.False(t, Contains(u, orb.Point{1.5, 2}))
}

func TestContains_RayThroughVertex(t *testing.T) {
	diamond := orb.Ring{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

	assert.True(t, Contains(diamond, orb.Point{-0.5, 0}))
	assert.True(t, Contains(diamond, orb.Point{0, 0}))
	assert.False(t, Contains(diamond, orb.Point{-1.5, 0}))
}

func TestContains_BoundaryRule(t *testing.T) {
	tests := []struct {
		name string
		p    orb.Point
		want bool
	}{
		{"west edge", orb.Point{0, 0.5}, true},
		{"south edge", orb.Point{0.5, 0}, true},
		{"south west corner", orb.Point{0, 0}, true},
		{"east edge", orb.Point{1, 0.5}, false},
		{"north edge", orb.Point{0.5, 1}, false},
		{"north east corner", orb.Point{1, 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contains(unitSquare, tt.p))
		})
	}
}

func TestContains_HorizontalEdgesAreSkipped(t *testing.T) {
	// Point shares the latitude of both horizontal edges of a rectangle.
	rect := orb.Ring{{0, 0}, {4, 0}, {4, 2}, {0, 2}}

	assert.NotPanics(t, func() { Contains(rect, orb.Point{2, 2}) })
	assert.False(t, Contains(rect, orb.Point{2, 2}))
	assert.True(t, Contains(rect, orb.Point{2, 0}))
}

func TestContains_Degenerate(t *testing.T) {
	assert.False(t, Contains(nil, orb.Point{0, 0}))
	assert.False(t, Contains(orb.Ring{{0, 0}, {1, 1}}, orb.Point{0.5, 0.5}))
	assert.False(t, Contains(orb.Ring{{0, 0}, {1, 1}, {0, 0}}, orb.Point{0.5, 0.5}))
}

func TestContains_RealCoordinates(t *testing.T) {
	// Plaza block in Lima, counter-clockwise from the south-west corner.
	zone := orb.Ring{
		{-77.0300, -12.0470},
		{-77.0280, -12.0470},
		{-77.0280, -12.0450},
		{-77.0300, -12.0450},
	}

	assert.True(t, Contains(zone, orb.Point{-77.0290, -12.0460}))
	assert.False(t, Contains(zone, orb.Point{-77.0310, -12.0460}))
}

func TestValidCoordinate(t *testing.T) {
	assert.True(t, ValidCoordinate(-12.04, -77.03))
	assert.True(t, ValidCoordinate(90, 180))
	assert.False(t, ValidCoordinate(91, 0))
	assert.False(t, ValidCoordinate(0, -180.5))
}
