package geo

import (
	"math"

	"advisor.fieldroute.org/internal/models"
)

// cellKey addresses one cell of the uniform grid.
type cellKey struct {
	X int
	Y int
}

// Grid is a uniform grid index over a fixed set of points, built once per
// clustering call and discarded afterwards. It turns the O(n²) all-pairs
// neighbor search into near-linear time for typical customer distributions.
//
// The cell edge length is epsilonKm converted to degrees of latitude, so a
// point's true neighbors within epsilonKm never fall outside the 3×3 block
// of cells around it. NeighborsWithin relies on that invariant; shrinking
// the cell size below epsilon breaks it.
type Grid struct {
	points  []models.GeoPoint
	cellDeg float64
	cells   map[cellKey][]int
}

// NewGrid builds a grid index over points sized for neighbor queries at
// radius epsilonKm. The points slice is referenced, not copied; it must not
// change while the grid is in use.
func NewGrid(points []models.GeoPoint, epsilonKm float64) *Grid {
	g := &Grid{
		points:  points,
		cellDeg: epsilonKm / kmPerDegreeLat,
		cells:   make(map[cellKey][]int),
	}
	for i, p := range points {
		k := g.keyFor(p)
		g.cells[k] = append(g.cells[k], i)
	}
	return g
}

func (g *Grid) keyFor(p models.GeoPoint) cellKey {
	return cellKey{
		X: int(math.Floor(p.Longitude / g.cellDeg)),
		Y: int(math.Floor(p.Latitude / g.cellDeg)),
	}
}

// NeighborsWithin returns the indices of all points within epsilonKm of the
// point at index i, including i itself. Only the 3×3 block of cells around
// the point's own cell is scanned; the exact great-circle distance decides
// membership.
func (g *Grid) NeighborsWithin(i int, epsilonKm float64) []int {
	center := g.points[i]
	key := g.keyFor(center)

	var neighbors []int
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for _, j := range g.cells[cellKey{X: key.X + dx, Y: key.Y + dy}] {
				if DistanceKm(center, g.points[j]) <= epsilonKm {
					neighbors = append(neighbors, j)
				}
			}
		}
	}
	return neighbors
}
