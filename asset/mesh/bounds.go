package mesh

import (
	"math"

	"github.com/achilleasa/wavefront/types"
)

// Bounds tracks the axis-aligned extents of a set of positions.
type Bounds struct {
	Min types.Vec3
	Max types.Vec3

	count int
}

// Create a bounds seeded with sentinels that any real position replaces.
func NewBounds() Bounds {
	return Bounds{
		Min: types.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: types.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// Grow the bounds to include p.
func (b *Bounds) Extend(p types.Vec3) {
	b.Min = types.MinVec3(b.Min, p)
	b.Max = types.MaxVec3(b.Max, p)
	b.count++
}

// Returns true if no position has been added.
func (b *Bounds) Empty() bool {
	return b.count == 0
}

// Get the extent of the bounds along each axis. Empty bounds have no extent.
func (b *Bounds) Dimensions() types.Vec3 {
	if b.Empty() {
		return types.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Get the midpoint of the bounds. Empty bounds are centered at the origin.
func (b *Bounds) Center() types.Vec3 {
	if b.Empty() {
		return types.Vec3{}
	}
	return b.Max.Add(b.Min).Mul(0.5)
}
