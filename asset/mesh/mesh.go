// Package mesh assembles indexed triangle meshes out of face statements.
//
// A Builder owns the mutable state of a mesh while faces are streamed into
// it. Finalize consumes the builder and returns an immutable Mesh.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/achilleasa/wavefront/types"
)

var (
	// ErrIndexOverflow is returned when a mesh needs more unique vertices
	// than its index width can address.
	ErrIndexOverflow = errors.New("vertex index overflow")

	// ErrUnsupportedPolygon is returned for faces that are neither triangles nor quads.
	ErrUnsupportedPolygon = errors.New("unsupported polygon")

	// ErrIndexOutOfRange is returned when a face references an undeclared vertex attribute.
	ErrIndexOutOfRange = errors.New("face index out of range")

	// ErrFinalized is returned when faces are added to a finalized builder.
	ErrFinalized = errors.New("mesh builder already finalized")
)

// IndexWidth selects the integer width of the emitted triangle indices.
type IndexWidth uint8

const (
	Index16 IndexWidth = 16
	Index32 IndexWidth = 32
)

// Get the number of unique vertices addressable with this index width.
func (w IndexWidth) MaxVertices() uint64 {
	if w == Index16 {
		return math.MaxUint16 + 1
	}
	return math.MaxUint32 + 1
}

// Validate the index width.
func (w IndexWidth) Validate() error {
	if w != Index16 && w != Index32 {
		return fmt.Errorf("mesh: unsupported index width %d; expected 16 or 32", w)
	}
	return nil
}

// Mesh is a finalized, immutable triangle mesh.
type Mesh struct {
	// Flat attribute arrays; 3 floats per vertex for positions and
	// normals, 2 floats per vertex for uvs.
	Positions []float32
	Normals   []float32
	UVs       []float32

	// Triangle list. All values are below Width.MaxVertices().
	Indices []uint32
	Width   IndexWidth

	Dimensions types.Vec3
	Center     types.Vec3
}

// Get the number of unique vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// Get the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Returns true if the mesh contains no triangles.
func (m *Mesh) Empty() bool {
	return len(m.Indices) == 0
}

// Get the bounding box of the mesh.
func (m *Mesh) BBox() [2]types.Vec3 {
	half := m.Dimensions.Mul(0.5)
	return [2]types.Vec3{m.Center.Sub(half), m.Center.Add(half)}
}

// Get the indices as 16-bit values. It fails for 32-bit meshes.
func (m *Mesh) Indices16() ([]uint16, error) {
	if m.Width != Index16 {
		return nil, fmt.Errorf("mesh: cannot narrow %d-bit indices to 16 bits", m.Width)
	}
	out := make([]uint16, len(m.Indices))
	for i, index := range m.Indices {
		out[i] = uint16(index)
	}
	return out, nil
}
