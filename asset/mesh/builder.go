package mesh

import (
	"fmt"
)

// Builder accumulates the vertices and triangles of a single mesh scope.
// Vertices are deduplicated by face corner so that each unique
// position/uv/normal combination is emitted once.
type Builder struct {
	width     IndexWidth
	vertexMap map[string]uint32

	positions []float32
	normals   []float32
	uvs       []float32
	indices   []uint32

	bounds    Bounds
	finalized bool
}

// Create a new builder emitting indices of the given width.
func NewBuilder(width IndexWidth) *Builder {
	return &Builder{
		width:     width,
		vertexMap: make(map[string]uint32),
		bounds:    NewBounds(),
	}
}

// Get the number of unique vertices emitted so far.
func (b *Builder) VertexCount() int {
	return len(b.positions) / 3
}

// Get the number of indices emitted so far.
func (b *Builder) IndexCount() int {
	return len(b.indices)
}

// Add a triangle or quad face. Quads are split into the (0,1,2) and (0,2,3)
// triangles. The assigned vertex indices for each corner are returned in
// input order.
func (b *Builder) AddFace(pools *Pools, refs []Ref) ([]uint32, error) {
	if b.finalized {
		return nil, ErrFinalized
	}
	if len(refs) != 3 && len(refs) != 4 {
		return nil, fmt.Errorf("%w: face has %d vertices; only triangles and quads are supported", ErrUnsupportedPolygon, len(refs))
	}

	// Resolve every corner before emitting anything so a bad face leaves
	// the builder untouched.
	faceIndices := make([]uint32, len(refs))
	pending := make(map[string]uint32)
	nextIndex := uint64(b.VertexCount())
	for i, ref := range refs {
		key := ref.Key()
		if index, exists := b.vertexMap[key]; exists {
			faceIndices[i] = index
			continue
		}
		if index, exists := pending[key]; exists {
			faceIndices[i] = index
			continue
		}

		if _, _, _, err := pools.lookup(ref); err != nil {
			return nil, err
		}
		if nextIndex >= b.width.MaxVertices() {
			return nil, fmt.Errorf("%w: mesh exceeds %d unique vertices for %d-bit indices", ErrIndexOverflow, b.width.MaxVertices(), b.width)
		}

		pending[key] = uint32(nextIndex)
		faceIndices[i] = uint32(nextIndex)
		nextIndex++
	}

	// New vertices are emitted in corner order which matches the order
	// their indices were reserved above.
	for _, ref := range refs {
		key := ref.Key()
		if _, exists := b.vertexMap[key]; !exists {
			b.emitVertex(pools, ref, key)
		}
	}

	b.indices = append(b.indices, faceIndices[0], faceIndices[1], faceIndices[2])
	if len(faceIndices) == 4 {
		b.indices = append(b.indices, faceIndices[0], faceIndices[2], faceIndices[3])
	}

	return faceIndices, nil
}

// Append the attributes of a new unique vertex and register its index.
func (b *Builder) emitVertex(pools *Pools, ref Ref, key string) {
	pos, normal, uv, _ := pools.lookup(ref)

	b.positions = append(b.positions, pos[0], pos[1], pos[2])
	b.normals = append(b.normals, normal[0], normal[1], normal[2])
	b.uvs = append(b.uvs, uv[0], uv[1])
	b.bounds.Extend(pos)

	b.vertexMap[key] = uint32(len(b.positions)/3 - 1)
}

// Finalize the builder into an immutable mesh. The builder cannot be used afterwards.
func (b *Builder) Finalize() *Mesh {
	m := &Mesh{
		Positions:  b.positions,
		Normals:    b.normals,
		UVs:        b.uvs,
		Indices:    b.indices,
		Width:      b.width,
		Dimensions: b.bounds.Dimensions(),
		Center:     b.bounds.Center(),
	}

	b.positions, b.normals, b.uvs, b.indices = nil, nil, nil, nil
	b.vertexMap = nil
	b.finalized = true
	return m
}
