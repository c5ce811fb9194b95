package mesh

import (
	"errors"
	"reflect"
	"testing"

	"github.com/achilleasa/wavefront/types"
)

func posRef(p int) Ref {
	return Ref{Position: p, UV: -1, Normal: -1}
}

func TestTriangleFace(t *testing.T) {
	pools := &Pools{
		Positions: []types.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Normals:   []types.Vec3{{0, 0, 1}},
		UVs:       []types.Vec2{{0.5, 0.5}},
	}

	b := NewBuilder(Index16)
	indices, err := b.AddFace(pools, []Ref{{0, 0, 0}, {1, -1, 0}, posRef(2)})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(indices, []uint32{0, 1, 2}) {
		t.Fatalf("expected indices [0 1 2]; got %v", indices)
	}

	m := b.Finalize()
	expUVs := []float32{0.5, 0.5, 0, 0, 0, 0}
	if !reflect.DeepEqual(m.UVs, expUVs) {
		t.Fatalf("expected uvs %v; got %v", expUVs, m.UVs)
	}
	expNormals := []float32{0, 0, 1, 0, 0, 1, 0, 0, 0}
	if !reflect.DeepEqual(m.Normals, expNormals) {
		t.Fatalf("expected normals %v; got %v", expNormals, m.Normals)
	}
	if m.VertexCount() != 3 || m.TriangleCount() != 1 {
		t.Fatalf("expected 3 vertices and 1 triangle; got %d and %d", m.VertexCount(), m.TriangleCount())
	}
}

func TestQuadTriangulation(t *testing.T) {
	pools := &Pools{
		Positions: []types.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
	}

	b := NewBuilder(Index16)
	// Shift assigned indices so they differ from the pool indices.
	if _, err := b.AddFace(pools, []Ref{posRef(3), posRef(2), posRef(1)}); err != nil {
		t.Fatal(err)
	}
	quad, err := b.AddFace(pools, []Ref{posRef(0), posRef(1), posRef(2), posRef(3)})
	if err != nil {
		t.Fatal(err)
	}

	a, bb, c, d := quad[0], quad[1], quad[2], quad[3]
	m := b.Finalize()
	expIndices := []uint32{0, 1, 2, a, bb, c, a, c, d}
	if !reflect.DeepEqual(m.Indices, expIndices) {
		t.Fatalf("expected indices %v; got %v", expIndices, m.Indices)
	}
	if !reflect.DeepEqual(quad, []uint32{3, 2, 1, 0}) {
		t.Fatalf("expected quad corners to map to [3 2 1 0]; got %v", quad)
	}
}

func TestVertexDedup(t *testing.T) {
	pools := &Pools{
		Positions: []types.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}},
		Normals:   []types.Vec3{{0, 0, 1}, {0, 0, -1}},
	}

	b := NewBuilder(Index16)
	first, err := b.AddFace(pools, []Ref{{0, -1, 0}, {1, -1, 0}, {2, -1, 0}})
	if err != nil {
		t.Fatal(err)
	}
	vertsBefore := b.VertexCount()

	second, err := b.AddFace(pools, []Ref{{2, -1, 0}, {1, -1, 0}, {3, -1, 0}})
	if err != nil {
		t.Fatal(err)
	}
	if second[0] != first[2] || second[1] != first[1] {
		t.Fatalf("expected repeated corners to reuse indices; got %v and %v", first, second)
	}
	if b.VertexCount() != vertsBefore+1 {
		t.Fatalf("expected only one new vertex; got %d new", b.VertexCount()-vertsBefore)
	}

	// Same position with a different normal is a different vertex
	third, err := b.AddFace(pools, []Ref{{0, -1, 1}, {1, -1, 0}, {2, -1, 0}})
	if err != nil {
		t.Fatal(err)
	}
	if third[0] == first[0] {
		t.Fatal("expected corner with a different normal to get a new index")
	}

	// A repeated corner within the same face is emitted once
	b2 := NewBuilder(Index16)
	indices, err := b2.AddFace(pools, []Ref{posRef(0), posRef(1), posRef(0)})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(indices, []uint32{0, 1, 0}) || b2.VertexCount() != 2 {
		t.Fatalf("expected [0 1 0] with 2 vertices; got %v with %d", indices, b2.VertexCount())
	}
}

func TestBoundsFromFace(t *testing.T) {
	pools := &Pools{
		Positions: []types.Vec3{{0, 0, 0}, {2, 0, 0}, {0, 3, 0}, {0, 0, 4}},
	}

	b := NewBuilder(Index16)
	if _, err := b.AddFace(pools, []Ref{posRef(0), posRef(1), posRef(2), posRef(3)}); err != nil {
		t.Fatal(err)
	}
	m := b.Finalize()

	if exp := (types.Vec3{2, 3, 4}); !types.ApproxEqual(m.Dimensions, exp, 1e-6) {
		t.Fatalf("expected dimensions %v; got %v", exp, m.Dimensions)
	}
	if exp := (types.Vec3{1, 1.5, 2}); !types.ApproxEqual(m.Center, exp, 1e-6) {
		t.Fatalf("expected center %v; got %v", exp, m.Center)
	}

	bbox := m.BBox()
	if !types.ApproxEqual(bbox[0], types.Vec3{0, 0, 0}, 1e-6) || !types.ApproxEqual(bbox[1], types.Vec3{2, 3, 4}, 1e-6) {
		t.Fatalf("unexpected bbox %v", bbox)
	}
}

func TestEmptyBuilder(t *testing.T) {
	m := NewBuilder(Index32).Finalize()
	if !m.Empty() || m.VertexCount() != 0 {
		t.Fatal("expected an empty mesh")
	}
	if m.Dimensions != (types.Vec3{}) || m.Center != (types.Vec3{}) {
		t.Fatalf("expected zero dimensions and center; got %v and %v", m.Dimensions, m.Center)
	}
}

func TestFaceErrors(t *testing.T) {
	pools := &Pools{
		Positions: []types.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
	}

	type spec struct {
		refs   []Ref
		expErr error
	}
	specs := []spec{
		{[]Ref{posRef(0), posRef(1)}, ErrUnsupportedPolygon},
		{[]Ref{posRef(0), posRef(1), posRef(2), posRef(0), posRef(1)}, ErrUnsupportedPolygon},
		{[]Ref{posRef(0), posRef(1), posRef(3)}, ErrIndexOutOfRange},
		{[]Ref{posRef(0), posRef(1), {2, 0, -1}}, ErrIndexOutOfRange},
		{[]Ref{posRef(0), posRef(1), {2, -1, 0}}, ErrIndexOutOfRange},
	}

	for idx, s := range specs {
		b := NewBuilder(Index16)
		_, err := b.AddFace(pools, s.refs)
		if !errors.Is(err, s.expErr) {
			t.Fatalf("[spec %d] expected error %v; got %v", idx, s.expErr, err)
		}
		if b.VertexCount() != 0 || b.IndexCount() != 0 {
			t.Fatalf("[spec %d] expected failed face to leave the builder untouched", idx)
		}
	}

	b := NewBuilder(Index16)
	b.Finalize()
	if _, err := b.AddFace(pools, []Ref{posRef(0), posRef(1), posRef(2)}); !errors.Is(err, ErrFinalized) {
		t.Fatalf("expected ErrFinalized; got %v", err)
	}
}

func TestIndexOverflow(t *testing.T) {
	const maxVerts = 1 << 16
	pools := &Pools{Positions: make([]types.Vec3, maxVerts+1)}
	for i := range pools.Positions {
		pools.Positions[i] = types.Vec3{float32(i), 0, 0}
	}

	b := NewBuilder(Index16)
	for p := 0; p+2 < maxVerts; p += 3 {
		if _, err := b.AddFace(pools, []Ref{posRef(p), posRef(p + 1), posRef(p + 2)}); err != nil {
			t.Fatal(err)
		}
	}

	// The last addressable vertex
	if _, err := b.AddFace(pools, []Ref{posRef(maxVerts - 1), posRef(0), posRef(1)}); err != nil {
		t.Fatal(err)
	}
	if b.VertexCount() != maxVerts {
		t.Fatalf("expected %d vertices; got %d", maxVerts, b.VertexCount())
	}

	_, err := b.AddFace(pools, []Ref{posRef(maxVerts), posRef(0), posRef(1)})
	if !errors.Is(err, ErrIndexOverflow) {
		t.Fatalf("expected ErrIndexOverflow; got %v", err)
	}

	m := b.Finalize()
	indices16, err := m.Indices16()
	if err != nil {
		t.Fatal(err)
	}
	if indices16[len(indices16)-3] != math16Max {
		t.Fatalf("expected last vertex index to be %d; got %d", math16Max, indices16[len(indices16)-3])
	}

	// The same mesh fits with 32-bit indices
	b32 := NewBuilder(Index32)
	refs := []Ref{posRef(maxVerts), posRef(0), posRef(1)}
	for p := 0; p+2 < maxVerts; p += 3 {
		b32.AddFace(pools, []Ref{posRef(p), posRef(p + 1), posRef(p + 2)})
	}
	b32.AddFace(pools, []Ref{posRef(maxVerts - 1), posRef(0), posRef(1)})
	if _, err := b32.AddFace(pools, refs); err != nil {
		t.Fatal(err)
	}
	if _, err := b32.Finalize().Indices16(); err == nil {
		t.Fatal("expected narrowing 32-bit indices to fail")
	}
}

const math16Max = 1<<16 - 1

func TestIndexWidthValidation(t *testing.T) {
	if err := Index16.Validate(); err != nil {
		t.Fatal(err)
	}
	if err := Index32.Validate(); err != nil {
		t.Fatal(err)
	}
	if err := IndexWidth(8).Validate(); err == nil {
		t.Fatal("expected 8-bit index width to be rejected")
	}
	if Index16.MaxVertices() != 65536 {
		t.Fatalf("expected 16-bit width to address 65536 vertices; got %d", Index16.MaxVertices())
	}
}

func TestRefKey(t *testing.T) {
	type spec struct {
		ref Ref
		exp string
	}
	specs := []spec{
		{Ref{0, -1, -1}, "0//"},
		{Ref{0, 2, -1}, "0/2/"},
		{Ref{0, -1, 3}, "0//3"},
		{Ref{4, 5, 6}, "4/5/6"},
	}
	for idx, s := range specs {
		if key := s.ref.Key(); key != s.exp {
			t.Fatalf("[spec %d] expected key %q; got %q", idx, s.exp, key)
		}
	}
}
