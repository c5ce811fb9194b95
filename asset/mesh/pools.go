package mesh

import (
	"fmt"
	"strconv"

	"github.com/achilleasa/wavefront/types"
)

// Pools holds the raw vertex attributes declared by a document in file order.
// The pools are append-only and shared by every mesh scope of the document.
type Pools struct {
	Positions []types.Vec3
	Normals   []types.Vec3
	UVs       []types.Vec2
}

// Ref identifies one face corner using 0-based indices into the pools. UV and
// Normal are set to -1 when the corner does not reference them.
type Ref struct {
	Position int
	UV       int
	Normal   int
}

// Generate the dedup key for this face corner.
func (r Ref) Key() string {
	key := strconv.Itoa(r.Position) + "/"
	if r.UV >= 0 {
		key += strconv.Itoa(r.UV)
	}
	key += "/"
	if r.Normal >= 0 {
		key += strconv.Itoa(r.Normal)
	}
	return key
}

// Lookup the attributes referenced by a face corner. Missing uv and normal
// references yield zero vectors.
func (p *Pools) lookup(r Ref) (pos, normal types.Vec3, uv types.Vec2, err error) {
	if r.Position < 0 || r.Position >= len(p.Positions) {
		return pos, normal, uv, fmt.Errorf("%w: position %d (have %d)", ErrIndexOutOfRange, r.Position+1, len(p.Positions))
	}
	pos = p.Positions[r.Position]

	if r.UV >= 0 {
		if r.UV >= len(p.UVs) {
			return pos, normal, uv, fmt.Errorf("%w: uv %d (have %d)", ErrIndexOutOfRange, r.UV+1, len(p.UVs))
		}
		uv = p.UVs[r.UV]
	}

	if r.Normal >= 0 {
		if r.Normal >= len(p.Normals) {
			return pos, normal, uv, fmt.Errorf("%w: normal %d (have %d)", ErrIndexOutOfRange, r.Normal+1, len(p.Normals))
		}
		normal = p.Normals[r.Normal]
	}

	return pos, normal, uv, nil
}
