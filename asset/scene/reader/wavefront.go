package reader

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/achilleasa/wavefront/asset"
	"github.com/achilleasa/wavefront/asset/mesh"
	"github.com/achilleasa/wavefront/asset/scene"
	"github.com/achilleasa/wavefront/log"
)

// Offsets applied to positive face indices. Documents included via "call"
// index their own vertices starting from 1.
type indexOffsets struct {
	position int
	uv       int
	normal   int
}

// A handler for a single statement of an object document.
type objHandler func(r *wavefrontReader, res *asset.Resource, lineNum int, offsets indexOffsets, args []string) error

// Populated by init to avoid an initialization cycle through "call".
var objHandlers [numObjKeywords]objHandler

func init() {
	objHandlers = [numObjKeywords]objHandler{
		objVertex:      (*wavefrontReader).parseVertex,
		objNormal:      (*wavefrontReader).parseNormal,
		objTexCoord:    (*wavefrontReader).parseTexCoord,
		objFace:        (*wavefrontReader).parseFace,
		objObject:      (*wavefrontReader).parseObject,
		objGroup:       (*wavefrontReader).parseGroup,
		objUseMaterial: (*wavefrontReader).parseUseMaterial,
		objMaterialLib: (*wavefrontReader).parseMaterialLib,
		objCall:        (*wavefrontReader).parseCall,
	}

	for kw, handler := range objHandlers {
		if handler == nil {
			panic(fmt.Sprintf("reader: no handler for object keyword %d", kw))
		}
	}
}

type wavefrontReader struct {
	logger log.Logger
	opts   Options

	// The parsed model.
	model *scene.Model

	// Vertex attributes shared by all scopes.
	pools mesh.Pools

	tracker *tracker

	// An error stack that provides additional error information when
	// documents include other files (material libs, other documents).
	errStack []string
}

// Create a new wavefront reader.
func newWavefrontReader(opts Options) *wavefrontReader {
	if opts.Fetcher == nil {
		opts.Fetcher = asset.DefaultFetcher
	}
	return &wavefrontReader{
		logger:   log.New("wavefront reader"),
		opts:     opts,
		errStack: make([]string, 0),
	}
}

// Parse a wavefront document from a stream. The stream name is used for
// resolving relative material library and texture paths.
func Parse(res *asset.Resource, opts Options) (*scene.Model, error) {
	if err := opts.IndexWidth.Validate(); err != nil {
		return nil, err
	}
	return newWavefrontReader(opts).Read(res)
}

// Read model definition.
func (r *wavefrontReader) Read(res *asset.Resource) (*scene.Model, error) {
	r.logger.Noticef(`parsing model from "%s"`, res.Path())
	start := time.Now()

	r.model = scene.NewModel(res.Path())
	r.tracker = newTracker(r.model, documentName(res), r.opts.IndexWidth)

	err := r.parse(res)
	if err != nil {
		return nil, err
	}
	r.tracker.finish()

	r.logger.Noticef(
		"parsed %d object(s) and %d material(s) in %d ms",
		len(r.model.Objects), len(r.model.Materials), time.Since(start).Nanoseconds()/1e6,
	)
	return r.model, nil
}

// Get the name of the object that collects geometry preceding any "o"
// statement: the document's base name up to the first dot.
func documentName(res *asset.Resource) string {
	name := res.BaseName()
	if before, _, found := strings.Cut(name, "."); found && before != "" {
		return before
	}
	return name
}

// Parse wavefront object document.
func (r *wavefrontReader) parse(res *asset.Resource) error {
	var lineNum int = 0

	// Positive indices in documents reached through "call" are relative
	// to the pool sizes at the point of the call.
	offsets := indexOffsets{
		position: len(r.pools.Positions),
		uv:       len(r.pools.UVs),
		normal:   len(r.pools.Normals),
	}

	scanner := bufio.NewScanner(res)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNum++
		keyword, args, ok := tokenize(scanner.Text())
		if !ok {
			continue
		}

		kw, known := objKeywords[keyword]
		if !known {
			r.logger.Debugf(`[%s: %d] ignoring unsupported statement "%s"`, res.Path(), lineNum, keyword)
			continue
		}

		if err := objHandlers[kw](r, res, lineNum, offsets, args); err != nil {
			return r.emitError(res.Path(), lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return r.emitError(res.Path(), lineNum, err)
	}
	return nil
}

func (r *wavefrontReader) parseVertex(_ *asset.Resource, _ int, _ indexOffsets, args []string) error {
	v, err := parseVec3("v", args)
	if err != nil {
		return err
	}
	r.pools.Positions = append(r.pools.Positions, v)
	return nil
}

func (r *wavefrontReader) parseNormal(_ *asset.Resource, _ int, _ indexOffsets, args []string) error {
	v, err := parseVec3("vn", args)
	if err != nil {
		return err
	}
	r.pools.Normals = append(r.pools.Normals, v)
	return nil
}

func (r *wavefrontReader) parseTexCoord(_ *asset.Resource, _ int, _ indexOffsets, args []string) error {
	v, err := parseVec2("vt", args)
	if err != nil {
		return err
	}
	r.pools.UVs = append(r.pools.UVs, v)
	return nil
}

// Parse face definition. Each face definition consists of 3 or 4 arguments,
// one for each vertex. Each one of the vertex arguments is comprised of
// 1, 2 or 3 indices separated by a slash character:
// - vertexIndex
// - vertexIndex/uvIndex
// - vertexIndex//normalIndex
// - vertexIndex/uvIndex/normalIndex
//
// Indices start from 1 and may be negative to indicate
// an offset off the end of the vertex/uv/normal list.
func (r *wavefrontReader) parseFace(res *asset.Resource, lineNum int, offsets indexOffsets, args []string) error {
	if len(args) != 3 && len(args) != 4 {
		if r.opts.Polygons == IgnorePolygons {
			r.logger.Warningf(`[%s: %d] skipping face with %d vertices; only triangles and quads are supported`, res.Path(), lineNum, len(args))
			return nil
		}
		return fmt.Errorf(`unsupported syntax for "f"; expected 3 arguments for triangular face or 4 arguments for a quad face; got %d. Select the triangulation option in your exporter: %w`, len(args), mesh.ErrUnsupportedPolygon)
	}

	refs := make([]mesh.Ref, len(args))
	for argIdx, arg := range args {
		ref, err := r.parseFaceRef(arg, offsets)
		if err != nil {
			return fmt.Errorf("face argument %d: %w", argIdx, err)
		}
		refs[argIdx] = ref
	}

	_, err := r.tracker.builder().AddFace(&r.pools, refs)
	if errors.Is(err, mesh.ErrIndexOverflow) {
		return fmt.Errorf("%s: %w", r.tracker.describe(), err)
	}
	return err
}

// Parse a single face corner into pool indices.
func (r *wavefrontReader) parseFaceRef(arg string, offsets indexOffsets) (mesh.Ref, error) {
	ref := mesh.Ref{UV: -1, Normal: -1}

	vTokens := strings.Split(arg, "/")
	if len(vTokens) > 3 {
		return ref, fmt.Errorf("too many indices in %q", arg)
	}

	// Faces must at least define a vertex coord
	if vTokens[0] == "" {
		return ref, fmt.Errorf("missing vertex index in %q", arg)
	}

	var err error
	ref.Position, err = selectFaceCoordIndex(vTokens[0], len(r.pools.Positions), offsets.position)
	if err != nil {
		return ref, fmt.Errorf("could not parse vertex coord: %w", err)
	}

	// Parse UV coords if specified
	if len(vTokens) > 1 && vTokens[1] != "" {
		ref.UV, err = selectFaceCoordIndex(vTokens[1], len(r.pools.UVs), offsets.uv)
		if err != nil {
			return ref, fmt.Errorf("could not parse tex coord: %w", err)
		}
	}

	// Parse normal coords if specified
	if len(vTokens) > 2 && vTokens[2] != "" {
		ref.Normal, err = selectFaceCoordIndex(vTokens[2], len(r.pools.Normals), offsets.normal)
		if err != nil {
			return ref, fmt.Errorf("could not parse normal coord: %w", err)
		}
	}

	return ref, nil
}

// Given an index for a face coord type (vertex, normal, tex) calculate the
// proper offset into the coord list. Wavefront format can also use negative
// indices to reference elements from the end of the coord list.
func selectFaceCoordIndex(indexToken string, coordListLen int, relOffset int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var vOffset int = 0
	if index < 0 {
		vOffset = coordListLen + int(index)
	} else {
		vOffset = relOffset + int(index-1)
	}
	if index == 0 || vOffset < 0 || vOffset >= coordListLen {
		return -1, fmt.Errorf("%w: index %d (have %d)", mesh.ErrIndexOutOfRange, index, coordListLen-relOffset)
	}
	return vOffset, nil
}

// Join statement arguments into a name.
func parseName(keyword string, args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf(`unsupported syntax for "%s"; expected 1 argument; got 0`, keyword)
	}
	return strings.Join(args, " "), nil
}

func (r *wavefrontReader) parseObject(_ *asset.Resource, _ int, _ indexOffsets, args []string) error {
	name, err := parseName("o", args)
	if err != nil {
		return err
	}
	r.tracker.selectObject(name)
	return nil
}

func (r *wavefrontReader) parseGroup(_ *asset.Resource, _ int, _ indexOffsets, args []string) error {
	name := "default"
	if len(args) > 0 {
		name = strings.Join(args, " ")
	}
	r.tracker.selectGroup(name)
	return nil
}

func (r *wavefrontReader) parseUseMaterial(res *asset.Resource, lineNum int, _ indexOffsets, args []string) error {
	name, err := parseName("usemtl", args)
	if err != nil {
		return err
	}
	if r.tracker.useMaterial(name) {
		r.logger.Debugf(`[%s: %d] material change; continuing in %s`, res.Path(), lineNum, r.tracker.describe())
	}
	return nil
}

func (r *wavefrontReader) parseMaterialLib(res *asset.Resource, lineNum int, _ indexOffsets, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf(`unsupported syntax for "mtllib"; expected at least 1 argument; got 0`)
	}

	for _, libPath := range args {
		err := r.include(res, lineNum, "mtllib", libPath, r.parseMaterials)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *wavefrontReader) parseCall(res *asset.Resource, lineNum int, _ indexOffsets, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf(`unsupported syntax for "call"; expected 1 argument; got %d`, len(args))
	}
	return r.include(res, lineNum, "call", args[0], r.parse)
}

// Fetch a file referenced by res and process it with parseFn.
func (r *wavefrontReader) include(res *asset.Resource, lineNum int, keyword, incPath string, parseFn func(*asset.Resource) error) error {
	r.pushFrame(fmt.Sprintf("referenced from %s:%d [%s]", res.Path(), lineNum, keyword))
	defer r.popFrame()

	incRes, err := r.opts.Fetcher.Fetch(incPath, res)
	if err != nil {
		return r.emitError(res.Path(), lineNum, err)
	}
	defer incRes.Close()

	return parseFn(incRes)
}
