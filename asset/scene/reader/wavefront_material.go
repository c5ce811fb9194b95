package reader

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/achilleasa/wavefront/asset"
	"github.com/achilleasa/wavefront/asset/material"
	"github.com/achilleasa/wavefront/types"
)

// A handler for a single statement of a material library.
type mtlHandler func(p *materialLibParser, keyword string, args []string) error

// Populated by init; texture handlers reach back into the reader.
var mtlHandlers [numMtlKeywords]mtlHandler

// Select the material field that a texture directive populates.
var textureTargets = map[mtlKeyword]func(*material.Material) **material.TextureMap{
	mtlMapAmbient:     func(m *material.Material) **material.TextureMap { return &m.AmbientTexture },
	mtlMapDiffuse:     func(m *material.Material) **material.TextureMap { return &m.DiffuseTexture },
	mtlMapSpecular:    func(m *material.Material) **material.TextureMap { return &m.SpecularColorTexture },
	mtlMapSpecularExp: func(m *material.Material) **material.TextureMap { return &m.SpecularHighlightTexture },
	mtlMapDissolve:    func(m *material.Material) **material.TextureMap { return &m.AlphaTexture },
	mtlMapBump:        func(m *material.Material) **material.TextureMap { return &m.BumpTexture },
	mtlBump:           func(m *material.Material) **material.TextureMap { return &m.BumpTexture },
	mtlDisplacement:   func(m *material.Material) **material.TextureMap { return &m.DisplacementTexture },
	mtlDecal:          func(m *material.Material) **material.TextureMap { return &m.DecalTexture },
	mtlMapRoughness:   func(m *material.Material) **material.TextureMap { return &m.RoughnessTexture },
	mtlMapMetallic:    func(m *material.Material) **material.TextureMap { return &m.MetallicTexture },
	mtlMapSheen:       func(m *material.Material) **material.TextureMap { return &m.SheenTexture },
	mtlMapEmissive:    func(m *material.Material) **material.TextureMap { return &m.EmissiveTexture },
	mtlNormal:         func(m *material.Material) **material.TextureMap { return &m.NormalTexture },
}

// Select the scalar field set by a single-argument statement.
var scalarTargets = map[mtlKeyword]func(*material.Material) **float32{
	mtlSpecularExp:        func(m *material.Material) **float32 { return &m.SpecularExponent },
	mtlDissolve:           func(m *material.Material) **float32 { return &m.Transparency },
	mtlOpticalDensity:     func(m *material.Material) **float32 { return &m.OpticalDensity },
	mtlRoughness:          func(m *material.Material) **float32 { return &m.Roughness },
	mtlMetallic:           func(m *material.Material) **float32 { return &m.Metallic },
	mtlSheen:              func(m *material.Material) **float32 { return &m.Sheen },
	mtlClearcoatThickness: func(m *material.Material) **float32 { return &m.ClearcoatThickness },
	mtlClearcoatRoughness: func(m *material.Material) **float32 { return &m.ClearcoatRoughness },
	mtlAnisotropy:         func(m *material.Material) **float32 { return &m.Anisotropy },
	mtlAnisotropyRotation: func(m *material.Material) **float32 { return &m.AnisotropyRotation },
}

// Select the color field set by a color statement.
var colorTargets = map[mtlKeyword]func(*material.Material) **types.Vec3{
	mtlAmbient:  func(m *material.Material) **types.Vec3 { return &m.AmbientColor },
	mtlDiffuse:  func(m *material.Material) **types.Vec3 { return &m.DiffuseColor },
	mtlSpecular: func(m *material.Material) **types.Vec3 { return &m.SpecularColor },
}

func init() {
	mtlHandlers[mtlNewMaterial] = (*materialLibParser).parseNewMaterial
	mtlHandlers[mtlIllum] = (*materialLibParser).parseIllum
	mtlHandlers[mtlTransparency] = (*materialLibParser).parseTransparency
	mtlHandlers[mtlEmissive] = (*materialLibParser).parseEmissive
	mtlHandlers[mtlTransmissionFilter] = (*materialLibParser).parseTransmissionFilter
	mtlHandlers[mtlReflection] = (*materialLibParser).parseReflection
	for kw := range scalarTargets {
		mtlHandlers[kw] = (*materialLibParser).parseScalar
	}
	for kw := range colorTargets {
		mtlHandlers[kw] = (*materialLibParser).parseColor
	}
	for kw := range textureTargets {
		mtlHandlers[kw] = (*materialLibParser).parseTexture
	}

	for kw, handler := range mtlHandlers {
		if handler == nil {
			panic(fmt.Sprintf("reader: no handler for material keyword %d", kw))
		}
	}
}

// The materialLibParser processes a single material library. Parsed
// materials are appended to the reader's model.
type materialLibParser struct {
	r   *wavefrontReader
	res *asset.Resource

	// The material set by the most recent newmtl statement.
	curMaterial *material.Material
}

// Parse a material library and append its materials to the model.
func (r *wavefrontReader) parseMaterials(res *asset.Resource) error {
	var lineNum int = 0

	r.logger.Infof(`parsing material library "%s"`, res.Path())
	p := &materialLibParser{r: r, res: res}

	scanner := bufio.NewScanner(res)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNum++
		keyword, args, ok := tokenize(scanner.Text())
		if !ok {
			continue
		}

		kw, known := mtlKeywords[strings.ToLower(keyword)]
		if !known {
			r.logger.Debugf(`[%s: %d] ignoring unsupported statement "%s"`, res.Path(), lineNum, keyword)
			continue
		}

		if kw != mtlNewMaterial && p.curMaterial == nil {
			r.logger.Debugf(`[%s: %d] ignoring "%s" without a "newmtl"`, res.Path(), lineNum, keyword)
			continue
		}

		if err := mtlHandlers[kw](p, keyword, args); err != nil {
			return r.emitError(res.Path(), lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return r.emitError(res.Path(), lineNum, err)
	}
	return nil
}

func (p *materialLibParser) parseNewMaterial(_ string, args []string) error {
	name, err := parseName("newmtl", args)
	if err != nil {
		return err
	}

	if p.r.model.Material(name) != nil {
		p.r.logger.Warningf(`material "%s" already defined; the definition in "%s" takes precedence`, name, p.res.Path())
	}

	p.curMaterial = material.New(name)
	p.r.model.Materials = append(p.r.model.Materials, p.curMaterial)
	return nil
}

func (p *materialLibParser) parseIllum(keyword string, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf(`unsupported syntax for "%s"; expected 1 argument; got %d`, keyword, len(args))
	}

	val, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf(`could not parse argument for "%s": %w`, keyword, err)
	}

	illum := material.IlluminationModel(val)
	p.curMaterial.IlluminationModel = &illum
	return nil
}

func (p *materialLibParser) parseScalar(keyword string, args []string) error {
	val, err := parseFloat32(keyword, args)
	if err != nil {
		return err
	}

	*scalarTargets[mtlKeywords[strings.ToLower(keyword)]](p.curMaterial) = &val
	return nil
}

// Tr is the inverse of d.
func (p *materialLibParser) parseTransparency(keyword string, args []string) error {
	val, err := parseFloat32(keyword, args)
	if err != nil {
		return err
	}

	val = 1 - val
	p.curMaterial.Transparency = &val
	return nil
}

func (p *materialLibParser) parseColor(keyword string, args []string) error {
	color, _, err := p.parseColorValue(keyword, args)
	if err != nil || color == nil {
		return err
	}

	*colorTargets[mtlKeywords[strings.ToLower(keyword)]](p.curMaterial) = color
	return nil
}

// Ke sets the emissive scalar; a full color also keeps all three components.
func (p *materialLibParser) parseEmissive(keyword string, args []string) error {
	vals, err := parseFloats(keyword, args, 1)
	if err != nil {
		return err
	}

	emissive := vals[0]
	p.curMaterial.Emissive = &emissive
	if len(vals) >= 3 {
		p.curMaterial.EmissiveColor = &types.Vec3{vals[0], vals[1], vals[2]}
	}
	return nil
}

func (p *materialLibParser) parseTransmissionFilter(keyword string, args []string) error {
	color, xyz, err := p.parseColorValue(keyword, args)
	if err != nil || color == nil {
		return err
	}

	p.curMaterial.TransmissionFilterColor = color
	p.curMaterial.TransmissionFilterXYZ = xyz
	return nil
}

// Parse the arguments of a color statement. Colors are specified either as
// r [g b], "xyz x [y z]" or "spectral file.rfl [factor]". A single value
// is replicated to all three components. Spectral curves are not supported
// and yield a nil color.
func (p *materialLibParser) parseColorValue(keyword string, args []string) (*types.Vec3, bool, error) {
	var xyz bool
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "spectral":
			p.r.logger.Warningf(`[%s] material "%s": ignoring unsupported spectral form of "%s"`, p.res.Path(), p.curMaterial.Name, keyword)
			return nil, false, nil
		case "xyz":
			xyz = true
			args = args[1:]
		}
	}

	if len(args) > 3 {
		args = args[:3]
	}
	if len(args) == 2 {
		return nil, false, fmt.Errorf(`unsupported syntax for "%s"; expected 1 or 3 arguments; got 2`, keyword)
	}
	vals, err := parseFloats(keyword, args, 1)
	if err != nil {
		return nil, false, err
	}

	color := types.Vec3{vals[0], vals[0], vals[0]}
	copy(color[1:], vals[1:])
	return &color, xyz, nil
}

func (p *materialLibParser) parseTexture(keyword string, args []string) error {
	tm, err := p.loadTextureMap(keyword, args)
	if err != nil {
		return err
	}

	*textureTargets[mtlKeywords[strings.ToLower(keyword)]](p.curMaterial) = tm
	return nil
}

// Each refl statement adds another reflection map.
func (p *materialLibParser) parseReflection(keyword string, args []string) error {
	tm, err := p.loadTextureMap(keyword, args)
	if err != nil {
		return err
	}

	p.curMaterial.ReflectionTextures = append(p.curMaterial.ReflectionTextures, tm)
	return nil
}
