package material

import (
	"bytes"
	"encoding/gob"

	"github.com/achilleasa/wavefront/types"
)

// gob omits zero values, so an attribute explicitly set to 0 or false would
// decode as unset. Materials are therefore serialized through wire structs
// that record which optional attributes are present in a bitmask.

type textureMapWire struct {
	Name    string
	Path    string
	Present uint32

	Switches [3]bool
	Scalars  [5]float32
	Vectors  [3]types.Vec3

	Channel        BumpChannel
	ReflectionType ReflectionMapType
}

type materialWire struct {
	Name    string
	Present uint64

	Scalars [11]float32
	Colors  [5]types.Vec3
	Illum   IlluminationModel

	TransmissionFilterXYZ bool

	// One entry per slot returned by textureSlots; unset slots are flagged
	// in TexturesPresent.
	TexturesPresent uint32
	Textures        []textureMapWire
	Reflections     []textureMapWire
}

func (tm *TextureMap) switches() []**bool {
	return []**bool{&tm.HorizontalBlend, &tm.VerticalBlend, &tm.Clamp}
}

func (tm *TextureMap) scalars() []**float32 {
	return []**float32{&tm.Boost, &tm.AdditiveOffset, &tm.ContrastMultiplier, &tm.Resolution, &tm.BumpMultiplier}
}

func (tm *TextureMap) vectors() []**types.Vec3 {
	return []**types.Vec3{&tm.Offset, &tm.Scale, &tm.Turbulence}
}

func (m *Material) scalars() []**float32 {
	return []**float32{
		&m.SpecularExponent, &m.Transparency, &m.OpticalDensity,
		&m.Roughness, &m.Metallic, &m.Sheen,
		&m.ClearcoatThickness, &m.ClearcoatRoughness, &m.Emissive,
		&m.Anisotropy, &m.AnisotropyRotation,
	}
}

func (m *Material) colors() []**types.Vec3 {
	return []**types.Vec3{
		&m.AmbientColor, &m.DiffuseColor, &m.SpecularColor,
		&m.TransmissionFilterColor, &m.EmissiveColor,
	}
}

func (m *Material) textureSlots() []**TextureMap {
	return []**TextureMap{
		&m.AmbientTexture, &m.DiffuseTexture, &m.SpecularColorTexture,
		&m.SpecularHighlightTexture, &m.AlphaTexture, &m.BumpTexture,
		&m.DisplacementTexture, &m.DecalTexture, &m.RoughnessTexture,
		&m.MetallicTexture, &m.SheenTexture, &m.EmissiveTexture,
		&m.NormalTexture,
	}
}

func (tm *TextureMap) toWire() textureMapWire {
	w := textureMapWire{Name: tm.Name, Path: tm.Path}

	var bit uint
	for idx, f := range tm.switches() {
		if *f != nil {
			w.Present |= 1 << bit
			w.Switches[idx] = **f
		}
		bit++
	}
	for idx, f := range tm.scalars() {
		if *f != nil {
			w.Present |= 1 << bit
			w.Scalars[idx] = **f
		}
		bit++
	}
	for idx, f := range tm.vectors() {
		if *f != nil {
			w.Present |= 1 << bit
			w.Vectors[idx] = **f
		}
		bit++
	}
	if tm.Channel != nil {
		w.Present |= 1 << bit
		w.Channel = *tm.Channel
	}
	bit++
	if tm.ReflectionType != nil {
		w.Present |= 1 << bit
		w.ReflectionType = *tm.ReflectionType
	}
	return w
}

func (w *textureMapWire) toTextureMap() *TextureMap {
	tm := &TextureMap{Name: w.Name, Path: w.Path}

	var bit uint
	for idx, f := range tm.switches() {
		if w.Present&(1<<bit) != 0 {
			v := w.Switches[idx]
			*f = &v
		}
		bit++
	}
	for idx, f := range tm.scalars() {
		if w.Present&(1<<bit) != 0 {
			v := w.Scalars[idx]
			*f = &v
		}
		bit++
	}
	for idx, f := range tm.vectors() {
		if w.Present&(1<<bit) != 0 {
			v := w.Vectors[idx]
			*f = &v
		}
		bit++
	}
	if w.Present&(1<<bit) != 0 {
		v := w.Channel
		tm.Channel = &v
	}
	bit++
	if w.Present&(1<<bit) != 0 {
		v := w.ReflectionType
		tm.ReflectionType = &v
	}
	return tm
}

// Implements gob.GobEncoder.
func (m *Material) GobEncode() ([]byte, error) {
	w := materialWire{
		Name:                  m.Name,
		TransmissionFilterXYZ: m.TransmissionFilterXYZ,
	}

	var bit uint
	for idx, f := range m.scalars() {
		if *f != nil {
			w.Present |= 1 << bit
			w.Scalars[idx] = **f
		}
		bit++
	}
	for idx, f := range m.colors() {
		if *f != nil {
			w.Present |= 1 << bit
			w.Colors[idx] = **f
		}
		bit++
	}
	if m.IlluminationModel != nil {
		w.Present |= 1 << bit
		w.Illum = *m.IlluminationModel
	}

	slots := m.textureSlots()
	w.Textures = make([]textureMapWire, len(slots))
	for idx, slot := range slots {
		if *slot != nil {
			w.TexturesPresent |= 1 << uint(idx)
			w.Textures[idx] = (*slot).toWire()
		}
	}
	for _, tm := range m.ReflectionTextures {
		w.Reflections = append(w.Reflections, tm.toWire())
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Implements gob.GobDecoder.
func (m *Material) GobDecode(data []byte) error {
	var w materialWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}

	*m = Material{
		Name:                  w.Name,
		TransmissionFilterXYZ: w.TransmissionFilterXYZ,
	}

	var bit uint
	for idx, f := range m.scalars() {
		if w.Present&(1<<bit) != 0 {
			v := w.Scalars[idx]
			*f = &v
		}
		bit++
	}
	for idx, f := range m.colors() {
		if w.Present&(1<<bit) != 0 {
			v := w.Colors[idx]
			*f = &v
		}
		bit++
	}
	if w.Present&(1<<bit) != 0 {
		v := w.Illum
		m.IlluminationModel = &v
	}

	for idx, slot := range m.textureSlots() {
		if w.TexturesPresent&(1<<uint(idx)) != 0 && idx < len(w.Textures) {
			*slot = w.Textures[idx].toTextureMap()
		}
	}
	for idx := range w.Reflections {
		m.ReflectionTextures = append(m.ReflectionTextures, w.Reflections[idx].toTextureMap())
	}
	return nil
}
