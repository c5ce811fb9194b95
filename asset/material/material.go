package material

import (
	"github.com/achilleasa/wavefront/types"
)

// Material describes the surface properties defined by a newmtl block.
// Unset attributes are nil.
type Material struct {
	Name string

	AmbientColor     *types.Vec3
	DiffuseColor     *types.Vec3
	SpecularColor    *types.Vec3
	SpecularExponent *float32

	// Transparency (d); Tr statements are stored as 1 - Tr.
	Transparency *float32

	// Transmission filter. TransmissionFilterXYZ is set when the color was
	// specified using the CIEXYZ form.
	TransmissionFilterColor *types.Vec3
	TransmissionFilterXYZ   bool

	OpticalDensity    *float32
	IlluminationModel *IlluminationModel

	// PBR extensions.
	Roughness          *float32
	Metallic           *float32
	Sheen              *float32
	ClearcoatThickness *float32
	ClearcoatRoughness *float32
	Emissive           *float32
	EmissiveColor      *types.Vec3
	Anisotropy         *float32
	AnisotropyRotation *float32

	// Texture maps.
	AmbientTexture           *TextureMap
	DiffuseTexture           *TextureMap
	SpecularColorTexture     *TextureMap
	SpecularHighlightTexture *TextureMap
	AlphaTexture             *TextureMap
	BumpTexture              *TextureMap
	DisplacementTexture      *TextureMap
	DecalTexture             *TextureMap
	RoughnessTexture         *TextureMap
	MetallicTexture          *TextureMap
	SheenTexture             *TextureMap
	EmissiveTexture          *TextureMap
	NormalTexture            *TextureMap

	// A material may define one reflection map per cube face.
	ReflectionTextures []*TextureMap
}

// Create a new material with no attributes set.
func New(name string) *Material {
	return &Material{Name: name}
}

// The material bound to geometry that does not select one.
func Default() *Material {
	return &Material{
		Name:         "default",
		DiffuseColor: &types.Vec3{0, 0, 0},
		Metallic:     float32Ptr(0),
		Roughness:    float32Ptr(0),
	}
}

// Get the texture maps defined by this material in declaration-independent order.
func (m *Material) TextureMaps() []*TextureMap {
	maps := []*TextureMap{
		m.AmbientTexture,
		m.DiffuseTexture,
		m.SpecularColorTexture,
		m.SpecularHighlightTexture,
		m.AlphaTexture,
		m.BumpTexture,
		m.DisplacementTexture,
		m.DecalTexture,
		m.RoughnessTexture,
		m.MetallicTexture,
		m.SheenTexture,
		m.EmissiveTexture,
		m.NormalTexture,
	}
	maps = append(maps, m.ReflectionTextures...)

	out := maps[:0]
	for _, tm := range maps {
		if tm != nil {
			out = append(out, tm)
		}
	}
	return out
}

func float32Ptr(v float32) *float32 {
	return &v
}
