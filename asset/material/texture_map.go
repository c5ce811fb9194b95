package material

import (
	"fmt"

	"github.com/achilleasa/wavefront/types"
)

// BumpChannel selects the image channel used by a bump or scalar map (-imfchan).
type BumpChannel string

const (
	ChannelRed       BumpChannel = "r"
	ChannelGreen     BumpChannel = "g"
	ChannelBlue      BumpChannel = "b"
	ChannelMatte     BumpChannel = "m"
	ChannelLuminance BumpChannel = "l"
	ChannelZDepth    BumpChannel = "z"
)

// Parse a -imfchan argument.
func ParseBumpChannel(s string) (BumpChannel, error) {
	switch c := BumpChannel(s); c {
	case ChannelRed, ChannelGreen, ChannelBlue, ChannelMatte, ChannelLuminance, ChannelZDepth:
		return c, nil
	}
	return "", fmt.Errorf("unknown image channel %q; expected one of r, g, b, m, l, z", s)
}

// ReflectionMapType selects how a reflection map is projected (-type).
type ReflectionMapType string

const (
	ReflectionSphere     ReflectionMapType = "sphere"
	ReflectionCubeTop    ReflectionMapType = "cube_top"
	ReflectionCubeBottom ReflectionMapType = "cube_bottom"
	ReflectionCubeFront  ReflectionMapType = "cube_front"
	ReflectionCubeBack   ReflectionMapType = "cube_back"
	ReflectionCubeLeft   ReflectionMapType = "cube_left"
	ReflectionCubeRight  ReflectionMapType = "cube_right"
)

// Parse a -type argument.
func ParseReflectionMapType(s string) (ReflectionMapType, error) {
	switch t := ReflectionMapType(s); t {
	case ReflectionSphere, ReflectionCubeTop, ReflectionCubeBottom, ReflectionCubeFront,
		ReflectionCubeBack, ReflectionCubeLeft, ReflectionCubeRight:
		return t, nil
	}
	return "", fmt.Errorf("unknown reflection map type %q", s)
}

// TextureMap references an image used by a material channel together with
// the options that control how it is sampled.
type TextureMap struct {
	// Generated as <material name>_<map directive>.
	Name string

	// Location of the image, resolved against the referencing file.
	Path string

	HorizontalBlend *bool    // -blendu
	VerticalBlend   *bool    // -blendv
	Boost           *float32 // -boost

	// -mm
	AdditiveOffset     *float32
	ContrastMultiplier *float32

	Offset     *types.Vec3 // -o
	Scale      *types.Vec3 // -s
	Turbulence *types.Vec3 // -t

	Resolution     *float32           // -texres
	Clamp          *bool              // -clamp
	BumpMultiplier *float32           // -bm
	Channel        *BumpChannel       // -imfchan
	ReflectionType *ReflectionMapType // -type
}
