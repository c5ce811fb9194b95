package material

import "fmt"

// IlluminationModel selects one of the fixed shading equations of the
// Wavefront material format. The value is carried through, not interpreted.
type IlluminationModel int

const (
	IllumColorOnAmbientOff IlluminationModel = iota
	IllumColorOnAmbientOn
	IllumHighlightOn
	IllumReflectionOnRayTraceOn
	IllumGlassOnReflectionRayTraceOn
	IllumFresnelOnRayTraceOn
	IllumRefractionOnFresnelOffRayTraceOn
	IllumRefractionOnFresnelOnRayTraceOn
	IllumReflectionOnRayTraceOff
	IllumGlassOnReflectionRayTraceOff
	IllumCastShadowsOnInvisibleSurfaces
)

var illumNames = [...]string{
	"color on, ambient off",
	"color on, ambient on",
	"highlight on",
	"reflection on, ray trace on",
	"glass on, reflection ray trace on",
	"fresnel on, ray trace on",
	"refraction on, fresnel off, ray trace on",
	"refraction on, fresnel on, ray trace on",
	"reflection on, ray trace off",
	"glass on, reflection ray trace off",
	"casts shadows onto invisible surfaces",
}

func (m IlluminationModel) String() string {
	if m >= 0 && int(m) < len(illumNames) {
		return illumNames[m]
	}
	return fmt.Sprintf("illum(%d)", int(m))
}
