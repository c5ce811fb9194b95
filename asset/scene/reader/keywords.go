package reader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/achilleasa/wavefront/types"
)

// Statements recognized in wavefront object documents.
type objKeyword uint8

const (
	objVertex objKeyword = iota
	objNormal
	objTexCoord
	objFace
	objObject
	objGroup
	objUseMaterial
	objMaterialLib
	objCall
	numObjKeywords
)

// Object keywords are case-sensitive.
var objKeywords = map[string]objKeyword{
	"v":      objVertex,
	"vn":     objNormal,
	"vt":     objTexCoord,
	"f":      objFace,
	"o":      objObject,
	"g":      objGroup,
	"usemtl": objUseMaterial,
	"mtllib": objMaterialLib,
	"call":   objCall,
}

// Statements recognized in material libraries.
type mtlKeyword uint8

const (
	mtlNewMaterial mtlKeyword = iota
	mtlIllum
	mtlDiffuse
	mtlAmbient
	mtlSpecular
	mtlSpecularExp
	mtlDissolve
	mtlTransparency
	mtlOpticalDensity
	mtlRoughness
	mtlMetallic
	mtlSheen
	mtlClearcoatThickness
	mtlClearcoatRoughness
	mtlEmissive
	mtlAnisotropy
	mtlAnisotropyRotation
	mtlTransmissionFilter
	mtlMapAmbient
	mtlMapDiffuse
	mtlMapSpecular
	mtlMapSpecularExp
	mtlMapDissolve
	mtlReflection
	mtlMapBump
	mtlBump
	mtlDisplacement
	mtlDecal
	mtlMapRoughness
	mtlMapMetallic
	mtlMapSheen
	mtlMapEmissive
	mtlNormal
	numMtlKeywords
)

// Material keywords are matched case-insensitively; the table keys are lowercase.
var mtlKeywords = map[string]mtlKeyword{
	"newmtl":   mtlNewMaterial,
	"illum":    mtlIllum,
	"kd":       mtlDiffuse,
	"ka":       mtlAmbient,
	"ks":       mtlSpecular,
	"ns":       mtlSpecularExp,
	"d":        mtlDissolve,
	"tr":       mtlTransparency,
	"ni":       mtlOpticalDensity,
	"pr":       mtlRoughness,
	"pm":       mtlMetallic,
	"ps":       mtlSheen,
	"pc":       mtlClearcoatThickness,
	"pcr":      mtlClearcoatRoughness,
	"ke":       mtlEmissive,
	"aniso":    mtlAnisotropy,
	"anisor":   mtlAnisotropyRotation,
	"tf":       mtlTransmissionFilter,
	"map_ka":   mtlMapAmbient,
	"map_kd":   mtlMapDiffuse,
	"map_ks":   mtlMapSpecular,
	"map_ns":   mtlMapSpecularExp,
	"map_d":    mtlMapDissolve,
	"refl":     mtlReflection,
	"map_bump": mtlMapBump,
	"bump":     mtlBump,
	"disp":     mtlDisplacement,
	"decal":    mtlDecal,
	"map_pr":   mtlMapRoughness,
	"map_pm":   mtlMapMetallic,
	"map_ps":   mtlMapSheen,
	"map_ke":   mtlMapEmissive,
	"norm":     mtlNormal,
}

// Split a line into its keyword and arguments. Blank lines and comments
// yield ok == false. Anything following a '#' token is dropped.
func tokenize(line string) (keyword string, args []string, ok bool) {
	tokens := strings.Fields(line)
	for idx, tok := range tokens {
		if strings.HasPrefix(tok, "#") {
			tokens = tokens[:idx]
			break
		}
	}

	if len(tokens) == 0 {
		return "", nil, false
	}
	return tokens[0], tokens[1:], true
}

// Parse a float scalar value.
func parseFloat32(keyword string, args []string) (float32, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf(`unsupported syntax for "%s"; expected 1 argument; got %d`, keyword, len(args))
	}

	val, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		return 0, fmt.Errorf(`could not parse argument for "%s": %w`, keyword, err)
	}

	return float32(val), nil
}

// Parse a list of float values. At least min values must be present.
func parseFloats(keyword string, args []string, min int) ([]float32, error) {
	if len(args) < min {
		return nil, fmt.Errorf(`unsupported syntax for "%s"; expected %d arguments; got %d`, keyword, min, len(args))
	}

	out := make([]float32, len(args))
	for idx, arg := range args {
		val, err := strconv.ParseFloat(arg, 32)
		if err != nil {
			return nil, fmt.Errorf(`could not parse argument %d for "%s": %w`, idx+1, keyword, err)
		}
		out[idx] = float32(val)
	}
	return out, nil
}

// Parse a Vec3 row. Values past the third are ignored.
func parseVec3(keyword string, args []string) (types.Vec3, error) {
	if len(args) > 3 {
		args = args[:3]
	}
	vals, err := parseFloats(keyword, args, 3)
	if err != nil {
		return types.Vec3{}, err
	}
	return types.Vec3{vals[0], vals[1], vals[2]}, nil
}

// Parse a Vec2 row. A missing v coordinate defaults to 0 and a w coordinate is ignored.
func parseVec2(keyword string, args []string) (types.Vec2, error) {
	if len(args) > 2 {
		args = args[:2]
	}
	vals, err := parseFloats(keyword, args, 1)
	if err != nil {
		return types.Vec2{}, err
	}

	v := types.Vec2{vals[0], 0}
	if len(vals) > 1 {
		v[1] = vals[1]
	}
	return v, nil
}
