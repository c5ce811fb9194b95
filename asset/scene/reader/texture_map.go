package reader

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/achilleasa/wavefront/asset"
	"github.com/achilleasa/wavefront/asset/material"
	"github.com/achilleasa/wavefront/asset/texture"
	"github.com/achilleasa/wavefront/types"
)

// Options accepted by texture map directives.
type mapFlag uint8

const (
	flagBlendU mapFlag = iota
	flagBlendV
	flagBoost
	flagModifyMap
	flagOffset
	flagScale
	flagTurbulence
	flagTexRes
	flagClamp
	flagBumpMultiplier
	flagChannel
	flagType
	numMapFlags

	// Assigned to flags that are not recognized. Their arguments are discarded.
	flagUnknown
)

var mapFlags = map[string]mapFlag{
	"-blendu":  flagBlendU,
	"-blendv":  flagBlendV,
	"-boost":   flagBoost,
	"-mm":      flagModifyMap,
	"-o":       flagOffset,
	"-s":       flagScale,
	"-t":       flagTurbulence,
	"-texres":  flagTexRes,
	"-clamp":   flagClamp,
	"-bm":      flagBumpMultiplier,
	"-imfchan": flagChannel,
	"-type":    flagType,
}

// A resolver applies the arguments collected for a flag to a texture map.
type flagResolver func(tm *material.TextureMap, flag string, args []string) error

var flagResolvers = [numMapFlags]flagResolver{
	flagBlendU: func(tm *material.TextureMap, _ string, args []string) error {
		tm.HorizontalBlend = parseSwitch(args, true)
		return nil
	},
	flagBlendV: func(tm *material.TextureMap, _ string, args []string) error {
		tm.VerticalBlend = parseSwitch(args, true)
		return nil
	},
	flagBoost: func(tm *material.TextureMap, flag string, args []string) (err error) {
		tm.Boost, err = parseScalarFlag(flag, args)
		return err
	},
	flagModifyMap: func(tm *material.TextureMap, flag string, args []string) error {
		vals, err := parseFloats(flag, args, 2)
		if err != nil {
			return err
		}
		tm.AdditiveOffset, tm.ContrastMultiplier = &vals[0], &vals[1]
		return nil
	},
	flagOffset: func(tm *material.TextureMap, flag string, args []string) (err error) {
		tm.Offset, err = parseFlagVec3(flag, args, 0)
		return err
	},
	flagScale: func(tm *material.TextureMap, flag string, args []string) (err error) {
		tm.Scale, err = parseFlagVec3(flag, args, 1)
		return err
	},
	flagTurbulence: func(tm *material.TextureMap, flag string, args []string) (err error) {
		tm.Turbulence, err = parseFlagVec3(flag, args, 0)
		return err
	},
	flagTexRes: func(tm *material.TextureMap, flag string, args []string) (err error) {
		tm.Resolution, err = parseScalarFlag(flag, args)
		return err
	},
	flagClamp: func(tm *material.TextureMap, _ string, args []string) error {
		tm.Clamp = parseSwitch(args, false)
		return nil
	},
	flagBumpMultiplier: func(tm *material.TextureMap, flag string, args []string) (err error) {
		tm.BumpMultiplier, err = parseScalarFlag(flag, args)
		return err
	},
	flagChannel: func(tm *material.TextureMap, flag string, args []string) error {
		if len(args) < 1 {
			return fmt.Errorf(`unsupported syntax for "%s"; expected 1 argument; got 0`, flag)
		}
		channel, err := material.ParseBumpChannel(args[0])
		if err != nil {
			return err
		}
		tm.Channel = &channel
		return nil
	},
	flagType: func(tm *material.TextureMap, flag string, args []string) error {
		if len(args) < 1 {
			return fmt.Errorf(`unsupported syntax for "%s"; expected 1 argument; got 0`, flag)
		}
		mapType, err := material.ParseReflectionMapType(args[0])
		if err != nil {
			return err
		}
		tm.ReflectionType = &mapType
		return nil
	},
}

// Check whether a token starts a new flag. Negative numbers are arguments.
func isFlag(token string) bool {
	if !strings.HasPrefix(token, "-") {
		return false
	}
	_, err := strconv.ParseFloat(token, 32)
	return err != nil
}

// Parse an on/off switch. Without an argument the switch is set to defVal.
func parseSwitch(args []string, defVal bool) *bool {
	val := defVal
	if len(args) > 0 {
		if defVal {
			val = args[0] != "off"
		} else {
			val = args[0] == "on"
		}
	}
	return &val
}

func parseScalarFlag(flag string, args []string) (*float32, error) {
	val, err := parseFloat32(flag, args)
	if err != nil {
		return nil, err
	}
	return &val, nil
}

// Parse a u [v [w]] vector; omitted components are set to defVal.
func parseFlagVec3(flag string, args []string, defVal float32) (*types.Vec3, error) {
	if len(args) > 3 {
		args = args[:3]
	}
	vals, err := parseFloats(flag, args, 1)
	if err != nil {
		return nil, err
	}

	v := types.Vec3{defVal, defVal, defVal}
	copy(v[:], vals)
	return &v, nil
}

// Parse the arguments of a texture map directive. The last token names the
// image file; the tokens before it are flags followed by their arguments.
// The returned map is named "<material>_<directive>".
func parseTextureMap(materialName, directive string, tokens []string) (*material.TextureMap, string, error) {
	if len(tokens) == 0 {
		return nil, "", fmt.Errorf(`unsupported syntax for "%s"; expected a texture file`, directive)
	}

	file := tokens[len(tokens)-1]
	tm := &material.TextureMap{
		Name: materialName + "_" + directive,
	}

	var (
		curFlag  = flagUnknown
		flagName string
		args     []string
	)
	resolve := func() error {
		if curFlag == flagUnknown {
			return nil
		}
		return flagResolvers[curFlag](tm, flagName, args)
	}

	for _, tok := range tokens[:len(tokens)-1] {
		if !isFlag(tok) {
			args = append(args, tok)
			continue
		}

		if err := resolve(); err != nil {
			return nil, "", err
		}

		var known bool
		flagName, args = tok, nil
		if curFlag, known = mapFlags[tok]; !known {
			curFlag = flagUnknown
		}
	}
	if err := resolve(); err != nil {
		return nil, "", err
	}

	// Each cube face of a reflection map needs a distinct name.
	if tm.ReflectionType != nil && *tm.ReflectionType != material.ReflectionSphere {
		tm.Name += "_" + string(*tm.ReflectionType)
	}

	return tm, file, nil
}

// Parse a texture map directive for the current material, then fetch and
// decode the image it references.
func (p *materialLibParser) loadTextureMap(directive string, args []string) (*material.TextureMap, error) {
	tm, file, err := parseTextureMap(p.curMaterial.Name, directive, args)
	if err != nil {
		return nil, err
	}

	r := p.r
	var imgRes *asset.Resource
	if r.opts.ImageDir != "" && !path.IsAbs(file) {
		imgRes, err = r.opts.Fetcher.Fetch(path.Join(r.opts.ImageDir, file), nil)
	} else {
		imgRes, err = r.opts.Fetcher.Fetch(file, p.res)
	}
	if err != nil {
		return nil, fmt.Errorf(`material "%s": could not fetch texture "%s": %w`, p.curMaterial.Name, file, err)
	}
	defer imgRes.Close()

	tex, err := texture.New(tm.Name, imgRes, r.opts.FlipTextures)
	if err != nil {
		return nil, fmt.Errorf(`material "%s": %w`, p.curMaterial.Name, err)
	}

	tm.Path = imgRes.Path()
	if _, exists := r.model.Textures[tm.Name]; exists {
		r.logger.Warningf(`texture "%s" already defined; replacing it with "%s"`, tm.Name, tm.Path)
	}
	r.model.Textures[tm.Name] = tex

	r.logger.Debugf(`loaded %s texture "%s" (%dx%d) from "%s"`, tex.Format, tm.Name, tex.Width, tex.Height, tm.Path)
	return tm, nil
}
