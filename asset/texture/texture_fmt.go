package texture

import "fmt"

type Format uint32

const (
	Luminance8 Format = iota
	Rgba8
)

// Get the number of bytes used by a single texel.
func (f Format) BytesPerTexel() int {
	switch f {
	case Luminance8:
		return 1
	default:
		return 4
	}
}

func (f Format) String() string {
	switch f {
	case Luminance8:
		return "L8"
	case Rgba8:
		return "RGBA8"
	}
	return fmt.Sprintf("Format(%d)", uint32(f))
}
