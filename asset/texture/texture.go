package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/achilleasa/wavefront/asset"
	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// A texture image and its metadata.
type Texture struct {
	Name string
	Path string

	// The image encoding the texture was decoded from (png, jpeg, tga...).
	Encoding string
	Format   Format

	Width  uint32
	Height uint32

	Data []byte
}

// Create a new texture from a Resource. Texel rows are stored bottom-up when
// flipY is set so that v=0 addresses the bottom of the image.
func New(name string, res *asset.Resource, flipY bool) (*Texture, error) {
	// image.Decode needs to sniff the header so buffer the whole stream
	raw, err := io.ReadAll(res)
	if err != nil {
		return nil, fmt.Errorf("texture: could not read %s: %w", res.Path(), err)
	}

	img, encoding, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("texture: could not decode %s: %w", res.Path(), err)
	}

	bounds := img.Bounds()
	tex := &Texture{
		Name:     name,
		Path:     res.Path(),
		Encoding: encoding,
		Width:    uint32(bounds.Dx()),
		Height:   uint32(bounds.Dy()),
	}

	var pix []byte
	var stride int
	switch t := img.(type) {
	case *image.Gray:
		tex.Format = Luminance8
		pix, stride = t.Pix, t.Stride
	default:
		tex.Format = Rgba8
		// convert to rgba as this makes addressing by the renderer much easier
		nrgba, ok := img.(*image.NRGBA)
		if !ok {
			nrgba = image.NewNRGBA(bounds)
			draw.Draw(nrgba, bounds, img, bounds.Min, draw.Src)
		}
		pix, stride = nrgba.Pix, nrgba.Stride
	}

	rowLen := int(tex.Width) * tex.Format.BytesPerTexel()
	tex.Data = make([]byte, rowLen*int(tex.Height))
	for row := 0; row < int(tex.Height); row++ {
		dstRow := row
		if flipY {
			dstRow = int(tex.Height) - 1 - row
		}
		copy(tex.Data[dstRow*rowLen:(dstRow+1)*rowLen], pix[row*stride:row*stride+rowLen])
	}

	return tex, nil
}
