package reader

import (
	"archive/zip"
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"time"

	"github.com/achilleasa/wavefront/asset"
	"github.com/achilleasa/wavefront/asset/scene"
	"github.com/achilleasa/wavefront/asset/texture"
	"github.com/achilleasa/wavefront/log"
)

const (
	dataFile = "model.bin"
)

type zipModelReader struct {
	logger log.Logger
}

// Create a new zip model reader.
func newZipModelReader() *zipModelReader {
	return &zipModelReader{
		logger: log.New("zip reader"),
	}
}

// Read a compiled model from a zip file.
func (p *zipModelReader) Read(modelRes *asset.Resource) (*scene.Model, error) {
	p.logger.Noticef(`loading compiled model from "%s"`, modelRes.Path())
	start := time.Now()

	// zip package requires a reader implementing ReaderAt. To work around
	// this requirement we read the entire zip file into memory and create
	// a reader from the bytes package that implements ReaderAt
	data, err := io.ReadAll(modelRes)
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("zipModelReader: %s: %w", modelRes.Path(), err)
	}

	var model *scene.Model
	for _, f := range zr.File {
		switch f.Name {
		case dataFile:
		default:
			p.logger.Warningf("unknown file %s in model zip file; skipping", f.Name)
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		model = &scene.Model{}
		err = gob.NewDecoder(rc).Decode(model)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("zipModelReader: failed to load %s: %w", f.Name, err)
		}
	}

	if model == nil {
		return nil, fmt.Errorf("zipModelReader: %s does not contain %s", modelRes.Path(), dataFile)
	}
	if model.Textures == nil {
		model.Textures = make(map[string]*texture.Texture)
	}

	p.logger.Noticef("loaded model in %d ms", time.Since(start).Nanoseconds()/1e6)
	return model, nil
}
