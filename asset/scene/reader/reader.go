package reader

import (
	"fmt"
	"strings"

	"github.com/achilleasa/wavefront/asset"
	"github.com/achilleasa/wavefront/asset/mesh"
	"github.com/achilleasa/wavefront/asset/scene"
)

// PolygonPolicy selects how faces with other than 3 or 4 vertices are handled.
type PolygonPolicy uint8

const (
	// Abort the read with an error.
	RejectPolygons PolygonPolicy = iota

	// Log a warning and skip the face.
	IgnorePolygons
)

// Options control how documents are read.
type Options struct {
	// Index width of the generated meshes.
	IndexWidth mesh.IndexWidth

	Polygons PolygonPolicy

	// If set, texture images are looked up in this directory instead of
	// relative to the material library that references them.
	ImageDir string

	// Store texture rows bottom-up.
	FlipTextures bool

	// Used to open documents, material libraries and images.
	Fetcher asset.Fetcher
}

// Get the default reader options.
func DefaultOptions() Options {
	return Options{
		IndexWidth:   mesh.Index16,
		Polygons:     RejectPolygons,
		FlipTextures: true,
		Fetcher:      asset.DefaultFetcher,
	}
}

// The Reader interface is implemented by all model readers.
type Reader interface {
	// Read model definition from a resource.
	Read(*asset.Resource) (*scene.Model, error)
}

// Read model from file. Wavefront documents (.obj) are parsed; compiled
// models (.zip) are decoded.
func ReadModel(filename string, opts Options) (*scene.Model, error) {
	if opts.Fetcher == nil {
		opts.Fetcher = asset.DefaultFetcher
	}

	// Select reader based on file extension
	var reader Reader
	if strings.HasSuffix(filename, ".obj") {
		if err := opts.IndexWidth.Validate(); err != nil {
			return nil, err
		}
		reader = newWavefrontReader(opts)
	} else if strings.HasSuffix(filename, ".zip") {
		reader = newZipModelReader()
	} else {
		return nil, fmt.Errorf("readModel: unsupported file format")
	}

	res, err := opts.Fetcher.Fetch(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return reader.Read(res)
}
