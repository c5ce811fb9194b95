package writer

import "github.com/achilleasa/wavefront/asset/scene"

// The Writer interface is implemented by all model writers.
type Writer interface {
	// Write model definition
	Write(*scene.Model) error
}

// Write model to binary format.
func WriteModel(model *scene.Model, filename string) error {
	writer := newZipModelWriter(filename)
	return writer.Write(model)
}
