package writer

import (
	"archive/zip"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/achilleasa/wavefront/asset/scene"
	"github.com/achilleasa/wavefront/log"
)

const (
	dataFile = "model.bin"
)

type zipModelWriter struct {
	logger   log.Logger
	filename string
}

// Create a new zip model writer.
func newZipModelWriter(filename string) *zipModelWriter {
	return &zipModelWriter{
		logger:   log.New("zip writer"),
		filename: filename,
	}
}

// Write a gob-encoded copy of the model into a zip file.
func (w *zipModelWriter) Write(model *scene.Model) error {
	w.logger.Noticef(`writing compiled model to "%s"`, w.filename)
	start := time.Now()

	f, err := os.Create(w.filename)
	if err != nil {
		return err
	}

	err = encode(f, model)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(w.filename)
		return fmt.Errorf("zipModelWriter: could not write %s: %w", w.filename, err)
	}

	w.logger.Noticef("wrote compiled model in %d ms", time.Since(start).Nanoseconds()/1e6)
	return nil
}

func encode(out io.Writer, model *scene.Model) error {
	zw := zip.NewWriter(out)
	entry, err := zw.Create(dataFile)
	if err != nil {
		return err
	}

	if err = gob.NewEncoder(entry).Encode(model); err != nil {
		return err
	}
	return zw.Close()
}
