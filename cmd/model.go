package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/achilleasa/wavefront/asset/scene/reader"
	"github.com/achilleasa/wavefront/asset/scene/writer"
	"github.com/urfave/cli"
)

// Parse a wavefront model, check its material bindings and display its stats.
func InspectModel(ctx *cli.Context) error {
	cfg, closer, err := setup(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()

	if ctx.NArg() != 1 {
		return errors.New("missing wavefront model file")
	}

	opts, err := cfg.ReaderOptions()
	if err != nil {
		return err
	}

	modelFile := ctx.Args().First()
	model, err := reader.ReadModel(modelFile, opts)
	if err != nil {
		return err
	}

	bindings, err := model.Resolve()
	if err != nil {
		return err
	}

	for _, b := range bindings {
		logger.Debugf("%s -> material %q", b.Name(), b.Material.Name)
	}
	logger.Noticef("model information:\n%s", model.Stats())
	return nil
}

// Compile model to binary format.
func CompileModel(ctx *cli.Context) error {
	cfg, closer, err := setup(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()

	opts, err := cfg.ReaderOptions()
	if err != nil {
		return err
	}

	for idx := 0; idx < ctx.NArg(); idx++ {
		modelFile := ctx.Args().Get(idx)
		if !strings.HasSuffix(modelFile, ".obj") {
			logger.Warningf("skipping unsupported file %s", modelFile)
			continue
		}

		logger.Noticef("parsing and compiling model: %s", modelFile)
		model, err := reader.ReadModel(modelFile, opts)
		if err != nil {
			return err
		}

		// Refuse to compile models with dangling material references
		if _, err = model.Resolve(); err != nil {
			return err
		}

		// Display compiled model info
		logger.Noticef("model information:\n%s", model.Stats())

		zipFile := strings.TrimSuffix(modelFile, ".obj") + ".zip"
		err = writer.WriteModel(model, zipFile)
		if err != nil {
			return fmt.Errorf("compiling %s: %w", modelFile, err)
		}
	}

	return nil
}

// Display compiled model info.
func ShowModelInfo(ctx *cli.Context) error {
	_, closer, err := setup(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()

	if ctx.NArg() != 1 {
		return errors.New("missing compiled model zip file")
	}

	modelFile := ctx.Args().First()
	if !strings.HasSuffix(modelFile, ".zip") {
		return errors.New("only compiled model files with a .zip extension are supported")
	}

	model, err := reader.ReadModel(modelFile, reader.DefaultOptions())
	if err != nil {
		return err
	}

	// Display compiled model info
	logger.Noticef("model information:\n%s", model.Stats())

	return nil
}
