package main

import (
	"fmt"
	"os"

	"github.com/achilleasa/wavefront/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "wavefront"
	app.Usage = "parse wavefront obj/mtl models into indexed meshes"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load settings from a YAML file",
		},
		cli.StringFlag{
			Name:  "log-file",
			Usage: "also write log output to a size-rotated file",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "inspect",
			Usage: "parse a wavefront model and display its objects, groups and materials",
			Description: `
Parse a model from a wavefront obj file together with the material libraries
and textures it references, verify that every material referenced by the
geometry is defined and print a summary of the generated meshes.`,
			ArgsUsage: "model.obj",
			Action:    cmd.InspectModel,
		},
		{
			Name:  "compile",
			Usage: "compile text model representation into a binary compressed format",
			Description: `
Parse a model definition from a wavefront obj file and write the generated
meshes, materials and decoded textures to a zip archive next to the input file.
The archive can be loaded again without reparsing the text representation.`,
			ArgsUsage: "model_file1.obj model_file2.obj ...",
			Action:    cmd.CompileModel,
		},
		{
			Name:      "info",
			Usage:     "display information about a compiled model",
			ArgsUsage: "model.zip",
			Action:    cmd.ShowModelInfo,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
