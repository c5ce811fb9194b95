package cmd

import (
	"io"
	"os"

	"github.com/achilleasa/wavefront/asset"
	"github.com/achilleasa/wavefront/config"
	"github.com/achilleasa/wavefront/log"
	"github.com/urfave/cli"
)

var logger = log.New("wavefront")

// Load the configuration and set up logging. Verbosity flags override the
// configured log level. The returned closer releases the log file, if any.
func setup(ctx *cli.Context) (*config.Config, io.Closer, error) {
	cfg, err := config.Load(ctx.GlobalString("config"))
	if err != nil {
		return nil, nil, err
	}

	closer := setupLogging(ctx, cfg)
	asset.HTTPClient.Timeout = cfg.Fetch.Timeout
	return cfg, closer, nil
}

func setupLogging(ctx *cli.Context, cfg *config.Config) io.Closer {
	var closer io.Closer = nopCloser{}
	logFile := cfg.Logging.LogFile
	if ctx.GlobalIsSet("log-file") {
		logFile = ctx.GlobalString("log-file")
	}
	if logFile != "" {
		closer = log.SetFileSink(os.Stdout, logFile, cfg.Logging.MaxSizeMB)
	}

	// Already validated by config.Load
	level, _ := log.ParseLevel(cfg.Logging.Level)
	log.SetLevel(level)

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}

	return closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
