// Package config handles loading of the tool configuration.
package config

import (
	"fmt"
	"time"

	"github.com/achilleasa/wavefront/asset"
	"github.com/achilleasa/wavefront/asset/mesh"
	"github.com/achilleasa/wavefront/asset/scene/reader"
	"github.com/achilleasa/wavefront/log"
)

// Config holds all settings.
type Config struct {
	Parser  ParserConfig  `yaml:"parser"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Logging LoggingConfig `yaml:"logging"`
}

// ParserConfig holds the settings used when reading wavefront documents.
type ParserConfig struct {
	IndexWidth   int    `yaml:"index_width"`   // 16 or 32
	Polygons     string `yaml:"polygons"`      // reject or ignore
	ImageDir     string `yaml:"image_dir"`     // Lookup dir for texture images
	FlipTextures bool   `yaml:"flip_textures"` // Store texture rows bottom-up
}

// FetchConfig holds settings for fetching remote resources.
type FetchConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	LogFile   string `yaml:"log_file"`
	MaxSizeMB int    `yaml:"max_size_mb"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Parser: ParserConfig{
			IndexWidth:   16,
			Polygons:     "reject",
			FlipTextures: true,
		},
		Fetch: FetchConfig{
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:     "notice",
			LogFile:   "",
			MaxSizeMB: 10,
		},
	}
}

// Validate checks the settings for unsupported values.
func (c *Config) Validate() error {
	if c.Parser.IndexWidth != int(mesh.Index16) && c.Parser.IndexWidth != int(mesh.Index32) {
		return fmt.Errorf("config: parser.index_width must be 16 or 32; got %d", c.Parser.IndexWidth)
	}
	if _, err := c.polygonPolicy(); err != nil {
		return err
	}
	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("config: fetch.timeout must not be negative; got %s", c.Fetch.Timeout)
	}
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("config: logging.level: %w", err)
	}
	if c.Logging.MaxSizeMB <= 0 {
		return fmt.Errorf("config: logging.max_size_mb must be positive; got %d", c.Logging.MaxSizeMB)
	}
	return nil
}

func (c *Config) polygonPolicy() (reader.PolygonPolicy, error) {
	switch c.Parser.Polygons {
	case "reject", "":
		return reader.RejectPolygons, nil
	case "ignore":
		return reader.IgnorePolygons, nil
	}
	return reader.RejectPolygons, fmt.Errorf("config: parser.polygons must be reject or ignore; got %q", c.Parser.Polygons)
}

// ReaderOptions converts the parser settings into reader options.
func (c *Config) ReaderOptions() (reader.Options, error) {
	if err := c.Validate(); err != nil {
		return reader.Options{}, err
	}

	polygons, _ := c.polygonPolicy()
	return reader.Options{
		IndexWidth:   mesh.IndexWidth(c.Parser.IndexWidth),
		Polygons:     polygons,
		ImageDir:     c.Parser.ImageDir,
		FlipTextures: c.Parser.FlipTextures,
		Fetcher:      asset.DefaultFetcher,
	}, nil
}
