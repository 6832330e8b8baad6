package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// defaultTopHotspots bounds the hotspot listing when no config is
// supplied.
const defaultTopHotspots = 20

// Config tunes report generation. Every field is optional.
type Config struct {
	// HotspotDelimiter separates fields in hotspot report lines.
	HotspotDelimiter string `yaml:"hotspot_delimiter"`
	// TopHotspots caps how many hotspot records are printed.
	TopHotspots int `yaml:"top_hotspots"`
	// OutputDir receives agg.csv and summary.csv when set.
	OutputDir string `yaml:"output_dir"`
}

func loadConfig(path string) (Config, error) {
	cfg := Config{TopHotspots: defaultTopHotspots}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config file")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parse config file")
	}

	if cfg.TopHotspots <= 0 {
		cfg.TopHotspots = defaultTopHotspots
	}

	return cfg, nil
}
