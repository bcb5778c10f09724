// Package loader turns feature-flag configuration into an [ffxl.Snapshot].
//
// It owns everything the evaluation engine does not: locating the file,
// reading it, parsing YAML or JSON, and validating the schema. The schema
// mirrors the engine's feature model one-to-one:
//
//	features:
//	  new_payment_system:
//	    enabled: true
//	    onlyForUserIds: ["user-123"]
//	    environments: ["staging", "production"]
//	    rollout:
//	      percentage: 10
//	    enabledFrom: "2026-09-01T00:00:00Z"
//
// [Load] resolves its source from the environment: inline JSON in
// FFXL_CONFIG wins, then a path from FFXL_FILE or FEATURE_FLAGS_FILE, then
// ./feature-flags.yaml. Setting FFXL_DEV_MODE attaches a debug log observer
// to the snapshot.
package loader

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/matt-riley/ffxl"
	"github.com/matt-riley/ffxl/logging"
)

// DefaultFile is the path tried when no environment variable names one.
const DefaultFile = "feature-flags.yaml"

type envConfig struct {
	InlineConfig string `env:"FFXL_CONFIG"`
	File         string `env:"FFXL_FILE"`
	FileFallback string `env:"FEATURE_FLAGS_FILE"`
	DevMode      string `env:"FFXL_DEV_MODE"`
}

type document struct {
	Features yaml.Node `yaml:"features"`
}

type featureSpec struct {
	Enabled        bool         `yaml:"enabled" json:"enabled"`
	OnlyForUserIDs []string     `yaml:"onlyForUserIds" json:"onlyForUserIds"`
	Environments   []string     `yaml:"environments" json:"environments"`
	Rollout        *rolloutSpec `yaml:"rollout" json:"rollout"`
	EnabledFrom    string       `yaml:"enabledFrom" json:"enabledFrom"`
}

type rolloutSpec struct {
	Percentage int `yaml:"percentage" json:"percentage"`
}

var dotEnvOnce sync.Once

// Load builds a snapshot from the environment-configured source. The .env
// file in the working directory, if any, is applied once per process before
// the environment is read.
func Load(opts ...ffxl.Option) (*ffxl.Snapshot, error) {
	dotEnvOnce.Do(func() {
		// The .env file is optional; a missing one is not an error.
		_ = godotenv.Load()
	})

	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse loader environment: %w", err)
	}

	if isDevMode(cfg.DevMode) {
		opts = append(opts, ffxl.WithObserver(ffxl.NewLogObserver(logging.Dev())))
	}

	if cfg.InlineConfig != "" {
		snap, err := Parse([]byte(cfg.InlineConfig), opts...)
		if err == nil {
			return snap, nil
		}
		// Unparseable inline config falls through to the file source. A
		// config that parses but fails validation is a real configuration
		// error and must surface, not be shadowed by whatever the file says.
		if !errors.Is(err, errMalformed) {
			return nil, err
		}
	}

	path := cfg.File
	if path == "" {
		path = cfg.FileFallback
	}
	if path == "" {
		path = DefaultFile
	}

	return LoadFile(path, opts...)
}

// LoadFile builds a snapshot from the YAML or JSON file at path.
func LoadFile(path string, opts ...ffxl.Option) (*ffxl.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("read feature flags file %s: %w", path, err)
	}
	return Parse(data, opts...)
}

// Parse builds a snapshot from raw YAML. JSON works too, being a YAML
// subset. The order of the features mapping is preserved into the snapshot.
func Parse(data []byte, opts ...ffxl.Option) (*ffxl.Snapshot, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidConfig, errMalformed, err)
	}
	if doc.Features.IsZero() {
		return nil, fmt.Errorf("%w: missing 'features' key", ErrInvalidConfig)
	}
	if doc.Features.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: 'features' must be a mapping", ErrInvalidConfig)
	}

	content := doc.Features.Content
	features := make([]ffxl.Feature, 0, len(content)/2)
	for i := 0; i+1 < len(content); i += 2 {
		name := content[i].Value

		var spec featureSpec
		if err := content[i+1].Decode(&spec); err != nil {
			return nil, fmt.Errorf("%w: feature %q: %v", ErrInvalidConfig, name, err)
		}

		f, err := spec.toFeature(name)
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}

	snap, err := ffxl.NewSnapshot(features, opts...)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	return snap, nil
}

// Environment returns the deployment environment tag configured through
// FFXL_ENV or ENV, for hosts building evaluation contexts. Empty when
// neither is set.
func Environment() string {
	if v := os.Getenv("FFXL_ENV"); v != "" {
		return v
	}
	return os.Getenv("ENV")
}

func (spec featureSpec) toFeature(name string) (ffxl.Feature, error) {
	f := ffxl.Feature{
		Name:           name,
		Enabled:        spec.Enabled,
		OnlyForUserIDs: spec.OnlyForUserIDs,
		Environments:   spec.Environments,
	}
	if spec.Rollout != nil {
		f.Rollout = &ffxl.Rollout{Percentage: spec.Rollout.Percentage}
	}
	if spec.EnabledFrom != "" {
		from, err := time.Parse(time.RFC3339, spec.EnabledFrom)
		if err != nil {
			return ffxl.Feature{}, fmt.Errorf("%w: feature %q: enabledFrom: %v", ErrInvalidConfig, name, err)
		}
		from = from.UTC()
		f.EnabledFrom = &from
	}
	return f, nil
}

func isDevMode(v string) bool {
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
