package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	env "github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileNames are probed in order in every directory on the way up.
var FileNames = []string{"xfmt.toml", ".xfmt.toml", "xfmt.yaml", ".xfmt.yaml", "xfmt.yml"}

type LoadOptions struct {
	// Dir is where the upward search starts; "" means the working directory.
	Dir string
	// File skips the search and loads this path.
	File string
	// EnvFile is loaded into the process environment before overlaying.
	EnvFile string
	// NoFile disables file lookup; only defaults and environment apply.
	NoFile bool
}

// Load builds a Config from defaults, the nearest config file and the
// XFMT_* environment, in that order, and validates the result.
func Load(opt LoadOptions) (*Config, error) {
	cfg := Default()

	if opt.EnvFile != "" {
		if err := godotenv.Load(opt.EnvFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %q: %w", opt.EnvFile, err)
		}
	}

	path := opt.File
	if path == "" && !opt.NoFile {
		found, ok, err := Find(opt.Dir)
		if err != nil {
			return nil, err
		}
		if ok {
			path = found
		}
	}
	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
		cfg.Path = path
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		if cfg.Path != "" {
			return nil, fmt.Errorf("%s: %w", cfg.Path, err)
		}
		return nil, err
	}
	return cfg, nil
}

// Find walks up from startDir to locate the nearest config file.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// decodeFile overlays the keys present in path onto cfg.
func decodeFile(path string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		meta, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("%s: %w: unknown key %q", path, ErrInvalidValue, undecoded[0].String())
		}
		return nil
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
		return nil
	default:
		return fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}
