package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/archtidy/archtidy/internal/domain"
)

const (
	appDir   = "archtidy"
	fileName = "config.yaml"
)

// YAMLLoader reads a YAML file over the defaults and validates the merged
// result.
type YAMLLoader struct {
	probes   []string
	validate *validator.Validate
	home     func() (string, error)
}

// New creates a YAMLLoader. probes are the names accepted in skip.
func New(probes []string) *YAMLLoader {
	return &YAMLLoader{probes: probes, validate: validator.New(), home: os.UserHomeDir}
}

// DefaultPath is $XDG_CONFIG_HOME/archtidy/config.yaml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appDir, fileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDir, fileName)
}

// Load reads path on top of domain.DefaultConfig.
// Returns the defaults if path is empty or the file does not exist.
func (l *YAMLLoader) Load(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return domain.Config{}, err
		default:
			if err := decode(data, &cfg); err != nil {
				return domain.Config{}, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
			}
		}
	}

	if err := l.Finish(&cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// Finish fills derived fields and validates cfg. The CLI calls it again after
// applying flag overrides.
func (l *YAMLLoader) Finish(cfg *domain.Config) error {
	if cfg.Home == "" {
		home, err := l.home()
		if err != nil {
			return fmt.Errorf("resolving home directory: %w", err)
		}
		cfg.Home = home
	}
	cfg.PacmanLog = expandHome(cfg.PacmanLog, cfg.Home)
	for i, root := range cfg.RepoRoots {
		cfg.RepoRoots[i] = expandHome(root, cfg.Home)
	}

	if err := l.validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.ValidateSkip(l.probes); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// decode rejects unknown keys so typos in the file surface as errors.
func decode(data []byte, cfg *domain.Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
