package domain

import (
	"fmt"
	"slices"
)

// Category groups probes that share a result cap.
type Category string

const (
	CategoryPackages Category = "packages"
	CategoryDisk     Category = "disk"
	CategoryRepos    Category = "repos"
)

// ValidCategories enumerates all cap categories.
var ValidCategories = []Category{CategoryPackages, CategoryDisk, CategoryRepos}

// DefaultLimits are the caps used when nothing else is configured.
var DefaultLimits = map[Category]int{
	CategoryPackages: 10,
	CategoryDisk:     10,
	CategoryRepos:    20,
}

const (
	DefaultPacmanLog = "/var/log/pacman.log"
	DefaultElevate   = "sudo"
)

// Config holds the run parameters. It is built once before any probe runs
// and only read afterwards, so it is shared by all check tasks without locking.
type Config struct {
	Apply     bool             `yaml:"apply"      json:"apply"`
	Limits    map[Category]int `yaml:"limits"     json:"limits,omitempty"     validate:"dive,keys,oneof=packages disk repos,endkeys,gte=0"`
	Skip      []string         `yaml:"skip"       json:"skip,omitempty"`
	PacmanLog string           `yaml:"pacman_log" json:"pacman_log,omitempty" validate:"required"`
	Home      string           `yaml:"home"       json:"home,omitempty"`
	Elevate   string           `yaml:"elevate"    json:"elevate,omitempty"`
	RepoRoots []string         `yaml:"repo_roots" json:"repo_roots,omitempty" validate:"dive,required"`
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() Config {
	limits := make(map[Category]int, len(DefaultLimits))
	for k, v := range DefaultLimits {
		limits[k] = v
	}
	return Config{
		Limits:    limits,
		PacmanLog: DefaultPacmanLog,
		Elevate:   DefaultElevate,
	}
}

// Limit returns the cap for a category, falling back to DefaultLimits.
func (c Config) Limit(cat Category) int {
	if n, ok := c.Limits[cat]; ok {
		return n
	}
	return DefaultLimits[cat]
}

// IsSkipped reports whether the named probe is disabled.
func (c Config) IsSkipped(probe string) bool {
	return slices.Contains(c.Skip, probe)
}

// Clone returns a deep copy so the caller can finish building it privately.
func (c Config) Clone() Config {
	out := c
	if c.Limits != nil {
		out.Limits = make(map[Category]int, len(c.Limits))
		for k, v := range c.Limits {
			out.Limits[k] = v
		}
	}
	out.Skip = slices.Clone(c.Skip)
	out.RepoRoots = slices.Clone(c.RepoRoots)
	return out
}

// ValidateSkip checks that every skipped name is one of known.
func (c Config) ValidateSkip(known []string) error {
	for _, name := range c.Skip {
		if !slices.Contains(known, name) {
			return fmt.Errorf("unknown probe %q in skip (valid: %v)", name, known)
		}
	}
	return nil
}

// Command prefixes args with the configured privilege elevation command.
func (c Config) Command(name string, args ...string) (string, []string) {
	if c.Elevate == "" {
		return name, args
	}
	return c.Elevate, append([]string{name}, args...)
}
