package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archtidy/archtidy/internal/adapters/outbound/config"
	"github.com/archtidy/archtidy/internal/domain"
)

// options are the persistent flags shared by the root command and its
// subcommands.
type options struct {
	apply       bool
	maxPackages int
	maxDisk     int
	maxRepos    int
	skip        []string
	configPath  string
	logLevel    string
}

func (o *options) bind(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.BoolVar(&o.apply, "apply", false, "Offer to apply available fixes after the checks")
	f.IntVar(&o.maxPackages, "max-packages", domain.DefaultLimits[domain.CategoryPackages], "Maximum number of packages to list")
	f.IntVar(&o.maxDisk, "max-disk-usage", domain.DefaultLimits[domain.CategoryDisk], "Maximum number of directories in the disk usage report")
	f.IntVar(&o.maxRepos, "max-repos", domain.DefaultLimits[domain.CategoryRepos], "Maximum number of repositories to list")
	f.StringSliceVar(&o.skip, "skip", nil, "Probes to skip (comma-separated)")
	f.StringVar(&o.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/archtidy/config.yaml)")
	f.StringVarP(&o.logLevel, "log", "l", "warn", "Set log level. Available: trace, debug, info, warn, error")
}

// load reads the config file and lays explicitly set flags over it.
func (o *options) load(cmd *cobra.Command, newProbes ProbeFactory) (domain.Config, error) {
	loader := config.New(domain.ProbeNames(newProbes()))

	path := o.configPath
	if cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); err != nil {
			return domain.Config{}, fmt.Errorf("config file: %w", err)
		}
	} else {
		path = config.DefaultPath()
	}

	cfg, err := loader.Load(path)
	if err != nil {
		return domain.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("apply") {
		cfg.Apply = o.apply
	}
	limits := map[string]domain.Category{
		"max-packages":   domain.CategoryPackages,
		"max-disk-usage": domain.CategoryDisk,
		"max-repos":      domain.CategoryRepos,
	}
	values := map[string]int{
		"max-packages":   o.maxPackages,
		"max-disk-usage": o.maxDisk,
		"max-repos":      o.maxRepos,
	}
	for flag, cat := range limits {
		if flags.Changed(flag) {
			if cfg.Limits == nil {
				cfg.Limits = map[domain.Category]int{}
			}
			cfg.Limits[cat] = values[flag]
		}
	}
	if flags.Changed("skip") {
		cfg.Skip = o.skip
	}

	if err := loader.Finish(&cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}
