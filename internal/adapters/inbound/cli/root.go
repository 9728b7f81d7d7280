package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/archtidy/archtidy/internal/adapters/outbound/gitinfo"
	"github.com/archtidy/archtidy/internal/adapters/outbound/probes"
	"github.com/archtidy/archtidy/internal/adapters/outbound/prompt"
	"github.com/archtidy/archtidy/internal/adapters/outbound/shell"
	"github.com/archtidy/archtidy/internal/adapters/outbound/tui"
	"github.com/archtidy/archtidy/internal/application"
	"github.com/archtidy/archtidy/internal/domain"
)

var (
	version = "dev"
	commit  = "none"
)

// ProbeFactory builds a fresh probe set for one run.
type ProbeFactory func() []domain.Probe

func defaultProbes() []domain.Probe {
	return probes.Default(probes.Deps{Runner: shell.New(), Repos: gitinfo.New()})
}

func newRootCmd(newProbes ProbeFactory) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "archtidy",
		Short: "Routine maintenance checks for an Arch Linux workstation",
		Long: "archtidy runs a set of maintenance checks concurrently, prints what each one found " +
			"and, with --apply, offers to fix the findings one by one.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			return setupLogger(c, opts.logLevel)
		},
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := opts.load(c, newProbes)
			if err != nil {
				return err
			}
			return runChecks(c, cfg, newProbes)
		},
	}

	opts.bind(cmd)

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newProbesCmd(opts, newProbes))
	cmd.AddCommand(newMCPCmd(opts, newProbes))
	return cmd
}

func runChecks(c *cobra.Command, cfg domain.Config, newProbes ProbeFactory) error {
	ctx := log.Logger.WithContext(c.Context())

	selected := probes.Enabled(newProbes(), cfg)
	reporter := tui.NewReporter(c.OutOrStdout(), c.ErrOrStderr())
	prompter := prompt.New(c.InOrStdin(), c.OutOrStdout())

	svc := application.NewMaintenanceService(selected, reporter, prompter)
	_, err := svc.Run(ctx, cfg)
	return err
}

// setupLogger writes human-readable logs to stderr at the requested level.
func setupLogger(c *cobra.Command, levelStr string) error {
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid log level %q", levelStr)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: c.ErrOrStderr(), TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	return nil
}

// NewRootCmdForTest returns the root command wired to the given probes.
func NewRootCmdForTest(newProbes ProbeFactory) *cobra.Command {
	return newRootCmd(newProbes)
}

// Execute runs the CLI. An interrupt cancels the context, which also stops
// any command a probe is running.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCmd(defaultProbes).ExecuteContext(ctx)
}
