package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/archtidy/archtidy/internal/domain"
)

// MaintenanceService orchestrates one run:
// schedule checks -> collect results -> apply confirmed fixes.
type MaintenanceService struct {
	probes   []domain.Probe
	reporter domain.Reporter
	prompter domain.Prompter
}

// NewMaintenanceService wires the probes for a single run. Probes keep state
// between check and fix, so a service must not be reused across runs.
func NewMaintenanceService(probes []domain.Probe, reporter domain.Reporter, prompter domain.Prompter) *MaintenanceService {
	if reporter == nil {
		reporter = discardReporter{}
	}
	return &MaintenanceService{probes: probes, reporter: reporter, prompter: prompter}
}

// Run executes both phases. Probe failures are reported, not returned; the
// only error is a failed confirmation read.
func (s *MaintenanceService) Run(ctx context.Context, cfg domain.Config) (domain.Summary, error) {
	ctx, logger := withRunLogger(ctx)
	start := time.Now()

	run := s.check(ctx, cfg)
	logger.Debug().
		Int("ok", len(run.Entries)).
		Int("failed", len(run.Failures)).
		Dur("took", time.Since(start)).
		Msg("check phase finished")

	summary, err := NewFixRunner(s.prompter, s.reporter).Run(ctx, cfg, &run)
	if cfg.Apply {
		s.reporter.Summary(summary)
	}
	return summary, err
}

// CheckAll runs only the check phase and never applies anything.
func (s *MaintenanceService) CheckAll(ctx context.Context, cfg domain.Config) domain.Run {
	ctx, _ = withRunLogger(ctx)
	return s.check(ctx, cfg)
}

func (s *MaintenanceService) check(ctx context.Context, cfg domain.Config) domain.Run {
	return Collect(Schedule(ctx, cfg, s.probes), s.reporter)
}

func withRunLogger(ctx context.Context) (context.Context, *zerolog.Logger) {
	logger := zerolog.Ctx(ctx).With().Str("run", uuid.NewString()).Logger()
	return logger.WithContext(ctx), &logger
}

type discardReporter struct{}

func (discardReporter) Result(domain.Result) {}
func (discardReporter) CheckFailed(string, error) {}
func (discardReporter) FixPlan(string, string) {}
func (discardReporter) Fixed(string) {}
func (discardReporter) FixFailed(string, error) {}
func (discardReporter) Skipped(string) {}
func (discardReporter) Summary(domain.Summary) {}
