package application

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/archtidy/archtidy/internal/domain"
)

// FixRunner applies fixes one probe at a time, each behind a confirmation.
type FixRunner struct {
	prompter domain.Prompter
	reporter domain.Reporter
}

func NewFixRunner(prompter domain.Prompter, reporter domain.Reporter) *FixRunner {
	return &FixRunner{prompter: prompter, reporter: reporter}
}

// Run walks run.Entries in order and updates their states in place.
// A failed fix is reported and the next entry is processed. A failed
// confirmation read stops the phase and is returned wrapped in
// domain.ErrConfirmationRead; fixes applied before it stay applied.
func (r *FixRunner) Run(ctx context.Context, cfg domain.Config, run *domain.Run) (domain.Summary, error) {
	if !cfg.Apply {
		return domain.Summarize(*run, false), nil
	}

	logger := zerolog.Ctx(ctx)
	for i := range run.Entries {
		e := &run.Entries[i]
		if !e.Result.FixAvailable {
			continue
		}
		name := e.Probe.Name()

		e.State = domain.StateAwaitingConfirm
		r.reporter.FixPlan(name, e.Probe.DescribeFix(cfg))

		ok, err := r.prompter.Confirm(fmt.Sprintf("Apply fix for %s?", name))
		if err != nil {
			e.State = domain.StateChecked
			logger.Debug().Err(err).Str("probe", name).Msg("confirmation aborted fix phase")
			return domain.Summarize(*run, true), fmt.Errorf("%w for %s: %w", domain.ErrConfirmationRead, name, err)
		}
		if !ok {
			e.State = domain.StateSkipped
			r.reporter.Skipped(name)
			continue
		}

		e.State = domain.StateApplying
		logger.Debug().Str("probe", name).Msg("applying fix")
		if err := e.Probe.ApplyFix(ctx, cfg); err != nil {
			e.State = domain.StateFixFailed
			e.Err = domain.NewFixError(name, err)
			r.reporter.FixFailed(name, e.Err)
			continue
		}
		e.State = domain.StateFixed
		r.reporter.Fixed(name)
	}

	return domain.Summarize(*run, false), nil
}
