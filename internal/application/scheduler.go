package application

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/archtidy/archtidy/internal/domain"
)

// Outcome is what one check task sends back: the probe itself, so its
// private state travels with it, and either a result or an error.
type Outcome struct {
	Probe  domain.Probe
	Result domain.Result
	Err    error
}

// Batch is a set of running check tasks.
type Batch struct {
	outcomes chan Outcome
	done     chan struct{}
	size     int
}

// Schedule starts one goroutine per probe and returns immediately.
// Every task sends exactly one Outcome; the channel closes once all have.
func Schedule(ctx context.Context, cfg domain.Config, probes []domain.Probe) *Batch {
	b := &Batch{
		// Buffered to the probe count so no task waits for the consumer.
		outcomes: make(chan Outcome, len(probes)),
		done:     make(chan struct{}),
		size:     len(probes),
	}

	var g errgroup.Group
	for _, p := range probes {
		g.Go(func() error {
			b.outcomes <- check(ctx, cfg, p)
			return nil
		})
	}

	go func() {
		_ = g.Wait() // tasks never return an error
		close(b.outcomes)
		close(b.done)
	}()
	return b
}

// Outcomes yields results in completion order.
func (b *Batch) Outcomes() <-chan Outcome { return b.outcomes }

// Size is the number of launched tasks.
func (b *Batch) Size() int { return b.size }

// Wait blocks until every task has finished.
func (b *Batch) Wait() { <-b.done }

func check(ctx context.Context, cfg domain.Config, p domain.Probe) (o Outcome) {
	o.Probe = p
	logger := zerolog.Ctx(ctx).With().Str("probe", p.Name()).Logger()
	start := time.Now()
	logger.Debug().Msg("check started")

	defer func() {
		if r := recover(); r != nil {
			o.Result = domain.Result{}
			o.Err = domain.NewCheckError(p.Name(), fmt.Errorf("panic: %v", r))
		}
		ev := logger.Debug()
		if o.Err != nil {
			ev = logger.Info().Err(o.Err)
		}
		ev.Dur("took", time.Since(start)).Bool("fix_available", o.Result.FixAvailable).Msg("check finished")
	}()

	res, err := p.Check(ctx, cfg)
	if err != nil {
		o.Err = domain.NewCheckError(p.Name(), err)
		return o
	}
	o.Result = res
	return o
}
