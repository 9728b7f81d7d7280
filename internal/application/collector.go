package application

import "github.com/archtidy/archtidy/internal/domain"

// Collect drains the batch, reporting each outcome as it arrives, and returns
// the run once every task has finished. Probes whose check failed are kept
// out of Entries and can never reach the fix phase.
func Collect(b *Batch, reporter domain.Reporter) domain.Run {
	run := domain.Run{Entries: make([]domain.Entry, 0, b.Size())}

	for o := range b.Outcomes() {
		if o.Err != nil {
			reporter.CheckFailed(o.Probe.Name(), o.Err)
			run.Failures = append(run.Failures, domain.Failure{Probe: o.Probe.Name(), Err: o.Err})
			continue
		}
		reporter.Result(o.Result)
		run.Entries = append(run.Entries, domain.Entry{
			Probe:  o.Probe,
			Result: o.Result,
			State:  domain.StateChecked,
		})
	}

	b.Wait()
	return run
}
