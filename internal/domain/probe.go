package domain

import "context"

// Probe is a diagnostic unit with an optional remediation step.
//
// Check runs concurrently with other probes and may only write the probe's own
// fields. Whatever it records there is read back by DescribeFix and ApplyFix,
// which are called later, sequentially, on the same instance.
type Probe interface {
	Name() string
	Check(ctx context.Context, cfg Config) (Result, error)
	DescribeFix(cfg Config) string
	ApplyFix(ctx context.Context, cfg Config) error
}

// NoFix provides the default fix behaviour for probes that only report.
type NoFix struct{}

func (NoFix) DescribeFix(Config) string { return "" }

func (NoFix) ApplyFix(context.Context, Config) error { return ErrNoFix }

// ProbeNames returns the names of the given probes in order.
func ProbeNames(probes []Probe) []string {
	names := make([]string, 0, len(probes))
	for _, p := range probes {
		names = append(names, p.Name())
	}
	return names
}
