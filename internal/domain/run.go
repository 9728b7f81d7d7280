package domain

// State tracks a probe through one run.
//
//	pending -> checked | check-failed
//	checked -> awaiting-confirm -> applying -> fixed | fix-failed
//	                            -> skipped
type State string

const (
	StatePending         State = "pending"
	StateCheckFailed     State = "check-failed"
	StateChecked         State = "checked"
	StateAwaitingConfirm State = "awaiting-confirm"
	StateApplying        State = "applying"
	StateFixed           State = "fixed"
	StateFixFailed       State = "fix-failed"
	StateSkipped         State = "skipped"
)

// Terminal reports whether no further transition is possible from s.
// StateChecked is terminal only for entries the fix phase does not touch.
func (s State) Terminal() bool {
	switch s {
	case StateCheckFailed, StateFixed, StateFixFailed, StateSkipped, StateChecked:
		return true
	}
	return false
}

// Entry ties a successful Result to the Probe instance that produced it.
type Entry struct {
	Probe  Probe
	Result Result
	State  State
	Err    error
}

// Failure records a probe whose check did not succeed.
type Failure struct {
	Probe string
	Err   error
}

// Run holds the outcomes of one invocation in completion order.
type Run struct {
	Entries  []Entry
	Failures []Failure
}

// Len is the number of probes accounted for.
func (r Run) Len() int { return len(r.Entries) + len(r.Failures) }

// Fixable returns the entries that reported a fix.
func (r Run) Fixable() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Result.FixAvailable {
			out = append(out, e)
		}
	}
	return out
}

// ProbeStatus is the final state of one probe.
type ProbeStatus struct {
	Probe string `json:"probe"`
	State State  `json:"state"`
	Error string `json:"error,omitempty"`
}

// Summary condenses a run after the fix phase.
type Summary struct {
	Probes      []ProbeStatus `json:"probes"`
	Fixed       int           `json:"fixed"`
	FixFailed   int           `json:"fix_failed"`
	Skipped     int           `json:"skipped"`
	CheckFailed int           `json:"check_failed"`
	Aborted     bool          `json:"aborted"`
}

// Summarize builds a Summary from the current states in run.
func Summarize(run Run, aborted bool) Summary {
	s := Summary{Aborted: aborted}
	for _, f := range run.Failures {
		s.CheckFailed++
		s.Probes = append(s.Probes, ProbeStatus{Probe: f.Probe, State: StateCheckFailed, Error: errString(f.Err)})
	}
	for _, e := range run.Entries {
		switch e.State {
		case StateFixed:
			s.Fixed++
		case StateFixFailed:
			s.FixFailed++
		case StateSkipped:
			s.Skipped++
		}
		s.Probes = append(s.Probes, ProbeStatus{Probe: e.Probe.Name(), State: e.State, Error: errString(e.Err)})
	}
	return s
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
