package domain

import "context"

// CommandRunner executes external programs on the host.
type CommandRunner interface {
	// Output runs the command with stdin closed and returns its stdout.
	// A non-zero exit is reported as *CommandError together with any stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Run runs the command with stdin closed and its output attached to the
	// terminal.
	Run(ctx context.Context, name string, args ...string) error
}

// Prompter asks the user a yes/no question and blocks for the answer.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// Reporter presents run progress to the user.
type Reporter interface {
	Result(r Result)
	CheckFailed(probe string, err error)
	FixPlan(probe, description string)
	Fixed(probe string)
	FixFailed(probe string, err error)
	Skipped(probe string)
	Summary(s Summary)
}

// RepoInspector reports the worktree state of git repositories.
type RepoInspector interface {
	IsGitRepo(path string) bool
	Status(path string) (RepoStatus, error)
}

// RepoStatus summarizes uncommitted work in one repository.
type RepoStatus struct {
	Path      string `json:"path"`
	Branch    string `json:"branch,omitempty"`
	Modified  int    `json:"modified"`
	Untracked int    `json:"untracked"`
}

// Dirty reports whether the worktree has any uncommitted changes.
func (s RepoStatus) Dirty() bool { return s.Modified+s.Untracked > 0 }
