package probes_test

import (
	"context"
	"strings"
	"sync"

	"github.com/archtidy/archtidy/internal/domain"
)

type response struct {
	out string
	err error
}

// fakeRunner answers Output calls from a table keyed by the full command line
// and records every Run call.
type fakeRunner struct {
	mu        sync.Mutex
	responses map[string]response
	outputs   []string
	runs      []string
	runErr    error
}

func newRunner(responses map[string]response) *fakeRunner {
	return &fakeRunner{responses: responses}
}

func commandLine(name string, args []string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}

func (r *fakeRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	line := commandLine(name, args)
	r.outputs = append(r.outputs, line)
	resp, ok := r.responses[line]
	if !ok {
		return nil, &domain.CommandError{Name: name, Args: args, ExitCode: 127, Stderr: "unexpected command"}
	}
	return []byte(resp.out), resp.err
}

func (r *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, commandLine(name, args))
	return r.runErr
}

func exitErr(code int) error {
	return &domain.CommandError{Name: "fake", ExitCode: code}
}

type fakeRepos struct {
	statuses map[string]domain.RepoStatus
	errs     map[string]error
}

func (f *fakeRepos) IsGitRepo(path string) bool {
	_, ok := f.statuses[path]
	_, bad := f.errs[path]
	return ok || bad
}

func (f *fakeRepos) Status(path string) (domain.RepoStatus, error) {
	if err, ok := f.errs[path]; ok {
		return domain.RepoStatus{}, err
	}
	return f.statuses[path], nil
}

func testConfig(home string) domain.Config {
	cfg := domain.DefaultConfig()
	cfg.Home = home
	cfg.PacmanLog = "testdata/pacman.log"
	return cfg
}
