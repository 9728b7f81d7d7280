package application_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archtidy/archtidy/internal/application"
	"github.com/archtidy/archtidy/internal/domain"
)

func runOf(fakes ...*fakeProbe) *domain.Run {
	run := &domain.Run{}
	for _, f := range fakes {
		res, err := f.Check(context.Background(), domain.DefaultConfig())
		if err != nil {
			run.Failures = append(run.Failures, domain.Failure{Probe: f.name, Err: err})
			continue
		}
		run.Entries = append(run.Entries, domain.Entry{Probe: f, Result: res, State: domain.StateChecked})
	}
	return run
}

func TestFixRunner_ApplyDisabled(t *testing.T) {
	a := &fakeProbe{name: "a", fixAvailable: true}
	b := &fakeProbe{name: "b", fixAvailable: true}
	prompter := &scriptedPrompter{answers: []bool{true, true}}
	rep := &recordingReporter{}

	summary, err := application.NewFixRunner(prompter, rep).Run(context.Background(), domain.DefaultConfig(), runOf(a, b))
	require.NoError(t, err)

	assert.Zero(t, a.fixes.Load())
	assert.Zero(t, b.fixes.Load())
	assert.Empty(t, prompter.asked)
	assert.Empty(t, rep.events)
	assert.Zero(t, summary.Fixed)
}

func TestFixRunner_AppliesConfirmedFixOnSameInstance(t *testing.T) {
	p := &fakeProbe{name: "trash", fixAvailable: true}
	rep := &recordingReporter{}
	run := runOf(p)

	summary, err := application.NewFixRunner(&scriptedPrompter{answers: []bool{true}}, rep).Run(context.Background(), applyConfig(), run)
	require.NoError(t, err)

	assert.EqualValues(t, 1, p.fixes.Load())
	assert.Equal(t, []string{"trash-item"}, p.fixedWith)
	assert.Equal(t, domain.StateFixed, run.Entries[0].State)
	assert.Equal(t, []string{"plan:trash", "fixed:trash"}, rep.events)
	assert.Equal(t, 1, summary.Fixed)
}

func TestFixRunner_SkipsNotFixable(t *testing.T) {
	p := &fakeProbe{name: "disk-usage"}
	prompter := &scriptedPrompter{}
	run := runOf(p)

	_, err := application.NewFixRunner(prompter, &recordingReporter{}).Run(context.Background(), applyConfig(), run)
	require.NoError(t, err)
	assert.Empty(t, prompter.asked)
	assert.Zero(t, p.fixes.Load())
	assert.Equal(t, domain.StateChecked, run.Entries[0].State)
}

func TestFixRunner_DeclineContinues(t *testing.T) {
	a := &fakeProbe{name: "a", fixAvailable: true}
	b := &fakeProbe{name: "b", fixAvailable: true}
	rep := &recordingReporter{}
	run := runOf(a, b)

	summary, err := application.NewFixRunner(&scriptedPrompter{answers: []bool{false, true}}, rep).Run(context.Background(), applyConfig(), run)
	require.NoError(t, err)

	assert.Zero(t, a.fixes.Load())
	assert.EqualValues(t, 1, b.fixes.Load())
	assert.Equal(t, domain.StateSkipped, run.Entries[0].State)
	assert.Equal(t, domain.StateFixed, run.Entries[1].State)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Fixed)
}

func TestFixRunner_FailedFixDoesNotAbort(t *testing.T) {
	a := &fakeProbe{name: "a", fixAvailable: true, fixErr: errors.New("device busy")}
	b := &fakeProbe{name: "b", fixAvailable: true}
	rep := &recordingReporter{}
	run := runOf(a, b)

	summary, err := application.NewFixRunner(&scriptedPrompter{answers: []bool{true, true}}, rep).Run(context.Background(), applyConfig(), run)
	require.NoError(t, err)

	assert.EqualValues(t, 1, b.fixes.Load())
	assert.Equal(t, domain.StateFixFailed, run.Entries[0].State)
	assert.True(t, domain.IsFixError(run.Entries[0].Err))
	assert.Equal(t, domain.StateFixed, run.Entries[1].State)
	assert.Equal(t, 1, summary.FixFailed)
	assert.Equal(t, 1, summary.Fixed)
	assert.Zero(t, summary.Skipped)
	assert.Equal(t, 1, rep.count("fix-failed"))
}

func TestFixRunner_ConfirmationErrorAborts(t *testing.T) {
	a := &fakeProbe{name: "a", fixAvailable: true}
	b := &fakeProbe{name: "b", fixAvailable: true}
	c := &fakeProbe{name: "c", fixAvailable: true}
	run := runOf(a, b, c)
	prompter := &scriptedPrompter{answers: []bool{true}, err: io.ErrUnexpectedEOF}

	summary, err := application.NewFixRunner(prompter, &recordingReporter{}).Run(context.Background(), applyConfig(), run)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfirmationRead)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	assert.EqualValues(t, 1, a.fixes.Load(), "already applied fix is kept")
	assert.Zero(t, b.fixes.Load())
	assert.Zero(t, c.fixes.Load())
	assert.Len(t, prompter.asked, 2, "no prompt after the failed read")
	assert.True(t, summary.Aborted)
	assert.Equal(t, 1, summary.Fixed)
	assert.Equal(t, domain.StateChecked, run.Entries[2].State)
}

func TestFixRunner_PromptsOneAtATime(t *testing.T) {
	fakes := make([]*fakeProbe, 6)
	answers := make([]bool, len(fakes))
	for i := range fakes {
		fakes[i] = &fakeProbe{name: string(rune('a' + i)), fixAvailable: true}
		answers[i] = true
	}
	prompter := &scriptedPrompter{answers: answers}

	_, err := application.NewFixRunner(prompter, &recordingReporter{}).Run(context.Background(), applyConfig(), runOf(fakes...))
	require.NoError(t, err)
	assert.EqualValues(t, 1, prompter.maxSeen.Load())
	assert.Len(t, prompter.asked, len(fakes))
	assert.Equal(t, "Apply fix for a?", prompter.asked[0])
}
