package application_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archtidy/archtidy/internal/application"
	"github.com/archtidy/archtidy/internal/domain"
)

func TestSchedule_OneOutcomePerProbe(t *testing.T) {
	for _, n := range []int{0, 1, 7, 64} {
		t.Run(fmt.Sprintf("%d probes", n), func(t *testing.T) {
			fakes := make([]*fakeProbe, n)
			for i := range fakes {
				fakes[i] = &fakeProbe{name: fmt.Sprintf("p%d", i)}
				if i%3 == 0 {
					fakes[i].checkErr = errors.New("boom")
				}
			}

			batch := application.Schedule(context.Background(), domain.DefaultConfig(), asProbes(fakes...))
			seen := map[string]int{}
			for o := range batch.Outcomes() {
				seen[o.Probe.Name()]++
			}
			batch.Wait()

			assert.Len(t, seen, n)
			for name, count := range seen {
				assert.Equal(t, 1, count, name)
			}
			for _, f := range fakes {
				assert.EqualValues(t, 1, f.checks.Load(), f.name)
			}
		})
	}
}

func TestSchedule_ChecksRunConcurrently(t *testing.T) {
	const n = 5
	var started sync.WaitGroup
	started.Add(n)
	release := make(chan struct{})
	go func() {
		started.Wait()
		close(release)
	}()

	barrier := func() error {
		started.Done()
		select {
		case <-release:
			return nil
		case <-time.After(5 * time.Second):
			return errors.New("checks did not overlap")
		}
	}

	fakes := make([]*fakeProbe, n)
	for i := range fakes {
		fakes[i] = &fakeProbe{name: fmt.Sprintf("p%d", i), hook: barrier}
	}

	batch := application.Schedule(context.Background(), domain.DefaultConfig(), asProbes(fakes...))
	for o := range batch.Outcomes() {
		assert.NoError(t, o.Err, o.Probe.Name())
	}
	batch.Wait()
}

func TestSchedule_DoesNotWaitForConsumer(t *testing.T) {
	fakes := []*fakeProbe{{name: "a"}, {name: "b"}, {name: "c"}}
	batch := application.Schedule(context.Background(), domain.DefaultConfig(), asProbes(fakes...))

	// Nothing reads the channel yet; tasks must still be able to finish.
	done := make(chan struct{})
	go func() {
		batch.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("tasks blocked on an unread channel")
	}
	assert.Len(t, batch.Outcomes(), 3)
	for range batch.Outcomes() {
	}
}

func TestSchedule_WrapsCheckErrors(t *testing.T) {
	cause := errors.New("pacman: command not found")
	batch := application.Schedule(context.Background(), domain.DefaultConfig(), asProbes(&fakeProbe{name: "orphans", checkErr: cause}))

	o := <-batch.Outcomes()
	batch.Wait()

	require.Error(t, o.Err)
	assert.ErrorIs(t, o.Err, cause)
	assert.True(t, domain.IsCheckError(o.Err))
	var pe *domain.ProbeError
	require.ErrorAs(t, o.Err, &pe)
	assert.Equal(t, "orphans", pe.Probe)
}

func TestSchedule_RecoversPanickingProbe(t *testing.T) {
	bad := &fakeProbe{name: "bad", panicMsg: "index out of range"}
	good := &fakeProbe{name: "good"}

	batch := application.Schedule(context.Background(), domain.DefaultConfig(), asProbes(bad, good))
	errs := map[string]error{}
	for o := range batch.Outcomes() {
		errs[o.Probe.Name()] = o.Err
	}
	batch.Wait()

	require.Error(t, errs["bad"])
	assert.Contains(t, errs["bad"].Error(), "index out of range")
	assert.NoError(t, errs["good"])
}

func TestSchedule_ReturnsSameProbeInstance(t *testing.T) {
	p := &fakeProbe{name: "trash"}
	batch := application.Schedule(context.Background(), domain.DefaultConfig(), asProbes(p))
	o := <-batch.Outcomes()
	batch.Wait()

	same, ok := o.Probe.(*fakeProbe)
	require.True(t, ok)
	assert.Same(t, p, same)
	assert.Equal(t, []string{"trash-item"}, same.found)
}
