package download

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStartedQueue(t *testing.T) *ActionQueue {
	t.Helper()
	q := NewActionQueue()
	q.Start()
	t.Cleanup(q.Stop)
	return q
}

func TestActionQueue_RunsInSubmissionOrder(t *testing.T) {
	q := newStartedQueue(t)

	var order []int
	for i := 0; i < 100; i++ {
		i := i
		require.True(t, q.Submit(func() { order = append(order, i) }))
	}
	q.Wait()

	require.Len(t, order, 100)
	for i, got := range order {
		assert.Equal(t, i, got)
	}
}

func TestActionQueue_OneAtATime(t *testing.T) {
	q := newStartedQueue(t)

	release := make(chan struct{})
	started := make(chan struct{})
	var secondRan bool
	q.Submit(func() {
		close(started)
		<-release
	})
	q.Submit(func() { secondRan = true })

	<-started
	q.mu.Lock()
	pending := len(q.pending)
	q.mu.Unlock()
	assert.Equal(t, 1, pending, "second action waits for the first")

	close(release)
	q.Wait()
	assert.True(t, secondRan)
}

func TestActionQueue_StopDrainsAndRejects(t *testing.T) {
	q := NewActionQueue()
	assert.False(t, q.Submit(func() {}), "not started")

	q.Start()
	q.Start()
	ran := 0
	for i := 0; i < 5; i++ {
		q.Submit(func() { ran++ })
	}
	q.Stop()
	q.Stop()

	assert.Equal(t, 5, ran)
	assert.False(t, q.Submit(func() { ran++ }))
	assert.Equal(t, 5, ran)
}

func TestSession_QueuedSearchesApplyInOrder(t *testing.T) {
	h := newSessionHarness(t, newFakeBackend())
	q := newStartedQueue(t)

	for _, url := range []string{"https://youtu.be/first", "https://youtu.be/second", "https://youtu.be/third"} {
		url := url
		q.Submit(func() { _ = h.session.Search(context.Background(), url) })
	}
	q.Wait()

	snap := h.session.Snapshot()
	assert.Equal(t, "https://youtu.be/third", snap.CurrentURL)
	assert.NotNil(t, snap.Meta)
	assert.Equal(t, 3, h.backend.metaCalls)
}

func TestSession_QueuedDownloadThenCloseEndsClosed(t *testing.T) {
	backend := newFakeBackend()
	backend.jobIDs = []string{"j1"}
	h := newSessionHarness(t, backend)
	require.NoError(t, h.session.Search(context.Background(), "https://youtu.be/x"))

	q := newStartedQueue(t)
	q.Submit(func() { _ = h.session.Download(context.Background(), progressiveOption) })
	h.session.AbortLaunch()
	q.Submit(h.session.CloseProgress)
	q.Wait()

	snap := h.session.Snapshot()
	assert.False(t, snap.ProgressOpen)
	assert.Nil(t, snap.ActiveJob)

	h.session.mu.Lock()
	poller := h.session.poller
	h.session.mu.Unlock()
	assert.Nil(t, poller, "no job is polled after close")
}

func TestSession_AbortLaunchWhileQueuedDownloadRuns(t *testing.T) {
	backend := newFakeBackend()
	backend.jobIDs = []string{"j1"}
	launched := make(chan struct{})
	backend.onStart = func(ctx context.Context) error {
		close(launched)
		<-ctx.Done()
		return ctx.Err()
	}
	h := newSessionHarness(t, backend)
	require.NoError(t, h.session.Search(context.Background(), "https://youtu.be/x"))

	q := newStartedQueue(t)
	result := make(chan error, 1)
	q.Submit(func() { result <- h.session.Download(context.Background(), progressiveOption) })
	<-launched

	h.session.AbortLaunch()
	q.Submit(h.session.CloseProgress)
	q.Wait()

	assert.ErrorIs(t, <-result, context.Canceled)
	snap := h.session.Snapshot()
	assert.False(t, snap.ProgressOpen)
	assert.Nil(t, snap.ActiveJob)
	assert.Empty(t, snap.LastError)
}
