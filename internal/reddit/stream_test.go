package reddit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/guardline/guardline/internal/domain"
	"github.com/guardline/guardline/internal/platform/retry"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher serves a configurable newest-first listing.
type stubFetcher struct {
	mu       sync.Mutex
	comments []domain.Comment
	err      error
	calls    int
}

func (f *stubFetcher) NewComments(_ context.Context, _ string) ([]domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Comment, len(f.comments))
	copy(out, f.comments)
	return out, nil
}

func (f *stubFetcher) set(comments []domain.Comment, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comments = comments
	f.err = err
}

func (f *stubFetcher) waitCalls(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.calls >= n
	}, 2*time.Second, 5*time.Millisecond)
}

func comment(id, author string) domain.Comment {
	return domain.Comment{ID: id, Author: author, Body: "body of " + id, Subreddit: "teenagers"}
}

func receiveComment(t *testing.T, ch <-chan domain.Comment) domain.Comment {
	t.Helper()
	select {
	case c, ok := <-ch:
		require.True(t, ok, "stream channel closed unexpectedly")
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a comment")
		return domain.Comment{}
	}
}

// startStream runs the stream in the background and blocks until the prime
// poll finished and the ticker is armed.
func startStream(t *testing.T, fetcher *stubFetcher, clock *clockwork.FakeClock) (*Stream, context.CancelFunc, chan error) {
	t.Helper()

	stream := NewStream(fetcher, "teenagers", 5*time.Second, clock)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- stream.Run(ctx) }()
	clock.BlockUntil(1)

	t.Cleanup(cancel)
	return stream, cancel, done
}

func TestStream_FirstPollOnlyPrimes(t *testing.T) {
	fetcher := &stubFetcher{}
	fetcher.set([]domain.Comment{comment("t1_a", "alice")}, nil)
	clock := clockwork.NewFakeClock()

	stream, _, _ := startStream(t, fetcher, clock)

	// The pre-existing comment is primed away; only t1_b arrives.
	fetcher.set([]domain.Comment{comment("t1_b", "bob"), comment("t1_a", "alice")}, nil)
	clock.Advance(5 * time.Second)

	got := receiveComment(t, stream.Comments())
	assert.Equal(t, "t1_b", got.ID)
}

func TestStream_ChronologicalDeliveryAndDedup(t *testing.T) {
	fetcher := &stubFetcher{}
	fetcher.set(nil, nil)
	clock := clockwork.NewFakeClock()

	stream, _, _ := startStream(t, fetcher, clock)

	fetcher.set([]domain.Comment{comment("t1_b", "bob"), comment("t1_a", "alice")}, nil)
	clock.Advance(5 * time.Second)

	assert.Equal(t, "t1_a", receiveComment(t, stream.Comments()).ID)
	assert.Equal(t, "t1_b", receiveComment(t, stream.Comments()).ID)

	// The next poll overlaps the previous listing; only t1_c is new.
	fetcher.set([]domain.Comment{comment("t1_c", "carol"), comment("t1_b", "bob"), comment("t1_a", "alice")}, nil)
	clock.Advance(5 * time.Second)

	assert.Equal(t, "t1_c", receiveComment(t, stream.Comments()).ID)
}

func TestStream_SkipsDeletedAuthors(t *testing.T) {
	fetcher := &stubFetcher{}
	fetcher.set(nil, nil)
	clock := clockwork.NewFakeClock()

	stream, _, _ := startStream(t, fetcher, clock)

	fetcher.set([]domain.Comment{
		comment("t1_c", "carol"),
		comment("t1_b", "[deleted]"),
		comment("t1_a", ""),
	}, nil)
	clock.Advance(5 * time.Second)

	assert.Equal(t, "t1_c", receiveComment(t, stream.Comments()).ID)
}

func TestStream_RecoversAfterFailedCycle(t *testing.T) {
	fetcher := &stubFetcher{}
	fetcher.set(nil, nil)
	clock := clockwork.NewFakeClock()

	stream, _, _ := startStream(t, fetcher, clock)

	// A permanent API error skips the cycle without killing the stream.
	fetcher.set(nil, &APIError{StatusCode: http.StatusBadRequest})
	clock.Advance(5 * time.Second)
	fetcher.waitCalls(t, 2)

	fetcher.set([]domain.Comment{comment("t1_a", "alice")}, nil)
	clock.Advance(5 * time.Second)

	assert.Equal(t, "t1_a", receiveComment(t, stream.Comments()).ID)
}

func TestStream_ClosesChannelOnCancel(t *testing.T) {
	fetcher := &stubFetcher{}
	fetcher.set(nil, nil)
	clock := clockwork.NewFakeClock()

	stream, cancel, done := startStream(t, fetcher, clock)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	_, ok := <-stream.Comments()
	assert.False(t, ok, "channel should be closed after Run returns")
}

func TestMarkSeen_WindowEviction(t *testing.T) {
	s := NewStream(&stubFetcher{}, "teenagers", time.Second, clockwork.NewFakeClock())

	assert.True(t, s.markSeen("first"))
	assert.False(t, s.markSeen("first"))

	for i := 0; i < seenWindow; i++ {
		require.True(t, s.markSeen(fmt.Sprintf("filler-%d", i)))
	}

	// "first" was the oldest entry and fell out of the window.
	assert.True(t, s.markSeen("first"))
	assert.Len(t, s.seen, seenWindow)
}

func TestClassifyFetchError(t *testing.T) {
	assert.Equal(t, retry.Stop, classifyFetchError(fmt.Errorf("shed: %w", circuitbreaker.ErrOpen)))
	assert.Equal(t, retry.Stop, classifyFetchError(context.Canceled))
	assert.Equal(t, retry.Stop, classifyFetchError(context.DeadlineExceeded))
	assert.Equal(t, retry.After, classifyFetchError(&APIError{StatusCode: http.StatusTooManyRequests}))
	assert.Equal(t, retry.Retry, classifyFetchError(&APIError{StatusCode: http.StatusInternalServerError}))
	assert.Equal(t, retry.Stop, classifyFetchError(&APIError{StatusCode: http.StatusForbidden}))
	assert.Equal(t, retry.Retry, classifyFetchError(errors.New("connection reset")))
}
