package reddit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/guardline/guardline/internal/domain"
	"github.com/guardline/guardline/internal/metrics"
	"github.com/guardline/guardline/internal/platform/correlation"
	"github.com/guardline/guardline/internal/platform/retry"
	"github.com/jonboulle/clockwork"
)

const (
	// seenWindow bounds the duplicate-suppression set. Listings return at
	// most 100 comments, so a window of 1000 comfortably covers overlap
	// between consecutive polls.
	seenWindow = 1000

	streamBuffer = 256
)

// listingFetcher is the subset of Client the stream needs.
type listingFetcher interface {
	NewComments(ctx context.Context, subreddits string) ([]domain.Comment, error)
}

// Stream polls a multireddit's newest comments and delivers previously unseen
// ones in chronological order. It implements domain.CommentSource. The first
// poll only primes the seen window, so only comments posted after startup are
// delivered.
type Stream struct {
	client     listingFetcher
	subreddits string
	interval   time.Duration
	clock      clockwork.Clock

	out       chan domain.Comment
	seen      map[string]struct{}
	seenOrder []string

	retryPolicy retry.Policy
}

// NewStream creates a comment stream over the given subreddits expression.
func NewStream(client listingFetcher, subreddits string, interval time.Duration, clock clockwork.Clock) *Stream {
	return &Stream{
		client:     client,
		subreddits: subreddits,
		interval:   interval,
		clock:      clock,
		out:        make(chan domain.Comment, streamBuffer),
		seen:       make(map[string]struct{}, seenWindow),
		retryPolicy: retry.Policy{
			MaxAttempts:      3,
			InitialBackoff:   time.Second,
			RateLimitBackoff: 10 * time.Second,
			MaxBackoff:       30 * time.Second,
			OnRetry: func(attempt int, err error, backoff time.Duration) {
				slog.Debug("Retrying Reddit listing fetch", "attempt", attempt, "backoff", backoff, "error", err)
			},
		},
	}
}

// Comments returns the receive side of the stream. The channel is closed when
// Run returns.
func (s *Stream) Comments() <-chan domain.Comment {
	return s.out
}

// Run polls until ctx is cancelled. A failed poll cycle is logged and skipped;
// the next tick tries again.
func (s *Stream) Run(ctx context.Context) error {
	defer close(s.out)

	// Prime the seen window so pre-existing comments are never delivered.
	s.poll(ctx, false)

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
			s.poll(ctx, true)
		}
	}
}

func (s *Stream) poll(ctx context.Context, deliver bool) {
	ctx = correlation.WithID(ctx, correlation.NewID())

	comments, err := retry.Do(ctx, s.retryPolicy, classifyFetchError, func() ([]domain.Comment, error) {
		return s.client.NewComments(ctx, s.subreddits)
	})
	if err != nil {
		if errors.Is(err, circuitbreaker.ErrOpen) {
			slog.DebugContext(ctx, "Skipping poll, circuit breaker open")
			return
		}
		slog.WarnContext(ctx, "Poll cycle failed", "subreddits", s.subreddits, "error", err)
		return
	}

	// Listings arrive newest first; walk backwards for chronological delivery.
	for i := len(comments) - 1; i >= 0; i-- {
		c := comments[i]
		if !s.markSeen(c.ID) || !deliver {
			continue
		}
		if c.Author == "" || c.Author == "[deleted]" {
			metrics.CommentsSkipped.Inc()
			continue
		}
		select {
		case s.out <- c:
		case <-ctx.Done():
			return
		}
	}
}

// markSeen records id in the bounded duplicate-suppression window and reports
// whether it was new. Only the Run goroutine touches the window.
func (s *Stream) markSeen(id string) bool {
	if _, ok := s.seen[id]; ok {
		return false
	}
	s.seen[id] = struct{}{}
	s.seenOrder = append(s.seenOrder, id)
	if len(s.seenOrder) > seenWindow {
		oldest := s.seenOrder[0]
		s.seenOrder = s.seenOrder[1:]
		delete(s.seen, oldest)
	}
	return true
}

func classifyFetchError(err error) retry.Action {
	if errors.Is(err, circuitbreaker.ErrOpen) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return retry.Stop
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.IsRateLimited():
			return retry.After
		case apiErr.Transient():
			return retry.Retry
		default:
			return retry.Stop
		}
	}

	// Network-level failures are worth retrying.
	return retry.Retry
}
