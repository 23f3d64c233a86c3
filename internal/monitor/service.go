// Package monitor wires the comment stream to the keyword scorer and reports
// every comment whose label matches the configured flag sentiment.
package monitor

import (
	"context"
	"log/slog"

	"github.com/guardline/guardline/internal/domain"
	"github.com/guardline/guardline/internal/keyword"
	"github.com/guardline/guardline/internal/metrics"
	"github.com/guardline/guardline/internal/platform/correlation"
	"github.com/prometheus/client_golang/prometheus"
)

// Reporter receives comments that crossed the flag threshold.
type Reporter interface {
	Flag(ctx context.Context, c domain.Comment, res keyword.Result)
}

// Service consumes a comment source and scores each item independently.
// Scoring is pure and synchronous, so cancelling the stream never leaves a
// half-scored comment behind: each item either completes or is not started.
type Service struct {
	analyzer  *keyword.Analyzer
	source    domain.CommentSource
	flagLabel keyword.Label
	reporter  Reporter
}

// NewService creates a monitor over the given source. Comments whose label
// equals flagLabel are handed to the reporter.
func NewService(analyzer *keyword.Analyzer, source domain.CommentSource, flagLabel keyword.Label, reporter Reporter) *Service {
	return &Service{
		analyzer:  analyzer,
		source:    source,
		flagLabel: flagLabel,
		reporter:  reporter,
	}
}

// Run drives the source and processes its comments until ctx is cancelled and
// the source's channel drains. It returns the source's error, if any.
func (s *Service) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.source.Run(ctx) }()

	slog.Info("Monitoring comments", "flag_sentiment", s.flagLabel)

	for c := range s.source.Comments() {
		s.process(ctx, c)
	}

	return <-errCh
}

func (s *Service) process(ctx context.Context, c domain.Comment) {
	ctx = correlation.WithID(ctx, correlation.NewID())

	timer := prometheus.NewTimer(metrics.AnalyzeDuration)
	res := s.analyzer.Analyze(c.Body)
	timer.ObserveDuration()

	metrics.CommentsProcessed.WithLabelValues(c.Subreddit).Inc()

	if res.Sentiment != s.flagLabel {
		return
	}

	metrics.CommentsFlagged.WithLabelValues(c.Subreddit, string(res.Sentiment)).Inc()
	s.reporter.Flag(ctx, c, res)
}

// LogReporter writes flagged comments to the structured logger.
type LogReporter struct{}

func (LogReporter) Flag(ctx context.Context, c domain.Comment, res keyword.Result) {
	slog.WarnContext(ctx, "Suspicious comment detected",
		"author", c.Author,
		"subreddit", c.Subreddit,
		"sentiment", res.Sentiment,
		"score", res.Score,
		"phrase_hits", res.PhraseHits,
		"token_hits", res.TokenHits,
		"permalink", c.Permalink,
		"body", c.Body,
	)
}
