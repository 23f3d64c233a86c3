package domain

import (
	"context"
	"time"
)

// Comment is one short text item from an external comment source.
type Comment struct {
	ID        string
	Author    string
	Body      string
	Subreddit string
	Permalink string
	CreatedAt time.Time
}

// CommentSource yields comments until ctx is cancelled. Run blocks and owns
// the source's delivery loop; Comments is the receive side and is closed when
// Run returns. Items with no author are skipped upstream before delivery.
type CommentSource interface {
	Run(ctx context.Context) error
	Comments() <-chan Comment
}
