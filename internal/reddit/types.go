package reddit

import (
	"time"

	"github.com/guardline/guardline/internal/domain"
)

// listing is the envelope Reddit wraps around every listing response.
type listing struct {
	Data struct {
		Children []struct {
			Data commentData `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// commentData is the subset of a t1 comment object the monitor needs.
type commentData struct {
	Name       string  `json:"name"` // fullname, e.g. "t1_abc123"
	ID         string  `json:"id"`
	Author     string  `json:"author"`
	Body       string  `json:"body"`
	Subreddit  string  `json:"subreddit"`
	Permalink  string  `json:"permalink"`
	CreatedUTC float64 `json:"created_utc"`
}

func (c commentData) toDomain() domain.Comment {
	return domain.Comment{
		ID:        c.Name,
		Author:    c.Author,
		Body:      c.Body,
		Subreddit: c.Subreddit,
		Permalink: "https://reddit.com" + c.Permalink,
		CreatedAt: time.Unix(int64(c.CreatedUTC), 0).UTC(),
	}
}
