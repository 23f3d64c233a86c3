package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/guardline/guardline/internal/domain"
	"github.com/guardline/guardline/internal/metrics"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL  = "https://oauth.reddit.com"
	defaultTokenURL = "https://www.reddit.com/api/v1/access_token"

	requestTimeout = 15 * time.Second
	listingLimit   = 100
)

// APIError is a non-2xx response from the Reddit API.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("reddit api returned status %d", e.StatusCode)
}

// IsRateLimited reports whether the response was a 429.
func (e *APIError) IsRateLimited() bool { return e.StatusCode == http.StatusTooManyRequests }

// Transient reports whether the request is worth retrying.
func (e *APIError) Transient() bool {
	return e.StatusCode >= 500 || e.IsRateLimited()
}

// ClientConfig configures a Client. BaseURL and TokenURL exist so tests can
// point the client at a local server; zero values use the real endpoints.
type ClientConfig struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	BaseURL      string
	TokenURL     string
}

// Client fetches comment listings with application-only OAuth credentials.
// All requests pass a shared politeness limiter (Reddit allows 60 requests
// per minute for script apps) and a circuit breaker that sheds polls while
// the API is failing.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	breaker    circuitbreaker.CircuitBreaker[any]
}

// NewClient creates a Reddit API client. The token source obtains and
// refreshes the app access token on demand via the client-credentials grant.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}

	creds := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	// Reddit rejects requests without a descriptive User-Agent, including the
	// token request itself, so the UA transport sits under the oauth2 one.
	base := &http.Client{
		Timeout: requestTimeout,
		Transport: &userAgentTransport{
			base:      http.DefaultTransport,
			userAgent: cfg.UserAgent,
		},
	}
	authCtx := context.WithValue(context.Background(), oauth2.HTTPClient, base)

	return &Client{
		httpClient: creds.Client(authCtx),
		baseURL:    baseURL,
		userAgent:  cfg.UserAgent,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
		breaker:    newBreaker(),
	}
}

func newBreaker() circuitbreaker.CircuitBreaker[any] {
	return circuitbreaker.NewBuilder[any]().
		WithFailureRateThreshold(0.6, 5, 30*time.Second).
		WithDelay(time.Minute).
		WithSuccessThreshold(1).
		OnStateChanged(func(e circuitbreaker.StateChangedEvent) {
			slog.Warn("Circuit breaker state changed",
				"component", "reddit",
				"from", e.OldState.String(),
				"to", e.NewState.String(),
			)
			metrics.CircuitBreakerStateChanges.WithLabelValues("reddit", e.NewState.String()).Inc()
			metrics.CircuitBreakerState.WithLabelValues("reddit").Set(breakerStateValue(e.NewState))
		}).
		Build()
}

func breakerStateValue(state circuitbreaker.State) float64 {
	switch state {
	case circuitbreaker.ClosedState:
		return 0
	case circuitbreaker.HalfOpenState:
		return 1
	case circuitbreaker.OpenState:
		return 2
	default:
		return -1
	}
}

// NewComments fetches the newest comments of a multireddit expression such as
// "teenagers+AskTeenGirls", newest first. Results pass the limiter and the
// breaker; an open breaker fails fast with circuitbreaker.ErrOpen.
func (c *Client) NewComments(ctx context.Context, subreddits string) ([]domain.Comment, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	if !c.breaker.TryAcquirePermit() {
		return nil, fmt.Errorf("reddit circuit breaker open: %w", circuitbreaker.ErrOpen)
	}

	comments, err := c.fetchListing(ctx, subreddits)
	if err != nil {
		c.breaker.RecordError(err)
		metrics.RedditPolls.WithLabelValues("error").Inc()
		return nil, err
	}

	c.breaker.RecordSuccess()
	metrics.RedditPolls.WithLabelValues("ok").Inc()
	return comments, nil
}

func (c *Client) fetchListing(ctx context.Context, subreddits string) ([]domain.Comment, error) {
	endpoint := fmt.Sprintf("%s/r/%s/comments", c.baseURL, url.PathEscape(subreddits))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build listing request: %w", err)
	}
	q := req.URL.Query()
	q.Set("limit", fmt.Sprint(listingLimit))
	q.Set("raw_json", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode}
	}

	var l listing
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		return nil, fmt.Errorf("failed to decode listing: %w", err)
	}

	comments := make([]domain.Comment, 0, len(l.Data.Children))
	for _, child := range l.Data.Children {
		comments = append(comments, child.Data.toDomain())
	}
	return comments, nil
}

// userAgentTransport stamps every outgoing request with the configured
// User-Agent.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(clone)
}
