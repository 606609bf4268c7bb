package cloud

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"trendcloud/internal/trend"
)

// PopupStatus is the lifecycle state of one detail popup.
type PopupStatus string

const (
	PopupIdle    PopupStatus = "idle"
	PopupLoading PopupStatus = "loading"
	PopupLoaded  PopupStatus = "loaded"
	PopupEmpty   PopupStatus = "empty"
	PopupError   PopupStatus = "error"
)

// User-facing popup error messages. Upstream error details stay in the logs.
const (
	errMsgTimeout = "request timed out"
	errMsgFetch   = "error fetching tweets"
)

// TweetFetcher fetches sample posts for an activated word.
type TweetFetcher interface {
	FetchTweets(ctx context.Context, word, lang string) ([]trend.Tweet, error)
}

// PopupSession is the ephemeral state of one word activation.
type PopupSession struct {
	Token    string
	Word     string
	Language string
	Status   PopupStatus
	Tweets   []trend.Tweet
	Err      string
}

// DefaultPopupTimeout bounds the detail fetch so a popup can never stay in
// loading forever.
const DefaultPopupTimeout = 10 * time.Second

// PopupController runs the popup state machine: idle -> loading ->
// {loaded|empty|error}, back to idle on Close. Activating a new word while a
// previous fetch is in flight supersedes it; the stale fetch still returns a
// result to its own caller but no longer touches the controller's state.
type PopupController struct {
	fetcher TweetFetcher
	timeout time.Duration

	mu      sync.Mutex
	current PopupSession
}

// NewPopupController creates a controller around a fetcher. A non-positive
// timeout falls back to DefaultPopupTimeout.
func NewPopupController(fetcher TweetFetcher, timeout time.Duration) *PopupController {
	if timeout <= 0 {
		timeout = DefaultPopupTimeout
	}
	return &PopupController{
		fetcher: fetcher,
		timeout: timeout,
		current: PopupSession{Status: PopupIdle},
	}
}

// Activate starts a session for word: prior content is cleared, the session
// goes to loading synchronously, then one bounded fetch decides the terminal
// state. The returned session is always this activation's outcome, whether or
// not a newer activation superseded it meanwhile.
func (c *PopupController) Activate(ctx context.Context, word, lang string) PopupSession {
	token := uuid.NewString()

	c.mu.Lock()
	c.current = PopupSession{Token: token, Word: word, Language: lang, Status: PopupLoading}
	c.mu.Unlock()

	fetchCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	tweets, err := c.fetcher.FetchTweets(fetchCtx, word, lang)

	sess := PopupSession{Token: token, Word: word, Language: lang}
	switch {
	case err != nil:
		sess.Status = PopupError
		sess.Err = errMsgFetch
		if errors.Is(err, context.DeadlineExceeded) {
			sess.Err = errMsgTimeout
		}
	case len(tweets) == 0:
		sess.Status = PopupEmpty
	default:
		sess.Status = PopupLoaded
		sess.Tweets = tweets
	}

	c.mu.Lock()
	// Relevance check: only the activation that still owns the session may
	// commit its result.
	if c.current.Token == token {
		c.current = sess
	}
	c.mu.Unlock()
	return sess
}

// Close resets the controller to idle and drops any rendered content.
func (c *PopupController) Close() {
	c.mu.Lock()
	c.current = PopupSession{Status: PopupIdle}
	c.mu.Unlock()
}

// Session returns a snapshot of the current session.
func (c *PopupController) Session() PopupSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}
