package social

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dghubble/oauth1"
	twitter "github.com/g8rswimmer/go-twitter/v2"

	"trendcloud/internal/trend"
)

const twitterHost = "https://api.twitter.com"

// Credentials holds the Twitter API credentials. A bearer token is enough;
// the OAuth1 consumer/access pair is the fallback when no bearer token is
// configured.
type Credentials struct {
	BearerToken  string
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
}

func (c Credentials) hasBearer() bool { return c.BearerToken != "" }

func (c Credentials) hasOAuth1() bool {
	return c.APIKey != "" && c.APISecret != "" && c.AccessToken != "" && c.AccessSecret != ""
}

// bearerAuthorizer adds app-only bearer auth to each request.
type bearerAuthorizer struct {
	token string
}

func (a bearerAuthorizer) Add(req *http.Request) {
	req.Header.Add("Authorization", "Bearer "+a.token)
}

// noopAuthorizer is used when the underlying HTTP client signs requests
// itself (OAuth1).
type noopAuthorizer struct{}

func (noopAuthorizer) Add(*http.Request) {}

// Client wraps the Twitter v2 recent-search API.
type Client struct {
	api *twitter.Client
}

// NewClient builds a Twitter client from credentials, preferring bearer-token
// auth and falling back to OAuth1 user context.
func NewClient(creds Credentials) (*Client, error) {
	httpClient := &http.Client{Timeout: 10 * time.Second}

	var api *twitter.Client
	switch {
	case creds.hasBearer():
		api = &twitter.Client{
			Authorizer: bearerAuthorizer{token: creds.BearerToken},
			Client:     httpClient,
			Host:       twitterHost,
		}
	case creds.hasOAuth1():
		config := oauth1.NewConfig(creds.APIKey, creds.APISecret)
		token := oauth1.NewToken(creds.AccessToken, creds.AccessSecret)
		api = &twitter.Client{
			Authorizer: noopAuthorizer{},
			Client:     config.Client(oauth1.NoContext, token),
			Host:       twitterHost,
		}
	default:
		return nil, fmt.Errorf("twitter credentials not configured")
	}

	return &Client{api: api}, nil
}

// SearchRecent runs one recent-search query and maps the result into domain
// tweets. Missing metrics or timestamps are defaulted, never errors.
func (c *Client) SearchRecent(ctx context.Context, query string, maxResults int) ([]trend.Tweet, error) {
	if maxResults < 10 {
		maxResults = 10
	}
	if maxResults > 100 {
		maxResults = 100
	}

	rsp, err := c.api.TweetRecentSearch(ctx, query, twitter.TweetRecentSearchOpts{
		MaxResults: maxResults,
		TweetFields: []twitter.TweetField{
			twitter.TweetFieldCreatedAt,
			twitter.TweetFieldPublicMetrics,
		},
	})
	if err != nil {
		var apiErr *twitter.ErrorResponse
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("twitter api status %d: %s: %w", apiErr.StatusCode, apiErr.Title, err)
		}
		return nil, fmt.Errorf("twitter search: %w", err)
	}
	if rsp == nil || rsp.Raw == nil {
		return nil, nil
	}

	tweets := make([]trend.Tweet, 0, len(rsp.Raw.Tweets))
	for _, t := range rsp.Raw.Tweets {
		if t == nil {
			continue
		}
		tweets = append(tweets, MapTweet(t))
	}
	return tweets, nil
}

// FetchTrends derives the trend dataset for a location: search recent tweets
// mentioning it and extract the top weighted terms.
func (c *Client) FetchTrends(ctx context.Context, location, lang string) ([]trend.Trend, error) {
	tweets, err := c.SearchRecent(ctx, trend.BuildQuery(location, lang), 100)
	if err != nil {
		return nil, err
	}
	return trend.Extract(location, tweets, trend.DefaultLimit), nil
}

// FetchTweets returns sample posts for an activated word. Implements
// cloud.TweetFetcher.
func (c *Client) FetchTweets(ctx context.Context, word, lang string) ([]trend.Tweet, error) {
	return c.SearchRecent(ctx, trend.BuildQuery(word, lang), 10)
}

// MapTweet converts an API tweet into the domain shape, tolerating absent
// optional fields.
func MapTweet(t *twitter.TweetObj) trend.Tweet {
	out := trend.Tweet{
		Text:      t.Text,
		URL:       "https://twitter.com/user/status/" + t.ID,
		CreatedAt: t.CreatedAt,
	}
	if t.PublicMetrics != nil {
		out.Metrics = trend.TweetMetrics{
			Retweets: t.PublicMetrics.Retweets,
			Likes:    t.PublicMetrics.Likes,
			Replies:  t.PublicMetrics.Replies,
		}
	}
	return out
}
