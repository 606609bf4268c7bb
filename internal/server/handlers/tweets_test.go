// internal/server/handlers/tweets_test.go

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"trendcloud/internal/adapter/storage"
	"trendcloud/internal/cloud"
	"trendcloud/internal/trend"
)

func fetchTweetsResponse(t *testing.T, h *TweetsHandler, body string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/fetch_tweets", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.FetchTweets(rec, req)

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return rec, payload
}

func TestFetchTweetsSuccess(t *testing.T) {
	fetcher := &stubFetcher{tweets: []trend.Tweet{
		{
			Text:      "hello world",
			URL:       "https://twitter.com/user/status/1",
			Metrics:   trend.TweetMetrics{Retweets: 2, Likes: 3, Replies: 1},
			CreatedAt: "2026-08-28T12:00:00Z",
		},
	}}
	h := NewTweetsHandler(fetcher, storage.NewCloudStore(time.Hour), time.Second)

	rec, payload := fetchTweetsResponse(t, h, `{"word":"#golang","lang":"en"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var tweets []trend.Tweet
	if err := json.Unmarshal(payload["tweets"], &tweets); err != nil {
		t.Fatalf("decoding tweets: %v", err)
	}
	if len(tweets) != 1 {
		t.Fatalf("len(tweets) = %d, want 1", len(tweets))
	}
	if tweets[0].Text != "hello world" {
		t.Errorf("tweet text = %q, want %q", tweets[0].Text, "hello world")
	}
	if tweets[0].Metrics.Retweets != 2 {
		t.Errorf("retweet count = %d, want 2", tweets[0].Metrics.Retweets)
	}
}

func TestFetchTweetsEscapesMarkupInJSON(t *testing.T) {
	fetcher := &stubFetcher{tweets: []trend.Tweet{{Text: "<script>alert(1)</script>"}}}
	h := NewTweetsHandler(fetcher, storage.NewCloudStore(time.Hour), time.Second)

	rec, payload := fetchTweetsResponse(t, h, `{"word":"xss"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if strings.Contains(rec.Body.String(), "<script>") {
		t.Error("response body carries raw markup")
	}

	var tweets []trend.Tweet
	if err := json.Unmarshal(payload["tweets"], &tweets); err != nil {
		t.Fatalf("decoding tweets: %v", err)
	}
	if tweets[0].Text != "<script>alert(1)</script>" {
		t.Errorf("tweet text = %q, want the original text preserved", tweets[0].Text)
	}
}

func TestFetchTweetsEmptyIsNotAnError(t *testing.T) {
	h := NewTweetsHandler(&stubFetcher{}, storage.NewCloudStore(time.Hour), time.Second)

	rec, _ := fetchTweetsResponse(t, h, `{"word":"obscure"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"tweets":[]}` {
		t.Errorf("body = %q, want empty tweets array", got)
	}
}

func TestFetchTweetsBadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"empty body", "", "No data provided"},
		{"not json", "word=hi", "No data provided"},
		{"missing word", `{"lang":"en"}`, "No word provided"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTweetsHandler(&stubFetcher{}, storage.NewCloudStore(time.Hour), time.Second)

			rec, payload := fetchTweetsResponse(t, h, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			var msg string
			if err := json.Unmarshal(payload["error"], &msg); err != nil {
				t.Fatalf("decoding error message: %v", err)
			}
			if msg != tt.wantMsg {
				t.Errorf("error = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestFetchTweetsUpstreamError(t *testing.T) {
	h := NewTweetsHandler(&stubFetcher{err: errors.New("rate limited")},
		storage.NewCloudStore(time.Hour), time.Second)

	rec, payload := fetchTweetsResponse(t, h, `{"word":"#golang"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	var msg string
	if err := json.Unmarshal(payload["error"], &msg); err != nil {
		t.Fatalf("decoding error message: %v", err)
	}
	if msg != "error fetching tweets" {
		t.Errorf("error = %q, want %q", msg, "error fetching tweets")
	}
	if strings.Contains(rec.Body.String(), "rate limited") {
		t.Error("response leaks the upstream error detail")
	}
}

func TestFetchTweetsUsesStoredPopup(t *testing.T) {
	store := storage.NewCloudStore(time.Hour)
	words := cloud.BuildWords(sampleTrends(), cloud.WordOptions{MinFontSize: 12, MaxFontSize: 64})
	popup := cloud.NewPopupController(&stubFetcher{tweets: []trend.Tweet{{Text: "stored"}}}, time.Second)
	entry := store.Put(trend.Dataset{DisplayName: "USA", Language: "en"}, words, popup)

	h := NewTweetsHandler(&stubFetcher{}, store, time.Second)
	rec, _ := fetchTweetsResponse(t, h, `{"word":"#golang","lang":"en","cloud_id":"`+entry.ID+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "stored") {
		t.Error("handler did not use the cloud's own popup controller")
	}

	sess := popup.Session()
	if sess.Status != cloud.PopupLoaded {
		t.Errorf("popup status = %q, want %q", sess.Status, cloud.PopupLoaded)
	}
	if sess.Word != "#golang" {
		t.Errorf("popup word = %q, want %q", sess.Word, "#golang")
	}
}
