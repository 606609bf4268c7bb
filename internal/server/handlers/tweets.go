// internal/server/handlers/tweets.go

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"trendcloud/internal/adapter/storage"
	"trendcloud/internal/cloud"
	"trendcloud/internal/config"
	"trendcloud/internal/trend"
)

// TweetsHandler serves the detail-popup fetches.
type TweetsHandler struct {
	fetcher cloud.TweetFetcher
	store   *storage.CloudStore
	timeout time.Duration
}

// NewTweetsHandler creates a new tweets handler
func NewTweetsHandler(fetcher cloud.TweetFetcher, store *storage.CloudStore, timeout time.Duration) *TweetsHandler {
	return &TweetsHandler{
		fetcher: fetcher,
		store:   store,
		timeout: timeout,
	}
}

type fetchTweetsRequest struct {
	Word    string `json:"word"`
	Lang    string `json:"lang"`
	CloudID string `json:"cloud_id"`
}

// FetchTweets activates the popup session for a word and returns its sample
// posts. Requests carrying a known cloud_id share that cloud's popup
// controller, so a newer activation supersedes a stale in-flight one.
func (h *TweetsHandler) FetchTweets(w http.ResponseWriter, r *http.Request) {
	var req fetchTweetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "No data provided", nil)
		return
	}
	if req.Word == "" {
		respondWithError(w, http.StatusBadRequest, "No word provided", nil)
		return
	}
	lang := config.NormalizeLanguage(req.Lang)

	popup := h.popupFor(req.CloudID)
	sess := popup.Activate(r.Context(), req.Word, lang)

	switch sess.Status {
	case cloud.PopupError:
		respondWithError(w, http.StatusInternalServerError, sess.Err, nil)
	default:
		tweets := sess.Tweets
		if tweets == nil {
			tweets = []trend.Tweet{}
		}
		respondWithJSON(w, http.StatusOK, map[string][]trend.Tweet{"tweets": tweets})
	}
}

// popupFor resolves the popup controller of a stored cloud; unknown or
// missing IDs get a one-shot controller.
func (h *TweetsHandler) popupFor(cloudID string) *cloud.PopupController {
	if cloudID != "" {
		if entry, ok := h.store.Get(cloudID); ok && entry.Popup != nil {
			return entry.Popup
		}
	}
	return cloud.NewPopupController(h.fetcher, h.timeout)
}
