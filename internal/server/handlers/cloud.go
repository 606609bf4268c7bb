// internal/server/handlers/cloud.go

package handlers

import (
	"context"
	"hash/fnv"
	"html/template"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"

	"trendcloud/internal/adapter/storage"
	"trendcloud/internal/cloud"
	"trendcloud/internal/config"
	"trendcloud/internal/trend"
	"trendcloud/web"
)

// TrendSource fetches the trend dataset for a location.
type TrendSource interface {
	FetchTrends(ctx context.Context, location, lang string) ([]trend.Trend, error)
}

// CloudHandler renders the word-cloud page and its SVG fragments.
type CloudHandler struct {
	source  TrendSource
	fetcher cloud.TweetFetcher
	store   *storage.CloudStore
	cfg     config.CloudConfig
}

// NewCloudHandler creates a new cloud handler
func NewCloudHandler(source TrendSource, fetcher cloud.TweetFetcher, store *storage.CloudStore, cfg config.CloudConfig) *CloudHandler {
	return &CloudHandler{
		source:  source,
		fetcher: fetcher,
		store:   store,
		cfg:     cfg,
	}
}

// ShowDefault renders the default location's cloud.
func (h *CloudHandler) ShowDefault(w http.ResponseWriter, r *http.Request) {
	h.renderCloud(w, r, config.DefaultLocation, "en")
}

// Submit handles the location search form.
func (h *CloudHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, "en", "Invalid form submission")
		return
	}
	location := r.FormValue("location")
	lang := config.NormalizeLanguage(r.FormValue("language"))

	if err := trend.ValidateLocation(location); err != nil {
		h.renderError(w, r, lang, capitalize(err.Error()))
		return
	}
	h.renderCloud(w, r, location, lang)
}

func (h *CloudHandler) renderCloud(w http.ResponseWriter, r *http.Request, location, lang string) {
	trends, err := h.source.FetchTrends(r.Context(), location, lang)
	if err != nil {
		log.Printf("fetching trends for %q: %v", location, err)
		h.renderError(w, r, lang, "An error occurred while processing your request")
		return
	}
	if len(trends) == 0 {
		h.renderError(w, r, lang, "Could not fetch trends for that location")
		return
	}

	dataset := trend.Dataset{DisplayName: location, Language: lang, Trends: trends}
	words := cloud.BuildWords(trends, cloud.WordOptions{
		MinFontSize: h.cfg.MinFontSize,
		MaxFontSize: h.cfg.MaxFontSize,
	})
	popup := cloud.NewPopupController(h.fetcher, h.cfg.PopupTimeout)
	entry := h.store.Put(dataset, words, popup)

	rng := rand.New(rand.NewSource(seedFor(entry.ID)))
	view := cloud.DefaultView()
	placed := cloud.Layout(view.Apply(entry.Words, rng), h.cfg.CanvasWidth, h.cfg.CanvasHeight,
		cloud.LayoutOptions{Padding: h.cfg.Padding, MaxSteps: h.cfg.MaxSteps}, rng)
	svg := cloud.RenderSVG(placed, h.cfg.CanvasWidth, h.cfg.CanvasHeight)

	h.renderPage(w, r, web.PageData{
		DisplayName:  location,
		CloudID:      entry.ID,
		SVG:          template.HTML(svg),
		CanvasWidth:  h.cfg.CanvasWidth,
		CanvasHeight: h.cfg.CanvasHeight,
		SelectedLang: lang,
	})
}

func (h *CloudHandler) renderError(w http.ResponseWriter, r *http.Request, lang, message string) {
	h.renderPage(w, r, web.PageData{
		SelectedLang: lang,
		Error:        message,
	})
}

func (h *CloudHandler) renderPage(w http.ResponseWriter, r *http.Request, data web.PageData) {
	data.Languages = config.Languages()
	data.CSRFField = csrf.TemplateField(r)
	data.CSRFToken = csrf.Token(r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := web.RenderPage(w, data); err != nil {
		log.Printf("rendering page: %v", err)
	}
}

// CloudSVG re-renders one stored cloud under the view state carried in the
// query string. The whole surface is recomputed and replaced on every call.
func (h *CloudHandler) CloudSVG(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entry, ok := h.store.Get(id)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Cloud not found", nil)
		return
	}

	query := r.URL.Query()
	view := cloud.View{
		ShowHashtags: query.Get("hashtags") != "0",
		ShowKeywords: query.Get("keywords") != "0",
		Sort:         cloud.ParseSortMode(query.Get("sort")),
		Query:        query.Get("q"),
	}

	// An explicit seed pins the layout for reproducibility. Without one,
	// random sort reshuffles per request while the other modes stay stable
	// for a given cloud.
	seed := seedFor(entry.ID)
	if s, err := strconv.ParseInt(query.Get("seed"), 10, 64); err == nil {
		seed = s
	} else if view.Sort == cloud.SortRandom {
		seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewSource(seed))
	working := view.Apply(entry.Words, rng)

	var placed []cloud.Placed
	if len(working) > 0 {
		placed = cloud.Layout(working, h.cfg.CanvasWidth, h.cfg.CanvasHeight,
			cloud.LayoutOptions{Padding: h.cfg.Padding, MaxSteps: h.cfg.MaxSteps}, rng)
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(cloud.RenderSVG(placed, h.cfg.CanvasWidth, h.cfg.CanvasHeight))
}

func seedFor(id string) int64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return int64(h.Sum64())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
