package trend

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/keilerkonzept/topk"
)

const (
	// minKeywordRunes is the shortest token counted as a keyword.
	minKeywordRunes = 4

	// DefaultLimit caps how many trends one extraction returns.
	DefaultLimit = 20
)

// BuildQuery builds the recent-search query for a location and language,
// excluding retweets.
func BuildQuery(location, lang string) string {
	return fmt.Sprintf("%s -is:retweet lang:%s", location, lang)
}

// ValidateLocation checks a user-supplied location string.
func ValidateLocation(location string) error {
	if strings.TrimSpace(location) == "" {
		return fmt.Errorf("location cannot be empty")
	}
	if utf8.RuneCountInString(location) > 100 {
		return fmt.Errorf("location name is too long")
	}
	return nil
}

// Extract counts hashtags and keywords across recent tweets and returns the
// top trends by weight. Hashtags are weighted by retweet count plus one,
// keywords count once per occurrence. The location itself and tokens shorter
// than four runes are not counted as keywords. Ties are broken by word so the
// result is deterministic.
func Extract(location string, tweets []Tweet, limit int) []Trend {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(tweets) == 0 {
		return nil
	}

	sketch := topk.New(limit, topk.WithWidth(1024), topk.WithDepth(3))
	loc := strings.ToLower(location)

	for _, tw := range tweets {
		for _, token := range strings.Fields(strings.ToLower(tw.Text)) {
			switch {
			case strings.HasPrefix(token, "#"):
				weight := tw.Metrics.Retweets + 1
				sketch.Add(token, uint32(weight))
			case utf8.RuneCountInString(token) >= minKeywordRunes && token != loc:
				sketch.Incr(token)
			}
		}
	}

	items := sketch.SortedSlice()
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Item < items[j].Item
	})
	if len(items) > limit {
		items = items[:limit]
	}

	trends := make([]Trend, 0, len(items))
	for _, it := range items {
		volume := int(it.Count)
		t := Trend{Word: it.Item, TweetVolume: &volume, Type: TypeKeyword}
		if strings.HasPrefix(it.Item, "#") {
			t.Type = TypeHashtag
		}
		trends = append(trends, t)
	}
	return trends
}
