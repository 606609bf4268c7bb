package trend

// Trend represents one trending term extracted from recent tweets. A nil
// TweetVolume means the popularity signal is unknown. FontSize and Color are
// optional pre-resolved presentation hints; when absent the cloud package
// derives them.
type Trend struct {
	Word        string  `json:"word"`
	TweetVolume *int    `json:"tweet_volume"`
	Type        string  `json:"type"`
	FontSize    float64 `json:"font_size,omitempty"`
	Color       string  `json:"color,omitempty"`
}

// Volume returns the tweet volume, or 0 when unknown.
func (t Trend) Volume() int {
	if t.TweetVolume == nil {
		return 0
	}
	return *t.TweetVolume
}

// Term types used for styling and filter eligibility.
const (
	TypeHashtag = "hashtag"
	TypeKeyword = "keyword"
)

// TweetMetrics holds the public engagement counters of a tweet. Absent
// counters default to zero.
type TweetMetrics struct {
	Retweets int `json:"retweet_count"`
	Likes    int `json:"like_count"`
	Replies  int `json:"reply_count"`
}

// Tweet is one sample post returned by the detail fetch.
type Tweet struct {
	Text      string       `json:"text"`
	URL       string       `json:"url"`
	Metrics   TweetMetrics `json:"metrics"`
	CreatedAt string       `json:"created_at,omitempty"`
}

// Dataset is the immutable input of one word cloud: the trends fetched for a
// location, plus the display name and language they were fetched with.
type Dataset struct {
	DisplayName string
	Language    string
	Trends      []Trend
}
