package cloud

import (
	"math"
	"strings"

	"trendcloud/internal/trend"
)

// Category drives styling and filter eligibility of a word.
type Category string

const (
	CategoryHashtag Category = "hashtag"
	CategoryKeyword Category = "keyword"
)

// Orientation is the desired rotation of a word. OrientationAuto lets the
// layout engine draw one.
type Orientation int

const (
	OrientationAuto Orientation = iota
	OrientationHorizontal
	OrientationVertical
)

// Word is one renderable trending term. Words are built once per dataset and
// never mutated; filtering and sorting produce fresh slices.
type Word struct {
	Text        string
	Category    Category
	Volume      *int // nil when the popularity signal is unknown
	Size        float64
	Color       string
	Orientation Orientation
}

// WordOptions bounds the font-size range of the volume scaling.
type WordOptions struct {
	MinFontSize float64
	MaxFontSize float64
}

// Default font-size bounds in SVG user units.
const (
	DefaultMinFontSize = 12
	DefaultMaxFontSize = 64
)

func (o WordOptions) withDefaults() WordOptions {
	if o.MinFontSize <= 0 {
		o.MinFontSize = DefaultMinFontSize
	}
	if o.MaxFontSize < o.MinFontSize {
		o.MaxFontSize = DefaultMaxFontSize
	}
	return o
}

// Color ramps per category, darkest bucket last. Deterministic so the same
// dataset always renders the same way.
var (
	hashtagRamp = []string{"#93c5fd", "#3b82f6", "#1d4ed8"}
	keywordRamp = []string{"#5eead4", "#14b8a6", "#0f766e"}
)

// BuildWords turns raw trend entries into Word records. Size is a logarithmic
// mapping of tweet volume into [MinFontSize, MaxFontSize]; entries with
// missing or zero volume get MinFontSize. Pre-resolved font_size/color on an
// entry win over the derived values.
func BuildWords(trends []trend.Trend, opts WordOptions) []Word {
	opts = opts.withDefaults()
	if len(trends) == 0 {
		return nil
	}

	minV, maxV := volumeRange(trends)
	words := make([]Word, 0, len(trends))
	for _, t := range trends {
		w := Word{
			Text:     t.Word,
			Category: categoryOf(t),
			Volume:   t.TweetVolume,
			Size:     scaleSize(t.Volume(), minV, maxV, opts),
			Color:    t.Color,
		}
		if t.FontSize > 0 {
			w.Size = t.FontSize
		}
		if w.Color == "" {
			w.Color = colorFor(w.Category, t.Volume(), minV, maxV)
		}
		words = append(words, w)
	}
	return words
}

func categoryOf(t trend.Trend) Category {
	if t.Type == trend.TypeHashtag || strings.HasPrefix(t.Word, "#") {
		return CategoryHashtag
	}
	return CategoryKeyword
}

// volumeRange returns the smallest and largest known positive volumes.
func volumeRange(trends []trend.Trend) (int, int) {
	minV, maxV := 0, 0
	for _, t := range trends {
		v := t.Volume()
		if v <= 0 {
			continue
		}
		if minV == 0 || v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	return minV, maxV
}

// scaleSize maps volume into the font-size range on a log curve, so a few
// very popular terms do not crush everything else to the minimum.
func scaleSize(volume, minV, maxV int, opts WordOptions) float64 {
	if volume <= 0 || maxV <= 0 {
		return opts.MinFontSize
	}
	if maxV == minV {
		return (opts.MinFontSize + opts.MaxFontSize) / 2
	}
	ratio := math.Log(float64(volume-minV+1)) / math.Log(float64(maxV-minV+1))
	return opts.MinFontSize + ratio*(opts.MaxFontSize-opts.MinFontSize)
}

// colorFor picks the ramp shade by volume tercile within [minV, maxV].
func colorFor(category Category, volume, minV, maxV int) string {
	ramp := keywordRamp
	if category == CategoryHashtag {
		ramp = hashtagRamp
	}
	if volume <= 0 || maxV <= minV {
		return ramp[0]
	}
	pos := float64(volume-minV) / float64(maxV-minV)
	idx := int(pos * float64(len(ramp)))
	if idx >= len(ramp) {
		idx = len(ramp) - 1
	}
	return ramp[idx]
}
