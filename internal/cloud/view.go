package cloud

import (
	"math/rand"
	"sort"
	"strings"
)

// SortMode orders the working view. Order is part of the layout contract:
// placement is greedy, so earlier words win the center of the canvas.
type SortMode string

const (
	SortFrequency    SortMode = "frequency"
	SortAlphabetical SortMode = "alphabetical"
	SortRandom       SortMode = "random"
)

// ParseSortMode maps a request value to a SortMode, defaulting to frequency.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortAlphabetical:
		return SortAlphabetical
	case SortRandom:
		return SortRandom
	default:
		return SortFrequency
	}
}

// View is the client-facing filter and sort state of one cloud render.
type View struct {
	ShowHashtags bool
	ShowKeywords bool
	Sort         SortMode
	Query        string
}

// DefaultView shows everything, most frequent first.
func DefaultView() View {
	return View{ShowHashtags: true, ShowKeywords: true, Sort: SortFrequency}
}

// Apply recomputes the working view from the full dataset: category filter,
// then case-insensitive substring search, then ordering. The input slice is
// never mutated; random sort draws a fresh shuffle from rng on every call.
func (v View) Apply(words []Word, rng *rand.Rand) []Word {
	out := make([]Word, 0, len(words))
	query := strings.ToLower(strings.TrimSpace(v.Query))
	for _, w := range words {
		if w.Category == CategoryHashtag && !v.ShowHashtags {
			continue
		}
		if w.Category == CategoryKeyword && !v.ShowKeywords {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(w.Text), query) {
			continue
		}
		out = append(out, w)
	}

	switch v.Sort {
	case SortAlphabetical:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Text) < strings.ToLower(out[j].Text)
		})
	case SortRandom:
		rng.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			vi, vj := volumeOf(out[i]), volumeOf(out[j])
			if vi != vj {
				return vi > vj
			}
			return out[i].Text < out[j].Text
		})
	}
	return out
}

func volumeOf(w Word) int {
	if w.Volume == nil {
		return 0
	}
	return *w.Volume
}
