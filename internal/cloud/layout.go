package cloud

import (
	"math"
	"math/rand"
	"unicode/utf8"
)

// Placed is a Word with a resolved position and rotation. X, Y is the glyph
// anchor (center). BoxW, BoxH is the padded axis-aligned bounding box used
// for collision testing, already swapped for vertical words.
type Placed struct {
	Word
	X           float64
	Y           float64
	RotationDeg int
	BoxW        float64
	BoxH        float64
}

// LayoutOptions tunes the spiral placement.
type LayoutOptions struct {
	Padding  float64 // gap kept between bounding boxes
	MaxSteps int     // spiral steps tried before a word is dropped
}

const (
	defaultPadding  = 2.0
	defaultMaxSteps = 600

	// Glyph box estimate per rune of font size. SVG text is not measured
	// server-side, so sizing is a heuristic the renderer shares.
	charWidthFactor  = 0.62
	lineHeightFactor = 1.15

	spiralAngleStep = 0.35 // radians per step
	spiralGrowth    = 1.6  // radial growth per radian
)

func (o LayoutOptions) withDefaults() LayoutOptions {
	if o.Padding <= 0 {
		o.Padding = defaultPadding
	}
	if o.MaxSteps <= 0 {
		o.MaxSteps = defaultMaxSteps
	}
	return o
}

// Layout places words into a width x height canvas without bounding-box
// overlap. Placement is greedy in input order: each word spirals outward from
// the center until it finds a free spot; words that never fit within the step
// budget are dropped. Output is reproducible for a fixed input order and rng
// seed.
func Layout(words []Word, width, height int, opts LayoutOptions, rng *rand.Rand) []Placed {
	opts = opts.withDefaults()
	if len(words) == 0 || width <= 0 || height <= 0 {
		return nil
	}

	w, h := float64(width), float64(height)
	cx, cy := w/2, h/2
	placed := make([]Placed, 0, len(words))

	for _, word := range words {
		deg := resolveRotation(word.Orientation, rng)
		boxW, boxH := measure(word, deg, opts.Padding)

		for step := 0; step < opts.MaxSteps; step++ {
			theta := float64(step) * spiralAngleStep
			r := spiralGrowth * theta
			x := cx + r*math.Cos(theta)
			y := cy + r*math.Sin(theta)

			if !inside(x, y, boxW, boxH, w, h) {
				continue
			}
			if collides(x, y, boxW, boxH, placed) {
				continue
			}
			placed = append(placed, Placed{
				Word:        word,
				X:           x,
				Y:           y,
				RotationDeg: deg,
				BoxW:        boxW,
				BoxH:        boxH,
			})
			break
		}
	}
	return placed
}

// resolveRotation turns the orientation policy into degrees: an explicit
// orientation wins, otherwise a 50/50 draw from rng.
func resolveRotation(o Orientation, rng *rand.Rand) int {
	switch o {
	case OrientationHorizontal:
		return 0
	case OrientationVertical:
		return 90
	}
	if rng.Intn(2) == 1 {
		return 90
	}
	return 0
}

// measure estimates the padded axis-aligned bounding box of a word at the
// given rotation.
func measure(word Word, deg int, padding float64) (float64, float64) {
	runes := utf8.RuneCountInString(word.Text)
	if runes == 0 {
		runes = 1
	}
	boxW := float64(runes)*word.Size*charWidthFactor + 2*padding
	boxH := word.Size*lineHeightFactor + 2*padding
	if deg == 90 {
		boxW, boxH = boxH, boxW
	}
	return boxW, boxH
}

func inside(x, y, boxW, boxH, w, h float64) bool {
	return x-boxW/2 >= 0 && x+boxW/2 <= w && y-boxH/2 >= 0 && y+boxH/2 <= h
}

func collides(x, y, boxW, boxH float64, placed []Placed) bool {
	for _, p := range placed {
		if x-boxW/2 < p.X+p.BoxW/2 &&
			x+boxW/2 > p.X-p.BoxW/2 &&
			y-boxH/2 < p.Y+p.BoxH/2 &&
			y+boxH/2 > p.Y-p.BoxH/2 {
			return true
		}
	}
	return false
}
