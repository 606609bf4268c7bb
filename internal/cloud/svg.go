package cloud

import (
	"fmt"
	"strings"
)

// RenderSVG draws placed words into a complete SVG document. Every call
// produces the whole surface; callers swap it in wholesale rather than
// diffing. An empty placement yields a valid empty canvas.
//
// Each word carries the hooks the interaction script binds to: a category
// class, data-word/data-volume attributes, keyboard focusability and an
// aria-label describing the term.
func RenderSVG(placed []Placed, width, height int) []byte {
	var b strings.Builder

	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" class="cloud" role="img" aria-label="trending words">`,
		width, height, width, height)
	b.WriteString("\n")

	for _, p := range placed {
		volumeAttr := ""
		label := fmt.Sprintf("%s: volume unknown", p.Text)
		if p.Volume != nil {
			volumeAttr = fmt.Sprintf("%d", *p.Volume)
			label = fmt.Sprintf("%s: %d mentions", p.Text, *p.Volume)
		}
		fmt.Fprintf(&b,
			`<text transform="translate(%.1f,%.1f) rotate(%d)" text-anchor="middle" dominant-baseline="middle" class="cloud-word cloud-word--%s" fill="%s" font-size="%.1f" tabindex="0" role="button" aria-label="%s" data-word="%s" data-volume="%s">%s</text>`,
			p.X, p.Y, p.RotationDeg,
			p.Category, xmlEscape(p.Color), p.Size,
			xmlEscape(label), xmlEscape(p.Text), volumeAttr, xmlEscape(p.Text))
		b.WriteString("\n")
	}

	b.WriteString("</svg>\n")
	return []byte(b.String())
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}
