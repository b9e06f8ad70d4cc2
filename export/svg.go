// ABOUTME: Renders a computed timeline layout as a standalone SVG document.
// ABOUTME: The concrete realization of the declarative visual tree: gridlines, year labels, category-colored bars.
package export

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/redpolitica/trayectoria/layout"
)

const (
	svgHeaderHeight = 24 // space reserved above the lanes for year labels
	svgFooterPad    = 12
)

// SVG renders the layout as an SVG document string.
func SVG(lay layout.Layout, cfg layout.Config) string {
	var b strings.Builder

	height := svgHeaderHeight + lay.Height + svgFooterPad

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`+"\n",
		lay.Grid.TotalWidth, height)
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="#ffffff"/>`+"\n")

	for _, gl := range lay.Grid.Gridlines {
		stroke := "#e8e8e8"
		if gl.YearBoundary {
			stroke = "#c0c0c0"
		}
		fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1"/>`+"\n",
			gl.X, svgHeaderHeight, gl.X, height-svgFooterPad, stroke)
	}

	for _, lbl := range lay.Grid.YearLabels {
		fmt.Fprintf(&b, `<text x="%d" y="%d" font-family="sans-serif" font-size="11" fill="#666666">%d</text>`+"\n",
			lbl.X, svgHeaderHeight-8, lbl.Year)
	}

	for _, bar := range lay.Bars {
		fill := cfg.Color(bar.Category.String())
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" rx="2" fill="%s">`,
			bar.Left, svgHeaderHeight+bar.Top, bar.Width, bar.Height, fill)
		fmt.Fprintf(&b, `<title>%s</title>`, html.EscapeString(barTitle(bar)))
		b.WriteString("</rect>\n")

		if bar.Width > 3*len(bar.PrimaryLabel) {
			fmt.Fprintf(&b, `<text x="%d" y="%d" font-family="sans-serif" font-size="10" fill="#ffffff">%s</text>`+"\n",
				bar.Left+4, svgHeaderHeight+bar.Top+bar.Height/2+4, html.EscapeString(bar.PrimaryLabel))
		}
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// WriteSVG writes the SVG rendering to w.
func WriteSVG(w io.Writer, lay layout.Layout, cfg layout.Config) error {
	_, err := io.WriteString(w, SVG(lay, cfg))
	return err
}

// barTitle is the hover caption: primary label, counterpart, and date span.
func barTitle(bar layout.Bar) string {
	span := fmt.Sprintf("%s – %s", bar.Start.Format("2006-01"), bar.End.Format("2006-01"))
	if bar.SecondaryLabel == "" {
		return fmt.Sprintf("%s (%s)", bar.PrimaryLabel, span)
	}
	return fmt.Sprintf("%s, %s (%s)", bar.PrimaryLabel, bar.SecondaryLabel, span)
}
