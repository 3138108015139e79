package dashboard

import (
	"strings"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"

	"github.com/SrivP/stock-sentiment-analysis/internal/api"
)

const (
	markerGlyph    = '┊'
	maxWidenFactor = 4
	defaultHeight  = 12
)

// RenderChart plots the close, ma5 and predicted series as an ASCII
// line chart. Forecast rows get a dotted vertical marker on the last
// realized bar plus a labeled marker row, and a date range row is
// appended under the plot. An empty or valueless series renders as "".
func RenderChart(bars []api.DailyBar, height, width int) string {
	if len(bars) == 0 {
		return ""
	}
	if height <= 0 {
		height = defaultHeight
	}

	type plotSeries struct {
		data   []float64
		legend string
		color  asciigraph.AnsiColor
	}
	candidates := []plotSeries{
		{CloseSeries(bars), "close", asciigraph.Blue},
		{MA5Series(bars), "ma5", asciigraph.Yellow},
		{PredictedSeries(bars), "predicted", asciigraph.Red},
	}

	var (
		series  [][]float64
		legends []string
		colors  []asciigraph.AnsiColor
	)
	for _, c := range candidates {
		if hasValues(c.data) {
			series = append(series, c.data)
			legends = append(legends, c.legend)
			colors = append(colors, c.color)
		}
	}
	if len(series) == 0 {
		return ""
	}

	k := widenFactor(len(bars), width)
	for i := range series {
		series[i] = widen(series[i], k)
	}

	plot := asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
	)

	axis := axisColumn(strings.Split(plot, "\n"))
	if b := BoundaryIndex(bars); b >= 0 && axis >= 0 {
		markerCol := axis + 1 + b*k + k/2
		plot = insertBoundaryMarker(plot, markerCol)
		plot += "\n" + markerRow(bars[b].Date, markerCol, axis+1+len(bars)*k)
	}
	if axis >= 0 {
		plot += "\n" + dateAxis(bars, axis, len(bars)*k)
	}
	return plot
}

// markerRow labels the boundary column under the plot with the date of
// the last realized bar. The label goes to whichever side of the tip
// keeps it inside the plot width.
func markerRow(date string, markerCol, totalWidth int) string {
	label := date + " forecast"
	if markerCol+2+len(label) <= totalWidth || markerCol-len(label)-1 < 0 {
		return strings.Repeat(" ", markerCol) + "▲ " + label
	}
	return strings.Repeat(" ", markerCol-len(label)-1) + label + " ▲"
}

// widenFactor picks an integer horizontal stretch so the plot fills
// the available width. Repeating points instead of interpolating keeps
// NaN gaps open and keeps every column mapped to a bar index.
func widenFactor(n, width int) int {
	if n == 0 {
		return 1
	}
	usable := width - 12
	k := 1
	if usable > 0 {
		k = usable / n
	}
	if k < 1 {
		k = 1
	}
	if k > maxWidenFactor {
		k = maxWidenFactor
	}
	return k
}

// widen repeats each point k times.
func widen(series []float64, k int) []float64 {
	if k <= 1 {
		return series
	}
	out := make([]float64, 0, len(series)*k)
	for _, v := range series {
		for j := 0; j < k; j++ {
			out = append(out, v)
		}
	}
	return out
}

// axisColumn returns the visible column of the y-axis glyphs, or -1
// when no plot row is found.
func axisColumn(lines []string) int {
	for _, line := range lines {
		col := 0
		for i := 0; i < len(line); {
			if line[i] == 0x1b {
				j := strings.IndexByte(line[i:], 'm')
				if j < 0 {
					break
				}
				i += j + 1
				continue
			}
			r, size := utf8.DecodeRuneInString(line[i:])
			if r == '┤' || r == '┼' {
				return col
			}
			col++
			i += size
		}
	}
	return -1
}

// insertBoundaryMarker overlays a dotted vertical line at the given
// visible column on every plot row. Only blank cells are replaced so
// the curves stay intact; legend rows are left alone.
func insertBoundaryMarker(plot string, col int) string {
	lines := strings.Split(plot, "\n")
	for i, line := range lines {
		if !strings.ContainsAny(line, "┤┼") {
			continue
		}
		lines[i] = overlayRune(line, col, markerGlyph)
	}
	return strings.Join(lines, "\n")
}

// overlayRune writes r at the visible column col when that cell is a
// space, padding the line out when it ends before col. ANSI escape
// sequences are skipped, not counted.
func overlayRune(line string, col int, r rune) string {
	var b strings.Builder
	visible := 0
	placed := false
	for i := 0; i < len(line); {
		if line[i] == 0x1b {
			j := strings.IndexByte(line[i:], 'm')
			if j < 0 {
				b.WriteString(line[i:])
				return b.String()
			}
			b.WriteString(line[i : i+j+1])
			i += j + 1
			continue
		}
		cur, size := utf8.DecodeRuneInString(line[i:])
		if visible == col && cur == ' ' {
			b.WriteRune(r)
			placed = true
		} else {
			b.WriteRune(cur)
		}
		visible++
		i += size
	}
	if !placed && visible <= col {
		b.WriteString(strings.Repeat(" ", col-visible))
		b.WriteRune(r)
	}
	return b.String()
}

// dateAxis renders the first and last date of the series aligned with
// the plot edges.
func dateAxis(bars []api.DailyBar, axis, width int) string {
	first := bars[0].Date
	last := bars[len(bars)-1].Date
	pad := strings.Repeat(" ", axis+1)
	if len(bars) == 1 || width < len(first)+len(last)+2 {
		return pad + first
	}
	gap := width - len(first) - len(last)
	return pad + first + strings.Repeat(" ", gap) + last
}
