package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// Series is a named run of values plotted against their index.
type Series struct {
	Name   string
	Values []float64
}

// lineStyle draws `on` dots out of every `period` columns.
type lineStyle struct {
	name   string
	period int
	on     int
}

func (ls lineStyle) shouldPlot(x int) bool {
	return ls.period <= 1 || abs(x)%ls.period < ls.on
}

type ansiColor struct {
	code string
}

const (
	defaultPlotHeight = 10
	minPlotWidth      = 10
	fallbackWidth     = 80
	axisLabelTop      = "100%"
	axisLabelMid      = "50%"
	axisLabelBottom   = "0%"
	axisSeparator     = " │ "
	scaleNote         = "Scaled per series; see min/max below."
	colorReset        = "\x1b[0m"
)

var (
	solid      = lineStyle{name: "solid", period: 1, on: 1}
	lineStyles = []lineStyle{
		solid,
		{name: "dashed", period: 6, on: 3},
		{name: "dotted", period: 4, on: 1},
		{name: "dashdot", period: 8, on: 3},
	}
	colorPalette = []ansiColor{
		{code: "\x1b[36m"},
		{code: "\x1b[35m"},
		{code: "\x1b[33m"},
		{code: "\x1b[32m"},
		{code: "\x1b[34m"},
	}
)

// layer is one series rasterised onto its own canvas.
type layer struct {
	series Series
	lo, hi float64
	canvas *canvas
}

// PlotSeries renders a multi-line text plot for the provided series.
func PlotSeries(w io.Writer, title string, series []Series, width, height int) error {
	return PlotSeriesWithColor(w, title, series, width, height, false)
}

// PlotSeriesWithColor is PlotSeries with colour forced on when forceColor is
// set. Each series is scaled to its own min/max. Empty series are skipped.
func PlotSeriesWithColor(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	width = max(width, minPlotWidth)

	var layers []layer
	for _, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		layers = append(layers, rasterise(s, lineStyles[len(layers)%len(lineStyles)], width, height))
	}
	if len(layers) == 0 {
		return nil
	}

	color := shouldUseColor(w, forceColor)
	var out []string
	if title != "" {
		out = append(out, title)
	}
	out = append(out, scaleNote)
	for _, l := range layers {
		out = append(out, fmt.Sprintf("%s: min=%.2f max=%.2f", l.series.Name, l.lo, l.hi))
	}
	out = append(out, plotRows(layers, width, height, color)...)
	out = append(out, legend(layers, color), "")
	return writeLines(w, out)
}

func rasterise(s Series, style lineStyle, width, height int) layer {
	values := resample(s.Values, width)
	lo, hi := minMax(values)
	if math.Abs(hi-lo) < 1e-9 {
		lo, hi = lo-1, hi+1
	}
	c := newCanvas(width, height)
	for x := range values {
		px, py := x*2, c.row(values[x], lo, hi)
		if x == 0 {
			if style.shouldPlot(px) {
				c.set(px, py)
			}
			continue
		}
		c.line((x-1)*2, c.row(values[x-1], lo, hi), px, py, style)
	}
	return layer{series: s, lo: lo, hi: hi, canvas: c}
}

// plotRows overlays the layers cell by cell. A cell takes the colour of the
// first layer that has dots in it.
func plotRows(layers []layer, width, height int, color bool) []string {
	labels := axisLabels(height)
	rows := make([]string, height)
	for y := range rows {
		var b strings.Builder
		fmt.Fprintf(&b, "%*s%s", utf8.RuneCountInString(axisLabelTop), labels[y], axisSeparator)
		for x := 0; x < width; x++ {
			var mask uint8
			owner := -1
			for i, l := range layers {
				if m := l.canvas.mask(x, y); m != 0 {
					mask |= m
					if owner < 0 {
						owner = i
					}
				}
			}
			ch := string(brailleFromMask(mask))
			if color && owner >= 0 {
				ch = colorPalette[owner%len(colorPalette)].code + ch + colorReset
			}
			b.WriteString(ch)
		}
		rows[y] = b.String()
	}
	return rows
}

func axisLabels(height int) []string {
	labels := make([]string, height)
	switch {
	case height > 2:
		labels[height/2] = axisLabelMid
		fallthrough
	case height > 1:
		labels[height-1] = axisLabelBottom
		fallthrough
	case height > 0:
		labels[0] = axisLabelTop
	}
	return labels
}

func legend(layers []layer, color bool) string {
	marker := brailleFromMask(0x01)
	parts := make([]string, len(layers))
	for i, l := range layers {
		parts[i] = fmt.Sprintf("%c %s (%s)", marker, l.series.Name, lineStyles[i%len(lineStyles)].name)
		if color {
			parts[i] = colorPalette[i%len(colorPalette)].code + parts[i] + colorReset
		}
	}
	return "Legend: " + strings.Join(parts, "  ")
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// PlotWidthFor returns the plot area left after the axis labels.
func PlotWidthFor(totalWidth int) int {
	axis := utf8.RuneCountInString(axisLabelTop) + utf8.RuneCountInString(axisSeparator)
	return max(totalWidth-axis, minPlotWidth)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// resample stretches (linear interpolation) or squeezes (bucket means) values
// to exactly width points.
func resample(values []float64, width int) []float64 {
	n := len(values)
	if n == 0 || width <= 0 {
		return nil
	}
	out := make([]float64, width)
	switch {
	case n == width:
		copy(out, values)
	case n > width:
		for i := range out {
			start, end := i*n/width, (i+1)*n/width
			end = max(end, start+1)
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case n == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		step := float64(n-1) / float64(width-1)
		for i := range out {
			pos := float64(i) * step
			idx := int(pos)
			if idx >= n-1 {
				out[i] = values[n-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx] + (values[idx+1]-values[idx])*frac
		}
	}
	return out
}

func minMax(values []float64) (lo, hi float64) {
	for i, v := range values {
		if i == 0 || v < lo {
			lo = v
		}
		if i == 0 || v > hi {
			hi = v
		}
	}
	return lo, hi
}
