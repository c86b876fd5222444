package stats

import (
	"fmt"
	"math"
	"strings"

	"github.com/verte-zerg/thok/internal/model"
)

const (
	minChartHeight = 3
	chartTick      = "┤"
	chartAxis      = "│"
	chartCorner    = "└"
	chartRule      = "─"
)

// Chart renders a WPM-over-time line chart. The x axis spans from the first
// second (or 1, whichever is lower) to the last sample, the y axis from 0 to
// the rounded peak WPM. width and height are in terminal cells and include
// the axes.
func Chart(samples []model.Sample, width, height int) []string {
	if len(samples) == 0 {
		return nil
	}
	xLo := math.Min(1, samples[0].Second)
	xHi := samples[len(samples)-1].Second
	yHi := 0.0
	for _, s := range samples {
		yHi = math.Max(yHi, s.WPM)
	}
	yHi = math.Max(math.Round(yHi), 1)

	top := fmt.Sprintf("%.0f", yHi)
	labelWidth := len(top)
	plotWidth := width - labelWidth - 1
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	plotHeight := height - 2
	if plotHeight < minChartHeight {
		plotHeight = minChartHeight
	}

	c := newCanvas(plotWidth, plotHeight)
	prevX, prevY := -1, -1
	for _, s := range samples {
		x := c.col(s.Second, xLo, xHi)
		y := c.row(s.WPM, 0, yHi)
		if prevX >= 0 {
			c.line(prevX, prevY, x, y, solid)
		} else {
			c.set(x, y)
		}
		prevX, prevY = x, y
	}

	lines := make([]string, 0, plotHeight+2)
	for i, row := range c.rows() {
		label, sep := "", chartAxis
		switch i {
		case 0:
			label, sep = top, chartTick
		case plotHeight - 1:
			label, sep = "0", chartTick
		}
		lines = append(lines, fmt.Sprintf("%*s%s%s", labelWidth, label, sep, row))
	}
	lines = append(lines, strings.Repeat(" ", labelWidth)+chartCorner+strings.Repeat(chartRule, plotWidth))

	left := trimFloat(xLo) + "s"
	right := trimFloat(xHi) + "s"
	gap := plotWidth - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	lines = append(lines, strings.Repeat(" ", labelWidth+1)+left+strings.Repeat(" ", gap)+right)
	return lines
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}
