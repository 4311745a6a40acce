package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"billkeep/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkRamp = []rune("▁▂▃▄▅▆▇█")

// Sparkline compresses a daily money series into one line of block glyphs,
// scaled against the largest value in the series.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	var peak float64
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}

	runes := make([]rune, len(values))
	for i, v := range values {
		if peak == 0 || v <= 0 {
			runes[i] = sparkRamp[0]
			continue
		}
		idx := int(v / peak * float64(len(sparkRamp)-1))
		if idx > len(sparkRamp)-1 {
			idx = len(sparkRamp) - 1
		}
		runes[i] = sparkRamp[idx]
	}
	return lipgloss.NewStyle().Foreground(color).Render(string(runes))
}

// SpendChart renders a month of daily spending as a bar chart with a
// dollar-scaled axis: one bar per day, day numbers along the bottom.
// Falls back to a sparkline when the area is too small for the grid, and
// renders nothing for a month with no spending.
func SpendChart(values []float64, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if height < 4 {
		return Sparkline(values, color)
	}

	var peak float64
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		return ""
	}
	ceiling := niceMoneyCeiling(peak)

	midRow := (height + 1) / 2
	topLabel := formatMoneyTick(ceiling)
	midLabel := formatMoneyTick(ceiling * float64(midRow) / float64(height))
	yLabelW := len(topLabel)
	if len(midLabel) > yLabelW {
		yLabelW = len(midLabel)
	}

	n := len(values)
	barW := (width - yLabelW - 1 - (n - 1)) / n
	if barW < 1 {
		return Sparkline(values, color)
	}
	if barW > 4 {
		barW = 4
	}
	axisLen := n*barW + n - 1

	t := theme.Active
	barStyle := lipgloss.NewStyle().Foreground(color)
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	for row := height; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(height)
		rowBottom := ceiling * float64(row-1) / float64(height)

		label := ""
		switch row {
		case height:
			label = topLabel
		case midRow:
			label = midLabel
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, label)))
		b.WriteString(axisStyle.Render("│"))

		for i, v := range values {
			if i > 0 {
				b.WriteString(" ")
			}
			switch {
			case v >= rowTop:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				frac := (v - rowBottom) / (rowTop - rowBottom)
				idx := int(frac * float64(len(sparkRamp)))
				if idx < 1 {
					idx = 1
				}
				if idx > len(sparkRamp) {
					idx = len(sparkRamp)
				}
				b.WriteString(barStyle.Render(strings.Repeat(string(sparkRamp[idx-1]), barW)))
			default:
				b.WriteString(strings.Repeat(" ", barW))
			}
		}
		b.WriteString("\n")
	}

	// Baseline with day-of-month ticks every fifth day.
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "$0")))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", axisLen)))
	b.WriteString("\n")

	ticks := make([]byte, axisLen)
	for i := range ticks {
		ticks[i] = ' '
	}
	for day := 1; day <= n; day++ {
		if day != 1 && day%5 != 0 {
			continue
		}
		lbl := strconv.Itoa(day)
		pos := (day - 1) * (barW + 1)
		if pos+len(lbl) > axisLen {
			break
		}
		copy(ticks[pos:], lbl)
	}
	b.WriteString(strings.Repeat(" ", yLabelW+1))
	b.WriteString(axisStyle.Render(strings.TrimRight(string(ticks), " ")))

	return b.String()
}

// niceMoneyCeiling rounds peak up to a 1/2/5 step so axis labels land on
// round dollar amounts.
func niceMoneyCeiling(peak float64) float64 {
	base := math.Pow(10, math.Floor(math.Log10(peak)))
	for _, mult := range []float64{1, 2, 5} {
		if peak <= mult*base {
			return mult * base
		}
	}
	return 10 * base
}

func formatMoneyTick(v float64) string {
	switch {
	case v >= 1e6:
		return strings.TrimSuffix(fmt.Sprintf("$%.1f", v/1e6), ".0") + "M"
	case v >= 1e3:
		return strings.TrimSuffix(fmt.Sprintf("$%.1f", v/1e3), ".0") + "k"
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}
