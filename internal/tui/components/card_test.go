package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force a color profile so rendered widths are deterministic in CI.
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestMetricRowWidthsSum(t *testing.T) {
	metrics := []Metric{
		{Label: "Bills due", Value: "$1432.00", Note: "4 bills"},
		{Label: "Paid", Value: "$200.00"},
		{Label: "Income", Value: "$3100.00"},
	}
	row := MetricRow(metrics, 100)
	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 100 {
			t.Errorf("line %d width = %d, want 100", i, w)
		}
	}
}

func TestMetricRowEmpty(t *testing.T) {
	if MetricRow(nil, 80) != "" {
		t.Fatal("no metrics should render nothing")
	}
}

func TestContentCardConstantWidth(t *testing.T) {
	card := ContentCard("Upcoming", "Rent\nPower\nWater", 40)
	lines := strings.Split(card, "\n")
	if len(lines) < 5 {
		t.Fatalf("expected bordered card, got %d lines", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 40 {
			t.Errorf("line %d width = %d, want 40", i, w)
		}
	}
}

func TestCardInnerWidth(t *testing.T) {
	if got := CardInnerWidth(40); got != 36 {
		t.Fatalf("CardInnerWidth(40) = %d, want 36", got)
	}
	if got := CardInnerWidth(8); got != 10 {
		t.Fatalf("CardInnerWidth(8) = %d, want floor of 10", got)
	}
}
