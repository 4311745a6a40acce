package components

import (
	"strings"
	"testing"

	"billkeep/internal/tui/theme"
)

func TestSparklineScalesAgainstPeak(t *testing.T) {
	out := Sparkline([]float64{0, 50, 100}, theme.Active.Orange)
	if !strings.Contains(out, "▁") || !strings.Contains(out, "█") {
		t.Fatalf("sparkline missing extremes: %q", out)
	}
}

func TestSparklineEmpty(t *testing.T) {
	if Sparkline(nil, theme.Active.Orange) != "" {
		t.Fatal("empty series should render nothing")
	}
}

func TestSpendChartDollarAxis(t *testing.T) {
	values := make([]float64, 30)
	values[4] = 120
	values[17] = 450
	out := SpendChart(values, theme.Active.Blue, 120, 8)
	if !strings.Contains(out, "$500") {
		t.Fatalf("missing dollar ceiling label:\n%s", out)
	}
	if !strings.Contains(out, "$0") {
		t.Fatalf("missing zero label:\n%s", out)
	}
	if !strings.Contains(out, "█") {
		t.Fatalf("no bars rendered:\n%s", out)
	}
	// Day ticks land under their bars.
	if !strings.Contains(out, "30") {
		t.Fatalf("missing last day tick:\n%s", out)
	}
}

func TestSpendChartEmptyMonth(t *testing.T) {
	if out := SpendChart(make([]float64, 30), theme.Active.Blue, 120, 8); out != "" {
		t.Fatalf("zero month should render nothing, got:\n%s", out)
	}
}

func TestSpendChartNarrowFallsBackToSparkline(t *testing.T) {
	values := []float64{10, 20, 30, 40}
	out := SpendChart(values, theme.Active.Blue, 6, 8)
	if strings.Contains(out, "│") {
		t.Fatalf("narrow chart should not draw an axis:\n%s", out)
	}
	if !strings.Contains(out, "█") {
		t.Fatalf("fallback sparkline missing:\n%s", out)
	}
}

func TestNiceMoneyCeiling(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{80, 100},
		{100, 100},
		{120, 200},
		{450, 500},
		{501, 1000},
	}
	for _, tc := range cases {
		if got := niceMoneyCeiling(tc.in); got != tc.want {
			t.Errorf("niceMoneyCeiling(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
