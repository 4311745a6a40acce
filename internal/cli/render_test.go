package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"billkeep/internal/date"
	"billkeep/internal/model"
)

func TestRenderCalendarMarksDays(t *testing.T) {
	today := date.New(2024, 3, 10)
	occs := []model.Occurrence{
		{SourceID: "b1", Kind: model.KindBill, Name: "Rent", Amount: decimal.NewFromInt(1200), DueDate: date.New(2024, 3, 1)},
		{SourceID: "b2", Kind: model.KindBill, Name: "Power", Amount: decimal.NewFromInt(80), DueDate: date.New(2024, 3, 15)},
		{SourceID: "b3", Kind: model.KindBill, Name: "Water", Amount: decimal.NewFromInt(40), DueDate: date.New(2024, 3, 15)},
	}
	out := RenderCalendar(2024, time.March, occs, today)
	if !strings.Contains(out, "March 2024") {
		t.Fatalf("missing heading:\n%s", out)
	}
	if !strings.Contains(out, "·1") || !strings.Contains(out, "·2") {
		t.Fatalf("missing day marks:\n%s", out)
	}
}

func TestRenderCalendarWideCountKeepsGrid(t *testing.T) {
	today := date.New(2024, 3, 10)
	occs := make([]model.Occurrence, 10000)
	for i := range occs {
		occs[i] = model.Occurrence{
			SourceID: "b1",
			Kind:     model.KindBill,
			Name:     "Sub",
			Amount:   decimal.NewFromInt(1),
			DueDate:  date.New(2024, 3, 5),
		}
	}
	out := RenderCalendar(2024, time.March, occs, today)
	if !strings.Contains(out, "·10000") {
		t.Fatalf("count not rendered:\n%s", out)
	}
	// Every week row still ends with a newline even when a mark is wider
	// than its cell.
	if !strings.HasSuffix(out, "\n") {
		t.Fatal("calendar output not newline-terminated")
	}
}
