package tui

import (
	"testing"
	"time"

	"billkeep/internal/date"
	"billkeep/internal/model"
	"billkeep/internal/tui/components"
)

func TestTabAtXMatchesRenderedHitboxes(t *testing.T) {
	a := App{activeTab: 0}

	// Walk every column across the bar and ensure hitboxes are contiguous
	// with the two-space separators mapping to no tab.
	pos := 1
	for i, tab := range components.Tabs {
		w := components.TabVisualWidth(tab, i == 0)
		for x := pos; x < pos+w; x++ {
			if got := a.tabAtX(x); got != i {
				t.Errorf("tabAtX(%d) = %d, want %d (%s)", x, got, i, tab.Name)
			}
		}
		pos += w
		if i < len(components.Tabs)-1 {
			if got := a.tabAtX(pos); got != -1 {
				t.Errorf("tabAtX(%d) in separator = %d, want -1", pos, got)
			}
			pos += 2
		}
	}

	if got := a.tabAtX(0); got != -1 {
		t.Errorf("tabAtX(0) leading margin = %d, want -1", got)
	}
	if got := a.tabAtX(pos + 5); got != -1 {
		t.Errorf("tabAtX past last tab = %d, want -1", got)
	}
}

func TestAddBillValuesToItem(t *testing.T) {
	cats := []model.Category{{ID: "cat-1", Name: "Housing"}}

	t.Run("valid recurring", func(t *testing.T) {
		v := addBillValues{
			title: "Rent", amount: "1200", due: "2024-01-31",
			recurring: true, frequency: "monthly", category: "housing",
		}
		item, err := v.toItem(cats)
		if err != nil {
			t.Fatalf("toItem: %v", err)
		}
		if item.Kind != model.KindBill || !item.IsRecurring {
			t.Errorf("unexpected item %+v", item)
		}
		if item.CategoryID != "cat-1" {
			t.Errorf("CategoryID = %q, want cat-1 (case-insensitive match)", item.CategoryID)
		}
		want := date.New(2024, time.January, 31)
		if item.AnchorDate != want {
			t.Errorf("AnchorDate = %s, want %s", item.AnchorDate, want)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		if _, err := (addBillValues{title: "Rent"}).toItem(nil); err == nil {
			t.Error("expected error for missing amount and due date")
		}
	})

	t.Run("bad amount", func(t *testing.T) {
		v := addBillValues{title: "Rent", amount: "abc", due: "2024-01-31"}
		if _, err := v.toItem(nil); err == nil {
			t.Error("expected error for non-numeric amount")
		}
	})

	t.Run("custom without interval", func(t *testing.T) {
		v := addBillValues{
			title: "Gym", amount: "30", due: "2024-01-15",
			recurring: true, frequency: "custom",
		}
		if _, err := v.toItem(nil); err == nil {
			t.Error("expected error for custom frequency without interval days")
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		v := addBillValues{
			title: "Rent", amount: "1200", due: "2024-01-31", category: "nope",
		}
		if _, err := v.toItem(cats); err == nil {
			t.Error("expected error for unknown category name")
		}
	})
}

func TestBillsCursorClampOnRecompute(t *testing.T) {
	a := App{
		today:        date.New(2024, time.March, 1),
		billMonths:   1,
		incomeMonths: 1,
		billCursor:   5,
		items: []model.Item{
			{ID: "b1", Kind: model.KindBill, Name: "Rent",
				AnchorDate: date.New(2024, time.March, 1)},
		},
	}
	a.recompute()
	if a.billCursor != 0 {
		t.Errorf("billCursor = %d, want 0 after clamp", a.billCursor)
	}
}
