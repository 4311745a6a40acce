package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"billkeep/internal/date"
	"billkeep/internal/model"
	"billkeep/internal/schedule"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
)

// addBillValues backs the add-bill form fields.
type addBillValues struct {
	title      string
	amount     string
	due        string
	recurring  bool
	frequency  string
	customDays string
	category   string
}

// newAddBillForm builds the in-dashboard bill entry form. Same fields as
// `billkeep bills add --interactive`.
func newAddBillForm(cats []model.Category, vals *addBillValues) *huh.Form {
	freqOptions := make([]huh.Option[string], 0, len(model.Frequencies))
	for _, f := range model.Frequencies {
		freqOptions = append(freqOptions, huh.NewOption(string(f), string(f)))
	}

	catOptions := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, c := range cats {
		catOptions = append(catOptions, huh.NewOption(c.Name, c.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&vals.title),
			huh.NewInput().Title("Amount").Placeholder("59.99").Value(&vals.amount),
			huh.NewInput().Title("Due date").Placeholder("YYYY-MM-DD").Value(&vals.due),
			huh.NewConfirm().Title("Recurring?").Value(&vals.recurring),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Frequency").Options(freqOptions...).Value(&vals.frequency),
			huh.NewInput().Title("Interval days (custom only)").Value(&vals.customDays),
		).WithHideFunc(func() bool { return !vals.recurring }),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Category").Options(catOptions...).Value(&vals.category),
		),
	)
}

// toItem validates the form values into a bill. Schedule validation mirrors
// what the engine enforces so bad schedules are rejected at entry.
func (v addBillValues) toItem(cats []model.Category) (model.Item, error) {
	if v.title == "" || v.amount == "" || v.due == "" {
		return model.Item{}, errors.New("title, amount, and due date are required")
	}
	amount, err := decimal.NewFromString(v.amount)
	if err != nil || amount.IsNegative() {
		return model.Item{}, fmt.Errorf("invalid amount %q", v.amount)
	}
	due, err := date.Parse(v.due)
	if err != nil {
		return model.Item{}, err
	}

	item := model.Item{
		Kind:        model.KindBill,
		Name:        v.title,
		Amount:      amount,
		AnchorDate:  due,
		IsRecurring: v.recurring,
	}
	if v.recurring {
		item.Frequency = model.Frequency(v.frequency)
		if v.customDays != "" {
			n, err := strconv.Atoi(v.customDays)
			if err != nil {
				return model.Item{}, fmt.Errorf("invalid interval days %q", v.customDays)
			}
			item.CustomIntervalDays = n
		}
		if _, err := schedule.Step(due, due.Day, item.Frequency, item.CustomIntervalDays); err != nil {
			return model.Item{}, err
		}
	}
	if v.category != "" {
		found := false
		for _, c := range cats {
			if strings.EqualFold(c.Name, v.category) {
				item.CategoryID = c.ID
				found = true
				break
			}
		}
		if !found {
			return model.Item{}, fmt.Errorf("no category named %q", v.category)
		}
	}
	return item, nil
}
