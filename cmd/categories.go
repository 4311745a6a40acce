package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"billkeep/internal/cli"
	"billkeep/internal/model"
	"billkeep/internal/report"
	"billkeep/internal/store"
)

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"cats"},
	Short:   "Show budget categories and how much of each is spent",
	RunE:    runCategoriesList,
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a budget category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesAdd,
}

var categoryBudget string

func init() {
	categoriesAddCmd.Flags().StringVar(&categoryBudget, "budget", "", "Monthly budget for the category")
	categoriesCmd.AddCommand(categoriesAddCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runCategoriesList(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	cats, err := st.ListCategories()
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		fmt.Println("\n  No categories yet. Add one with: billkeep categories add <name> --budget <amount>")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGET CATEGORIES"))
	fmt.Println()

	for _, u := range report.RankCategories(cats) {
		c := u.Category
		fmt.Printf("  %-20s %10s of %-10s %s\n",
			c.Name,
			cli.FormatAmount(c.Spent),
			cli.FormatAmount(c.Budget),
			cli.RenderBudgetBar(u.UsedPercent, 24),
		)
	}
	fmt.Println()
	return nil
}

func runCategoriesAdd(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if categoryBudget == "" {
		return errors.New("--budget is required")
	}
	budget, err := decimal.NewFromString(categoryBudget)
	if err != nil || budget.IsNegative() {
		return fmt.Errorf("invalid budget %q", categoryBudget)
	}

	cat, err := st.CreateCategory(args[0], budget)
	if err != nil {
		return err
	}
	fmt.Printf("  Added category %q with a %s budget\n", cat.Name, cli.FormatAmount(cat.Budget))
	return nil
}

// findCategory resolves a user-supplied reference to a category by ID
// prefix or exact (case-insensitive) name.
func findCategory(st *store.Store, ref string) (model.Category, error) {
	cats, err := st.ListCategories()
	if err != nil {
		return model.Category{}, err
	}
	for _, c := range cats {
		if strings.HasPrefix(c.ID, ref) || strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}
	return model.Category{}, fmt.Errorf("no category matches %q", ref)
}
