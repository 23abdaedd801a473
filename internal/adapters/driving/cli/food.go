package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/nutri-cli/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/nutri-cli/internal/core/domain"
)

var (
	foodServing  int
	foodJSON     bool
	foodLimit    int
	completeSize = 20
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Inspect and manage catalog foods",
}

var foodShowCmd = &cobra.Command{
	Use:   "show [slug]",
	Short: "Show the nutrition label of a food",
	Long: `Prints the nutrition facts label of a food.

The label defaults to the food's own serving size (or 100g when the food
has none). Use --serving to scale it to any weight between 1 and 1000g.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeFoodSlug,
	RunE:              runFoodShow,
}

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog foods",
	Args:  cobra.NoArgs,
	RunE:  runFoodList,
}

var foodImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import foods from a JSON file",
	Long: `Imports a JSON array of foods into the catalog. Foods are keyed by
slug; an existing food with the same slug is replaced.

Only the sqlite and memory catalogs accept imports. Switch with:
  nutri settings set catalog.backend sqlite`,
	Args: cobra.ExactArgs(1),
	RunE: runFoodImport,
}

var foodOpenCmd = &cobra.Command{
	Use:               "open [slug]",
	Short:             "Open a food page in the browser",
	Long:              `Opens the food's page of the web front end. Start it with 'nutri serve'.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeFoodSlug,
	RunE:              runFoodOpen,
}

func init() {
	foodShowCmd.Flags().IntVarP(&foodServing, "serving", "s", 0, "serving size in grams (default: the food's serving)")
	foodShowCmd.Flags().BoolVar(&foodJSON, "json", false, "output the label as JSON")
	foodListCmd.Flags().IntVarP(&foodLimit, "limit", "n", 0, "maximum number of foods (0 = all)")
	foodCmd.AddCommand(foodShowCmd)
	foodCmd.AddCommand(foodListCmd)
	foodCmd.AddCommand(foodImportCmd)
	foodCmd.AddCommand(foodOpenCmd)
	rootCmd.AddCommand(foodCmd)
}

func completeFoodSlug(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || foodService == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	slugs, err := foodService.CompleteSlug(cmd.Context(), toComplete, completeSize)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return slugs, cobra.ShellCompDirectiveNoFileComp
}

func runFoodShow(cmd *cobra.Command, args []string) error {
	if foodService == nil {
		return errFoodNotConfigured
	}
	if foodServing < 0 {
		return fmt.Errorf("serving must be positive: %w", domain.ErrInvalidInput)
	}

	label, err := foodService.Label(cmd.Context(), args[0], foodServing)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("food %q not found", args[0])
		}
		return err
	}

	if foodJSON {
		data, err := json.MarshalIndent(label, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal label: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Print(renderLabel(label))
	return nil
}

// renderLabel formats a label as plain text.
func renderLabel(label domain.NutritionLabel) string {
	const width = 40
	n := label.Nutrients
	rule := strings.Repeat("-", width) + "\n"
	heavy := strings.Repeat("=", width) + "\n"

	var b strings.Builder
	b.WriteString(label.FoodName + "\n")
	b.WriteString("Nutrition Facts\n")
	fmt.Fprintf(&b, "Serving Size %dg", n.ServingSizeG)
	if note := label.ServingNote(); note != "" {
		b.WriteString(" " + note)
	}
	b.WriteString("\n" + heavy)
	b.WriteString("Amount Per Serving\n")
	fmt.Fprintf(&b, "%-20s%20s\n", fmt.Sprintf("Calories %d", n.Calories),
		fmt.Sprintf("Calories from Fat %d", n.CaloriesFromFat))
	b.WriteString(heavy)
	fmt.Fprintf(&b, "%*s\n", width, "% Daily Value*")
	for _, row := range label.Rows() {
		b.WriteString(rule)
		name := row.Name + " " + row.Amount
		if row.Indent {
			name = "  " + name
		}
		fmt.Fprintf(&b, "%-*s%s\n", width-len(row.DailyValue), name, row.DailyValue)
	}
	b.WriteString(heavy)
	b.WriteString(domain.LabelFootnote + "\n")
	return b.String()
}

func runFoodList(cmd *cobra.Command, _ []string) error {
	if foodService == nil {
		return errFoodNotConfigured
	}

	foods, err := foodService.List(cmd.Context(), foodLimit)
	if err != nil {
		return fmt.Errorf("failed to list foods: %w", err)
	}

	if len(foods) == 0 {
		cmd.Println("No foods in the catalog.")
		return nil
	}

	cmd.Printf("Foods (%d):\n", len(foods))
	for i := range foods {
		f := &foods[i]
		category := domain.OtherCategory
		if f.Category != nil && *f.Category != "" {
			category = *f.Category
		}
		cmd.Printf("  %-24s %-28s %s\n", f.Slug, f.Name, category)
	}
	return nil
}

func runFoodImport(cmd *cobra.Command, args []string) error {
	if foodService == nil {
		return errFoodNotConfigured
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	foods, err := jsonfile.Parse(data)
	if err != nil {
		return err
	}

	n, err := foodService.Import(cmd.Context(), foods)
	if err != nil {
		return fmt.Errorf("import stopped after %d foods: %w", n, err)
	}
	cmd.Printf("Imported %d foods.\n", n)
	return nil
}

func runFoodOpen(cmd *cobra.Command, args []string) error {
	if foodService == nil {
		return errFoodNotConfigured
	}
	if navigator == nil {
		return errors.New("navigator not configured")
	}

	food, err := foodService.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := navigator.NavigateTo(cmd.Context(), domain.FoodRoute(food.Slug)); err != nil {
		return fmt.Errorf("opening %s: %w", food.Slug, err)
	}
	cmd.Printf("Opened %s\n", food.Name)
	return nil
}
