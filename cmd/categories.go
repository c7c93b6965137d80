package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cloudagents/cloudagents"
)

var culture string

// categoriesCmd represents the categories command
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List agent categories",
	Long:  `List the categories agents are grouped in, optionally localized with --culture.`,
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)

	categoriesCmd.Flags().StringVar(&culture, "culture", "", "culture used for names, e.g. fr-FR")
	addFilterFlags(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	categories, err := client.GetCategories(cmd.Context(), cloudagents.CategoriesOptions{Culture: culture})
	if err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}

	return printList(cmd, categories, "id", "name")
}
