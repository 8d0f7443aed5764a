// Package categorize handles the single-description categorization command.
package categorize

import (
	"github.com/spf13/cobra"

	"github.com/kolade082/ksavers/cmd/root"
	"github.com/kolade082/ksavers/internal/categorizer"
)

var description string

// Cmd represents the categorize command.
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a transaction description",
	Long:  `Categorize a single transaction description using the keyword table.`,
	Run:   categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Transaction description (required)")
	if err := Cmd.MarkFlagRequired("description"); err != nil {
		panic(err)
	}
}

func categorizeFunc(cmd *cobra.Command, args []string) {
	rules, err := categorizer.LoadRules(root.Cfg.Categorization.CategoriesFile)
	if err != nil {
		root.Log.Fatalf("Error loading categories: %v", err)
	}

	c := categorizer.New(rules, root.Logger())
	category := c.Categorize(description)

	root.Log.Infof("Transaction categorized as: %s", category)
	cmd.Println(category)
}
