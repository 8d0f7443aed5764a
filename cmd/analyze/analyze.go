// Package analyze handles the statement analysis command.
package analyze

import (
	"encoding/json"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kolade082/ksavers/cmd/root"
	"github.com/kolade082/ksavers/internal/analyzer"
	"github.com/kolade082/ksavers/internal/categorizer"
	"github.com/kolade082/ksavers/internal/common"
	"github.com/kolade082/ksavers/internal/extractor"
	"github.com/kolade082/ksavers/internal/store"
)

var (
	ledgerFile string
	save       bool
)

// Cmd represents the analyze command.
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a bank statement",
	Long: `Analyze a bank statement (PDF, text, or CSV): extract transactions,
categorize spending, and emit the analysis result as JSON.`,
	Run: analyzeFunc,
}

func init() {
	Cmd.Flags().StringVar(&ledgerFile, "ledger", "", "Also write the categorized transactions to this CSV file")
	Cmd.Flags().BoolVar(&save, "save", false, "Save the result to the analysis history")
}

func analyzeFunc(cmd *cobra.Command, args []string) {
	logger := root.Logger()
	cfg := root.Cfg

	if root.SharedFlags.Input == "" {
		root.Log.Fatal("Input file is required (--input)")
	}

	content, err := os.ReadFile(root.SharedFlags.Input) // #nosec G304 -- user-supplied input path
	if err != nil {
		root.Log.Fatalf("Error reading input file: %v", err)
	}

	rules, err := categorizer.LoadRules(cfg.Categorization.CategoriesFile)
	if err != nil {
		root.Log.Fatalf("Error loading categories: %v", err)
	}

	seed := cfg.Fallback.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- synthetic demo data, not crypto

	a := analyzer.New(analyzer.Options{
		Remote:          extractor.NewClient(cfg.Extractor.Endpoint, time.Duration(cfg.Extractor.TimeoutSeconds)*time.Second, logger),
		Generator:       extractor.NewGenerator(rng, time.Now(), logger),
		Categorizer:     categorizer.New(rules, logger),
		FallbackEnabled: cfg.Extractor.FallbackEnabled,
		Logger:          logger,
	})

	result, err := a.Analyze(cmd.Context(), root.SharedFlags.Input, content)
	if err != nil {
		root.Log.Fatalf("Error analyzing statement: %v", err)
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		root.Log.Fatalf("Error encoding result: %v", err)
	}

	if root.SharedFlags.Output != "" {
		if err := os.WriteFile(root.SharedFlags.Output, encoded, 0600); err != nil {
			root.Log.Fatalf("Error writing result: %v", err)
		}
		root.Log.Infof("Wrote analysis result to %s", root.SharedFlags.Output)
	} else {
		cmd.Println(string(encoded))
	}

	if ledgerFile != "" {
		if err := common.WriteTransactionsToCSV(result.Transactions, ledgerFile); err != nil {
			root.Log.Fatalf("Error writing ledger CSV: %v", err)
		}
	}

	if save {
		s := store.New(cfg.History.Directory, cfg.History.Limit, logger)
		if err := s.Save(result); err != nil {
			root.Log.Fatalf("Error saving analysis: %v", err)
		}
	}
}
