// Package history handles the saved-analysis listing command.
package history

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kolade082/ksavers/cmd/root"
	"github.com/kolade082/ksavers/internal/store"
)

var showLast bool

// Cmd represents the history command.
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "List saved analyses",
	Long:  `List saved analyses, most recent first, or print the latest result.`,
	Run:   historyFunc,
}

func init() {
	Cmd.Flags().BoolVar(&showLast, "last", false, "Print the latest saved analysis as JSON")
}

func historyFunc(cmd *cobra.Command, args []string) {
	s := store.New(root.Cfg.History.Directory, root.Cfg.History.Limit, root.Logger())

	if showLast {
		last, err := s.Last()
		if err != nil {
			root.Log.Fatalf("Error reading last analysis: %v", err)
		}
		if last == nil {
			cmd.Println("No saved analysis")
			return
		}
		encoded, err := json.MarshalIndent(last, "", "  ")
		if err != nil {
			root.Log.Fatalf("Error encoding result: %v", err)
		}
		cmd.Println(string(encoded))
		return
	}

	entries, err := s.History()
	if err != nil {
		root.Log.Fatalf("Error reading history: %v", err)
	}
	if len(entries) == 0 {
		cmd.Println("No saved analyses")
		return
	}

	for _, entry := range entries {
		cmd.Println(fmt.Sprintf("%s  %s  spending=%s income=%s period=%s..%s",
			entry.Timestamp,
			entry.ID,
			entry.Result.TotalSpending.StringFixed(2),
			entry.Result.TotalIncome.StringFixed(2),
			entry.Result.Period.Start,
			entry.Result.Period.End,
		))
	}
}
