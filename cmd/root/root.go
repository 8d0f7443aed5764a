// Package root contains the root command for the application.
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kolade082/ksavers/internal/config"
	"github.com/kolade082/ksavers/internal/logging"
)

// CommonFlags represents the flags shared by multiple commands.
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// Log is the shared logrus instance used before configuration loads.
	Log = logrus.New()

	// Cfg is the loaded application configuration, available after
	// PersistentPreRun.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "ksavers",
		Short: "Analyze bank statements into categorized spending and savings insights.",
		Long: `ksavers turns a bank statement into structured transactions, categorizes
spending by keyword, and derives rule-based financial insights.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to ksavers!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv(Log)

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to initialize configuration: %v", err)
			}
			Cfg = cfg

			logging.SetLogger(logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
		},
	}

	// SharedFlags holds common flag values for all commands.
	SharedFlags = CommonFlags{}
)

// Logger returns the configured structured logger for commands.
func Logger() logging.Logger {
	return logging.GetLogger()
}

// Init initializes the root command's persistent flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
}
