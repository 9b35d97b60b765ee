package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rnwolfe/lorefind/internal/tips"
	"github.com/rnwolfe/lorefind/internal/ui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lorefind",
	Short: "Fuzzy search for lorebooks and name lists",
	Long: `lorefind ranks World Info entries, character names and word lists
against a query. Lower scores are better; 0 is an exact match.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Err(err.Error())
		os.Exit(1)
	}
}

func runRoot(_ *cobra.Command, _ []string) error {
	ui.Header(ui.IconBook + "lorefind")
	fmt.Println("  Fuzzy search for lorebooks and name lists.")
	ui.Tip(tips.Daily(time.Now()))
	fmt.Println(ui.Muted.Render("  run `lorefind --help` for all commands"))
	fmt.Println()
	return nil
}

func init() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}
