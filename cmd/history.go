package cmd

import (
	"fmt"

	"github.com/rnwolfe/lorefind/internal/history"
	"github.com/rnwolfe/lorefind/internal/store"
	"github.com/rnwolfe/lorefind/internal/ui"
	"github.com/spf13/cobra"
)

var (
	historyTop   bool
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	RunE:  runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all search history",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.Flags().BoolVar(&historyTop, "top", false, "Show the most frequent queries instead")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 15, "Number of rows to show")
}

func runHistory(_ *cobra.Command, _ []string) error {
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	hs := history.NewStore(db.Conn())

	if historyTop {
		top, err := hs.Top(historyLimit)
		if err != nil {
			return err
		}
		ui.Header("Top searches")
		if len(top) == 0 {
			ui.Inf("No searches yet.")
			return nil
		}
		for _, qc := range top {
			ui.Kv(fmt.Sprintf("%dx", qc.Count), qc.Query)
		}
		fmt.Println()
		return nil
	}

	recent, err := hs.Recent(historyLimit)
	if err != nil {
		return err
	}
	ui.Header("Recent searches")
	if len(recent) == 0 {
		ui.Inf("No searches yet.")
		ui.Tip("`lorefind search <pattern> --file lore.json` to run one.")
		return nil
	}
	for _, e := range recent {
		best := ui.Muted.Render("no match")
		if e.Best != "" {
			best = ui.IconArrow + " " + e.Best
		}
		fmt.Printf("  %s  %-20s %s %s\n",
			ui.Muted.Render(e.CreatedAt.Local().Format("Jan 02 15:04")),
			ui.ValueStyle.Render(e.Query),
			best,
			ui.Muted.Render(fmt.Sprintf("(%d in %s)", e.Results, e.Source)),
		)
	}
	fmt.Println()
	return nil
}

func runHistoryClear(_ *cobra.Command, _ []string) error {
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	n, err := history.NewStore(db.Conn()).Clear()
	if err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("Cleared %d searches", n))
	return nil
}
