package cmd

import (
	"fmt"
	"strings"

	"github.com/rnwolfe/lorefind/internal/config"
	"github.com/rnwolfe/lorefind/internal/fuzzy"
	"github.com/rnwolfe/lorefind/internal/lorebook"
	"github.com/rnwolfe/lorefind/internal/tui"
	"github.com/spf13/cobra"
)

var (
	pickFile      string
	pickKeys      []string
	pickThreshold thresholdValue
	pickAll       bool
)

var pickCmd = &cobra.Command{
	Use:   "pick [query]",
	Short: "Interactively search and pick a candidate",
	RunE:  runPick,
}

func init() {
	pickThreshold = thresholdValue(config.DefaultThreshold)

	f := pickCmd.Flags()
	f.StringVarP(&pickFile, "file", "f", "", "Candidate file (defaults to the last file used)")
	f.StringSliceVarP(&pickKeys, "key", "k", nil, "Entry field to search, repeatable")
	f.VarP(&pickThreshold, "threshold", "t", "Highest score to include, 0-1")
	f.BoolVar(&pickAll, "all", false, "Include disabled World Info entries")
}

// pickItem adapts a candidate to tui.Item.
type pickItem struct {
	item any
	text string
}

func (p pickItem) FilterValue() string { return p.text }
func (p pickItem) Title() string       { return lorebook.Label(p.item) }
func (p pickItem) Description() string { return lorebook.Detail(p.item) }

// pickItems pairs each candidate with the searchable text the matcher derives
// for it, so the picker filters on the same fields `search` does.
func pickItems(candidates []any, keys []string) []tui.Item {
	m := fuzzy.New(candidates, fuzzy.WithKeys(keys...))
	out := make([]tui.Item, len(candidates))
	for i, c := range candidates {
		out[i] = pickItem{item: c, text: m.Text(i)}
	}
	return out
}

func runPick(cmd *cobra.Command, args []string) error {
	if !tui.IsTTY() {
		return fmt.Errorf("pick needs an interactive terminal; use `lorefind search` instead")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db := openStore()
	if db != nil {
		defer db.Close()
	}

	book, _, err := loadSource(db, pickFile)
	if err != nil {
		return err
	}

	keys, threshold := matchSettings(cmd.Flags(), cfg, pickKeys, pickThreshold)
	chosen, err := tui.Run(
		pickItems(book.Candidates(pickAll), keys),
		tui.WithTitle(book.Name),
		tui.WithThreshold(threshold),
		tui.WithQuery(strings.Join(args, " ")),
	)
	if err != nil {
		return err
	}
	if chosen == nil {
		return nil
	}

	fmt.Println(chosen.Title())
	printContent(cfg, chosen.(pickItem).item)
	return nil
}
