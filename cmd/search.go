package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rnwolfe/lorefind/internal/config"
	"github.com/rnwolfe/lorefind/internal/fuzzy"
	"github.com/rnwolfe/lorefind/internal/history"
	"github.com/rnwolfe/lorefind/internal/lorebook"
	"github.com/rnwolfe/lorefind/internal/store"
	"github.com/rnwolfe/lorefind/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	searchFile      string
	searchKeys      []string
	searchThreshold thresholdValue
	searchLimit     int
	searchJSON      bool
	searchAll       bool
	searchShow      bool
)

var searchCmd = &cobra.Command{
	Use:   "search <pattern>",
	Short: "Rank candidates against a pattern",
	Long: `Rank the entries of a World Info export, a JSON list or a plain text
file (one name per line) against a pattern.

Scores run from 0 (exact match) to 1. A candidate that contains the pattern
scores 0.2; anything else scores its edit distance divided by the longer
length. Candidates scoring above the threshold are left out.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	bindSearchFlags(searchCmd.Flags())
}

// bindSearchFlags registers the search flags and resets their variables.
func bindSearchFlags(f *pflag.FlagSet) {
	searchThreshold = thresholdValue(config.DefaultThreshold)

	f.StringVarP(&searchFile, "file", "f", "", "Candidate file (defaults to the last file used)")
	f.StringSliceVarP(&searchKeys, "key", "k", nil, "Entry field to search, repeatable (empty = whole entry)")
	f.VarP(&searchThreshold, "threshold", "t", "Highest score to include, 0-1")
	f.IntVarP(&searchLimit, "limit", "n", -1, "Maximum results to print (0 = all, default from config)")
	f.BoolVar(&searchJSON, "json", false, "Print matches as JSON")
	f.BoolVar(&searchAll, "all", false, "Include disabled World Info entries")
	f.BoolVar(&searchShow, "show", false, "Print the best entry's content")
}

// searchResult is the JSON shape of a match.
type searchResult struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
	Label string  `json:"label"`
	Item  any     `json:"item"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	pattern := strings.Join(args, " ")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db := openStore()
	if db != nil {
		defer db.Close()
	}

	book, source, err := loadSource(db, searchFile)
	if err != nil {
		return err
	}

	keys, threshold := matchSettings(cmd.Flags(), cfg, searchKeys, searchThreshold)
	m := fuzzy.New(book.Candidates(searchAll), fuzzy.WithKeys(keys...), fuzzy.WithThreshold(threshold))
	matches := m.Search(pattern)

	limit := cfg.Search.Limit
	if searchLimit >= 0 {
		limit = searchLimit
	}
	shown := matches
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	if cfg.History.IsEnabled() && db != nil {
		recordSearch(db, cfg, pattern, source, matches)
	}

	if searchJSON {
		return printJSON(shown)
	}

	printMatches(book, pattern, shown, len(matches), m.Len())
	if searchShow && len(shown) > 0 {
		printContent(cfg, shown[0].Item)
	}
	return nil
}

func printJSON(matches []fuzzy.Match) error {
	out := make([]searchResult, len(matches))
	for i, mt := range matches {
		out[i] = searchResult{
			Index: mt.Index,
			Score: mt.Score,
			Label: lorebook.Label(mt.Item),
			Item:  mt.Item,
		}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printMatches(book *lorebook.Book, pattern string, shown []fuzzy.Match, total, candidates int) {
	ui.Header(fmt.Sprintf("%s%q in %s", ui.IconSearch, pattern, book.Name))
	if len(shown) == 0 {
		ui.Inf(fmt.Sprintf("No matches among %d candidates.", candidates))
		ui.Tip("raise the threshold with `--threshold 0.8` to loosen matching.")
		fmt.Println()
		return
	}

	width := ui.TermWidth()
	for _, mt := range shown {
		label := lorebook.Label(mt.Item)
		line := fmt.Sprintf("  %s %s  %s",
			ui.ScoreBar(mt.Score, 8),
			ui.Muted.Render(fmt.Sprintf("%.2f", mt.Score)),
			ui.ValueStyle.Render(label),
		)
		if detail := lorebook.Detail(mt.Item); detail != "" {
			room := width - len([]rune(label)) - 20
			line += "  " + ui.Muted.Render(ui.Truncate(detail, room))
		}
		fmt.Println(line)
	}

	fmt.Println()
	summary := fmt.Sprintf("  %d of %d candidates matched", total, candidates)
	if total > len(shown) {
		summary += fmt.Sprintf(" (showing %d)", len(shown))
	}
	fmt.Println(ui.Muted.Render(summary))
	fmt.Println()
}

// printContent prints an entry's content, rendered as markdown on a terminal.
func printContent(cfg *config.Config, item any) {
	e, ok := item.(lorebook.Entry)
	if !ok || strings.TrimSpace(e.Content) == "" {
		return
	}

	ui.Header(ui.IconScroll + e.Title())
	if cfg.Display.MarkdownEnabled() && ui.IsStdoutTTY() {
		fmt.Print(ui.RenderMarkdown(e.Content, min(ui.TermWidth(), 100)))
		return
	}
	fmt.Println(e.Content)
	fmt.Println()
}

// recordSearch saves the search and prunes old history. Failures only warn.
func recordSearch(db *store.DB, cfg *config.Config, pattern, source string, matches []fuzzy.Match) {
	hs := history.NewStore(db.Conn())

	best := ""
	if len(matches) > 0 {
		best = lorebook.Label(matches[0].Item)
	}
	if _, err := hs.Record(history.Entry{
		Query:   pattern,
		Source:  filepath.Base(source),
		Results: len(matches),
		Best:    best,
	}); err != nil {
		log.Printf("warning: %v", err)
		return
	}

	if cfg.History.MaxEntries > 0 {
		if _, err := hs.Prune(cfg.History.MaxEntries); err != nil {
			log.Printf("warning: %v", err)
		}
	}
}
