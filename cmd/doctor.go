package cmd

import (
	"fmt"
	"os"

	"github.com/rnwolfe/lorefind/internal/config"
	"github.com/rnwolfe/lorefind/internal/history"
	"github.com/rnwolfe/lorefind/internal/lorebook"
	"github.com/rnwolfe/lorefind/internal/store"
	"github.com/rnwolfe/lorefind/internal/ui"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check your lorefind setup for problems",
	Long:  `Run a suite of health checks and report what's working (and what isn't).`,
	RunE:  runDoctor,
}

// checkResult holds the outcome of a single health check.
type checkResult struct {
	name    string
	ok      bool
	detail  string
	fixHint string
}

func runDoctor(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		cfg = nil
	}

	db, dbErr := store.Open()
	if dbErr == nil {
		defer db.Close()
	}

	results := []checkResult{
		checkConfig(),
		checkStore(dbErr),
		checkSource(db),
		checkHistory(cfg, db),
	}

	fmt.Println()

	allPassed := true
	for _, r := range results {
		printCheck(r)
		if !r.ok {
			allPassed = false
		}
	}

	fmt.Println()

	if !allPassed {
		return fmt.Errorf("one or more checks failed, see suggestions above")
	}
	return nil
}

func printCheck(r checkResult) {
	label := fmt.Sprintf("%-16s", r.name)
	if r.ok {
		icon := ui.Success.Render(ui.IconOk)
		fmt.Printf("  %s %s %s\n", icon, ui.KeyStyle.Render(label), ui.Muted.Render(r.detail))
		return
	}
	icon := ui.Error.Render(ui.IconError)
	fmt.Printf("  %s %s %s\n", icon, ui.KeyStyle.Render(label), r.detail)
	if r.fixHint != "" {
		fmt.Printf("  %s %s %s\n", "  ", "                ", ui.Muted.Render(ui.IconArrow+" "+r.fixHint))
	}
}

// checkConfig passes when the config file is missing, since defaults apply.
func checkConfig() checkResult {
	paths := config.GetPaths()
	if !config.Initialized() {
		return checkResult{
			name:   "Config",
			ok:     true,
			detail: "no config file, using defaults",
		}
	}
	if _, err := config.Load(); err != nil {
		return checkResult{
			name:    "Config",
			ok:      false,
			detail:  fmt.Sprintf("invalid config: %v", err),
			fixHint: fmt.Sprintf("Check %s for errors", paths.ConfigFile),
		}
	}
	return checkResult{
		name:   "Config",
		ok:     true,
		detail: paths.ConfigFile + " found and valid",
	}
}

func checkStore(openErr error) checkResult {
	if openErr != nil {
		return checkResult{
			name:    "Store",
			ok:      false,
			detail:  fmt.Sprintf("cannot open database: %v", openErr),
			fixHint: fmt.Sprintf("Check that %s is writable", config.GetPaths().DataDir),
		}
	}
	return checkResult{
		name:   "Store",
		ok:     true,
		detail: "SQLite database opens and responds",
	}
}

// checkSource verifies the remembered candidate file still loads.
func checkSource(db *store.DB) checkResult {
	hint := fmt.Sprintf("Run %s to pick a file", ui.Accent.Render("lorefind search <pattern> --file <path>"))
	if db == nil {
		return checkResult{name: "Source", ok: false, detail: "store unavailable", fixHint: hint}
	}

	path, err := db.Get(lastSourceKey)
	if err != nil {
		return checkResult{name: "Source", ok: false, detail: err.Error(), fixHint: hint}
	}
	if path == "" {
		return checkResult{name: "Source", ok: true, detail: "no candidate file used yet"}
	}
	if _, err := os.Stat(path); err != nil {
		return checkResult{name: "Source", ok: false, detail: path + " no longer exists", fixHint: hint}
	}

	book, err := lorebook.Load(path)
	if err != nil {
		return checkResult{
			name:    "Source",
			ok:      false,
			detail:  err.Error(),
			fixHint: "Check the file is a World Info export, a JSON list or plain text",
		}
	}
	return checkResult{
		name:   "Source",
		ok:     true,
		detail: fmt.Sprintf("%s (%d candidates, %s)", path, book.Len(), book.Kind),
	}
}

// checkHistory always passes; it reports whether history is on and its size.
func checkHistory(cfg *config.Config, db *store.DB) checkResult {
	if cfg != nil && !cfg.History.IsEnabled() {
		return checkResult{name: "History", ok: true, detail: "Disabled"}
	}
	if db == nil {
		return checkResult{name: "History", ok: true, detail: "Enabled (store unavailable)"}
	}

	n, err := history.NewStore(db.Conn()).Count()
	if err != nil {
		return checkResult{name: "History", ok: false, detail: err.Error()}
	}
	return checkResult{
		name:   "History",
		ok:     true,
		detail: fmt.Sprintf("Enabled, %d searches recorded", n),
	}
}
