// Package tips provides short usage tips for lorefind.
package tips

import "time"

var all = []string{
	"`lorefind search lyra --file eldoria.json` to rank a World Info export.",
	"`lorefind search lyra` reuses the last file you searched.",
	"`lorefind search --key content dragon` to search entry text instead of titles.",
	"`lorefind search --threshold 0.8 lyra` to loosen matching; 0 keeps exact matches only.",
	"`lorefind search --json lyra | jq .` to feed matches to other tools.",
	"`lorefind search --show lyra` to print the best entry's content.",
	"`lorefind search --all dragon` to include disabled World Info entries.",
	"`lorefind pick` to filter candidates interactively as you type.",
	"`lorefind history --top` to see the queries you run most.",
	"`lorefind config set search.keys comment,key,content` to change the default fields.",
	"`lorefind config set history.enabled false` to stop recording searches.",
	"`lorefind doctor` to check that your config, database and last file are healthy.",
	"Plain text files work too: one name per line.",
}

// All returns all tips in the pool.
func All() []string {
	return all
}

// Daily returns a deterministic tip for the given day.
// The same tip is returned all day; it changes each day.
func Daily(t time.Time) string {
	return all[t.YearDay()%len(all)]
}
