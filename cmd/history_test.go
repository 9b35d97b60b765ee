package cmd

import (
	"strings"
	"testing"
)

func TestRunHistory_ListsAndClears(t *testing.T) {
	tmpDir := configTestEnv(t)
	path := writeCandidates(t, tmpDir, "names.txt", "Alice\nBob\n")
	runSearchJSON(t, newSearchCmd(t, "--file", path, "--json"), "alice")
	runSearchJSON(t, newSearchCmd(t, "--json"), "ALICE")
	runSearchJSON(t, newSearchCmd(t, "--json"), "bob")

	out := captureStdout(t, func() {
		if err := runHistory(nil, nil); err != nil {
			t.Errorf("runHistory: %v", err)
		}
	})
	for _, want := range []string{"alice", "bob", "names.txt"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in history output, got:\n%s", want, out)
		}
	}

	historyTop = true
	t.Cleanup(func() { historyTop = false })
	out = captureStdout(t, func() {
		if err := runHistory(nil, nil); err != nil {
			t.Errorf("runHistory --top: %v", err)
		}
	})
	if !strings.Contains(out, "2x") {
		t.Errorf("expected alice counted twice, got:\n%s", out)
	}

	out = captureStdout(t, func() {
		if err := runHistoryClear(nil, nil); err != nil {
			t.Errorf("runHistoryClear: %v", err)
		}
	})
	if !strings.Contains(out, "Cleared 3") {
		t.Errorf("expected 3 searches cleared, got:\n%s", out)
	}
}
