package cmd

import (
	"os"
	"strings"
	"testing"

	"github.com/rnwolfe/lorefind/internal/config"
	"github.com/rnwolfe/lorefind/internal/store"
)

func openTestStore(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open()
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCheckConfig_MissingUsesDefaults(t *testing.T) {
	configTestEnv(t)

	r := checkConfig()
	if !r.ok {
		t.Fatalf("a missing config should pass, got: %q", r.detail)
	}
	if !strings.Contains(r.detail, "defaults") {
		t.Errorf("expected detail to mention defaults, got: %q", r.detail)
	}
}

func TestCheckConfig_Invalid(t *testing.T) {
	configTestEnv(t)

	paths := config.GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	if err := os.WriteFile(paths.ConfigFile, []byte("[search\nthreshold = "), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	r := checkConfig()
	if r.ok {
		t.Fatal("expected a broken config to fail")
	}
	if !strings.Contains(r.fixHint, "config.toml") {
		t.Errorf("expected fix hint to name the file, got: %q", r.fixHint)
	}
}

func TestCheckSource(t *testing.T) {
	tmpDir := configTestEnv(t)
	db := openTestStore(t)

	r := checkSource(db)
	if !r.ok || !strings.Contains(r.detail, "no candidate file") {
		t.Fatalf("a fresh install should pass, got %+v", r)
	}

	path := writeCandidates(t, tmpDir, "names.txt", "Alice\nBob\n")
	if err := db.Set(lastSourceKey, path); err != nil {
		t.Fatalf("Set: %v", err)
	}
	r = checkSource(db)
	if !r.ok || !strings.Contains(r.detail, "2 candidates") {
		t.Fatalf("expected the remembered file to load, got %+v", r)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if r = checkSource(db); r.ok || !strings.Contains(r.fixHint, "--file") {
		t.Fatalf("expected a deleted file to fail with a --file hint, got %+v", r)
	}
}

func TestCheckHistory(t *testing.T) {
	configTestEnv(t)
	db := openTestStore(t)

	cfg := &config.Config{History: config.HistoryConfig{Enabled: config.BoolPtr(false)}}
	if r := checkHistory(cfg, db); !r.ok || r.detail != "Disabled" {
		t.Fatalf("expected Disabled, got %+v", r)
	}

	cfg.History.Enabled = nil
	r := checkHistory(cfg, db)
	if !r.ok || !strings.Contains(r.detail, "0 searches") {
		t.Fatalf("expected an empty history, got %+v", r)
	}
}

func TestRunDoctor_AllPass(t *testing.T) {
	tmpDir := configTestEnv(t)
	path := writeCandidates(t, tmpDir, "names.txt", "Alice\nBob\n")
	runSearchJSON(t, newSearchCmd(t, "--file", path, "--json"), "alice")

	var runErr error
	out := captureStdout(t, func() {
		runErr = runDoctor(nil, nil)
	})
	if runErr != nil {
		t.Fatalf("runDoctor: %v\n%s", runErr, out)
	}

	for _, name := range []string{"Config", "Store", "Source", "History"} {
		if !strings.Contains(out, name) {
			t.Errorf("expected %q in doctor output, got:\n%s", name, out)
		}
	}
	if !strings.Contains(out, "1 searches") {
		t.Errorf("expected the recorded search to be counted, got:\n%s", out)
	}
}

func TestRunDoctor_FreshInstall(t *testing.T) {
	configTestEnv(t)

	out := captureStdout(t, func() {
		if err := runDoctor(nil, nil); err != nil {
			t.Errorf("a fresh install should pass, got: %v", err)
		}
	})
	if !strings.Contains(out, "no candidate file used yet") {
		t.Errorf("expected the source detail in output, got:\n%s", out)
	}
}

func TestRunDoctor_BrokenConfig(t *testing.T) {
	configTestEnv(t)

	paths := config.GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	if err := os.WriteFile(paths.ConfigFile, []byte("[search]\nthreshold = 7.5\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out := captureStdout(t, func() {
		if err := runDoctor(nil, nil); err == nil {
			t.Error("expected runDoctor to fail on an out-of-range threshold")
		}
	})
	if !strings.Contains(out, "out of range") {
		t.Errorf("expected the validation error in output, got:\n%s", out)
	}
}
