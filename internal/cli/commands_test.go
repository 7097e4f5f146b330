package cli

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/quantfold/marketagent/internal/config"
)

func TestEffectiveConfigPrefersFlags(t *testing.T) {
	t.Setenv("MAX_TOOL_CALLS", "")
	t.Setenv("VERBOSE", "")
	t.Setenv("LLM_MODEL", "")

	mgr, cfg, err := config.Load(config.WithConfigPath(filepath.Join(t.TempDir(), "config.json")))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cmd := &cobra.Command{}
	cmd.Flags().BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "")
	cmd.Flags().IntVar(&cfg.MaxToolCalls, "max-tool-calls", cfg.MaxToolCalls, "")
	if err := cmd.Flags().Set("max-tool-calls", "2"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	got := effectiveConfig(cmd, mgr, cfg)
	if got.MaxToolCalls != 2 {
		t.Errorf("expected flag override 2, got %d", got.MaxToolCalls)
	}
	if got.Model != mgr.Get().Model {
		t.Errorf("expected stored model %q, got %q", mgr.Get().Model, got.Model)
	}
}

func TestEffectiveConfigSeesPersistedChanges(t *testing.T) {
	t.Setenv("LLM_MODEL", "")

	mgr, cfg, err := config.Load(config.WithConfigPath(filepath.Join(t.TempDir(), "config.json")))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	updated := mgr.Get()
	updated.Model = "gpt-4o"
	if err := mgr.Update(updated); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if got := effectiveConfig(&cobra.Command{}, mgr, cfg); got.Model != "gpt-4o" {
		t.Errorf("expected persisted model change to apply, got %q", got.Model)
	}
}
