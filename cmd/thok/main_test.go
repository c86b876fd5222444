package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/thok/internal/config"
	"github.com/verte-zerg/thok/internal/model"
)

func TestValidateConfig(t *testing.T) {
	if err := validateConfig(model.Config{Words: 15}); err != nil {
		t.Fatalf("expected valid config: %v", err)
	}
	bad := []model.Config{
		{Words: 0},
		{Words: 1, CapsPct: 1.5},
		{Words: 1, PunctPct: 0.5},
		{Words: 1, FullSentences: -1},
	}
	for i, cfg := range bad {
		if err := validateConfig(cfg); err == nil {
			t.Fatalf("case %d: expected error for %+v", i, cfg)
		}
	}
}

func TestOptional(t *testing.T) {
	if optional(0) != nil {
		t.Fatalf("expected zero to be unset")
	}
	if v := optional(30); v == nil || *v != 30 {
		t.Fatalf("expected 30, got %v", v)
	}
}

func TestConfigTemplateParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thok", "config.toml")
	if err := writeConfigTemplate(path); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("template must parse: %v", err)
	}
	if cfg.Practice.Words != nil {
		t.Fatalf("expected all template values commented out")
	}

	if err := os.WriteFile(path, []byte("[practice]\nwords = 5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := writeConfigTemplate(path); err != nil {
		t.Fatalf("rewrite template: %v", err)
	}
	cfg, err = config.LoadConfig(path)
	if err != nil || cfg.Practice.Words == nil || *cfg.Practice.Words != 5 {
		t.Fatalf("expected existing config to be kept, got %+v (%v)", cfg, err)
	}
}

func TestStatsFilter(t *testing.T) {
	statsSince, statsLast, statsTimed = "2024-02-03", 4, true
	t.Cleanup(func() {
		statsSince, statsLast, statsTimed = "", 0, false
	})
	filter, err := statsFilter()
	if err != nil {
		t.Fatalf("stats filter: %v", err)
	}
	if filter.Since == nil || filter.Since.Day() != 3 || filter.Last != 4 || !filter.TimedOnly {
		t.Fatalf("unexpected filter %+v", filter)
	}
	statsSince = "yesterday"
	if _, err := statsFilter(); err == nil {
		t.Fatalf("expected invalid date error")
	}
}
