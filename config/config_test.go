package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flowstate-health/flowstate-tui/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
[profiles.local]
backend_url = "http://127.0.0.1:5002"
model = "particle-wave"
stress_score = 42
activities = ["meditation", "walking"]

  [profiles.local.health]
  base_url = "https://api.aggregator.example"
  dev_id = "dev-123"
  api_key = "key-456"
  source = "garmin"

  [profiles.local.voice]
  command = ["hear", "-t"]

[profiles.staging]
backend_url = "https://staging.flowstate.example"
`)

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.Profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(cfg.Profiles))
	}

	local := cfg.Profiles["local"]
	if local.BackendURL != "http://127.0.0.1:5002" {
		t.Errorf("unexpected backend_url: %s", local.BackendURL)
	}
	if local.StressScore != 42 {
		t.Errorf("expected stress_score 42, got %d", local.StressScore)
	}
	if local.Health.Source != "garmin" {
		t.Errorf("expected source garmin, got %s", local.Health.Source)
	}
	if len(local.Voice.Command) != 2 || local.Voice.Command[0] != "hear" {
		t.Errorf("unexpected voice command: %v", local.Voice.Command)
	}
	if len(local.Activities) != 2 {
		t.Errorf("unexpected activities: %v", local.Activities)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[profiles.minimal]
`)

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := cfg.Profiles["minimal"]
	if p.BackendURL != "http://127.0.0.1:5002" {
		t.Errorf("expected default backend_url, got %s", p.BackendURL)
	}
	if p.Model != "particle-wave" {
		t.Errorf("expected default model, got %s", p.Model)
	}
	if p.Health.Source != "apple_health" {
		t.Errorf("expected default source, got %s", p.Health.Source)
	}
	if len(p.Activities) != 3 {
		t.Errorf("expected default activities, got %v", p.Activities)
	}
}

func TestLoad_NoProfiles(t *testing.T) {
	path := writeConfig(t, ``)
	if _, err := config.LoadFrom(path); err == nil {
		t.Fatal("expected error for empty config")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := config.LoadFrom(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestProfileNames_Sorted(t *testing.T) {
	path := writeConfig(t, `
[profiles.zeta]
[profiles.alpha]
`)

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}

	names := cfg.ProfileNames()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Errorf("expected sorted names, got %v", names)
	}
}
