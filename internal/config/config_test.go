package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitCrewdeskDirSeedsConfig(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitCrewdeskDir(projectDir); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := os.Stat(filepath.Join(projectDir, ".crewdesk", "logs")); err != nil {
		t.Fatalf("logs dir missing: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(projectDir, ".crewdesk", "config.yaml"))
	if err != nil {
		t.Fatalf("config.yaml missing: %v", err)
	}
	if !strings.Contains(string(data), "file: employees.csv") {
		t.Fatalf("default config lacks roster file: %s", data)
	}

	// Re-init must not clobber an edited config.
	if err := os.WriteFile(filepath.Join(projectDir, ".crewdesk", "config.yaml"), []byte("version: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := InitCrewdeskDir(projectDir); err != nil {
		t.Fatalf("re-init: %v", err)
	}
	data, _ = os.ReadFile(filepath.Join(projectDir, ".crewdesk", "config.yaml"))
	if string(data) != "version: 1\n" {
		t.Fatalf("re-init overwrote config: %s", data)
	}
}

func TestNewConfigDefaultsWhenMissing(t *testing.T) {
	projectDir := t.TempDir()
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.Project.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", c.Project.Version)
	}
	if got := c.RosterPath(); got != filepath.Join(projectDir, "employees.csv") {
		t.Fatalf("roster path = %s", got)
	}
	if !c.AutoLoad() || !c.AutoSave() {
		t.Fatalf("auto_load/auto_save should default on")
	}
	if c.DefaultSort() != "name" {
		t.Fatalf("default sort = %s, want name", c.DefaultSort())
	}
}

func TestNewConfigParsesYaml(t *testing.T) {
	projectDir := t.TempDir()
	crewdeskDir := filepath.Join(projectDir, ".crewdesk")
	if err := os.MkdirAll(crewdeskDir, 0755); err != nil {
		t.Fatal(err)
	}
	configYAML := strings.TrimSpace(`
version: 1
roster:
  file: team.csv
  auto_load: false
  auto_save: false
ui:
  default_sort: salary
`)
	if err := os.WriteFile(filepath.Join(crewdeskDir, "config.yaml"), []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if got := c.RosterPath(); got != filepath.Join(projectDir, "team.csv") {
		t.Fatalf("roster path = %s", got)
	}
	if c.AutoLoad() || c.AutoSave() {
		t.Fatalf("explicit false should stick")
	}
	if c.DefaultSort() != "salary" {
		t.Fatalf("default sort = %s, want salary", c.DefaultSort())
	}
}

func TestNewConfigRejectsBadSortKey(t *testing.T) {
	projectDir := t.TempDir()
	crewdeskDir := filepath.Join(projectDir, ".crewdesk")
	if err := os.MkdirAll(crewdeskDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(crewdeskDir, "config.yaml"), []byte("ui:\n  default_sort: age\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewConfig(projectDir); err == nil {
		t.Fatalf("expected error for unknown sort key")
	}
}

func TestNewConfigBlankRosterFileFallsBack(t *testing.T) {
	projectDir := t.TempDir()
	crewdeskDir := filepath.Join(projectDir, ".crewdesk")
	if err := os.MkdirAll(crewdeskDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(crewdeskDir, "config.yaml"), []byte("roster:\n  file: \"  \"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if got := c.RosterPath(); got != filepath.Join(projectDir, "employees.csv") {
		t.Fatalf("roster path = %s", got)
	}
}
