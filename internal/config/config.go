// Package config handles the .crewdesk directory and its config.yaml.
// Every directory crewdesk runs from gets a .crewdesk/ folder holding
// the project config and the log files; the roster CSV itself lives
// next to it in the working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// CrewdeskDir is the name of the directory created in each project.
	CrewdeskDir = ".crewdesk"

	defaultRosterFile = "employees.csv"
	defaultSortKey    = "name"
)

// SortKeys lists the accepted values for ui.default_sort.
var SortKeys = []string{"name", "salary", "join_date"}

const defaultProjectConfigYAML = `# crewdesk project configuration
version: 1

roster:
  # CSV file the roster is saved to and loaded from, relative to the
  # directory crewdesk runs in.
  file: employees.csv
  # Load the file automatically on startup when it exists.
  auto_load: true
  # Save the roster automatically on exit.
  auto_save: true

ui:
  # Preselected ordering in the sort view: name, salary or join_date.
  default_sort: name
`

// RosterConfig controls where the roster CSV lives and when it is
// written or read without being asked.
type RosterConfig struct {
	File     string `yaml:"file"`
	AutoLoad bool   `yaml:"auto_load"`
	AutoSave bool   `yaml:"auto_save"`
}

// UIConfig captures presentation preferences.
type UIConfig struct {
	DefaultSort string `yaml:"default_sort"`
}

// ProjectConfig models .crewdesk/config.yaml.
type ProjectConfig struct {
	Version int          `yaml:"version"`
	Roster  RosterConfig `yaml:"roster"`
	UI      UIConfig     `yaml:"ui"`
}

// Config holds the runtime configuration for crewdesk.
type Config struct {
	// ProjectDir is the directory the user ran `crewdesk` from.
	ProjectDir string

	// CrewdeskProjectDir is ProjectDir/.crewdesk.
	CrewdeskProjectDir string

	Project ProjectConfig
}

// InitCrewdeskDir creates the .crewdesk directory structure in the given
// project directory and seeds a commented default config.yaml.
//
// Structure created:
// .crewdesk/
// ├── config.yaml
// └── logs/         <- diagnostic log and session journal
func InitCrewdeskDir(projectDir string) error {
	crewdeskDir := filepath.Join(projectDir, CrewdeskDir)
	if err := os.MkdirAll(filepath.Join(crewdeskDir, "logs"), 0755); err != nil {
		return err
	}
	return ensureProjectConfig(filepath.Join(crewdeskDir, "config.yaml"))
}

// NewConfig creates a Config populated with project settings.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:         projectDir,
		CrewdeskProjectDir: filepath.Join(projectDir, CrewdeskDir),
		Project:            defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.CrewdeskProjectDir, "logs")
}

// ProjectConfigPath returns the on-disk location of the config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.CrewdeskProjectDir, "config.yaml")
}

// RosterPath returns the roster CSV location, resolved against the
// project directory unless configured absolute.
func (c *Config) RosterPath() string {
	file := c.Project.Roster.File
	if filepath.IsAbs(file) {
		return filepath.Clean(file)
	}
	return filepath.Join(c.ProjectDir, file)
}

// AutoLoad reports whether the roster file is read on startup.
func (c *Config) AutoLoad() bool {
	return c.Project.Roster.AutoLoad
}

// AutoSave reports whether the roster file is written on exit.
func (c *Config) AutoSave() bool {
	return c.Project.Roster.AutoSave
}

// DefaultSort returns the configured sort key for the sort view.
func (c *Config) DefaultSort() string {
	return c.Project.UI.DefaultSort
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	// Unmarshal over the defaults so absent keys keep their values.
	parsed := defaultProjectConfig()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Roster: RosterConfig{
			File:     defaultRosterFile,
			AutoLoad: true,
			AutoSave: true,
		},
		UI: UIConfig{DefaultSort: defaultSortKey},
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Roster.File = strings.TrimSpace(pc.Roster.File)
	if pc.Roster.File == "" {
		pc.Roster.File = defaultRosterFile
	}
	pc.UI.DefaultSort = strings.ToLower(strings.TrimSpace(pc.UI.DefaultSort))
	if pc.UI.DefaultSort == "" {
		pc.UI.DefaultSort = defaultSortKey
	}
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	for _, key := range SortKeys {
		if pc.UI.DefaultSort == key {
			return nil
		}
	}
	return fmt.Errorf("ui.default_sort must be one of %s", strings.Join(SortKeys, ", "))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644)
}
