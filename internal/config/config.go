package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"jobcontext/internal/logging"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const APP_NAME = "jobcontext" // application name used for config directory

// Material subfolders inside the resume workspace. The folder layout is
// numbered so the directories sort in workflow order.
const (
	ResumesSubdir      = "01-Current-Optimized"
	CoverLettersSubdir = "02-Cover-Letters"
	PDFSubdir          = "03-Resume-PDFs"
	ReferenceSubdir    = "06-Reference-Materials"
	AssessmentsSubdir  = "07-Job-Assessments"
)

// Contact holds the job seeker's identity block. These values fill the
// header of rendered resumes and cover letters when the source text omits
// them.
type Contact struct {
	Name      string `yaml:"name"`
	Phone     string `yaml:"phone"`
	Email     string `yaml:"email"`
	LinkedIn  string `yaml:"linkedin"`
	Location  string `yaml:"location"`
	Address   string `yaml:"address"`
	CityState string `yaml:"city_state"`
}

// Config holds user configuration for jobcontext.
type Config struct {
	// ResumeDir is the root of the resume materials workspace.
	ResumeDir string `yaml:"resume_dir"`
	// LeetcodeDir holds interview prep notes and the cheatsheet.
	LeetcodeDir string `yaml:"leetcode_dir"`
	// SideProjectDirs are local checkouts scanned for resume-worthy skills.
	SideProjectDirs []string `yaml:"side_project_dirs"`
	// DataDir is where all JSON data files live.
	DataDir string `yaml:"data_dir"`

	// Paths relative to ResumeDir / LeetcodeDir.
	MasterResumePath       string `yaml:"master_resume_path"`
	LeetcodeCheatsheetPath string `yaml:"leetcode_cheatsheet_path"`
	QuickReferencePath     string `yaml:"quick_reference_path"`

	// OpenAI settings. APIKey may be left empty; resolution falls back to
	// the OPENAI_API_KEY environment variable and then the OS keyring.
	OpenAIModel string `yaml:"openai_model"`
	OpenAIKey   string `yaml:"openai_api_key,omitempty"`

	Contact Contact `yaml:"contact"`

	Version  string `yaml:"version"`
	InitTime int64  `yaml:"init_time"` // Unix timestamp of first setup
}

// ConfigPath returns the standard config file path for the current platform
func ConfigPath() (string, error) {
	configDir := filepath.Join(xdg.ConfigHome, APP_NAME)
	configPath := filepath.Join(configDir, "config.yaml")

	logging.Debug("Determined config path", "path", configPath)
	return configPath, nil
}

// Load loads the config from the standard location
// If no config exists, it returns an error indicating first run is needed
func Load() (*Config, error) {
	configPath, exists := FindConfigFile()
	logging.Debug("Loading config from", "path", configPath)
	if !exists {
		return nil, fmt.Errorf("no configuration found, first-time setup required")
	}

	return LoadFrom(configPath)
}

// LoadFrom loads config from a specific path
func LoadFrom(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// FindConfigFile returns the path to an existing config file, and whether it exists.
func FindConfigFile() (string, bool) {
	primary, err := ConfigPath()
	if err != nil {
		logging.Error("Failed to get config path", "error", err)
		return "", false
	}

	if _, err := os.Stat(primary); err == nil {
		logging.Debug("Config found at primary path", "path", primary)
		return primary, true
	}

	// Return primary path for new config
	return primary, false
}

// IsFirstRun checks if this is the first time the application is run
func IsFirstRun() bool {
	_, exists := FindConfigFile()
	return !exists
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()

	cfg := Config{
		ResumeDir:       filepath.Join(home, "JobSearch", "Resumes"),
		LeetcodeDir:     filepath.Join(home, "JobSearch", "Leetcode"),
		SideProjectDirs: nil,
		DataDir:         filepath.Join(xdg.DataHome, APP_NAME),
		Version:         "1.0",
		InitTime:        0, // Will be set during first save
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.MasterResumePath == "" {
		c.MasterResumePath = "00-Master-Template/MASTER_RESUME.txt"
	}
	if c.LeetcodeCheatsheetPath == "" {
		c.LeetcodeCheatsheetPath = "CHEATSHEET.md"
	}
	if c.QuickReferencePath == "" {
		c.QuickReferencePath = "QUICK_REFERENCE.md"
	}
	if c.OpenAIModel == "" {
		c.OpenAIModel = "gpt-4o-mini"
	}
	if c.DataDir == "" {
		c.DataDir = filepath.Join(xdg.DataHome, APP_NAME)
	}
}

// Save writes the config to the standard location
func (c *Config) Save() error {
	configPath, _ := FindConfigFile()
	return c.SaveTo(configPath)
}

// SaveTo writes the config to a specific path
func (c *Config) SaveTo(path string) error {
	// Set init time if this is the first save
	if c.InitTime == 0 {
		c.InitTime = time.Now().Unix()
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file with restrictive permissions (600), the config may hold an API key
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Data file paths, all inside DataDir.

func (c *Config) StatusFile() string          { return filepath.Join(c.DataDir, "status.json") }
func (c *Config) HealthLogFile() string       { return filepath.Join(c.DataDir, "mental_health_log.json") }
func (c *Config) PersonalContextFile() string { return filepath.Join(c.DataDir, "personal_context.json") }
func (c *Config) ToneFile() string            { return filepath.Join(c.DataDir, "tone_samples.json") }
func (c *Config) ScanIndexFile() string       { return filepath.Join(c.DataDir, "scan_index.json") }
func (c *Config) PeopleFile() string          { return filepath.Join(c.DataDir, "people.json") }
func (c *Config) PostsFile() string           { return filepath.Join(c.DataDir, "linkedin_posts.json") }
func (c *Config) RejectionsFile() string      { return filepath.Join(c.DataDir, "rejections.json") }
func (c *Config) SearchIndexFile() string     { return filepath.Join(c.DataDir, "search_index.json") }
func (c *Config) EmbeddingsFile() string      { return filepath.Join(c.DataDir, "embeddings.bin") }

// Material paths inside the resume / leetcode workspaces.

func (c *Config) MasterResume() string {
	return filepath.Join(c.ResumeDir, filepath.FromSlash(c.MasterResumePath))
}

func (c *Config) LeetcodeCheatsheet() string {
	return filepath.Join(c.LeetcodeDir, filepath.FromSlash(c.LeetcodeCheatsheetPath))
}

func (c *Config) QuickReference() string {
	return filepath.Join(c.LeetcodeDir, filepath.FromSlash(c.QuickReferencePath))
}

func (c *Config) ResumesDir() string      { return filepath.Join(c.ResumeDir, ResumesSubdir) }
func (c *Config) CoverLettersDir() string { return filepath.Join(c.ResumeDir, CoverLettersSubdir) }
func (c *Config) PDFDir() string          { return filepath.Join(c.ResumeDir, PDFSubdir) }
func (c *Config) ReferenceDir() string    { return filepath.Join(c.ResumeDir, ReferenceSubdir) }
func (c *Config) AssessmentsDir() string  { return filepath.Join(c.ResumeDir, AssessmentsSubdir) }

// ResolveOpenAIKey returns the OpenAI API key, checking the config file,
// then the environment, then the OS credential store. Returns an empty
// string when no key is configured anywhere; callers degrade to
// context-package mode in that case.
func (c *Config) ResolveOpenAIKey() string {
	if key := strings.TrimSpace(c.OpenAIKey); key != "" {
		return key
	}
	if key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); key != "" {
		return key
	}
	key, err := NewCredentialManager().GetOpenAIKey()
	if err != nil {
		logging.Debug("No OpenAI key in credential store", "error", err)
		return ""
	}
	return key
}
