package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *Config {
	t.Helper()

	base := t.TempDir()
	cfg := DefaultConfig()
	cfg.ResumeDir = filepath.Join(base, "resumes")
	cfg.LeetcodeDir = filepath.Join(base, "leetcode")
	cfg.DataDir = filepath.Join(base, "data")
	return &cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotEmpty(t, cfg.ResumeDir)
	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, "1.0", cfg.Version)
	assert.Equal(t, int64(0), cfg.InitTime)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, "00-Master-Template/MASTER_RESUME.txt", cfg.MasterResumePath)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	cfg := testConfig(t)
	cfg.OpenAIModel = "gpt-4o"
	cfg.SideProjectDirs = []string{"/tmp/project-a", "/tmp/project-b"}
	cfg.Contact = Contact{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "(555) 123-4567",
		LinkedIn: "linkedin.com/in/janedoe",
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, cfg.SaveTo(path))

	// Saving must set the init time on first write
	assert.NotEqual(t, int64(0), cfg.InitTime)

	// File should have restrictive permissions
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.ResumeDir, loaded.ResumeDir)
	assert.Equal(t, cfg.OpenAIModel, loaded.OpenAIModel)
	assert.Equal(t, cfg.SideProjectDirs, loaded.SideProjectDirs)
	assert.Equal(t, cfg.Contact, loaded.Contact)
	assert.Equal(t, cfg.InitTime, loaded.InitTime)
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("resume_dir: [unclosed"), 0600))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestLoadFrom_AppliesDefaults(t *testing.T) {
	// A minimal config should still get defaults for derived settings
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("resume_dir: /tmp/resumes\n"), 0600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/resumes", cfg.ResumeDir)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.NotEmpty(t, cfg.DataDir)
	assert.NotEmpty(t, cfg.MasterResumePath)
}

func TestDataFilePaths(t *testing.T) {
	cfg := testConfig(t)

	assert.Equal(t, filepath.Join(cfg.DataDir, "status.json"), cfg.StatusFile())
	assert.Equal(t, filepath.Join(cfg.DataDir, "mental_health_log.json"), cfg.HealthLogFile())
	assert.Equal(t, filepath.Join(cfg.DataDir, "personal_context.json"), cfg.PersonalContextFile())
	assert.Equal(t, filepath.Join(cfg.DataDir, "tone_samples.json"), cfg.ToneFile())
	assert.Equal(t, filepath.Join(cfg.DataDir, "scan_index.json"), cfg.ScanIndexFile())
	assert.Equal(t, filepath.Join(cfg.DataDir, "people.json"), cfg.PeopleFile())
	assert.Equal(t, filepath.Join(cfg.DataDir, "linkedin_posts.json"), cfg.PostsFile())
	assert.Equal(t, filepath.Join(cfg.DataDir, "rejections.json"), cfg.RejectionsFile())
}

func TestMaterialPaths(t *testing.T) {
	cfg := testConfig(t)

	assert.Equal(t, filepath.Join(cfg.ResumeDir, "01-Current-Optimized"), cfg.ResumesDir())
	assert.Equal(t, filepath.Join(cfg.ResumeDir, "02-Cover-Letters"), cfg.CoverLettersDir())
	assert.Equal(t, filepath.Join(cfg.ResumeDir, "03-Resume-PDFs"), cfg.PDFDir())
	assert.Equal(t, filepath.Join(cfg.ResumeDir, "07-Job-Assessments"), cfg.AssessmentsDir())
	assert.Equal(t,
		filepath.Join(cfg.ResumeDir, "00-Master-Template", "MASTER_RESUME.txt"),
		cfg.MasterResume())
}

func TestResolveOpenAIKey_ConfigWins(t *testing.T) {
	cfg := testConfig(t)
	cfg.OpenAIKey = "sk-test-from-config"

	origEnv := os.Getenv("OPENAI_API_KEY")
	os.Setenv("OPENAI_API_KEY", "sk-test-from-env")
	defer os.Setenv("OPENAI_API_KEY", origEnv)

	assert.Equal(t, "sk-test-from-config", cfg.ResolveOpenAIKey())
}

func TestResolveOpenAIKey_EnvFallback(t *testing.T) {
	cfg := testConfig(t)
	cfg.OpenAIKey = ""

	origEnv := os.Getenv("OPENAI_API_KEY")
	os.Setenv("OPENAI_API_KEY", "sk-test-from-env")
	defer os.Setenv("OPENAI_API_KEY", origEnv)

	assert.Equal(t, "sk-test-from-env", cfg.ResolveOpenAIKey())
}
