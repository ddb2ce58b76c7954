// Package workspace handles the on-disk resume materials: listing and
// reading .txt/.md files, saving generated drafts, frontmatter metadata,
// and the directory scans behind tone ingestion and interview prep lookup.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"jobcontext/internal/config"
	"jobcontext/internal/logging"
)

// Workspace wraps the configured material folders.
type Workspace struct {
	cfg    *config.Config
	logger *logging.AppLogger
}

func New(cfg *config.Config, logger *logging.AppLogger) *Workspace {
	return &Workspace{cfg: cfg, logger: logger}
}

func (w *Workspace) Config() *config.Config {
	return w.cfg
}

// ReadFile reads a text file and never fails: errors come back as an
// inline marker so prompt-assembly tools degrade instead of erroring out.
func (w *Workspace) ReadFile(path string) string {
	content, err := ReadTextFile(path)
	if err != nil {
		w.logger.Debug("Failed to read file", "path", path, "error", err)
		return fmt.Sprintf("[Error reading %s: %v]", filepath.Base(path), err)
	}
	return content
}

// ReadMasterResume returns the master source resume text.
func (w *Workspace) ReadMasterResume() string {
	return w.ReadFile(w.cfg.MasterResume())
}

// ListMaterials lists resume and cover letter filenames, excluding MASTER
// files, optionally filtered by a company substring. A missing directory
// yields a nil slice and false.
func (w *Workspace) ListMaterials(company string) (resumes, coverLetters []string, resumesOK, lettersOK bool) {
	resumes, resumesOK = w.listMaterialDir(w.cfg.ResumesDir(), company)
	coverLetters, lettersOK = w.listMaterialDir(w.cfg.CoverLettersDir(), company)
	return
}

func (w *Workspace) listMaterialDir(dir, company string) ([]string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, false
	}

	cl := strings.ToLower(company)
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		if ext != ".txt" && ext != ".md" {
			continue
		}
		if strings.Contains(name, "MASTER") {
			continue
		}
		if company != "" && !strings.Contains(strings.ToLower(name), cl) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, true
}

// ReadResume reads a resume from the optimized-resumes folder.
func (w *Workspace) ReadResume(filename string) (string, error) {
	path := filepath.Join(w.cfg.ResumesDir(), filename)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("not found: %s", filename)
	}
	return w.ReadFile(path), nil
}

// ReadReference reads a file from the reference materials folder. On a
// miss it also returns the available filenames so the caller can suggest
// alternatives.
func (w *Workspace) ReadReference(filename string) (string, []string, error) {
	dir := w.cfg.ReferenceDir()
	path := filepath.Join(dir, filename)
	if _, err := os.Stat(path); err == nil {
		return w.ReadFile(path), nil, nil
	}

	var available []string
	if entries, err := os.ReadDir(dir); err == nil {
		for _, e := range entries {
			available = append(available, e.Name())
		}
		sort.Strings(available)
	}
	return "", available, fmt.Errorf("not found: %s", filename)
}

// SaveResumeText writes a generated resume .txt into the optimized folder.
func (w *Workspace) SaveResumeText(filename, content string) (string, error) {
	return w.saveText(w.cfg.ResumesDir(), filename, content)
}

// SaveCoverLetterText writes a generated cover letter .txt.
func (w *Workspace) SaveCoverLetterText(filename, content string) (string, error) {
	return w.saveText(w.cfg.CoverLettersDir(), filename, content)
}

// SaveInterviewPrep writes prep notes into the assessments folder as
// <Company>_Interview_Prep.md.
func (w *Workspace) SaveInterviewPrep(company, content string) (string, error) {
	name := strings.ReplaceAll(strings.TrimSpace(company), " ", "_") + "_Interview_Prep.md"
	return w.saveText(w.cfg.AssessmentsDir(), name, content)
}

func (w *Workspace) saveText(dir, filename, content string) (string, error) {
	if strings.TrimSpace(filename) == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}
	// Keep writes inside the target folder
	filename = filepath.Base(filename)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}

	w.logger.Info("Material saved", "path", path)
	return path, nil
}

// ExtractMarkdownSection returns the lines of the markdown section whose
// header contains the target (case-insensitive), from that header until
// the next same-or-higher-level header. An empty result means not found.
func ExtractMarkdownSection(content, section string) string {
	if strings.TrimSpace(section) == "" {
		return content
	}

	target := strings.ToLower(section)
	var result []string
	level := 0

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "#") {
			depth := len(line) - len(strings.TrimLeft(line, "#"))
			stripped := strings.ToLower(strings.TrimSpace(strings.TrimLeft(line, "#")))
			if level == 0 && strings.Contains(stripped, target) {
				level = depth
			} else if level > 0 && depth <= level {
				break
			}
		}
		if level > 0 {
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}
