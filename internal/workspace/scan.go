package workspace

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Directories skipped when walking project or material trees.
var skipDirs = map[string]bool{
	"node_modules":  true,
	".git":          true,
	"vendor":        true,
	"target":        true,
	"build":         true,
	".next":         true,
	"dist":          true,
	".cache":        true,
	"__pycache__":   true,
	".vscode":       true,
	".idea":         true,
	".venv":         true,
	"venv":          true,
	".pytest_cache": true,
}

// ScanCandidate is a text file eligible for tone ingestion, identified by
// its path relative to the resume workspace root.
type ScanCandidate struct {
	Path string
	Rel  string
}

// ToneScanCandidates lists .txt files for the given category, optionally
// filtered by a company substring. Categories map to workspace folders:
// cover_letters, resumes, misc (workspace root, non-recursive), or all.
// Unknown categories fall back to cover_letters.
func (w *Workspace) ToneScanCandidates(category, company string) []ScanCandidate {
	var dirs []string
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "resumes":
		dirs = []string{w.cfg.ResumesDir()}
	case "misc":
		dirs = []string{w.cfg.ResumeDir}
	case "all":
		dirs = []string{w.cfg.CoverLettersDir(), w.cfg.ResumesDir(), w.cfg.ResumeDir}
	default:
		dirs = []string{w.cfg.CoverLettersDir()}
	}

	cl := strings.ToLower(company)
	seen := make(map[string]bool)
	var out []ScanCandidate

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".txt") {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)

		for _, name := range names {
			path := filepath.Join(dir, name)
			rel, err := filepath.Rel(w.cfg.ResumeDir, path)
			if err != nil {
				rel = name
			}
			rel = filepath.ToSlash(rel)
			if seen[rel] {
				continue
			}
			if company != "" && !strings.Contains(strings.ToLower(name), cl) {
				continue
			}
			seen[rel] = true
			out = append(out, ScanCandidate{Path: path, Rel: rel})
		}
	}
	return out
}

var prepKeywords = []string{"prep", "interview", "call", "assessment"}

// FindPrepFiles walks the resume workspace for .txt/.md files whose names
// mention the company plus an interview-prep keyword.
func (w *Workspace) FindPrepFiles(company string) []string {
	cl := strings.ToLower(company)
	var found []string

	filepath.WalkDir(w.cfg.ResumeDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		ext := filepath.Ext(d.Name())
		if ext != ".txt" && ext != ".md" {
			return nil
		}
		name := strings.ToLower(d.Name())
		if !strings.Contains(name, cl) {
			return nil
		}
		for _, kw := range prepKeywords {
			if strings.Contains(name, kw) {
				found = append(found, path)
				break
			}
		}
		return nil
	})

	sort.Strings(found)
	return found
}
