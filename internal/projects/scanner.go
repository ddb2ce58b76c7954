// Package projects scans local side-project checkouts for technologies
// worth surfacing on the resume.
package projects

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	git "github.com/go-git/go-git/v6"

	"jobcontext/internal/config"
	"jobcontext/internal/logging"
)

const pullTimeout = 20 * time.Second

// techKeywords maps each detected tech label to the lowercase keywords
// that would appear in the master resume. Any match means the skill is
// already represented; unlisted labels fall back to their own lowercase
// name.
var techKeywords = map[string][]string{
	"Python":                      {"python"},
	"Go":                          {"golang", "go services", "(go)"},
	"FastAPI":                     {"fastapi"},
	"Pydantic":                    {"pydantic"},
	"Azure Blob Storage":          {"azure blob"},
	"Python async/await":          {"async/await", "async def"},
	"WebSockets":                  {"websocket"},
	"pytest":                      {"pytest"},
	"systemd / Linux services":    {"systemd"},
	"Raspberry Pi GPIO":           {"gpio"},
	"Servo / Adafruit HAT":        {"servo"},
	"HTTP Range requests":         {"range request", "http range"},
	"JWT authentication":          {"jwt"},
	"Docker":                      {"docker"},
	"Automated retention policies": {"retention"},
	"TypeScript/JavaScript":       {"typescript"},
	"React Native":                {"react native"},
	"Expo":                        {"expo"},
	"iOS TestFlight deployment":   {"testflight"},
	"Swift / iOS":                 {"swift"},
	"Docker Compose":              {"docker compose"},
	"Terraform IaC":               {"terraform"},
	"Model Context Protocol (MCP)": {"model context protocol", "mcp server"},
	"PDF generation":              {"pdf generation", "html-to-pdf"},
	"RAG / semantic search":       {"rag", "semantic search", "text-embedding"},
}

// suggestedBullets pairs a detected tech with a ready-to-paste resume
// bullet, emitted when the tech shows up in any scanned project.
var suggestedBullets = []struct {
	tech   string
	bullet string
}{
	{"Raspberry Pi GPIO", "Built production IoT camera system integrating Raspberry Pi hardware, servo HAT, Python/FastAPI backend, and React Native mobile app"},
	{"Pydantic", "Designed type-safe API layer with FastAPI + Pydantic models"},
	{"Python async/await", "Implemented async Python services for concurrent hardware + network I/O"},
	{"Azure Blob Storage", "Integrated Azure Blob Storage with automated 7-day retention management"},
	{"HTTP Range requests", "Enabled on-demand video streaming via HTTP Range request support"},
	{"systemd / Linux services", "Configured systemd service for reliable auto-start on embedded Linux"},
	{"WebSockets", "Delivered real-time camera stream via WebSocket connections"},
	{"JWT authentication", "Secured API endpoints with JWT bearer-token authentication"},
	{"Model Context Protocol (MCP)", "Built production MCP server enabling persistent AI context across job search sessions, with 30+ tools, RAG semantic search, and PDF generation"},
	{"PDF generation", "Implemented PDF generation pipeline from plain .txt via HTML/CSS templates rendered to PDF"},
	{"RAG / semantic search", "Built RAG semantic search layer over resume materials using text embeddings"},
}

var scanSkipDirs = map[string]bool{
	".git": true, "__pycache__": true, "node_modules": true,
	"venv": true, ".venv": true, "env": true, ".expo": true,
	"build": true, "dist": true, "vendor": true,
}

// ProjectScan is the result for one side-project folder.
type ProjectScan struct {
	Name       string
	Tech       []string
	FileCount  int
	PullStatus string
}

// Report aggregates a full scan across all configured project folders.
type Report struct {
	Projects        []ProjectScan
	AlreadyOnResume map[string]bool
	NewSkills       []string
	Bullets         []string
}

// Scanner walks the configured side-project directories.
type Scanner struct {
	cfg    *config.Config
	logger *logging.AppLogger
}

func NewScanner(cfg *config.Config, logger *logging.AppLogger) *Scanner {
	return &Scanner{cfg: cfg, logger: logger}
}

// Scan pulls and scans every configured project folder, then diffs the
// detected tech against the master resume text.
func (s *Scanner) Scan(ctx context.Context, masterResume string) (*Report, error) {
	folders := s.cfg.SideProjectDirs
	if len(folders) == 0 {
		return nil, fmt.Errorf("no side project folders configured — add side_project_dirs to the config")
	}

	var missing []string
	for _, f := range folders {
		if _, err := os.Stat(f); err != nil {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("side project folder(s) not found:\n  %s", strings.Join(missing, "\n  "))
	}

	allTech := map[string]bool{}
	report := &Report{AlreadyOnResume: map[string]bool{}}

	for _, folder := range folders {
		pullStatus := s.gitPull(ctx, folder)
		tech, fileCount := scanFolder(folder)
		for t := range tech {
			allTech[t] = true
		}
		report.Projects = append(report.Projects, ProjectScan{
			Name:       filepath.Base(folder),
			Tech:       sortedKeys(tech),
			FileCount:  fileCount,
			PullStatus: pullStatus,
		})
	}

	resumeText := strings.ToLower(masterResume)
	for tech := range allTech {
		if onResume(tech, resumeText) {
			report.AlreadyOnResume[tech] = true
		} else {
			report.NewSkills = append(report.NewSkills, tech)
		}
	}
	sort.Strings(report.NewSkills)

	for _, sb := range suggestedBullets {
		if allTech[sb.tech] {
			report.Bullets = append(report.Bullets, sb.bullet)
		}
	}
	return report, nil
}

// gitPull updates a project checkout before scanning. Failures are
// reported in the status line, never fatal.
func (s *Scanner) gitPull(ctx context.Context, folder string) string {
	repo, err := git.PlainOpen(folder)
	if err != nil {
		return fmt.Sprintf("skipped: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Sprintf("skipped: %v", err)
	}

	pullCtx, cancel := context.WithTimeout(ctx, pullTimeout)
	defer cancel()

	err = wt.PullContext(pullCtx, &git.PullOptions{RemoteName: "origin"})
	switch {
	case err == nil:
		return "Pulled latest changes."
	case errors.Is(err, git.NoErrAlreadyUpToDate):
		return "Already up to date."
	case errors.Is(err, context.DeadlineExceeded):
		return "skipped: git pull timed out (>20s)"
	default:
		return fmt.Sprintf("warning: %v", err)
	}
}

func scanFolder(folder string) (map[string]bool, int) {
	tech := map[string]bool{}
	fileCount := 0

	filepath.WalkDir(folder, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != folder && (scanSkipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		fileCount++

		name := d.Name()
		ext := strings.ToLower(filepath.Ext(name))
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		text := strings.ToLower(string(raw))

		switch {
		case ext == ".py":
			tech["Python"] = true
			detectPythonTech(tech, name, text)
		case ext == ".go":
			tech["Go"] = true
			detectGoTech(tech, text)
		case ext == ".ts" || ext == ".tsx" || ext == ".js" || ext == ".jsx":
			tech["TypeScript/JavaScript"] = true
			if strings.Contains(text, "react-native") || strings.Contains(text, "react native") {
				tech["React Native"] = true
			}
			if strings.Contains(text, "expo") {
				tech["Expo"] = true
			}
			if strings.Contains(text, "testflight") {
				tech["iOS TestFlight deployment"] = true
			}
		case ext == ".swift":
			tech["Swift / iOS"] = true
		case name == "Dockerfile":
			tech["Docker"] = true
		case name == "docker-compose.yml" || name == "docker-compose.yaml":
			tech["Docker Compose"] = true
		case ext == ".tf" || ext == ".tfvars":
			tech["Terraform IaC"] = true
		}
		return nil
	})

	return tech, fileCount
}

func detectPythonTech(tech map[string]bool, name, text string) {
	marks := []struct {
		label string
		hit   bool
	}{
		{"FastAPI", strings.Contains(text, "fastapi")},
		{"Pydantic", strings.Contains(text, "pydantic")},
		{"Azure Blob Storage", strings.Contains(text, "azure")},
		{"Python async/await", strings.Contains(text, "async def")},
		{"WebSockets", strings.Contains(text, "websocket")},
		{"pytest", strings.Contains(text, "pytest") || strings.Contains(name, "conftest")},
		{"systemd / Linux services", strings.Contains(text, "systemd")},
		{"Raspberry Pi GPIO", strings.Contains(text, "gpio") || strings.Contains(text, "rpi")},
		{"Servo / Adafruit HAT", strings.Contains(text, "servo") || strings.Contains(text, "adafruit")},
		{"HTTP Range requests", strings.Contains(text, "range") && strings.Contains(text, "http")},
		{"JWT authentication", strings.Contains(text, "jwt") || strings.Contains(text, "bearer")},
		{"Docker", strings.Contains(text, "docker")},
		{"Automated retention policies", strings.Contains(text, "retention")},
		{"Model Context Protocol (MCP)", strings.Contains(text, "mcp.tool") || strings.Contains(text, "fastmcp")},
		{"PDF generation", strings.Contains(text, "weasyprint")},
		{"RAG / semantic search", strings.Contains(text, "faiss") || strings.Contains(text, "sentence_transformers") || strings.Contains(text, "text-embedding")},
	}
	for _, m := range marks {
		if m.hit {
			tech[m.label] = true
		}
	}
}

func detectGoTech(tech map[string]bool, text string) {
	marks := []struct {
		label string
		hit   bool
	}{
		{"WebSockets", strings.Contains(text, "websocket")},
		{"JWT authentication", strings.Contains(text, "jwt")},
		{"Docker", strings.Contains(text, "docker")},
		{"Model Context Protocol (MCP)", strings.Contains(text, "mcp-go") || strings.Contains(text, "mcp.newtool")},
		{"PDF generation", strings.Contains(text, "chromedp") || strings.Contains(text, "pdfcpu")},
		{"RAG / semantic search", strings.Contains(text, "text-embedding") || strings.Contains(text, "cosine")},
	}
	for _, m := range marks {
		if m.hit {
			tech[m.label] = true
		}
	}
}

func onResume(tech, resumeText string) bool {
	keywords, ok := techKeywords[tech]
	if !ok {
		keywords = []string{strings.ToLower(tech)}
	}
	for _, kw := range keywords {
		if strings.Contains(resumeText, kw) {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
