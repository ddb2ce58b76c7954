package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"jobcontext/internal/config"
	"jobcontext/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWorkspace(t *testing.T) *Workspace {
	t.Helper()
	root := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.ResumeDir = root
	cfg.LeetcodeDir = filepath.Join(root, "leetcode")
	cfg.DataDir = filepath.Join(root, "data")

	logger, _ := logging.NewTestLogger()
	return New(&cfg, logger)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestReadFile_ErrorBecomesInlineMarker(t *testing.T) {
	w := testWorkspace(t)

	content := w.ReadFile(filepath.Join(w.Config().ResumeDir, "missing.txt"))
	assert.Contains(t, content, "[Error reading missing.txt:")
}

func TestListMaterials(t *testing.T) {
	w := testWorkspace(t)
	cfg := w.Config()

	writeFile(t, filepath.Join(cfg.ResumesDir(), "Resume_FanDuel.txt"), "r")
	writeFile(t, filepath.Join(cfg.ResumesDir(), "Resume_Reddit.txt"), "r")
	writeFile(t, filepath.Join(cfg.ResumesDir(), "MASTER_RESUME.txt"), "r")
	writeFile(t, filepath.Join(cfg.ResumesDir(), "notes.pdf"), "x")
	writeFile(t, filepath.Join(cfg.CoverLettersDir(), "FanDuel_Cover.txt"), "c")

	resumes, letters, resumesOK, lettersOK := w.ListMaterials("")
	assert.True(t, resumesOK)
	assert.True(t, lettersOK)
	assert.Equal(t, []string{"Resume_FanDuel.txt", "Resume_Reddit.txt"}, resumes)
	assert.Equal(t, []string{"FanDuel_Cover.txt"}, letters)

	resumes, _, _, _ = w.ListMaterials("fanduel")
	assert.Equal(t, []string{"Resume_FanDuel.txt"}, resumes)
}

func TestListMaterials_MissingDir(t *testing.T) {
	w := testWorkspace(t)

	_, _, resumesOK, lettersOK := w.ListMaterials("")
	assert.False(t, resumesOK)
	assert.False(t, lettersOK)
}

func TestReadReference_MissSuggestsAvailable(t *testing.T) {
	w := testWorkspace(t)
	writeFile(t, filepath.Join(w.Config().ReferenceDir(), "STAR_Stories.md"), "stories")

	content, _, err := w.ReadReference("STAR_Stories.md")
	require.NoError(t, err)
	assert.Equal(t, "stories", content)

	_, available, err := w.ReadReference("nope.md")
	assert.Error(t, err)
	assert.Equal(t, []string{"STAR_Stories.md"}, available)
}

func TestSaveInterviewPrep(t *testing.T) {
	w := testWorkspace(t)

	path, err := w.SaveInterviewPrep("Jane Street", "# Prep\nnotes")
	require.NoError(t, err)
	assert.Equal(t, "Jane_Street_Interview_Prep.md", filepath.Base(path))
	assert.Equal(t, w.Config().AssessmentsDir(), filepath.Dir(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "notes")
}

func TestSaveText_StripsDirectoryComponents(t *testing.T) {
	w := testWorkspace(t)

	path, err := w.SaveResumeText("../escape.txt", "body")
	require.NoError(t, err)
	assert.Equal(t, w.Config().ResumesDir(), filepath.Dir(path))
}

func TestExtractMarkdownSection(t *testing.T) {
	content := "# Cheatsheet\nintro\n## Two Pointers\nuse two indexes\nmore\n## Sliding Window\nwindow stuff\n"

	section := ExtractMarkdownSection(content, "two pointers")
	assert.Contains(t, section, "use two indexes")
	assert.NotContains(t, section, "window stuff")

	assert.Empty(t, ExtractMarkdownSection(content, "graphs"))
	assert.Equal(t, content, ExtractMarkdownSection(content, ""))
}

func TestExtractMarkdownSection_KeepsSubsections(t *testing.T) {
	content := "# Cheatsheet\n## Trees\nIntro line\n### BFS\nlevel order\n### DFS\npre/in/post\n## Graphs\nadjacency list\n"

	section := ExtractMarkdownSection(content, "trees")
	assert.Contains(t, section, "Intro line")
	assert.Contains(t, section, "level order")
	assert.Contains(t, section, "pre/in/post")
	assert.NotContains(t, section, "adjacency list")

	// Matching a subsection directly stops at the next same-level header
	bfs := ExtractMarkdownSection(content, "bfs")
	assert.Contains(t, bfs, "level order")
	assert.NotContains(t, bfs, "pre/in/post")
}

func TestReadTextFile_Latin1Fallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "legacy.txt")
	// 0xE9 is é in Latin-1 but invalid standalone UTF-8
	require.NoError(t, os.WriteFile(path, []byte{'r', 0xE9, 's', 'u', 'm', 0xE9}, 0644))

	content, err := ReadTextFile(path)
	require.NoError(t, err)
	assert.Equal(t, "résumé", content)
}

func TestParseMaterial_Frontmatter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.md")
	writeFile(t, path, "---\ndescription: fit notes\ncompany: Reddit\n---\nBody text here\n")

	m, err := ParseMaterial(path)
	require.NoError(t, err)
	assert.Equal(t, "fit notes", m.Meta.Description)
	assert.Equal(t, "Reddit", m.Meta.Company)
	assert.Equal(t, "Body text here\n", m.Body)
}

func TestParseMaterial_NoFrontmatter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.txt")
	writeFile(t, path, "Just a resume body")

	m, err := ParseMaterial(path)
	require.NoError(t, err)
	assert.Empty(t, m.Meta.Description)
	assert.Equal(t, "Just a resume body", m.Body)
}

func TestResolveMaterial(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Resume_FanDuel_2026.txt"), "r")
	writeFile(t, filepath.Join(dir, "Resume_Reddit.txt"), "r")

	path, err := ResolveMaterial(dir, "Resume_Reddit.txt")
	require.NoError(t, err)
	assert.Equal(t, "Resume_Reddit.txt", filepath.Base(path))

	path, err = ResolveMaterial(dir, "Resume_Reddit")
	require.NoError(t, err)
	assert.Equal(t, "Resume_Reddit.txt", filepath.Base(path))

	path, err = ResolveMaterial(dir, "fanduel")
	require.NoError(t, err)
	assert.Equal(t, "Resume_FanDuel_2026.txt", filepath.Base(path))

	_, err = ResolveMaterial(dir, "stripe")
	assert.Error(t, err)

	_, err = ResolveMaterial(dir, "")
	assert.Error(t, err)
}

func TestToneScanCandidates(t *testing.T) {
	w := testWorkspace(t)
	cfg := w.Config()

	writeFile(t, filepath.Join(cfg.CoverLettersDir(), "FanDuel_Cover.txt"), "c")
	writeFile(t, filepath.Join(cfg.CoverLettersDir(), "Reddit_Cover.txt"), "c")
	writeFile(t, filepath.Join(cfg.ResumesDir(), "Resume_FanDuel.txt"), "r")
	writeFile(t, filepath.Join(cfg.ResumeDir, "scratch_notes.txt"), "n")
	writeFile(t, filepath.Join(cfg.ResumeDir, "readme.md"), "m")

	letters := w.ToneScanCandidates("", "")
	require.Len(t, letters, 2)
	assert.Equal(t, "02-Cover-Letters/FanDuel_Cover.txt", letters[0].Rel)

	all := w.ToneScanCandidates("all", "")
	assert.Len(t, all, 4)

	misc := w.ToneScanCandidates("misc", "")
	require.Len(t, misc, 1)
	assert.Equal(t, "scratch_notes.txt", misc[0].Rel)

	filtered := w.ToneScanCandidates("all", "fanduel")
	assert.Len(t, filtered, 2)
}

func TestFindPrepFiles(t *testing.T) {
	w := testWorkspace(t)
	cfg := w.Config()

	writeFile(t, filepath.Join(cfg.AssessmentsDir(), "FanDuel_Interview_Prep.md"), "p")
	writeFile(t, filepath.Join(cfg.ResumeDir, "fanduel_recruiter_call.txt"), "c")
	writeFile(t, filepath.Join(cfg.ResumesDir(), "Resume_FanDuel.txt"), "r")
	writeFile(t, filepath.Join(cfg.ResumeDir, "node_modules", "fanduel_prep.txt"), "x")

	found := w.FindPrepFiles("FanDuel")
	require.Len(t, found, 2)
	assert.Equal(t, "FanDuel_Interview_Prep.md", filepath.Base(found[0]))
	assert.Equal(t, "fanduel_recruiter_call.txt", filepath.Base(found[1]))
}
