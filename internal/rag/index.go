package rag

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"jobcontext/internal/ai"
	"jobcontext/internal/config"
	"jobcontext/internal/logging"
	"jobcontext/internal/store"
	"jobcontext/internal/workspace"
)

const embedBatchSize = 100

// Categories assigned to indexed chunks.
const (
	CategoryResume       = "resume"
	CategoryCoverLetters = "cover_letters"
	CategoryReference    = "reference"
	CategoryPrep         = "interview_prep"
	CategoryAssessments  = "job_assessments"
	CategoryLeetcode     = "leetcode"
)

// ChunkMeta records where an indexed chunk came from.
type ChunkMeta struct {
	Source   string `json:"source"`
	Category string `json:"category"`
}

type indexData struct {
	Chunks   []string    `json:"chunks"`
	Metadata []ChunkMeta `json:"metadata"`
}

// Hit is one search result.
type Hit struct {
	Text     string
	Source   string
	Category string
	Score    float64
}

// CategoryCount reports how many chunks and estimated embedding tokens a
// category contributed to a build.
type CategoryCount struct {
	Category string
	Chunks   int
	Tokens   int
}

// Index builds and searches the on-disk semantic index.
type Index struct {
	cfg      *config.Config
	embedder ai.Embedder
	logger   *logging.AppLogger
}

func New(cfg *config.Config, embedder ai.Embedder, logger *logging.AppLogger) *Index {
	return &Index{cfg: cfg, embedder: embedder, logger: logger}
}

// Exists reports whether a built index is on disk.
func (ix *Index) Exists() bool {
	if _, err := os.Stat(ix.cfg.SearchIndexFile()); err != nil {
		return false
	}
	_, err := os.Stat(ix.cfg.EmbeddingsFile())
	return err == nil
}

type fileGroup struct {
	paths    []string
	category string
}

// gatherFiles collects every indexable material, grouped by category.
func (ix *Index) gatherFiles() []fileGroup {
	cfg := ix.cfg
	var groups []fileGroup

	if _, err := os.Stat(cfg.MasterResume()); err == nil {
		groups = append(groups, fileGroup{[]string{cfg.MasterResume()}, CategoryResume})
	}

	if files := globTxt(cfg.ResumesDir()); len(files) > 0 {
		var kept []string
		for _, f := range files {
			if !strings.Contains(filepath.Base(f), "MASTER") {
				kept = append(kept, f)
			}
		}
		groups = append(groups, fileGroup{kept, CategoryResume})
	}

	groups = append(groups, fileGroup{globTxt(cfg.CoverLettersDir()), CategoryCoverLetters})
	groups = append(groups, fileGroup{globTxt(cfg.ReferenceDir()), CategoryReference})

	// Prep notes dropped in the workspace root
	rootTxt := globTxt(cfg.ResumeDir)
	groups = append(groups, fileGroup{filterByKeywords(rootTxt, "prep", "interview", "call", "cheat"), CategoryPrep})

	assessFiles := append(globTxt(cfg.AssessmentsDir()), globExt(cfg.AssessmentsDir(), ".md")...)
	groups = append(groups, fileGroup{assessFiles, CategoryAssessments})
	groups = append(groups, fileGroup{filterByKeywords(rootTxt, "assessment", "fitment"), CategoryAssessments})

	var lcFiles []string
	for _, p := range []string{cfg.LeetcodeCheatsheet(), cfg.QuickReference()} {
		if _, err := os.Stat(p); err == nil {
			lcFiles = append(lcFiles, p)
		}
	}
	groups = append(groups, fileGroup{lcFiles, CategoryLeetcode})

	return groups
}

// Build rebuilds the whole index from the material folders and writes it
// to the data directory. Returns per-category chunk counts in gather
// order.
func (ix *Index) Build(ctx context.Context) ([]CategoryCount, error) {
	var allChunks []string
	var allMeta []ChunkMeta
	countByCategory := map[string]int{}
	tokensByCategory := map[string]int{}
	var order []string

	for _, group := range ix.gatherFiles() {
		for _, path := range group.paths {
			text, err := workspace.ReadTextFile(path)
			if err != nil {
				ix.logger.Debug("Skipping unreadable file", "path", path, "error", err)
				continue
			}
			for _, chunk := range ChunkText(strings.TrimSpace(text)) {
				allChunks = append(allChunks, chunk)
				allMeta = append(allMeta, ChunkMeta{Source: filepath.Base(path), Category: group.category})
				if countByCategory[group.category] == 0 {
					order = append(order, group.category)
				}
				countByCategory[group.category]++
				tokensByCategory[group.category] += ai.EstimateTokens(chunk, string(ai.EmbeddingModel))
			}
		}
	}

	if len(allChunks) == 0 {
		return nil, nil
	}

	ix.logger.Info("Embedding chunks", "count", len(allChunks))

	var vectors [][]float32
	for i := 0; i < len(allChunks); i += embedBatchSize {
		end := i + embedBatchSize
		if end > len(allChunks) {
			end = len(allChunks)
		}
		batch, err := ix.embedder.Embed(ctx, allChunks[i:end])
		if err != nil {
			return nil, fmt.Errorf("failed to embed batch at %d: %w", i, err)
		}
		vectors = append(vectors, batch...)
	}

	if err := saveEmbeddings(ix.cfg.EmbeddingsFile(), vectors); err != nil {
		return nil, err
	}
	if err := store.SaveJSON(ix.cfg.SearchIndexFile(), indexData{Chunks: allChunks, Metadata: allMeta}); err != nil {
		return nil, fmt.Errorf("failed to save search index: %w", err)
	}

	var counts []CategoryCount
	for _, cat := range order {
		counts = append(counts, CategoryCount{Category: cat, Chunks: countByCategory[cat], Tokens: tokensByCategory[cat]})
	}
	return counts, nil
}

// Search embeds the query and returns the top results by cosine
// similarity, optionally restricted to one category.
func (ix *Index) Search(ctx context.Context, query, category string, n int) ([]Hit, error) {
	if !ix.Exists() {
		return nil, fmt.Errorf("search index not built — run reindex_materials first")
	}
	if n <= 0 {
		n = 6
	}

	data := store.LoadJSON(ix.cfg.SearchIndexFile(), indexData{})
	vectors, err := loadEmbeddings(ix.cfg.EmbeddingsFile())
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(data.Chunks) || len(data.Chunks) != len(data.Metadata) {
		return nil, fmt.Errorf("search index is corrupt — run reindex_materials")
	}

	indices := make([]int, 0, len(data.Chunks))
	for i, m := range data.Metadata {
		if category == "" || m.Category == category {
			indices = append(indices, i)
		}
	}
	if len(indices) == 0 {
		return nil, nil
	}

	qVecs, err := ix.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	qVec := qVecs[0]

	hits := make([]Hit, 0, len(indices))
	for _, i := range indices {
		hits = append(hits, Hit{
			Text:     data.Chunks[i],
			Source:   data.Metadata[i].Source,
			Category: data.Metadata[i].Category,
			Score:    round3(cosine(vectors[i], qVec)),
		})
	}
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].Score > hits[b].Score })

	if len(hits) > n {
		hits = hits[:n]
	}
	return hits, nil
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := 0; i < len(a) && i < len(b); i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	denom := math.Sqrt(na) * math.Sqrt(nb)
	if denom == 0 {
		denom = 1e-9
	}
	return dot / denom
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// FormatResults renders hits the way the search tools present them.
func FormatResults(hits []Hit, header string) string {
	if len(hits) == 0 {
		return "No relevant results found."
	}
	lines := []string{fmt.Sprintf("═══ %s ═══", header), ""}
	for i, hit := range hits {
		lines = append(lines, fmt.Sprintf("[%d] %s (score: %g, category: %s)", i+1, hit.Source, hit.Score, hit.Category))
		lines = append(lines, hit.Text, "")
	}
	return strings.Join(lines, "\n")
}

func globTxt(dir string) []string {
	return globExt(dir, ".txt")
}

func globExt(dir, ext string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ext {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out
}

func filterByKeywords(paths []string, keywords ...string) []string {
	var out []string
	for _, p := range paths {
		name := strings.ToLower(filepath.Base(p))
		for _, kw := range keywords {
			if strings.Contains(name, kw) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
