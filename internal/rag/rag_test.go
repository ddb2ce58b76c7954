package rag

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jobcontext/internal/config"
	"jobcontext/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbedder maps text to a keyword-count vector so similarity is
// deterministic.
type fakeEmbedder struct{}

func (fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		lower := strings.ToLower(t)
		out[i] = []float32{
			float32(strings.Count(lower, "payments")),
			float32(strings.Count(lower, "kubernetes")),
			1,
		}
	}
	return out, nil
}

func TestChunkText_ShortText(t *testing.T) {
	chunks := ChunkText("This paragraph is comfortably longer than fifty characters in total.")
	require.Len(t, chunks, 1)

	assert.Empty(t, ChunkText("too short"))
}

func TestChunkText_SplitsLongText(t *testing.T) {
	para := strings.Repeat("This sentence talks about building reliable systems at scale. ", 30)
	chunks := ChunkText(para)

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.Greater(t, len(c), minChunkChars)
		assert.LessOrEqual(t, len(c), maxChunkChars+chunkOverlap+120)
	}
}

func TestChunkText_ParagraphBoundaries(t *testing.T) {
	p1 := strings.Repeat("First paragraph about payments infrastructure. ", 12)
	p2 := strings.Repeat("Second paragraph about kubernetes operations. ", 12)
	chunks := ChunkText(p1 + "\n\n" + p2)

	require.GreaterOrEqual(t, len(chunks), 2)
	assert.Contains(t, chunks[0], "payments")
}

func TestEmbeddingsCodec_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vecs.bin")

	in := [][]float32{{1, 2.5, -3}, {0.125, 0, 42}}
	require.NoError(t, saveEmbeddings(path, in))

	out, err := loadEmbeddings(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEmbeddingsCodec_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vecs.bin")

	require.NoError(t, saveEmbeddings(path, nil))
	out, err := loadEmbeddings(path)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func testIndex(t *testing.T) (*Index, *config.Config) {
	t.Helper()
	root := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.ResumeDir = filepath.Join(root, "resumes")
	cfg.LeetcodeDir = filepath.Join(root, "leetcode")
	cfg.DataDir = filepath.Join(root, "data")

	logger, _ := logging.NewTestLogger()
	return New(&cfg, fakeEmbedder{}, logger), &cfg
}

func writeIndexFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestIndex_BuildAndSearch(t *testing.T) {
	ix, cfg := testIndex(t)
	ctx := context.Background()

	writeIndexFile(t, filepath.Join(cfg.ResumesDir(), "Resume_Acme.txt"),
		"Senior engineer on the payments platform, cut settlement costs by forty percent over two years.")
	writeIndexFile(t, filepath.Join(cfg.CoverLettersDir(), "HostCo_Cover.txt"),
		"I run kubernetes clusters at home and at work, and HostCo is where I want to do it next.")

	assert.False(t, ix.Exists())

	counts, err := ix.Build(ctx)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, CategoryResume, counts[0].Category)
	assert.Equal(t, 1, counts[0].Chunks)
	assert.Equal(t, CategoryCoverLetters, counts[1].Category)

	assert.True(t, ix.Exists())

	hits, err := ix.Search(ctx, "kubernetes kubernetes", "", 6)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "HostCo_Cover.txt", hits[0].Source)
	assert.Greater(t, hits[0].Score, hits[1].Score)
}

func TestIndex_SearchCategoryFilter(t *testing.T) {
	ix, cfg := testIndex(t)
	ctx := context.Background()

	writeIndexFile(t, filepath.Join(cfg.ResumesDir(), "Resume_Acme.txt"),
		"Senior engineer on the payments platform, cut settlement costs by forty percent over two years.")
	writeIndexFile(t, filepath.Join(cfg.CoverLettersDir(), "HostCo_Cover.txt"),
		"I run kubernetes clusters at home and at work, and HostCo is where I want to do it next.")

	_, err := ix.Build(ctx)
	require.NoError(t, err)

	hits, err := ix.Search(ctx, "payments", CategoryCoverLetters, 6)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, CategoryCoverLetters, hits[0].Category)

	hits, err = ix.Search(ctx, "anything", "no_such_category", 6)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndex_SearchWithoutBuild(t *testing.T) {
	ix, _ := testIndex(t)

	_, err := ix.Search(context.Background(), "query", "", 6)
	assert.ErrorContains(t, err, "not built")
}

func TestIndex_MasterExcludedFromResumesDir(t *testing.T) {
	ix, cfg := testIndex(t)

	writeIndexFile(t, filepath.Join(cfg.ResumesDir(), "MASTER_RESUME.txt"),
		"This master copy lives in the optimized folder and must not be double indexed here at all.")
	writeIndexFile(t, filepath.Join(cfg.ResumesDir(), "Resume_Acme.txt"),
		"Senior engineer on the payments platform, cut settlement costs by forty percent over two years.")

	counts, err := ix.Build(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, 1, counts[0].Chunks)
}

func TestIndex_BuildEmptyWorkspace(t *testing.T) {
	ix, _ := testIndex(t)

	counts, err := ix.Build(context.Background())
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestFormatResults(t *testing.T) {
	out := FormatResults(nil, "Results")
	assert.Equal(t, "No relevant results found.", out)

	out = FormatResults([]Hit{
		{Text: "chunk body", Source: "Resume_Acme.txt", Category: CategoryResume, Score: 0.913},
	}, `Results for: "payments"`)
	assert.Contains(t, out, `═══ Results for: "payments" ═══`)
	assert.Contains(t, out, "[1] Resume_Acme.txt (score: 0.913, category: resume)")
	assert.Contains(t, out, "chunk body")
}

func TestCosine_ZeroVector(t *testing.T) {
	assert.Equal(t, 0.0, cosine([]float32{0, 0}, []float32{1, 1}))
	assert.InDelta(t, 1.0, cosine([]float32{2, 0}, []float32{4, 0}), 1e-9)
}
