package mcp

import (
	"context"
	"fmt"
	"strings"

	"jobcontext/internal/ai"
	"jobcontext/internal/rag"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerSearchTools() {
	s.mcpServer.AddTool(mcp.NewTool("search_materials",
		mcp.WithDescription("Semantic search across all job search materials (resumes, cover letters, interview prep, LeetCode notes, reference files). Optionally filter by category: resume, cover_letters, reference, interview_prep, job_assessments, leetcode. Requires an OpenAI API key and a built index — run reindex_materials() first if needed."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Natural language search query")),
		mcp.WithString("category", mcp.Description("Restrict results to one category")),
	), s.handleSearchMaterials)

	s.mcpServer.AddTool(mcp.NewTool("reindex_materials",
		mcp.WithDescription("Rebuild the semantic search index over all job search materials. Run this after adding new resumes, cover letters, or prep files. Requires an OpenAI API key."),
	), s.handleReindexMaterials)
}

// openAIClient builds an API client from the configured key, nil when no
// key is available.
func (s *Server) openAIClient() *ai.Client {
	key := s.cfg.ResolveOpenAIKey()
	if key == "" {
		return nil
	}
	client, err := ai.NewClient(key, ai.WithModel(s.cfg.OpenAIModel))
	if err != nil {
		s.logger.Warn("Failed to create OpenAI client", "error", err)
		return nil
	}
	return client
}

func (s *Server) handleSearchMaterials(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return errResult("%v", err)
	}

	client := s.openAIClient()
	if client == nil {
		return textResult("RAG search requires an OpenAI API key.\n" +
			"Set OPENAI_API_KEY or add openai_api_key to the config, then run reindex_materials().")
	}

	ix := rag.New(s.cfg, client, s.logger)
	hits, err := ix.Search(ctx, query, req.GetString("category", ""), 6)
	if err != nil {
		return textResult(fmt.Sprintf("Search error: %v\nTry running reindex_materials() first.", err))
	}
	return textResult(rag.FormatResults(hits, fmt.Sprintf("Results for: %q", query)))
}

func (s *Server) handleReindexMaterials(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	client := s.openAIClient()
	if client == nil {
		return textResult("Indexing requires an OpenAI API key.\n" +
			"Set OPENAI_API_KEY or add openai_api_key to the config and try again.")
	}

	ix := rag.New(s.cfg, client, s.logger)
	counts, err := ix.Build(ctx)
	if err != nil {
		return textResult(fmt.Sprintf("Indexing error: %v", err))
	}

	total := 0
	totalTokens := 0
	for _, c := range counts {
		total += c.Chunks
		totalTokens += c.Tokens
	}
	lines := []string{fmt.Sprintf("✓ Index built. %d total chunks indexed:", total), ""}
	for _, c := range counts {
		lines = append(lines, fmt.Sprintf("  %-16s %d chunks", c.Category, c.Chunks))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Embedded ~%d tokens / est $%.4f", totalTokens, ai.EmbeddingCost(totalTokens)),
		"You can now use search_materials() for semantic search.")
	return textResult(strings.Join(lines, "\n"))
}
