// Package mcp implements the Model Context Protocol (MCP) server for
// jobcontext using the mcp-go library.
//
// The server exposes the job search tools — pipeline tracking, contacts,
// tone and story ingestion, semantic search, document generation, and PDF
// export — over stdio using JSON-RPC 2.0 as specified by the MCP standard.
package mcp

import (
	"fmt"

	"jobcontext/internal/config"
	"jobcontext/internal/logging"
	"jobcontext/internal/store"
	"jobcontext/internal/workspace"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const serverVersion = "1.0.0"

const serverInstructions = `jobcontext is a personal job search assistant.

Call get_session_context first in every session — it loads the master
resume, tone profile, personal stories, and the live application pipeline
in one shot. Write nothing on the user's behalf before reading their tone
profile.`

// Server is the MCP server instance wired to the data stores and the
// material workspace.
type Server struct {
	cfg    *config.Config
	logger *logging.AppLogger

	ws        *workspace.Workspace
	pipeline  *store.Pipeline
	rejects   *store.RejectionLog
	people    *store.PeopleBook
	stories   *store.ContextStore
	tone      *store.ToneStore
	scanIndex *store.ScanIndex
	posts     *store.PostLog
	health    *store.HealthLog

	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(cfg *config.Config, logger *logging.AppLogger) *Server {
	return &Server{
		cfg:       cfg,
		logger:    logger,
		ws:        workspace.New(cfg, logger),
		pipeline:  store.NewPipeline(cfg.StatusFile()),
		rejects:   store.NewRejectionLog(cfg.RejectionsFile()),
		people:    store.NewPeopleBook(cfg.PeopleFile()),
		stories:   store.NewContextStore(cfg.PersonalContextFile()),
		tone:      store.NewToneStore(cfg.ToneFile()),
		scanIndex: store.NewScanIndex(cfg.ScanIndexFile()),
		posts:     store.NewPostLog(cfg.PostsFile()),
		health:    store.NewHealthLog(cfg.HealthLogFile()),
	}
}

// Start initializes the MCP server and serves on stdio until the client
// disconnects.
func (s *Server) Start() error {
	s.logger.Info("Initializing MCP server")

	s.mcpServer = server.NewMCPServer(
		config.APP_NAME,
		serverVersion,
		server.WithInstructions(serverInstructions),
	)
	s.registerTools()

	s.logger.Info("MCP server created, starting stdio communication")

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the MCP server.
func (s *Server) Stop() error {
	s.logger.Info("Stopping MCP server")
	// The mcp-go server handles cleanup when the stdio stream closes
	return nil
}

func (s *Server) registerTools() {
	s.registerSessionTools()
	s.registerPipelineTools()
	s.registerRejectionTools()
	s.registerPeopleTools()
	s.registerStoryTools()
	s.registerIngestTools()
	s.registerToneTools()
	s.registerHealthTools()
	s.registerPostTools()
	s.registerCompTools()
	s.registerMaterialTools()
	s.registerFitmentTools()
	s.registerInterviewTools()
	s.registerStarTools()
	s.registerHBDITools()
	s.registerOutreachTools()
	s.registerSearchTools()
	s.registerExportTools()
	s.registerGenerateTools()
	s.registerProjectTools()
	s.registerDigestTools()
}

// textResult wraps a plain text payload in a successful tool result.
func textResult(text string) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(text), nil
}

// errResult reports a tool-level failure without killing the session.
func errResult(format string, args ...any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(fmt.Sprintf(format, args...)), nil
}
