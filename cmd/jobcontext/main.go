// Package main is the entry point for the jobcontext MCP server.
//
// Startup sequence:
//
// 1. Initialize logging (stderr, or a local file when DEBUG is set)
// 2. On first run, write a default config and create the data directory
// 3. Load configuration from disk
// 4. Serve MCP tools over stdio until the client disconnects
//
// The server speaks JSON-RPC over stdout, so nothing else in the process
// may write there.
package main

import (
	"os"

	"jobcontext/internal/config"
	"jobcontext/internal/logging"
	"jobcontext/internal/mcp"
)

func main() {
	appLogger := logging.NewAppLogger()

	if config.IsFirstRun() {
		if err := runFirstTimeSetup(appLogger); err != nil {
			appLogger.Error("Setup failed", "error", err)
			os.Exit(1)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		appLogger.Error("Error loading config", "error", err)
		os.Exit(1)
	}
	appLogger.Info("Configuration loaded", "data_dir", cfg.DataDir, "resume_dir", cfg.ResumeDir)

	srv := mcp.NewServer(cfg, appLogger)
	if err := srv.Start(); err != nil {
		appLogger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

// runFirstTimeSetup writes a default config and creates the data directory.
// MCP clients launch the server headless, so setup has to be non-interactive;
// users edit the generated config.yaml to point at their own folders.
func runFirstTimeSetup(logger *logging.AppLogger) error {
	cfg := config.DefaultConfig()
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	path, _ := config.FindConfigFile()
	logger.Info("First run: wrote default config", "path", path)
	return nil
}
