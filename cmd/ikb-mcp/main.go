// Package main provides the entry point for the ikb MCP plugin server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ikb-gg/ikb-go/internal/config"
	"github.com/ikb-gg/ikb-go/internal/plugin"
	"github.com/ikb-gg/ikb-go/internal/server"
)

const version = "0.1.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("configuration error: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Setup logger (dual output: stderr text + file JSON)
	logger, logCleanup := config.SetupLogger(cfg)
	defer func() { _ = logCleanup() }()

	// Log startup info
	logger.Info("ikb-mcp starting",
		"version", version,
		"base_url", cfg.BaseURL,
		"search_type", cfg.SearchType,
		"memory_enabled", cfg.Memory.Enabled,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Wire dependencies (IKB client, rate limiter, memory store, embedder)
	deps, closeDeps, err := plugin.BuildDependencies(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to wire dependencies", "error", err)
		os.Exit(1)
	}
	defer closeDeps(context.Background())

	// Create and setup server
	srv := server.New(version, logger)
	srv.Setup()

	// Register tools
	plugin.RegisterAll(srv.MCPServer(), deps, version)
	logger.Info("tools registered", "count", 2)

	// Log ready state
	logger.Info("server ready, awaiting connections")

	// Run server (blocks until disconnect or context cancelled)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	// Dump operation timings for post-mortem analysis
	snap := deps.Metrics.Snapshot()
	logger.Info("shutdown complete", "uptime_seconds", snap.UptimeSeconds)
	if snap.Fetch != nil {
		logger.Info("fetch metrics",
			"count", snap.Fetch.Count,
			"avg_ms", snap.Fetch.AvgTimeMs,
			"max_ms", snap.Fetch.MaxTimeMs,
		)
	}
	if snap.MemoryWrite != nil {
		logger.Info("memory write metrics",
			"count", snap.MemoryWrite.Count,
			"avg_ms", snap.MemoryWrite.AvgTimeMs,
			"max_ms", snap.MemoryWrite.MaxTimeMs,
		)
	}
}
