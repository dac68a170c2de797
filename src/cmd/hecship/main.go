// FILE: src/cmd/hecship/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hecship/src/internal/config"
	"hecship/src/internal/version"

	"github.com/lixenwraith/log"
)

var logger *log.Logger

func main() {
	flagCfg, err := ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Handle version flag
	if flagCfg.ShowVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	// Set config file environment if specified
	if flagCfg.ConfigFile != "" {
		os.Setenv("HECSHIP_CONFIG_FILE", flagCfg.ConfigFile)
	}

	// Load configuration with CLI overrides
	cfg, err := config.LoadWithCLI(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if flagCfg.Quiet {
		cfg.Quiet = true
	}

	if err := initializeLogger(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer shutdownLogger()

	if err := resolveToken(cfg, flagCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read token: %v\n", err)
		os.Exit(1)
	}

	logger.Info("msg", "hecship starting",
		"version", version.String(),
		"config_file", flagCfg.ConfigFile,
		"collector", fmt.Sprintf("%s:%d", cfg.Forwarder.Host, cfg.Forwarder.Port))

	// Create context for shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Bootstrap the pipeline: stdin -> shipper -> collector
	pipeline, err := bootstrapPipeline(ctx, cfg)
	if err != nil {
		logger.Error("msg", "Failed to bootstrap", "error", err)
		shutdownLogger()
		os.Exit(1)
	}

	// Run until a signal arrives or stdin is exhausted
	select {
	case sig := <-sigChan:
		logger.Info("msg", "Shutdown signal received, starting graceful shutdown...", "signal", sig.String())
	case <-pipeline.source.Done():
		logger.Info("msg", "Input exhausted, flushing...")
	}

	// Shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	done := make(chan struct{})
	go func() {
		pipeline.Shutdown()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("msg", "Shutdown complete")
	case <-shutdownCtx.Done():
		logger.Error("msg", "Shutdown timeout exceeded - forcing exit")
		shutdownLogger()
		os.Exit(1)
	}
}

func shutdownLogger() {
	if logger != nil {
		logger.Shutdown(2 * time.Second)
	}
}
