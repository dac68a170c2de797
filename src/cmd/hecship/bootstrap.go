// FILE: src/cmd/hecship/bootstrap.go
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"hecship/src/internal/config"
	"hecship/src/internal/filter"
	"hecship/src/internal/format"
	"hecship/src/internal/forwarder"
	"hecship/src/internal/service"
	"hecship/src/internal/source"

	"github.com/lixenwraith/log"
	"golang.org/x/term"
)

// pipeline ties the stdin source to the shipper for lifecycle management
type pipeline struct {
	source  *source.StdinSource
	shipper *service.Shipper
}

func (p *pipeline) Shutdown() {
	p.source.Stop()
	p.shipper.Stop()
}

// bootstrapPipeline wires stdin -> shipper -> forwarder -> collector.
func bootstrapPipeline(ctx context.Context, cfg *config.Config) (*pipeline, error) {
	formatter, err := format.New(&cfg.Formatter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create formatter: %w", err)
	}

	fwd, err := forwarder.New(cfg.Forwarder, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create forwarder: %w", err)
	}

	filters, err := filter.NewChain(cfg.Filters, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create filter chain: %w", err)
	}

	shipper := service.NewShipper(cfg.Shipper, fwd, formatter, logger)
	if err := shipper.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start shipper: %w", err)
	}

	src, err := source.NewStdinSource(cfg.Shipper.BufferSize, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create stdin source: %w", err)
	}

	records := src.Subscribe()
	go func() {
		for rec := range records {
			if filters.Apply(rec) {
				shipper.Submit(rec, forwarder.Overrides{})
			}
		}
	}()

	if err := src.Start(); err != nil {
		return nil, fmt.Errorf("failed to start stdin source: %w", err)
	}

	return &pipeline{source: src, shipper: shipper}, nil
}

// resolveToken prompts for the HEC token on the controlling terminal when
// nothing is configured and the prompt was requested. Stdin carries log
// data, so the prompt goes through /dev/tty.
func resolveToken(cfg *config.Config, flagCfg *FlagConfig) error {
	if !flagCfg.PromptToken || cfg.Forwarder.Token != "" {
		return nil
	}

	tokenEnv := cfg.Forwarder.TokenEnv
	if tokenEnv == "" {
		tokenEnv = forwarder.DefaultTokenEnv
	}
	if os.Getenv(tokenEnv) != "" {
		return nil
	}

	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("no terminal available for token prompt: %w", err)
	}
	defer tty.Close()

	if !term.IsTerminal(int(tty.Fd())) {
		return fmt.Errorf("no terminal available for token prompt")
	}

	fmt.Fprint(tty, "HEC token: ")
	token, err := term.ReadPassword(int(tty.Fd()))
	fmt.Fprintln(tty)
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}

	cfg.Forwarder.Token = strings.TrimSpace(string(token))
	return nil
}

// initializeLogger sets up the internal logger based on configuration
func initializeLogger(cfg *config.Config) error {
	logger = log.NewLogger()

	var configArgs []string

	if cfg.Quiet {
		// In quiet mode, disable ALL logging output
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_console=false",
			"level=255")

		return startLogger(configArgs)
	}

	logCfg := cfg.Logging
	if logCfg == nil {
		logCfg = config.DefaultLogConfig()
	}

	levelValue, err := parseLogLevel(logCfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	configArgs = append(configArgs, fmt.Sprintf("level=%d", levelValue))

	switch logCfg.Output {
	case "none":
		configArgs = append(configArgs, "disable_file=true", "enable_console=false")

	case "stdout":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_console=true",
			"console_target=stdout")

	case "stderr", "":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_console=true",
			"console_target=stderr")

	case "file":
		configArgs = append(configArgs, "enable_console=false")
		configureFileLogging(&configArgs, logCfg)

	case "both":
		configArgs = append(configArgs, "enable_console=true")
		configureFileLogging(&configArgs, logCfg)
		configureConsoleTarget(&configArgs, logCfg)

	default:
		return fmt.Errorf("invalid log output mode: %s", logCfg.Output)
	}

	if logCfg.Console != nil && logCfg.Console.Format != "" {
		configArgs = append(configArgs, fmt.Sprintf("format=%s", logCfg.Console.Format))
	}

	return startLogger(configArgs)
}

// startLogger applies the assembled configuration and starts the
// processing goroutine.
func startLogger(configArgs []string) error {
	if err := logger.ApplyConfigString(configArgs...); err != nil {
		return err
	}
	return logger.Start()
}

// configureFileLogging sets up file-based logging parameters
func configureFileLogging(configArgs *[]string, cfg *config.LogConfig) {
	if cfg.File != nil {
		*configArgs = append(*configArgs,
			fmt.Sprintf("directory=%s", cfg.File.Directory),
			fmt.Sprintf("name=%s", cfg.File.Name),
			fmt.Sprintf("max_size_mb=%d", cfg.File.MaxSizeMB),
			fmt.Sprintf("max_total_size_mb=%d", cfg.File.MaxTotalSizeMB))

		if cfg.File.RetentionHours > 0 {
			*configArgs = append(*configArgs,
				fmt.Sprintf("retention_period_hrs=%.1f", cfg.File.RetentionHours))
		}
	}
}

// configureConsoleTarget sets up console output parameters
func configureConsoleTarget(configArgs *[]string, cfg *config.LogConfig) {
	target := "stderr" // default

	if cfg.Console != nil && cfg.Console.Target != "" {
		target = cfg.Console.Target
	}

	*configArgs = append(*configArgs, fmt.Sprintf("console_target=%s", target))
}

// parseLogLevel converts a level name to the logger's numeric level
func parseLogLevel(level string) (int, error) {
	switch strings.ToLower(level) {
	case "debug":
		return int(log.LevelDebug), nil
	case "info", "":
		return int(log.LevelInfo), nil
	case "warn":
		return int(log.LevelWarn), nil
	case "error":
		return int(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown level: %s", level)
	}
}
