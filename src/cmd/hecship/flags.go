// FILE: src/cmd/hecship/flags.go
package main

import (
	"flag"
	"fmt"
	"os"
)

// FlagConfig holds the parsed command-line flags
type FlagConfig struct {
	ConfigFile  string
	ShowVersion bool
	Quiet       bool
	PromptToken bool
}

func init() {
	flag.Usage = customUsage
}

func customUsage() {
	fmt.Fprintf(os.Stderr, "hecship - Splunk HTTP Event Collector log shipper\n\n")
	fmt.Fprintf(os.Stderr, "Reads log lines from stdin and forwards them as HEC events.\n\n")
	fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Options:\n")
	fmt.Fprintf(os.Stderr, "  -config string\n\tConfig file path\n")
	fmt.Fprintf(os.Stderr, "  -version\n\tShow version information\n")
	fmt.Fprintf(os.Stderr, "  -quiet\n\tSuppress internal logging output\n")
	fmt.Fprintf(os.Stderr, "  -prompt-token\n\tPrompt for the HEC token on the terminal when not configured\n")

	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  # Ship a log file with token from the environment\n")
	fmt.Fprintf(os.Stderr, "  HEC_TOKEN=... tail -f app.log | %s\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "  # Ship with an explicit config\n")
	fmt.Fprintf(os.Stderr, "  cat app.log | %s --config /etc/hecship.toml\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "Environment Variables:\n")
	fmt.Fprintf(os.Stderr, "  HECSHIP_CONFIG_FILE  Config file path\n")
	fmt.Fprintf(os.Stderr, "  HECSHIP_CONFIG_DIR   Config directory\n")
	fmt.Fprintf(os.Stderr, "  HEC_TOKEN            HEC token (or the name set by forwarder.token_env)\n")
}

// ParseFlags parses the command-line flags
func ParseFlags() (*FlagConfig, error) {
	configFile := flag.String("config", "", "Config file path")
	showVersion := flag.Bool("version", false, "Show version information")
	quiet := flag.Bool("quiet", false, "Suppress internal logging output")
	promptToken := flag.Bool("prompt-token", false, "Prompt for the HEC token when not configured")

	flag.Parse()

	return &FlagConfig{
		ConfigFile:  *configFile,
		ShowVersion: *showVersion,
		Quiet:       *quiet,
		PromptToken: *promptToken,
	}, nil
}
