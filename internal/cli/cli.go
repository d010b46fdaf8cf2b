package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/harnessgo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("harnessgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
harnessgo - trait metadata inspection and lifecycle event routing.

Usage:
  harnessgo [options] [MANIFEST_PATH]

Arguments:
  MANIFEST_PATH
    Path to a single .hcl suite manifest or a directory containing them.

Options:
`)
		flagSet.PrintDefaults()
	}

	manifestFlag := flagSet.String("manifests", "", "Path to the suite manifest file or directory.")
	mFlag := flagSet.String("m", "", "Path to the suite manifest file or directory (shorthand).")
	eventsFlag := flagSet.String("events", "", "Path to a recorded lifecycle event stream (JSON lines).")
	forwardFlag := flagSet.String("forward-url", "", "socket.io endpoint to forward lifecycle events to.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	maxFailuresFlag := flagSet.Int("max-failures", 0, "Stop routing after this many failures. 0 is unlimited.")
	waitTimeoutFlag := flagSet.Duration("wait-timeout", 0, "Maximum time to wait for run completion. 0 waits indefinitely.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	manifestPath := ""
	if *manifestFlag != "" {
		manifestPath = *manifestFlag
	} else if *mFlag != "" {
		manifestPath = *mFlag
	} else if flagSet.NArg() > 0 {
		manifestPath = flagSet.Arg(0)
	}
	slog.Debug("Manifest path determined.", "path", manifestPath)

	if manifestPath == "" && *eventsFlag == "" {
		slog.Debug("No inputs provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *waitTimeoutFlag < 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid wait-timeout: must not be negative"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ManifestPath: manifestPath,
		EventsPath:   *eventsFlag,
		ForwardURL:   *forwardFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
		MaxFailures:  *maxFailuresFlag,
		WaitTimeout:  *waitTimeoutFlag,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
