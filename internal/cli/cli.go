package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/prodgraph/internal/app"
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

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("prodgraph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
prodgraph - Inspect a factory production graph against a recipe preset.

Usage:
  prodgraph -preset PRESET_PATH [options] SAVE_FILE

Arguments:
  SAVE_FILE
    Path to an HCL save file holding the graph's nodes and links.

Options:
`)
		flagSet.PrintDefaults()
	}

	presetFlag := flagSet.String("preset", "", "Path to the preset file or directory.")
	pFlag := flagSet.String("p", "", "Path to the preset file or directory (shorthand).")
	formatFlag := flagSet.String("preset-format", "", "Preset format. Options: 'hcl' or 'yaml'. Detected from the path when empty.")
	outFlag := flagSet.String("out", "", "Write the report to this file instead of stdout.")
	writeFlag := flagSet.String("write", "", "Re-save the loaded graph in the current format to this file.")
	unitFlag := flagSet.String("rate-unit", "", "Report rates per 'sec', 'min' or 'hour'. Defaults to the save file's unit.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	presetPath := *presetFlag
	if presetPath == "" {
		presetPath = *pFlag
	}
	savePath := flagSet.Arg(0)
	slog.Debug("Input paths determined.", "preset", presetPath, "save", savePath)

	if savePath == "" {
		slog.Debug("No save file provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if presetPath == "" {
		return nil, false, &ExitError{Code: 2, Message: "missing -preset: a preset file or directory is required"}
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
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		PresetPath:   presetPath,
		PresetFormat: strings.ToLower(*formatFlag),
		SavePath:     savePath,
		OutPath:      *outFlag,
		WritePath:    *writeFlag,
		RateUnit:     strings.ToLower(*unitFlag),
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
