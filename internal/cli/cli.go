package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/eqgen/internal/app"
)

// Exit codes returned through ExitError.
const (
	ExitRuntime     = 1
	ExitUsage       = 2
	ExitModelErrors = 3
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
	flagSet := flag.NewFlagSet("eqgen", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
eqgen - Generates C or Python code from equation-based models.

Usage:
  eqgen [options] [MODEL_PATH]

Arguments:
  MODEL_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	var externals, profilePaths []string
	modelFlag := flagSet.String("model", "", "Path to the model file or directory.")
	mFlag := flagSet.String("m", "", "Path to the model file or directory (shorthand).")
	profileFlag := flagSet.String("profile", "c", "Name of the code generation profile. Built-in: 'c', 'python'.")
	flagSet.Func("profile-file", "Path to an .hcl file or directory with extra profiles. May be repeated.", func(s string) error {
		profilePaths = append(profilePaths, s)
		return nil
	})
	flagSet.Func("external", "Variable supplied by the caller, as component.variable. May be repeated.", func(s string) error {
		externals = append(externals, s)
		return nil
	})
	outputFlag := flagSet.String("output", ".", "Directory the generated files are written to.")
	oFlag := flagSet.String("o", "", "Directory the generated files are written to (shorthand).")
	nameFlag := flagSet.String("name", "", "Base name of the generated files. Defaults to the model name.")
	reportFlag := flagSet.String("report", "", "File name of the JSON analysis report. No report if empty.")
	compressFlag := flagSet.Bool("compress", false, "Compress every written file with zstd.")
	noColorFlag := flagSet.Bool("no-color", false, "Print issues without colour.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *modelFlag != "" {
		path = *modelFlag
	} else if *mFlag != "" {
		path = *mFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Model path determined.", "path", path)

	if path == "" {
		slog.Debug("No model path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	outputDir := *outputFlag
	if *oFlag != "" {
		outputDir = *oFlag
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ModelPath:    path,
		ProfilePaths: profilePaths,
		Profile:      strings.ToLower(*profileFlag),
		Externals:    externals,
		OutputDir:    outputDir,
		FileName:     *nameFlag,
		ReportFile:   *reportFlag,
		Compress:     *compressFlag,
		NoColor:      *noColorFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
