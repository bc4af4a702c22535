package cli

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vk/workshopnet/internal/app"
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

// Parse processes command-line arguments. It returns a populated app
// config, a boolean indicating if the program should exit cleanly, or an
// ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("workshopnet", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
Workshopnet - a cooperative runtime for elf workshop programs.

Usage:
  workshopnet [options] [MANIFEST_PATH]

Arguments:
  MANIFEST_PATH
    Path to a manifest file (.hcl, .yaml, .yml) or a directory of them.

Options:
`)
		flagSet.PrintDefaults()
	}

	inputFlag := flagSet.String("input", "", "Path to the manifest file or directory.")
	iFlag := flagSet.String("i", "", "Path to the manifest file or directory (shorthand).")
	traceFlag := flagSet.Bool("trace", false, "Emit a per-step trace record for every participant at debug level.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	bufferFlag := flagSet.String("buffer", "unbounded", "Pipe buffering policy: 'unbounded' or a positive queue capacity.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := ""
	if *inputFlag != "" {
		path = *inputFlag
	} else if *iFlag != "" {
		path = *iFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	if path == "" {
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

	buffer := 0
	if *bufferFlag != "unbounded" {
		n, err := strconv.Atoi(*bufferFlag)
		if err != nil || n <= 0 {
			return nil, false, &ExitError{Code: 2, Message: "invalid buffer: must be 'unbounded' or a positive integer"}
		}
		buffer = n
	}

	config, err := app.NewConfig(app.Config{
		InputPath: path,
		Trace:     *traceFlag,
		LogFormat: logFormat,
		LogLevel:  logLevel,
		Buffer:    buffer,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
