package datamodel

import (
	"io"
	"os"

	"github.com/robert-malhotra/go-datamodel/internal/logging"
)

// Log levels for SetLogLevel.
const (
	LogLevelError = int(logging.LevelError)
	LogLevelWarn  = int(logging.LevelWarn)
	LogLevelInfo  = int(logging.LevelInfo)
)

// log is the diagnostics channel for recoverable problems: attribute
// values dropped on import or export, entries of unwritable types, and so
// on. The default verbosity reports warnings and errors.
var log = logging.New(os.Stderr)

// SetLogLevel sets the verbosity of the diagnostics channel.
func SetLogLevel(level int) {
	log.SetLevel(logging.Level(level))
}

// SetLogOutput redirects diagnostic output to w.
func SetLogOutput(w io.Writer) {
	log.SetOutput(w)
}
