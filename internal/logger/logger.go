// Package logger wraps go-logging with a stderr backend and an optional file backend.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/op/go-logging"
)

const (
	module     = "inventory"
	timeFormat = "2006/01/02 15:04:05"
)

var (
	mu      sync.Mutex
	logger  = logging.MustGetLogger(module)
	logFile *os.File
)

func init() {
	Init(logging.WARNING, os.Stderr, "")
}

// ParseLevel maps a config level name to a go-logging level. Unknown names fall back to WARNING.
func ParseLevel(name string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "warn":
		return logging.WARNING
	case "":
		return logging.WARNING
	}
	lvl, err := logging.LogLevel(strings.ToUpper(name))
	if err != nil {
		return logging.WARNING
	}
	return lvl
}

// Init replaces the logging backends. The console backend writes to w at the given
// level; when filePath is set, a second backend appends everything down to DEBUG there.
func Init(level logging.Level, w io.Writer, filePath string) error {
	mu.Lock()
	defer mu.Unlock()

	backends := make([]logging.Backend, 0, 2)

	console := logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), newFormatter(false))
	leveled := logging.AddModuleLevel(console)
	leveled.SetLevel(level, module)
	backends = append(backends, leveled)

	closeFile()
	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			logger.SetBackend(logging.MultiLogger(backends...))
			return fmt.Errorf("open log file %s: %w", filePath, err)
		}
		logFile = f
		fileBackend := logging.NewBackendFormatter(logging.NewLogBackend(f, "", 0), newFormatter(true))
		fileLeveled := logging.AddModuleLevel(fileBackend)
		fileLeveled.SetLevel(logging.DEBUG, module)
		backends = append(backends, fileLeveled)
	}

	logger.SetBackend(logging.MultiLogger(backends...))
	return nil
}

func newFormatter(withTime bool) logging.Formatter {
	format := `%{level} - %{message}`
	if withTime {
		format = `%{time:` + timeFormat + `} %{level} - %{message}`
	}
	return logging.MustStringFormatter(format)
}

func closeFile() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// Close releases the log file, if any.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Noticef(format string, args ...any) {
	logger.Noticef(format, args...)
}

func Warningf(format string, args ...any) {
	logger.Warningf(format, args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}
