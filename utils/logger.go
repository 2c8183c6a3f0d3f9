package utils

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	loggersMu sync.Mutex
	loggers   = map[string]*log.Logger{}
)

// SetLogLevel sets the level on every logger; unknown names fall back to info.
func SetLogLevel(level string) {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)

	loggersMu.Lock()
	defer loggersMu.Unlock()
	for _, l := range loggers {
		l.SetLevel(lvl)
	}
}

// NewLogger returns the prefixed charm logger for prefix, creating it on
// first use. It follows SetLogLevel.
func NewLogger(prefix string) *log.Logger {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	if l, ok := loggers[prefix]; ok {
		return l
	}
	l := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
	loggers[prefix] = l
	return l
}

// GormWriter routes gorm's logger output through a charm logger at warn level.
type GormWriter struct {
	Log *log.Logger
}

func (w GormWriter) Printf(format string, args ...any) {
	w.Log.Warnf(strings.TrimSpace(format), args...)
}
