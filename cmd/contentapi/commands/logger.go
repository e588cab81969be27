package commands

import (
	"io"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/fivetwenty-io/contentapi/pkg/contentapi"
)

// charmLogger adapts a charmbracelet logger to contentapi.Logger.
type charmLogger struct {
	logger *log.Logger
}

var _ contentapi.Logger = (*charmLogger)(nil)

// newLogger writes to w. Debug messages are only shown when verbose is set.
func newLogger(w io.Writer, verbose bool) *charmLogger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}

	return &charmLogger{
		logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
			Prefix:          "contentapi",
		}),
	}
}

func (l *charmLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, keyvals(fields)...)
}

func (l *charmLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, keyvals(fields)...)
}

func (l *charmLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, keyvals(fields)...)
}

func (l *charmLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, keyvals(fields)...)
}

// keyvals flattens fields into sorted key/value pairs so output is stable.
func keyvals(fields map[string]interface{}) []interface{} {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	pairs := make([]interface{}, 0, len(keys)*2)
	for _, key := range keys {
		pairs = append(pairs, key, fields[key])
	}

	return pairs
}
