package diagnostics

import "github.com/sirupsen/logrus"

// LogSink adapts Report calls into structured logrus entries, carrying
// "kind", "severity" and "pos" fields — developer-facing trace output,
// distinct from the diagnostics a CollectingSink hands back to a caller for
// user-facing reporting.
type LogSink struct {
	Logger *logrus.Logger
}

// NewLogSink wraps logger; passing nil uses logrus.StandardLogger().
func NewLogSink(logger *logrus.Logger) *LogSink {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogSink{Logger: logger}
}

func (l *LogSink) Report(d Diagnostic) {
	entry := l.Logger.WithFields(logrus.Fields{
		"kind":     d.Kind.String(),
		"severity": d.Severity.String(),
		"pos":      d.Position.String(),
	})
	if d.Severity == SeverityError {
		entry.Error(d.Message)
	} else {
		entry.Warn(d.Message)
	}
}
