package jj

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	logger     *log.Logger
	loggerOnce sync.Once
	logEnabled bool
	discard    = log.New(io.Discard)
)

// ParseLevel maps a level name to a log level, defaulting to info.
func ParseLevel(s string) log.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// InitLogger opens logPath for appending and logs every jj invocation to it.
// An empty path leaves logging disabled. Only the first call has any effect.
func InitLogger(logPath string, level log.Level) error {
	var initErr error
	loggerOnce.Do(func() {
		if logPath == "" {
			return
		}

		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			initErr = err
			return
		}

		logger = log.NewWithOptions(f, log.Options{
			Level:           level,
			Prefix:          "jjdag",
			ReportTimestamp: true,
		})
		logEnabled = true
	})
	return initErr
}

// SetLogger replaces the package logger. A nil logger disables logging.
func SetLogger(l *log.Logger) {
	logger = l
	logEnabled = l != nil
}

// Logger returns the package logger, or one that discards everything when
// logging is disabled.
func Logger() *log.Logger {
	if !logEnabled || logger == nil {
		return discard
	}
	return logger
}

// logOp starts timing op. The returned function logs completion or failure.
//
//	done := logOp("run", "cmd", desc)
//	defer done(err)
func logOp(op string, keyvals ...any) func(error) {
	finish := logOpWithResult(op, keyvals...)
	return func(err error) { finish(err) }
}

// logOpWithResult is like logOp but accepts result fields at completion.
func logOpWithResult(op string, keyvals ...any) func(error, ...any) {
	if !logEnabled || logger == nil {
		return func(error, ...any) {}
	}

	start := time.Now()
	return func(err error, resultKeyvals ...any) {
		args := make([]any, 0, len(keyvals)+len(resultKeyvals)+6)
		args = append(args, "op", op, "duration", time.Since(start).String())
		args = append(args, keyvals...)
		args = append(args, resultKeyvals...)

		if err != nil {
			args = append(args, "error", truncate(err.Error(), 200))
			logger.Error("operation failed", args...)
			return
		}
		logger.Info("operation complete", args...)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
