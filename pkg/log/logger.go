package log

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rs/zerolog"

	pipelineerrors "github.com/pipeml/pipeml/pkg/errors"
)

// SetupLogger configures the default slog logger with JSON output and
// stacktrace extraction for wrapped errors.
func SetupLogger(loglevel string) {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     ToLogLevel(loglevel),
	}
	handler := slog.NewJSONHandler(os.Stdout, &ops)
	errFmtHandler := WrapByErrFmtHandler(handler)
	slog.SetDefault(slog.New(errFmtHandler))
}

// ToLogLevel converts a level string to a slog.Level.
func ToLogLevel(level string) slog.Level {
	switch level {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// InstallWarningHook routes library warnings (for example ill-defined metric
// warnings) into the given zerolog logger as structured events. Warning types
// implementing zerolog.LogObjectMarshaler are embedded as objects.
func InstallWarningHook(logger zerolog.Logger) {
	pipelineerrors.SetZerologWarnFunc(func(warning error) {
		ev := logger.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev.Object("warning", obj).Msg(warning.Error())
			return
		}
		ev.Err(warning).Msg("pipeline warning")
	})
}
