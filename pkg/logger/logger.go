// Package logger предоставляет обёртку над log/slog с printf-подобным API.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Logger — интерфейс логгера, используемый всеми слоями приложения.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(err error, format string, args ...any)
	With(args ...any) Logger
}

// SlogLogger реализует Logger поверх slog.Logger.
type SlogLogger struct {
	log *slog.Logger
}

// NewSlogLogger создаёт JSON-логгер, пишущий в stdout.
// Уровень задаётся переменной окружения LOG_LEVEL (debug, info, warn, error).
func NewSlogLogger() *SlogLogger {
	return New(os.Stdout, parseLevel(os.Getenv("LOG_LEVEL")))
}

// New создаёт логгер с произвольным writer и уровнем.
func New(w io.Writer, level slog.Level) *SlogLogger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return &SlogLogger{log: slog.New(handler)}
}

// Discard возвращает логгер, который ничего не пишет. Используется в тестах.
func Discard() *SlogLogger {
	return New(io.Discard, slog.LevelError+1)
}

func (l *SlogLogger) Debugf(format string, args ...any) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Infof(format string, args ...any) {
	l.log.Info(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Warnf(format string, args ...any) {
	l.log.Warn(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Errorf(err error, format string, args ...any) {
	l.log.Error(fmt.Sprintf(format, args...), slog.Any("error", err))
}

// With возвращает логгер с дополнительными атрибутами (пары ключ-значение, как в slog).
func (l *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{log: l.log.With(args...)}
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
