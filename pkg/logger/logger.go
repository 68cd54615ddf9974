package logger

import (
	"fmt"
	"log/slog"
	"os"
)

// Logger — инжектируемый интерфейс логирования. Ошибка в Errorf передаётся
// первым аргументом и попадает в структурированное поле error.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(err error, format string, args ...any)
}

// SlogLogger реализует Logger поверх log/slog.
type SlogLogger struct {
	log *slog.Logger
}

func NewSlogLogger() *SlogLogger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	return &SlogLogger{log: slog.New(handler)}
}

func (s *SlogLogger) Debugf(format string, args ...any) {
	s.log.Debug(fmt.Sprintf(format, args...))
}

func (s *SlogLogger) Infof(format string, args ...any) {
	s.log.Info(fmt.Sprintf(format, args...))
}

func (s *SlogLogger) Warnf(format string, args ...any) {
	s.log.Warn(fmt.Sprintf(format, args...))
}

func (s *SlogLogger) Errorf(err error, format string, args ...any) {
	s.log.Error(fmt.Sprintf(format, args...), slog.Any("error", err))
}

// Discard — логгер, молча отбрасывающий все записи. Используется в тестах.
type Discard struct{}

func (Discard) Debugf(string, ...any)        {}
func (Discard) Infof(string, ...any)         {}
func (Discard) Warnf(string, ...any)         {}
func (Discard) Errorf(error, string, ...any) {}
