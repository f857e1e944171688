package dialogue

import "log"

// Logger receives diagnostics for failures absorbed at the Call boundary.
type Logger interface {
	Errorf(format string, args ...any)
	Warnf(format string, args ...any)
}

type stdLogger struct {
	l *log.Logger
}

// NewLogger adapts a standard library logger. A nil logger writes through
// log.Default.
func NewLogger(l *log.Logger) Logger {
	if l == nil {
		l = log.Default()
	}
	return stdLogger{l: l}
}

func (s stdLogger) Errorf(format string, args ...any) {
	s.l.Printf("ERROR "+format, args...)
}

func (s stdLogger) Warnf(format string, args ...any) {
	s.l.Printf("WARN "+format, args...)
}
