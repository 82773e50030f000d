package log

import (
	"fmt"
	"io"
	"os"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/op/go-logging"
)

type Level logging.Level

// The levels that can be passed to the SetLevel function.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

// The logger format
var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

// The internal leveled logger backend
var leveledBackend logging.LeveledBackend

// The logger interface
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// Create a new named logger.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// Override the backend output sink.
func SetSink(sink io.Writer) {
	backend := logging.NewLogBackend(sink, "", 0)
	backendWithFormatter := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(backendWithFormatter)
	leveledBackend.SetLevel(logging.NOTICE, "")
	logging.SetBackend(leveledBackend)
}

// Set logger verbosity.
func SetLevel(level Level) {
	leveledBackend.SetLevel(toLoggingLevel(level), "")
}

// ParseLevel converts a level name such as "debug" or "warning" into a Level.
func ParseLevel(name string) (Level, error) {
	level, err := logging.LogLevel(name)
	if err != nil {
		return Notice, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	switch level {
	case logging.DEBUG:
		return Debug, nil
	case logging.INFO:
		return Info, nil
	case logging.NOTICE:
		return Notice, nil
	case logging.WARNING:
		return Warning, nil
	default:
		return Error, nil
	}
}

func toLoggingLevel(level Level) logging.Level {
	switch level {
	case Debug:
		return logging.DEBUG
	case Info:
		return logging.INFO
	case Warning:
		return logging.WARNING
	case Error:
		return logging.ERROR
	default:
		return logging.NOTICE
	}
}

// printer adapts a leveled logger to the Printf-only core.Logger used by
// library packages; messages are logged at info level.
type printer struct {
	logger Logger
}

// Printf logs a formatted message at info level.
func (p printer) Printf(format string, args ...interface{}) {
	p.logger.Infof(format, args...)
}

// Printer wraps a leveled logger as a core.Logger.
func Printer(logger Logger) core.Logger {
	return printer{logger: logger}
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Notice)
}
