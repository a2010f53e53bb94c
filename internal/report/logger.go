// Package report provides the application logger: a console logger for
// local use and a Rollbar-backed logger for deployed environments.
package report

import (
	"log"
	"os"
)

// Logger is the logging surface the rest of the application depends on.
// Args are free-form context values printed alongside the message.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// ConsoleLogger writes everything to a standard library logger.
type ConsoleLogger struct {
	std   *log.Logger
	debug bool
}

var _ Logger = (*ConsoleLogger)(nil)

// NewConsoleLogger creates a console logger. Debug messages are dropped
// unless debug is set.
func NewConsoleLogger(debug bool) *ConsoleLogger {
	return &ConsoleLogger{
		std:   log.New(os.Stderr, "", log.LstdFlags),
		debug: debug,
	}
}

func (l *ConsoleLogger) print(level, msg string, args []interface{}) {
	l.std.Printf("%s %s", level, msg)
	for _, arg := range args {
		l.std.Printf("  %+v", arg)
	}
}

func (l *ConsoleLogger) Debug(msg string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.print("DEBUG", msg, args)
}

func (l *ConsoleLogger) Info(msg string, args ...interface{}) {
	l.print("INFO", msg, args)
}

func (l *ConsoleLogger) Warn(msg string, args ...interface{}) {
	l.print("WARN", msg, args)
}

func (l *ConsoleLogger) Error(msg string, args ...interface{}) {
	l.print("ERROR", msg, args)
}

func (l *ConsoleLogger) Fatal(msg string, args ...interface{}) {
	l.print("FATAL", msg, args)
	os.Exit(1)
}
