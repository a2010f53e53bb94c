package report

import (
	"log"
	"os"

	"github.com/rollbar/rollbar-go"
)

// RollbarLogger reports Warn and above to Rollbar while also writing
// everything to a standard library logger.
type RollbarLogger struct {
	std   *log.Logger
	debug bool
}

var _ Logger = (*RollbarLogger)(nil)

// NewRollbarLogger configures the global Rollbar client and returns the
// logger.
func NewRollbarLogger(token, env, version string, debug bool) *RollbarLogger {
	rollbar.SetToken(token)
	rollbar.SetEnvironment(env)
	rollbar.SetCodeVersion(version)
	return &RollbarLogger{
		std:   log.New(os.Stderr, "", log.LstdFlags),
		debug: debug,
	}
}

// Enable turns Rollbar reporting on or off without swapping loggers.
func (l *RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

func (l *RollbarLogger) print(level, msg string, args []interface{}) {
	l.std.Printf("%s %s", level, msg)
	for _, arg := range args {
		l.std.Printf("  %+v", arg)
	}
}

func (l *RollbarLogger) Debug(msg string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.print("DEBUG", msg, args)
}

func (l *RollbarLogger) Info(msg string, args ...interface{}) {
	l.print("INFO", msg, args)
}

func (l *RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(append([]interface{}{msg}, args...)...)
	l.print("WARN", msg, args)
}

func (l *RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(append([]interface{}{msg}, args...)...)
	l.print("ERROR", msg, args)
}

func (l *RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(append([]interface{}{msg}, args...)...)
	rollbar.Wait()
	l.print("FATAL", msg, args)
	os.Exit(1)
}
