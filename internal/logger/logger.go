package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var defaultLogger = &logrus.Logger{
	Out:       os.Stdout,
	Formatter: new(logrus.JSONFormatter),
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.InfoLevel,
}

// SetLevel changes logging level, unknown levels are ignored.
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return
	}

	defaultLogger.SetLevel(lvl)
}

// Debug logs message at Debug level.
func Debug(msg string) {
	defaultLogger.Debugln(msg)
}

// Info logs message at Info level.
func Info(msg string) {
	defaultLogger.Infoln(msg)
}

// InfoFields logs message with structured fields at Info level.
func InfoFields(msg string, fields map[string]interface{}) {
	defaultLogger.WithFields(logrus.Fields(fields)).Infoln(msg)
}

// Warn logs message at Warn level.
func Warn(msg string) {
	defaultLogger.Warnln(msg)
}

// Error logs errors at Error level.
func Error(err error) {
	defaultLogger.Errorln(err)
}

// Fatal logs errors at Fatal level.
func Fatal(err error) {
	defaultLogger.Fatalln(err)
}
