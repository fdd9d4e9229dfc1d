package logger

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

type Fields map[string]interface{}

// Logger is the structured logging surface handed to every component.
type Logger interface {
	Debug(message string, fields Fields)
	Info(message string, fields Fields)
	Warn(message string, fields Fields)
	Error(message string, err error, fields Fields)
	WithFields(fields Fields) Logger
}

type Config struct {
	Level       string
	Format      string
	ServiceName string
}

type structuredLogger struct {
	entry *logrus.Entry
}

func New(config Config) Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if config.Format == "text" {
		l.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: time.RFC3339Nano,
			FullTimestamp:   true,
		})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	}
	l.SetOutput(os.Stdout)

	return &structuredLogger{
		entry: l.WithField("service", config.ServiceName),
	}
}

func (s *structuredLogger) Debug(message string, fields Fields) {
	s.entry.WithFields(logrus.Fields(fields)).Debug(message)
}

func (s *structuredLogger) Info(message string, fields Fields) {
	s.entry.WithFields(logrus.Fields(fields)).Info(message)
}

func (s *structuredLogger) Warn(message string, fields Fields) {
	s.entry.WithFields(logrus.Fields(fields)).Warn(message)
}

func (s *structuredLogger) Error(message string, err error, fields Fields) {
	entry := s.entry.WithFields(logrus.Fields(fields))
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Error(message)
}

func (s *structuredLogger) WithFields(fields Fields) Logger {
	return &structuredLogger{entry: s.entry.WithFields(logrus.Fields(fields))}
}
