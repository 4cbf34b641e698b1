package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a JSON logrus logger at the given level. An unknown level
// falls back to info.
func New(level string) *logrus.Logger {
	l := logrus.New()

	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)
	l.SetOutput(os.Stdout)

	return l
}
