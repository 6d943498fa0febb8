package core

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a logger intended to be used for general application logs.
func NewLogger(cfg *Config) (*logrus.Logger, error) {
	var w io.Writer = os.Stdout
	if cfg.LogFilePath != "" {
		f, err := os.OpenFile(cfg.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, &SetupError{Op: "opening log file", Err: err}
		}
		w = f
	}

	logLvl, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, &SetupError{Op: "parsing log level", Err: err}
	}

	return &logrus.Logger{
		Out: w,
		Formatter: &logrus.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
			DisableSorting:  true,
		},
		Hooks: make(logrus.LevelHooks),
		Level: logLvl,
	}, nil
}
