package infrastructures

import (
	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

func init() {
	logger = logrus.StandardLogger()
	logger.SetFormatter(&logrus.JSONFormatter{})
}

// ConfigureLogger applies LOG_LEVEL to the global logger
func ConfigureLogger() {
	level, err := logrus.ParseLevel(Config.LOG_LEVEL)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}

// GetLogger returns the global logger instance
func GetLogger() *logrus.Logger {
	return logger
}
