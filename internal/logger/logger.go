package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

func init() {
	log = logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
	log.SetOutput(os.Stdout)
}

// Get returns the shared application logger.
func Get() *logrus.Logger {
	return log
}

// LogError records an operation failure with its feature and function context.
func LogError(feature, funcName string, err error, fields logrus.Fields) {
	entry := log.WithFields(logrus.Fields{
		"feature":  feature,
		"funcName": funcName,
	})
	if fields != nil {
		entry = entry.WithFields(fields)
	}
	entry.Error(err.Error())
}
