package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger returns the logger of the command line, writing to stderr
// at debug level when verbose and info level otherwise.
func (rcc *rootCmdConfig) Logger() *logrus.Logger {
	if rcc.logger == nil {
		rcc.logger = logrus.New()
		rcc.logger.Out = os.Stderr
		rcc.logger.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
		if rcc.verbose {
			rcc.logger.SetLevel(logrus.DebugLevel)
		}
	}
	return rcc.logger
}

func (rcc *rootCmdConfig) Logf(format string, a ...interface{}) {
	rcc.Logger().Debugf(format, a...)
}
