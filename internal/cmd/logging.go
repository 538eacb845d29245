package cmd

import (
	"strings"

	"github.com/decred/slog"
	"github.com/sirupsen/logrus"

	"github.com/reddcoin-project/go-rddcore/address"
	"github.com/reddcoin-project/go-rddcore/descriptor"
	"github.com/reddcoin-project/go-rddcore/network"
	"github.com/reddcoin-project/go-rddcore/pubkey"
)

// logrusWriter forwards the lines of an slog backend to logrus.
type logrusWriter struct{}

func (logrusWriter) Write(p []byte) (int, error) {
	logrus.Info(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// initLogging sets the logrus level from the -v and -d flags and routes the
// library loggers through logrus.
func initLogging(verbose, debug bool) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	logrus.SetLevel(logrus.WarnLevel)
	level := slog.LevelOff
	if verbose {
		logrus.SetLevel(logrus.InfoLevel)
		level = slog.LevelInfo
	}
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
		level = slog.LevelTrace
	}

	backend := slog.NewBackend(logrusWriter{})
	loggers := map[string]func(slog.Logger){
		"NTWK": network.UseLogger,
		"ADDR": address.UseLogger,
		"PUBK": pubkey.UseLogger,
		"DESC": descriptor.UseLogger,
	}
	for subsystem, use := range loggers {
		logger := backend.Logger(subsystem)
		logger.SetLevel(level)
		use(logger)
	}
}
