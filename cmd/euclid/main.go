// Command euclid reads one JSON construction command from stdin and writes
// one JSON response to stdout. Logs go to stderr.
//
//	echo '{"command":"add_point","x":0,"y":0,"label":"A"}' | euclid
//
// The exit status is 1 if the command failed; the response still describes
// the failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"honnef.co/go/euclid/internal/command"
	"honnef.co/go/euclid/internal/logging"
)

var version = "dev"

func main() {
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn or error")
	logFormat := flag.String("log-format", "console", "log format: console or json")
	flag.Parse()

	logger, err := logging.New("development", *logLevel, *logFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "euclid: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	d := command.New(
		command.WithLogger(logger),
		command.WithVersion(version),
	)
	if err := d.Handle(ctx, os.Stdin, os.Stdout); err != nil {
		logger.Debug("command failed", zap.Error(err))
		stop()
		_ = logger.Sync()
		os.Exit(1)
	}
}
