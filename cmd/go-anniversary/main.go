package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/tartampluch/go-anniversary/internal/app"
	"github.com/tartampluch/go-anniversary/internal/config"
)

// main delegates to runMain so deferred calls (closing the log file) run before os.Exit.
func main() {
	os.Exit(runMain(os.Args[1:]))
}

// runMain parses the command line, prepares logging and settings, and runs the app.
// It returns the process exit code.
func runMain(args []string) int {
	opts, err := app.ParseOptions(args, os.Stderr)
	switch {
	case errors.Is(err, flag.ErrHelp):
		return config.ExitCodeSuccess
	case err != nil:
		fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeError
	case opts.Version:
		printVersion(os.Stdout)
		return config.ExitCodeSuccess
	}

	closeLog := setupLogging(opts.Debug)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := slog.With(config.LogKeyComponent, config.CompMain)
	log.Info(config.MsgAppStarting, startupAttrs()...)

	if err := run(ctx, opts); err != nil {
		log.Error(config.ErrAppFailed, config.LogKeyError, err)
		return config.ExitCodeError
	}

	if ctx.Err() != nil {
		log.Info(config.MsgCtxCancel)
	}
	log.Info(config.MsgAppStop)
	return config.ExitCodeSuccess
}

func run(ctx context.Context, opts *app.Options) error {
	settings, err := config.LoadSettings(opts.ConfigPath)
	if err != nil {
		return err
	}
	return app.New(opts, settings).Run(ctx)
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, config.MsgVersionOutput, config.AppName, config.Version, runtime.GOOS, runtime.GOARCH)
}

// startupAttrs describes the build and host, for the first log line of a run.
func startupAttrs() []any {
	return []any{
		slog.Group(config.LogKeyBuild,
			config.LogKeyApp, config.AppName,
			config.LogKeyVersion, config.Version,
			config.LogKeyCommit, config.Commit,
			config.LogKeyBuilt, config.Date,
			config.LogKeyGoVer, runtime.Version(),
		),
		slog.Group(config.LogKeyEnv,
			config.LogKeyOS, runtime.GOOS,
			config.LogKeyArch, runtime.GOARCH,
			config.LogKeyPID, os.Getpid(),
		),
	}
}
