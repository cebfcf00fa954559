// Command jsonclass prints Go struct declarations inferred from a sample JSON
// file.
//
//	jsonclass sample.json > model.go
//
// The command takes no flags. Optional generation and logging settings come
// from the environment (JSONCLASS_* and LOG_*, see internal/config); with
// none set the output is a "package model" file rooted at "Root".
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/davecgh/go-spew/spew"

	"github.com/usestring/jsonclass/internal/config"
	"github.com/usestring/jsonclass/internal/logging"
	"github.com/usestring/jsonclass/pkg/jsonclass"
)

const usage = "usage: jsonclass <file.json>"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, os.Args[1:], config.Load(), os.Stdout, os.Stderr))
}

// run returns the process exit code: 0 on success, 1 on failure, 2 on bad
// usage.
func run(ctx context.Context, args []string, cfg *config.Config, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, usage)
		return 2
	}

	lc := cfg.Logging()
	lc.Output = stderr
	logger, cleanup, err := logging.New(lc)
	if err != nil {
		fmt.Fprintf(stderr, "jsonclass: setting up logging: %v\n", err)
		return 1
	}
	defer cleanup()
	slog.SetDefault(logger)

	path := args[0]
	sample, err := os.ReadFile(path)
	if err != nil {
		return fail(logger, stderr, "reading sample", path, err)
	}

	res, err := jsonclass.Generate(ctx, sample, jsonclass.Options{
		RootName: cfg.RootName,
		Package:  cfg.Package,
		Banner:   cfg.Banner,
		MaxDepth: cfg.MaxDepth,
	})
	if err != nil {
		return fail(logger, stderr, "generating classes", path, err)
	}

	if _, err := stdout.Write(res.Source); err != nil {
		return fail(logger, stderr, "writing output", path, err)
	}
	logger.Debug("generated classes", "file", path, "classes", len(res.Classes), "diagnostics", len(res.Diagnostics))
	return 0
}

func fail(logger *slog.Logger, stderr io.Writer, msg, path string, err error) int {
	logger.Error(msg, "file", path, "error", err)
	spew.Fdump(stderr, err)
	return 1
}
