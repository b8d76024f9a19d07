package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vodokanal/labsync/internal/client/api"
	"github.com/vodokanal/labsync/internal/client/cli"
	"github.com/vodokanal/labsync/internal/client/labdata"
	"github.com/vodokanal/labsync/internal/client/storage/boltdb"
	"github.com/vodokanal/labsync/internal/client/sync"
	"github.com/vodokanal/labsync/internal/clock"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "labsync-client.db", "Path to local database")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}
	command := args[0]

	ctx := context.Background()

	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	logger := newLogger(*verbose)
	apiClient := api.NewClient(*serverURL)

	// boltStorage реализует record, metadata и session интерфейсы
	labData := labdata.NewService(boltStorage, clock.NewSystem(), logger)
	syncService := sync.NewService(apiClient, boltStorage, boltStorage, boltStorage, logger)

	c := cli.New(apiClient, labData, syncService, boltStorage, boltStorage)

	if err := c.Run(ctx, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger пишет логи в stderr, чтобы не мешать выводу команд.
// Без -v клиент молчит обо всем, кроме ошибок.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelError
	var out io.Writer = os.Stderr
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}

func printVersion() {
	fmt.Printf("labsync Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
