package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/dosetrack/internal/cli"
	"github.com/alexanderramin/dosetrack/internal/engine"
	"github.com/alexanderramin/dosetrack/internal/gateway"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine data directory: env var or default ~/.dosetrack
	dataDir := os.Getenv("DOSETRACK_DATA")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".dosetrack")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	gw, closeGw, err := openGateway(dataDir)
	if err != nil {
		return err
	}
	defer closeGw()

	opts := []engine.Option{}
	if os.Getenv("DOSETRACK_DEBUG") != "" {
		opts = append(opts, engine.WithObserver(engine.NewLogObserver(os.Stderr)))
	}

	eng := engine.New(gw, opts...)
	eng.Load(context.Background())

	app := &cli.App{
		Engine: eng,
		Interactive: isatty.IsTerminal(os.Stdin.Fd()) ||
			isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}

	return cli.NewRootCmd(app).Execute()
}

// openGateway picks the storage backend. The default is pretty-printed
// JSON documents; DOSETRACK_BACKEND=sqlite switches to a single SQLite
// file instead.
func openGateway(dataDir string) (gateway.Gateway, func(), error) {
	switch backend := os.Getenv("DOSETRACK_BACKEND"); backend {
	case "", "json":
		gw, err := gateway.NewFileGateway(dataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening json backend: %w", err)
		}
		return gw, func() {}, nil
	case "sqlite":
		gw, err := gateway.OpenSQLiteGateway(filepath.Join(dataDir, "dosetrack.db"))
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite backend: %w", err)
		}
		return gw, func() { gw.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q (want json or sqlite)", backend)
	}
}
