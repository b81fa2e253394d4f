package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ianroy/makerflowPM/internal/config"
	"github.com/ianroy/makerflowPM/internal/daemon"
	"github.com/ianroy/makerflowPM/internal/database"
	"github.com/ianroy/makerflowPM/internal/logging"
	"github.com/ianroy/makerflowPM/internal/recordservice"
	"github.com/spf13/pflag"
)

func main() {
	listen := pflag.String("listen", "", "Address to serve on (default: record_service.listen from config)")
	dataDir := pflag.String("data-dir", "", "Directory holding makerflow.db (default: data_dir from config)")
	debug := pflag.Bool("debug", false, "Log every request")
	pflag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	// systemd collects stderr
	logging.Setup(os.Stderr, level)

	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	addr := cfg.RecordService.Listen
	if *listen != "" {
		addr = *listen
	}
	dir := cfg.DataDir
	if *dataDir != "" {
		dir = *dataDir
	}
	if dir == "" {
		if dir, err = database.DefaultDataDir(); err != nil {
			slog.Error("failed to resolve data directory", "error", err)
			os.Exit(1)
		}
	}

	db, err := database.InitDB(ctx, dir)
	if err != nil {
		slog.Error("failed to open database", "dir", dir, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	server, err := daemon.NewServer(addr, recordservice.NewLocal(database.NewRepository(db)), slog.Default())
	if err != nil {
		slog.Error("failed to create record server", "error", err)
		os.Exit(1)
	}

	slog.Info("makerflowd starting", "addr", server.Addr(), "data_dir", dir, "pid", os.Getpid())

	// Start the server (blocks until shutdown)
	if err := server.Start(ctx); err != nil {
		slog.Error("record server error", "error", err)
		os.Exit(1)
	}

	slog.Info("makerflowd shutting down gracefully")
}
