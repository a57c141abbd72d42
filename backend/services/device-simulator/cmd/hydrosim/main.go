package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hydrohero/backend/libs/logging"
	"hydrohero/backend/services/device-simulator/internal/cli"
	"hydrohero/backend/services/device-simulator/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.NewLogger(logging.Options{Service: "hydrosim", Format: "console"})
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := cli.NewRootCommand(cfg, logger).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
