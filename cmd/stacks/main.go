package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"stacks/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override stacks config path (optional)")
	serverURL := flag.String("server", "", "library server URL (optional, overrides config)")
	sessionPath := flag.String("session", "", "override session file path (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:  *configPath,
		SessionPath: *sessionPath,
		ServerURL:   *serverURL,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "stacks: %v\n", err)
		return 1
	}
	return 0
}
