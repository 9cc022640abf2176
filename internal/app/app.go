package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"stacks/internal/config"
	"stacks/internal/library"
	"stacks/internal/logger"
	"stacks/internal/session"
	"stacks/internal/state"
	"stacks/internal/ui"
)

// Options configure the stacks application.
type Options struct {
	ConfigPath  string
	SessionPath string // empty uses default ~/.config/stacks/session.toml
	ServerURL   string // overrides the configured server URL when set
}

// Run boots the stacks TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.ServerURL != "" {
		cfg.ServerURL = opts.ServerURL
	}

	if err := logger.Setup(cfg.LogFile); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	sess := session.Load(opts.SessionPath)

	client, err := library.NewClient(cfg.ServerURL)
	if err != nil {
		return fmt.Errorf("init library client: %w", err)
	}

	store := &state.Store{}

	logrus.WithFields(logrus.Fields{
		"server":        cfg.ServerURL,
		"authenticated": sess.Authenticated(),
	}).Info("starting stacks")

	uiOpts := ui.Options{
		Context:     ctx,
		Client:      client,
		Store:       store,
		Session:     sess,
		SessionPath: opts.SessionPath,
		ServerURL:   cfg.ServerURL,
	}
	return ui.Run(uiOpts)
}
