package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophidentity/internal/identity"
	"github.com/dmitrijs2005/gophidentity/internal/identity/cli"
	"github.com/dmitrijs2005/gophidentity/internal/identity/config"
	"github.com/dmitrijs2005/gophidentity/internal/logging"
)

func open(ctx context.Context, cfg *config.Config, logger logging.Logger) (cli.Backend, error) {
	app, err := identity.Open(ctx, cfg, logger, nil)
	if err != nil {
		return nil, err
	}
	return app, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(open, os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
