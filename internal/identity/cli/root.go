// Package cli implements identityctl, the administrative command line for
// the identity store. Every command prints JSON on stdout.
package cli

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/dmitrijs2005/gophidentity/internal/identity/config"
	"github.com/dmitrijs2005/gophidentity/internal/identity/store"
	"github.com/dmitrijs2005/gophidentity/internal/logging"
	"github.com/spf13/cobra"
)

// Backend is the opened identity store a command works against.
type Backend interface {
	Accounts() store.AccountCapabilities
	Roles() store.RoleCapabilities
	Migrate(ctx context.Context) (int64, error)
	Close() error
}

// OpenFunc opens a Backend for the merged configuration.
type OpenFunc func(ctx context.Context, cfg *config.Config, logger logging.Logger) (Backend, error)

type cli struct {
	open   OpenFunc
	flags  *config.Flags
	out    io.Writer
	errOut io.Writer
	now    func() time.Time
}

// NewRootCommand assembles identityctl. Logs go to errOut, results to out.
func NewRootCommand(open OpenFunc, out, errOut io.Writer) *cobra.Command {
	c := &cli{open: open, out: out, errOut: errOut, now: time.Now}
	return c.root()
}

func (c *cli) root() *cobra.Command {
	root := &cobra.Command{
		Use:           "identityctl",
		Short:         "Administer accounts, roles, claims and external logins",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	c.flags = config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(c.migrateCommand(), c.roleCommand(), c.accountCommand())
	return root
}

// run adapts fn to cobra: it loads configuration, opens the backend for the
// duration of the command and closes it afterwards.
func (c *cli) run(fn func(ctx context.Context, b Backend, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		cfg, err := config.Load(c.flags)
		if err != nil {
			return err
		}

		logger, err := logging.New(c.errOut, cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		b, err := c.open(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, b.Close())
		}()

		return fn(ctx, b, args)
	}
}

func (c *cli) migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema migrations",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, b Backend, args []string) error {
			v, err := b.Migrate(ctx)
			if err != nil {
				return err
			}
			return c.print(map[string]int64{"version": v})
		}),
	}
}
