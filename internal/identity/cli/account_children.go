package cli

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/gophidentity/internal/identity/models"
	"github.com/spf13/cobra"
)

func (c *cli) claimCommand(ref *accountRef) *cobra.Command {
	cmd := &cobra.Command{Use: "claim", Short: "Manage account claims"}

	add := &cobra.Command{
		Use:   "add ACCOUNT TYPE [VALUE]",
		Short: "Add a claim",
		Args:  cobra.RangeArgs(2, 3),
		RunE: c.run(func(ctx context.Context, b Backend, args []string) error {
			a, err := ref.find(ctx, b.Accounts(), args[0])
			if err != nil {
				return err
			}
			if err := b.Accounts().AddClaim(ctx, a, claimFromArgs(args[1:])); err != nil {
				return err
			}
			return c.printClaims(ctx, b, a)
		}),
	}

	remove := &cobra.Command{
		Use:   "remove ACCOUNT TYPE [VALUE]",
		Short: "Remove claims matching type and value",
		Args:  cobra.RangeArgs(2, 3),
		RunE: c.run(func(ctx context.Context, b Backend, args []string) error {
			a, err := ref.find(ctx, b.Accounts(), args[0])
			if err != nil {
				return err
			}
			if err := b.Accounts().RemoveClaim(ctx, a, claimFromArgs(args[1:])); err != nil {
				return err
			}
			return c.printClaims(ctx, b, a)
		}),
	}

	list := &cobra.Command{
		Use:   "list ACCOUNT",
		Short: "List claims",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, b Backend, args []string) error {
			a, err := ref.find(ctx, b.Accounts(), args[0])
			if err != nil {
				return err
			}
			return c.printClaims(ctx, b, a)
		}),
	}

	cmd.AddCommand(add, remove, list)
	return cmd
}

func claimFromArgs(args []string) models.Claim {
	c := models.Claim{Type: args[0]}
	if len(args) > 1 {
		c.Value = args[1]
	}
	return c
}

func (c *cli) printClaims(ctx context.Context, b Backend, a *models.Account) error {
	claims, err := b.Accounts().GetClaims(ctx, a)
	if err != nil {
		return err
	}
	return c.print(newClaimViews(claims))
}

func (c *cli) loginCommand(ref *accountRef) *cobra.Command {
	cmd := &cobra.Command{Use: "login", Short: "Manage external logins"}

	add := &cobra.Command{
		Use:   "add ACCOUNT PROVIDER KEY",
		Short: "Bind an external login to an account",
		Args:  cobra.ExactArgs(3),
		RunE: c.run(func(ctx context.Context, b Backend, args []string) error {
			a, err := ref.find(ctx, b.Accounts(), args[0])
			if err != nil {
				return err
			}
			login := models.ExternalLogin{Provider: args[1], ProviderKey: args[2]}
			if err := b.Accounts().AddLogin(ctx, a, login); err != nil {
				return err
			}
			return c.printLogins(ctx, b, a)
		}),
	}

	remove := &cobra.Command{
		Use:   "remove ACCOUNT PROVIDER KEY",
		Short: "Unbind an external login",
		Args:  cobra.ExactArgs(3),
		RunE: c.run(func(ctx context.Context, b Backend, args []string) error {
			a, err := ref.find(ctx, b.Accounts(), args[0])
			if err != nil {
				return err
			}
			login := models.ExternalLogin{Provider: args[1], ProviderKey: args[2]}
			if err := b.Accounts().RemoveLogin(ctx, a, login); err != nil {
				return err
			}
			return c.printLogins(ctx, b, a)
		}),
	}

	find := &cobra.Command{
		Use:   "find PROVIDER KEY",
		Short: "Show the account owning an external login",
		Args:  cobra.ExactArgs(2),
		RunE: c.run(func(ctx context.Context, b Backend, args []string) error {
			a, err := b.Accounts().FindByLogin(ctx, models.ExternalLogin{Provider: args[0], ProviderKey: args[1]})
			if err != nil {
				return err
			}
			if a == nil {
				return c.print(nil)
			}
			return c.print(newAccountView(a, c.now()))
		}),
	}

	cmd.AddCommand(add, remove, find)
	return cmd
}

func (c *cli) printLogins(ctx context.Context, b Backend, a *models.Account) error {
	logins, err := b.Accounts().GetLogins(ctx, a)
	if err != nil {
		return err
	}
	return c.print(newLoginViews(logins))
}

func (c *cli) membershipCommand(ref *accountRef) *cobra.Command {
	cmd := &cobra.Command{Use: "role", Short: "Manage the roles an account holds"}

	add := &cobra.Command{
		Use:   "add ACCOUNT ROLE",
		Short: "Add the account to a role",
		Args:  cobra.ExactArgs(2),
		RunE: c.run(func(ctx context.Context, b Backend, args []string) error {
			a, err := ref.find(ctx, b.Accounts(), args[0])
			if err != nil {
				return err
			}
			if err := b.Accounts().AddToRole(ctx, a, args[1]); err != nil {
				return err
			}
			return c.printRoles(ctx, b, a)
		}),
	}

	remove := &cobra.Command{
		Use:   "remove ACCOUNT ROLE",
		Short: "Remove the account from a role",
		Args:  cobra.ExactArgs(2),
		RunE: c.run(func(ctx context.Context, b Backend, args []string) error {
			a, err := ref.find(ctx, b.Accounts(), args[0])
			if err != nil {
				return err
			}
			if err := b.Accounts().RemoveFromRole(ctx, a, args[1]); err != nil {
				return err
			}
			return c.printRoles(ctx, b, a)
		}),
	}

	list := &cobra.Command{
		Use:   "list ACCOUNT",
		Short: "List the account's roles",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, b Backend, args []string) error {
			a, err := ref.find(ctx, b.Accounts(), args[0])
			if err != nil {
				return err
			}
			return c.printRoles(ctx, b, a)
		}),
	}

	cmd.AddCommand(add, remove, list)
	return cmd
}

func (c *cli) printRoles(ctx context.Context, b Backend, a *models.Account) error {
	names, err := b.Accounts().GetRoles(ctx, a)
	if err != nil {
		return err
	}
	return c.print(names)
}

func (c *cli) lockoutCommand(ref *accountRef) *cobra.Command {
	cmd := &cobra.Command{Use: "lockout", Short: "Inspect and change lockout state"}

	reset := &cobra.Command{
		Use:   "reset ACCOUNT",
		Short: "Clear the lockout and the failed access counter",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, b Backend, args []string) error {
			accounts := b.Accounts()
			a, err := ref.find(ctx, accounts, args[0])
			if err != nil {
				return err
			}
			if err := accounts.SetLockoutEnd(a, nil); err != nil {
				return err
			}
			if err := accounts.ResetAccessFailedCount(a); err != nil {
				return err
			}
			if err := accounts.Update(ctx, a); err != nil {
				return err
			}
			return c.print(newAccountView(a, c.now()))
		}),
	}

	var (
		duration time.Duration
		until    string
	)
	set := &cobra.Command{
		Use:   "set ACCOUNT",
		Short: "Lock an account out for a duration or until a point in time",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, b Backend, args []string) error {
			end, err := c.lockoutEnd(duration, until)
			if err != nil {
				return err
			}

			accounts := b.Accounts()
			a, err := ref.find(ctx, accounts, args[0])
			if err != nil {
				return err
			}
			if err := accounts.SetLockoutEnd(a, &end); err != nil {
				return err
			}
			if err := accounts.Update(ctx, a); err != nil {
				return err
			}
			return c.print(newAccountView(a, c.now()))
		}),
	}
	set.Flags().DurationVar(&duration, "for", 0, "lockout duration, e.g. 15m")
	set.Flags().StringVar(&until, "until", "", "lockout end as RFC 3339 timestamp")

	cmd.AddCommand(reset, set)
	return cmd
}

func (c *cli) lockoutEnd(d time.Duration, until string) (time.Time, error) {
	switch {
	case d > 0 && until != "":
		return time.Time{}, errors.New("--for and --until are mutually exclusive")
	case d > 0:
		return c.now().Add(d).UTC(), nil
	case until != "":
		return time.Parse(time.RFC3339, until)
	default:
		return time.Time{}, errors.New("one of --for or --until is required")
	}
}
