package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophidentity/internal/common"
	"github.com/dmitrijs2005/gophidentity/internal/identity/models"
	"github.com/dmitrijs2005/gophidentity/internal/identity/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// accountRef resolves the ACCOUNT argument: a user name, or an id when
// --by-id is set.
type accountRef struct {
	byID bool
}

func (r *accountRef) find(ctx context.Context, accounts store.AccountCapabilities, key string) (*models.Account, error) {
	var (
		a   *models.Account
		err error
	)
	if r.byID {
		a, err = accounts.FindByID(ctx, key)
	} else {
		a, err = accounts.FindByName(ctx, key)
	}
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("account %q: %w", key, common.ErrorNotFound)
	}
	return a, nil
}

func (c *cli) accountCommand() *cobra.Command {
	ref := &accountRef{}

	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}
	cmd.PersistentFlags().BoolVar(&ref.byID, "by-id", false, "treat ACCOUNT arguments as account ids instead of user names")

	cmd.AddCommand(
		c.accountCreateCommand(),
		c.accountShowCommand(ref),
		c.accountListCommand(),
		c.accountDeleteCommand(ref),
		c.claimCommand(ref),
		c.loginCommand(ref),
		c.membershipCommand(ref),
		c.lockoutCommand(ref),
	)
	return cmd
}

func (c *cli) accountCreateCommand() *cobra.Command {
	var (
		email, phone, passwordHash string
		lockoutEnabled, twoFactor  bool
	)

	cmd := &cobra.Command{
		Use:   "create USERNAME",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, b Backend, args []string) error {
			accounts := b.Accounts()
			a := models.NewAccount(args[0])

			if err := accounts.SetEmail(a, email); err != nil {
				return err
			}
			if phone != "" {
				if err := accounts.SetPhoneNumber(a, phone); err != nil {
					return err
				}
			}
			if err := accounts.SetPasswordHash(a, passwordHash); err != nil {
				return err
			}
			if err := accounts.SetSecurityStamp(a, uuid.NewString()); err != nil {
				return err
			}
			if err := accounts.SetLockoutEnabled(a, lockoutEnabled); err != nil {
				return err
			}
			if err := accounts.SetTwoFactorEnabled(a, twoFactor); err != nil {
				return err
			}

			if err := accounts.Create(ctx, a); err != nil {
				return err
			}
			return c.print(newAccountView(a, c.now()))
		}),
	}

	f := cmd.Flags()
	f.StringVar(&email, "email", "", "email address")
	f.StringVar(&phone, "phone", "", "phone number")
	f.StringVar(&passwordHash, "password-hash", "", "already computed password hash")
	f.BoolVar(&lockoutEnabled, "lockout-enabled", true, "allow the account to be locked out")
	f.BoolVar(&twoFactor, "two-factor", false, "enable two-factor authentication")
	return cmd
}

func (c *cli) accountShowCommand(ref *accountRef) *cobra.Command {
	return &cobra.Command{
		Use:   "show ACCOUNT",
		Short: "Show an account with its claims, logins and roles",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, b Backend, args []string) error {
			a, err := ref.find(ctx, b.Accounts(), args[0])
			if err != nil {
				return err
			}
			return c.print(newAccountView(a, c.now()))
		}),
	}
}

func (c *cli) accountListCommand() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, b Backend, args []string) error {
			if email != "" {
				a, err := b.Accounts().FindByEmail(ctx, email)
				if err != nil {
					return err
				}
				list := []*models.Account{}
				if a != nil {
					list = append(list, a)
				}
				return c.print(newAccountViews(list, c.now()))
			}

			list, err := b.Accounts().GetAll(ctx)
			if err != nil {
				return err
			}
			return c.print(newAccountViews(list, c.now()))
		}),
	}
	cmd.Flags().StringVar(&email, "email", "", "only the account with this email")
	return cmd
}

func (c *cli) accountDeleteCommand(ref *accountRef) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ACCOUNT",
		Short: "Delete an account together with its claims, logins and memberships",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, b Backend, args []string) error {
			a, err := ref.find(ctx, b.Accounts(), args[0])
			if err != nil {
				return err
			}
			if err := b.Accounts().Delete(ctx, a); err != nil {
				return err
			}
			return c.print(map[string]string{"deleted": a.ID})
		}),
	}
}
