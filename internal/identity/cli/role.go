package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophidentity/internal/common"
	"github.com/dmitrijs2005/gophidentity/internal/identity/models"
	"github.com/spf13/cobra"
)

func (c *cli) roleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role",
		Short: "Manage roles",
	}

	var id string
	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a role",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, b Backend, args []string) error {
			role := models.NewRole(args[0])
			if id != "" {
				role = models.NewRoleWithID(args[0], id)
			}
			if err := b.Roles().Create(ctx, role); err != nil {
				return err
			}
			return c.print(newRoleView(role))
		}),
	}
	create.Flags().StringVar(&id, "id", "", "role id (generated when empty)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List roles",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, b Backend, args []string) error {
			roles, err := b.Roles().GetAll(ctx)
			if err != nil {
				return err
			}
			return c.print(newRoleViews(roles))
		}),
	}

	del := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a role and its memberships",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, b Backend, args []string) error {
			role, err := b.Roles().FindByName(ctx, args[0])
			if err != nil {
				return err
			}
			if role == nil {
				return fmt.Errorf("role %q: %w", args[0], common.ErrorNotFound)
			}
			if err := b.Roles().Delete(ctx, role); err != nil {
				return err
			}
			return c.print(newRoleView(role))
		}),
	}

	cmd.AddCommand(create, list, del)
	return cmd
}
