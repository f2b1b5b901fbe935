package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jrsteele09/internship-portal/internal/utils"
	"github.com/jrsteele09/internship-portal/portal"
	"github.com/jrsteele09/internship-portal/users"
	"github.com/jrsteele09/internship-portal/views"
	"github.com/spf13/cobra"
)

func newUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user", "u"},
		Short:   "Manage accounts (admins)",
	}
	cmd.AddCommand(
		newUsersListCmd(app),
		newUsersActiveCmd(app, "activate", "Allow an account to sign in", true),
		newUsersActiveCmd(app, "block", "Stop an account from signing in", false),
		newUsersStaffCmd(app),
	)
	return cmd
}

func newUsersListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts, staff first then active",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
		list, err := app.client.ListUsers(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		heading(out, "%d user(s)", len(list))
		t := newTable(out, "ID", "USERNAME", "NAME", "EMAIL", "ROLE", "ACTIVE")
		for _, u := range views.SortUsers(list) {
			t.row(strconv.FormatInt(u.ID, 10), u.Username, u.FirstName, u.Email, string(u.Status()), yesNo(u.IsActive))
		}
		return t.flush()
	})
	return cmd
}

func newUsersActiveCmd(app *App, use, short string, active bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		u, err := app.client.SetUserActive(ctx, id, active)
		if err != nil {
			return err
		}
		printUserChange(cmd, u)
		return nil
	})
	return cmd
}

func newUsersStaffCmd(app *App) *cobra.Command {
	var revoke bool
	cmd := &cobra.Command{
		Use:   "staff <id>",
		Short: "Grant or revoke mentor rights",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().BoolVar(&revoke, "revoke", false, "Remove mentor rights instead")

	cmd.RunE = app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		u, err := app.client.UpdateUser(ctx, id, portal.UserUpdate{IsStaff: utils.Ptr(!revoke)})
		if err != nil {
			return err
		}
		printUserChange(cmd, u)
		return nil
	})
	return cmd
}

func printUserChange(cmd *cobra.Command, u *users.User) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s: active=%s role=%s\n", u.Username, yesNo(u.IsActive), u.Status())
}
