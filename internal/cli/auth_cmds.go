package cli

import (
	"context"
	"fmt"

	"github.com/jrsteele09/internship-portal/portal"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Sign in and store the session",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	_ = cmd.MarkFlagRequired("password")

	cmd.RunE = app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
		result, err := app.client.Login(ctx, args[0], password)
		if err != nil {
			return err
		}
		u, err := app.session.Load(ctx, app.client)
		if err != nil {
			return err
		}
		app.session.SignIn(u)
		app.profile.Username = result.Username

		out := cmd.OutOrStdout()
		heading(out, "Logged in as %s (%s)", result.Username, result.Status)
		fmt.Fprintln(out, mutedStyle.Render("Landing page: "+app.session.Location()))
		return nil
	})
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "End the session on the backend and forget it locally",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
		err := app.session.Logout(ctx, app.client)
		if err != nil && !portal.IsUnauthorized(err) {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	})
	return cmd
}

func newMeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
		u, err := app.currentUser(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		heading(out, "%s (%s)", u.Username, u.Status())
		t := newTable(out, "FIELD", "VALUE")
		t.row("id", fmt.Sprint(u.ID))
		t.row("name", u.FirstName)
		t.row("email", u.Email)
		t.row("active", yesNo(u.IsActive))
		t.row("staff", yesNo(u.IsStaff))
		t.row("superuser", yesNo(u.IsSuperuser))
		return t.flush()
	})
	return cmd
}

func newSignupCmd(app *App) *cobra.Command {
	var req portal.SignupRequest
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account; a one-time code is mailed to verify it",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.Username, "username", "", "Username")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "Password")

	cmd.RunE = app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
		msg, err := app.client.Signup(ctx, req)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, msg.Message)
		fmt.Fprintf(out, "Verify with: portalctl verify-otp %s <code>\n", req.Email)
		return nil
	})
	return cmd
}

func newVerifyOTPCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify-otp <email> <code>",
		Short: "Activate an account with the mailed one-time code",
		Args:  cobra.ExactArgs(2),
	}
	cmd.RunE = app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
		msg, err := app.client.VerifyOTP(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg.Message)
		return nil
	})
	return cmd
}
