package cli

import (
	"time"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the portalctl command tree
func NewRootCommand() *cobra.Command {
	app := &App{}

	root := &cobra.Command{
		Use:   "portalctl",
		Short: "Work with the internship portal from the terminal",
		Long: `portalctl talks to the internship portal backend.

The session cookies are kept in a profile file between invocations and are
refreshed automatically when the access credential expires.

Quick Start:
  portalctl login asha --password secret
  portalctl internships list --search go
  portalctl applications apply 3 --resume cv.pdf ...`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.open(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&app.verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&app.profilePath, "profile", DefaultProfilePath(), "Profile file holding the base URL and session")
	flags.StringVar(&app.baseURL, "base-url", "", "Backend base URL (default from profile or PORTAL_API_BASE_URL)")
	flags.DurationVar(&app.timeout, "timeout", 30*time.Second, "Per-request timeout")

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newMeCmd(app),
		newSignupCmd(app),
		newVerifyOTPCmd(app),
		newInternshipsCmd(app),
		newApplicationsCmd(app),
		newUsersCmd(app),
	)
	return root
}
