package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/jrsteele09/internship-portal/internal/config"
	"github.com/jrsteele09/internship-portal/portal"
	"github.com/jrsteele09/internship-portal/session"
	"github.com/jrsteele09/internship-portal/users"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// ErrSessionExpired is reported after the backend forced the session to end
var ErrSessionExpired = errors.New("session expired, run `portalctl login` to sign in again")

// App is the state shared by every command of one invocation
type App struct {
	profilePath string
	baseURL     string
	verbose     bool
	timeout     time.Duration

	profile *Profile
	target  *url.URL
	client  *portal.Client
	session *session.Context
	logger  zerolog.Logger

	invalidated bool
}

func (a *App) open(cmd *cobra.Command) error {
	level := zerolog.WarnLevel
	if a.verbose {
		level = zerolog.DebugLevel
	}
	a.logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	profile, err := LoadProfile(a.profilePath)
	if err != nil {
		return err
	}
	a.profile = profile

	if a.baseURL == "" {
		a.baseURL = profile.BaseURL
	}
	if a.baseURL == "" {
		a.baseURL = config.Client{}.GetAPIBaseURL()
	}
	if profile.BaseURL != "" && profile.BaseURL != a.baseURL {
		a.logger.Debug().Str("from", profile.BaseURL).Str("to", a.baseURL).Msg("backend changed, dropping stored session")
		profile.Clear()
	}
	profile.BaseURL = a.baseURL

	target, err := url.Parse(a.baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", a.baseURL, err)
	}
	a.target = target

	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	profile.Restore(jar, target)

	a.session = session.New(session.WithLogger(a.logger))
	a.session.OnInvalidate(func(session.Reason, string) {
		a.invalidated = true
		a.profile.Clear()
	})

	a.client, err = portal.New(a.baseURL,
		portal.WithCookieJar(jar),
		portal.WithNavigator(a.session),
		portal.WithLogger(a.logger),
		portal.WithTimeout(a.timeout),
		portal.WithHeader("User-Agent", "portalctl"),
	)
	return err
}

// close persists the session unless it was invalidated during the command
func (a *App) close() error {
	if a.profile == nil {
		return nil
	}
	if !a.invalidated {
		a.profile.Capture(a.client.Jar(), a.target)
	}
	return a.profile.Save(a.profilePath)
}

// run wraps a command body so the profile is saved on every exit path
func (a *App) run(fn func(ctx context.Context, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd.Context(), cmd, args)
		if closeErr := a.close(); closeErr != nil && err == nil {
			err = closeErr
		}
		return describeError(err)
	}
}

// describeError turns client errors into messages a terminal user can act on
func describeError(err error) error {
	if err == nil {
		return nil
	}
	if portal.IsSessionInvalidated(err) {
		return ErrSessionExpired
	}

	var apiErr *portal.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.StatusCode == 401:
		return fmt.Errorf("not logged in: %s", firstNonEmpty(apiErr.Detail, "run `portalctl login`"))
	case apiErr.StatusCode == 403:
		return fmt.Errorf("permission denied: %s", firstNonEmpty(apiErr.Detail, apiErr.Path))
	case len(apiErr.Fields) > 0:
		return fmt.Errorf("%s", formatFields(apiErr.Fields))
	case apiErr.Detail != "":
		return errors.New(apiErr.Detail)
	}
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// currentUser loads the signed-in user, refreshing once when only the access
// credential has expired
func (a *App) currentUser(ctx context.Context) (*users.User, error) {
	u, err := a.session.Load(ctx, a.client)
	if !errors.Is(err, session.ErrNotLoggedIn) {
		return u, err
	}
	if refreshErr := a.client.Refresh(ctx); refreshErr != nil {
		a.logger.Debug().Err(refreshErr).Msg("refresh before loading user failed")
		return nil, err
	}
	return a.session.Load(ctx, a.client)
}
