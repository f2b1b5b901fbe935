package cli_test

import (
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/internship-portal/internal/cli"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingProfile(t *testing.T) {
	p, err := cli.LoadProfile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Empty(t, p.BaseURL)
	require.Empty(t, p.Cookies)
}

func TestProfileRoundTripsCookies(t *testing.T) {
	u, err := url.Parse("http://portal.example.com")
	require.NoError(t, err)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	p := &cli.Profile{
		BaseURL: u.String(),
		Cookies: []cli.StoredCookie{{Name: "access", Value: "a1"}, {Name: "refresh", Value: "r1"}},
	}
	p.Restore(jar, u)
	require.Len(t, jar.Cookies(u), 2)

	path := filepath.Join(t.TempDir(), "nested", "profile.yaml")
	p.Username = "asha"
	p.Capture(jar, u)
	require.NoError(t, p.Save(path))

	loaded, err := cli.LoadProfile(path)
	require.NoError(t, err)
	require.Equal(t, "asha", loaded.Username)
	require.ElementsMatch(t, p.Cookies, loaded.Cookies)

	loaded.Clear()
	require.Empty(t, loaded.Username)
	require.Empty(t, loaded.Cookies)
}

func TestLoadCorruptProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, (&cli.Profile{BaseURL: "x"}).Save(path))
	require.NoError(t, os.WriteFile(path, []byte("base_url: [unterminated"), 0o600))
	_, err := cli.LoadProfile(path)
	require.Error(t, err)
}
