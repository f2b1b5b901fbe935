package session_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/internship-portal/portal"
	"github.com/jrsteele09/internship-portal/session"
	"github.com/jrsteele09/internship-portal/users"
	"github.com/stretchr/testify/require"
)

type identityFunc func(ctx context.Context) (*users.User, error)

func (f identityFunc) Me(ctx context.Context) (*users.User, error) {
	return f(ctx)
}

type logouterFunc func(ctx context.Context) error

func (f logouterFunc) Logout(ctx context.Context) error {
	return f(ctx)
}

type invalidation struct {
	reason session.Reason
	path   string
}

func recordInvalidations(s *session.Context) *[]invalidation {
	var got []invalidation
	s.OnInvalidate(func(reason session.Reason, path string) {
		got = append(got, invalidation{reason, path})
	})
	return &got
}

func TestLoadSetsCurrentUser(t *testing.T) {
	s := session.New()
	require.False(t, s.LoggedIn())

	u, err := s.Load(context.Background(), identityFunc(func(context.Context) (*users.User, error) {
		return &users.User{ID: 3, Username: "asha"}, nil
	}))
	require.NoError(t, err)
	require.Equal(t, "asha", u.Username)

	current, ok := s.User()
	require.True(t, ok)
	require.Equal(t, int64(3), current.ID)

	// callers get a copy
	current.Username = "changed"
	again, _ := s.User()
	require.Equal(t, "asha", again.Username)
}

func TestLoadUnauthorizedClearsUser(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Authentication credentials were not provided."}`))
	}))
	defer ts.Close()

	s := session.New()
	s.SignIn(&users.User{Username: "asha"})
	invalidations := recordInvalidations(s)

	c, err := portal.New(ts.URL, portal.WithNavigator(s))
	require.NoError(t, err)

	_, err = s.Load(context.Background(), c)
	require.ErrorIs(t, err, session.ErrNotLoggedIn)
	require.False(t, s.LoggedIn())
	require.Empty(t, *invalidations, "me is exempt from refresh so no redirect happens")
}

func TestLoadPropagatesOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	s := session.New()
	s.SignIn(&users.User{Username: "asha"})

	_, err := s.Load(context.Background(), identityFunc(func(context.Context) (*users.User, error) {
		return nil, boom
	}))
	require.ErrorIs(t, err, boom)
	require.True(t, s.LoggedIn())
}

func TestSignInLandingPaths(t *testing.T) {
	tests := []struct {
		name string
		user users.User
		want string
	}{
		{name: "student", user: users.User{}, want: "/"},
		{name: "mentor", user: users.User{IsStaff: true}, want: "/mentor"},
		{name: "superuser", user: users.User{IsStaff: true, IsSuperuser: true}, want: "/admin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := session.New()
			s.SignIn(&tt.user)
			require.Equal(t, tt.want, s.Location())
			require.Equal(t, tt.want, session.LandingPath(&tt.user))
		})
	}
	require.Equal(t, "/", session.LandingPath(nil))
}

func TestLogoutInvalidatesEvenOnFailure(t *testing.T) {
	s := session.New()
	s.SignIn(&users.User{Username: "ravi", IsStaff: true})
	invalidations := recordInvalidations(s)

	failure := errors.New("network down")
	err := s.Logout(context.Background(), logouterFunc(func(context.Context) error { return failure }))
	require.ErrorIs(t, err, failure)
	require.False(t, s.LoggedIn())
	require.Equal(t, "/", s.Location())
	require.Equal(t, []invalidation{{session.ReasonLogout, "/"}}, *invalidations)
}

func TestForcedRedirectInvalidatesSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /internships/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("POST /auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"No refresh token"}`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	s := session.New()
	s.SignIn(&users.User{Username: "admin", IsSuperuser: true})
	require.Equal(t, "/admin", s.Location())
	invalidations := recordInvalidations(s)

	c, err := portal.New(ts.URL, portal.WithNavigator(s))
	require.NoError(t, err)

	_, err = c.ListInternships(context.Background())
	require.True(t, portal.IsSessionInvalidated(err))
	require.False(t, s.LoggedIn())
	require.Equal(t, "/", s.Location())
	require.Equal(t, []invalidation{{session.ReasonRedirect, "/"}}, *invalidations)
	require.Equal(t, "redirect", session.ReasonRedirect.String())
}
