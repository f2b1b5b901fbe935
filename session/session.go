package session

import (
	"context"
	"errors"
	"sync"

	"github.com/jrsteele09/internship-portal/portal"
	"github.com/jrsteele09/internship-portal/users"
	"github.com/rs/zerolog"
)

// ErrNotLoggedIn is returned when the backend reports no valid session
var ErrNotLoggedIn = errors.New("not logged in")

// Reason says why a session ended
type Reason int

const (
	ReasonLogout Reason = iota + 1
	// ReasonRedirect is a forced navigation to the root after a failed refresh
	ReasonRedirect
)

func (r Reason) String() string {
	switch r {
	case ReasonLogout:
		return "logout"
	case ReasonRedirect:
		return "redirect"
	}
	return "unknown"
}

// Identity resolves the user behind the stored credentials
type Identity interface {
	Me(ctx context.Context) (*users.User, error)
}

// Logouter ends the session on the backend
type Logouter interface {
	Logout(ctx context.Context) error
}

// InvalidateFunc is called after the current user has been cleared
type InvalidateFunc func(reason Reason, path string)

// Context holds the logged-in user for every view. It is safe for concurrent use
// and implements portal.Navigator, so a client's forced redirect ends it.
type Context struct {
	mu       sync.RWMutex
	user     *users.User
	location string
	hooks    []InvalidateFunc
	logger   zerolog.Logger
}

type Option func(*Context)

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Context) {
		c.logger = logger
	}
}

func New(opts ...Option) *Context {
	c := &Context{
		location: portal.RootPath,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnInvalidate registers fn to run whenever the session ends
func (c *Context) OnInvalidate(fn InvalidateFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, fn)
}

// Load re-derives the current user from the backend. A 401 clears the user and
// returns ErrNotLoggedIn without running the invalidation hooks.
func (c *Context) Load(ctx context.Context, identity Identity) (*users.User, error) {
	u, err := identity.Me(ctx)
	if err != nil {
		if portal.IsUnauthorized(err) {
			c.setUser(nil)
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}
	c.setUser(u)
	c.logger.Debug().Str("username", u.Username).Str("status", string(u.Status())).Msg("session loaded")
	return u, nil
}

// SignIn records u as the current user after a successful login
func (c *Context) SignIn(u *users.User) {
	c.setUser(u)
	c.mu.Lock()
	c.location = LandingPath(u)
	c.mu.Unlock()
}

func (c *Context) User() (*users.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil, false
	}
	u := *c.user
	return &u, true
}

func (c *Context) LoggedIn() bool {
	_, ok := c.User()
	return ok
}

// Location is the last page the session navigated to
func (c *Context) Location() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.location
}

// Logout ends the session on the backend and locally. The local session is
// cleared even when the backend call fails.
func (c *Context) Logout(ctx context.Context, l Logouter) error {
	err := l.Logout(ctx)
	c.Invalidate(ReasonLogout, portal.RootPath)
	return err
}

// Navigate implements portal.Navigator
func (c *Context) Navigate(path string) {
	c.Invalidate(ReasonRedirect, path)
}

// Invalidate clears the current user, moves to path and runs the hooks
func (c *Context) Invalidate(reason Reason, path string) {
	c.mu.Lock()
	had := c.user != nil
	c.user = nil
	c.location = path
	hooks := append([]InvalidateFunc(nil), c.hooks...)
	c.mu.Unlock()

	c.logger.Info().Stringer("reason", reason).Bool("had_user", had).Str("path", path).Msg("session invalidated")
	for _, fn := range hooks {
		fn(reason, path)
	}
}

func (c *Context) setUser(u *users.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if u == nil {
		c.user = nil
		return
	}
	cp := *u
	c.user = &cp
}

// LandingPath is the page a user lands on after login
func LandingPath(u *users.User) string {
	if u == nil {
		return portal.RootPath
	}
	switch u.Status() {
	case users.StatusSuperuser:
		return "/admin"
	case users.StatusStaff:
		return "/mentor"
	}
	return portal.RootPath
}
