package portal

import (
	"context"
	"net/http"
	"strings"
)

// Paths whose failures are returned as-is, matched anywhere in the request path
var refreshExemptPaths = []string{PathAuthRefresh, PathAuthMe, PathAuthLogin}

func isRefreshExempt(path string) bool {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	for _, exempt := range refreshExemptPaths {
		if strings.Contains(path, exempt) {
			return true
		}
	}
	return false
}

// intercept decides what happens to a failed request:
//   - exempt paths, non-401 failures and already replayed requests fail as-is;
//   - otherwise the request is marked, the session is refreshed and the request
//     is replayed exactly once, returning the replay's outcome;
//   - a failed refresh navigates to the root and returns the refresh error,
//     unless the caller's own context ended first.
func (c *Client) intercept(ctx context.Context, req *Request, failure error) (*Response, error) {
	if isRefreshExempt(req.Path) {
		return nil, failure
	}
	if StatusCode(failure) != http.StatusUnauthorized || req.retried {
		return nil, failure
	}

	req.retried = true
	c.logger.Debug().Str("method", req.Method).Str("path", req.Path).Msg("access expired, refreshing session")

	if err := c.refresh(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		c.logger.Warn().Err(err).Str("path", req.Path).Msg("session refresh failed, navigating to root")
		c.navigator.Navigate(RootPath)
		return nil, &SessionInvalidatedError{Err: err}
	}

	c.logger.Debug().Str("method", req.Method).Str("path", req.Path).Msg("replaying request")
	return c.send(ctx, req)
}

// refresh calls the refresh endpoint; with coalescing enabled concurrent callers
// share one call and its result. The shared call is detached from any single
// caller's cancellation; each caller stops waiting when its own context ends.
func (c *Client) refresh(ctx context.Context) error {
	if !c.coalesceRefresh {
		return c.refreshOnce(ctx)
	}
	detached := context.WithoutCancel(ctx)
	ch := c.refreshGroup.DoChan(PathAuthRefresh, func() (any, error) {
		return nil, c.refreshOnce(detached)
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		if res.Shared {
			c.logger.Debug().Msg("joined in-flight session refresh")
		}
		return res.Err
	}
}

func (c *Client) refreshOnce(ctx context.Context) error {
	_, err := c.send(ctx, NewRequest(http.MethodPost, PathAuthRefresh, nil))
	return err
}
