package portal

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type Option func(*Client)

// WithHTTPClient sets the underlying client; its Jar is replaced by the client's
// cookie jar
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		copied := *hc
		c.http = &copied
	}
}

// WithCookieJar sets the credential store, e.g. one restored from disk
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.jar = jar
	}
}

func WithNavigator(n Navigator) Option {
	return func(c *Client) {
		c.navigator = n
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHeader adds a header to every request
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// WithRefreshCoalescing shares one in-flight refresh call between concurrent
// requests that fail with 401. Each request still replays at most once.
func WithRefreshCoalescing() Option {
	return func(c *Client) {
		c.coalesceRefresh = true
	}
}
