package portal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Client issues requests against one backend, attaching the session cookies and
// transparently refreshing expired credentials
type Client struct {
	baseURL   string
	http      *http.Client
	anonymous *http.Client // same transport, no cookie jar
	jar       http.CookieJar
	headers   http.Header
	timeout   time.Duration
	navigator Navigator
	logger    zerolog.Logger

	coalesceRefresh bool
	refreshGroup    singleflight.Group
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("portal: invalid base URL %q", baseURL)
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{},
		headers:   http.Header{},
		navigator: NavigatorFunc(func(string) {}),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("portal: cookie jar: %w", err)
		}
		c.jar = jar
	}
	if c.timeout > 0 {
		c.http.Timeout = c.timeout
	}
	c.http.Jar = c.jar

	anonymous := *c.http
	anonymous.Jar = nil
	c.anonymous = &anonymous
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Jar is the credential store shared by every request
func (c *Client) Jar() http.CookieJar {
	return c.jar
}

// Do sends req and applies the refresh-and-replay recovery to a 401
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	resp, err := c.send(ctx, req)
	if err == nil {
		return resp, nil
	}
	return c.intercept(ctx, req, err)
}

func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodGet, path, nil, opts...))
}

// Post sends body as JSON unless it already is a Body
func (c *Client) Post(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodPost, path, toBody(body), opts...))
}

func (c *Client) Put(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodPut, path, toBody(body), opts...))
}

func (c *Client) Patch(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodPatch, path, toBody(body), opts...))
}

func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodDelete, path, nil, opts...))
}

// send performs one HTTP exchange without any recovery
func (c *Client) send(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	hc := c.http
	if !req.WithCredentials {
		hc = c.anonymous
	}

	resp, err := hc.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Method: req.Method, Path: req.Path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: req.Method, Path: req.Path, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(req, resp, body)
	}
	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
		Request:    req,
	}, nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req *Request) (*http.Request, error) {
	target := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		r, err := req.Body.Reader()
		if err != nil {
			return nil, &TransportError{Method: req.Method, Path: req.Path, Err: err}
		}
		body = r
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, &TransportError{Method: req.Method, Path: req.Path, Err: err}
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	for k, vs := range req.Header {
		httpReq.Header.Del(k)
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", req.Body.ContentType())
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}
	return httpReq, nil
}
