package portal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// Body is a request payload that can be read more than once, so a request can
// be replayed after a credential refresh
type Body interface {
	ContentType() string
	Reader() (io.Reader, error)
}

type jsonBody struct {
	value any
}

// JSON encodes v as the request body
func JSON(v any) Body {
	return jsonBody{value: v}
}

func (b jsonBody) ContentType() string {
	return "application/json"
}

func (b jsonBody) Reader() (io.Reader, error) {
	data, err := json.Marshal(b.value)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	return bytes.NewReader(data), nil
}

type formBody struct {
	values url.Values
}

// Form sends values as application/x-www-form-urlencoded
func Form(values url.Values) Body {
	return formBody{values: values}
}

func (b formBody) ContentType() string {
	return "application/x-www-form-urlencoded"
}

func (b formBody) Reader() (io.Reader, error) {
	return strings.NewReader(b.values.Encode()), nil
}

// FilePart is one file field of a multipart body
type FilePart struct {
	Field   string
	Name    string
	Content io.Reader
}

type multipartBody struct {
	data        []byte
	contentType string
}

// Multipart buffers fields and files into a multipart/form-data body. The file
// readers are consumed immediately.
func Multipart(fields map[string]string, files ...FilePart) (Body, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write field %s: %w", k, err)
		}
	}
	for _, f := range files {
		if f.Content == nil {
			continue
		}
		fw, err := mw.CreateFormFile(f.Field, f.Name)
		if err != nil {
			return nil, fmt.Errorf("create file %s: %w", f.Field, err)
		}
		if _, err := io.Copy(fw, f.Content); err != nil {
			return nil, fmt.Errorf("copy file %s: %w", f.Field, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}
	return multipartBody{data: buf.Bytes(), contentType: mw.FormDataContentType()}, nil
}

func (b multipartBody) ContentType() string {
	return b.contentType
}

func (b multipartBody) Reader() (io.Reader, error) {
	return bytes.NewReader(b.data), nil
}

// Request describes one API call. It is created per call and must not be shared
// between concurrent calls.
type Request struct {
	Method string
	// Path is relative to the client's base URL, e.g. "/internships/"
	Path   string
	Query  url.Values
	Header http.Header
	Body   Body
	// WithCredentials attaches the stored session cookies; on by default
	WithCredentials bool

	retried bool
}

type RequestOption func(*Request)

func WithRequestHeader(key, value string) RequestOption {
	return func(r *Request) {
		r.Header.Set(key, value)
	}
}

func WithQuery(query url.Values) RequestOption {
	return func(r *Request) {
		r.Query = query
	}
}

// WithoutCredentials sends the request without the session cookies
func WithoutCredentials() RequestOption {
	return func(r *Request) {
		r.WithCredentials = false
	}
}

func NewRequest(method, path string, body Body, opts ...RequestOption) *Request {
	r := &Request{
		Method:          method,
		Path:            path,
		Header:          http.Header{},
		Body:            body,
		WithCredentials: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retried reports whether the request has already been replayed after a refresh
func (r *Request) Retried() bool {
	return r.retried
}

// toBody wraps plain values as JSON bodies
func toBody(v any) Body {
	switch b := v.(type) {
	case nil:
		return nil
	case Body:
		return b
	}
	return JSON(v)
}

// Response is a 2xx backend response with its body fully read
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Request    *Request
}

// Decode parses the JSON body into v
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("portal: decode %s %s: %w", r.Request.Method, r.Request.Path, err)
	}
	return nil
}
