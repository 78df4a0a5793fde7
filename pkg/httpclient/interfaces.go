package httpclient

import (
	"context"
	"io"
	"net/url"
)

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Do(ctx context.Context, req Request) (Response, error)
}

// Request describes a single call. Path may be relative to the client's base URL or absolute.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	// Body is encoded as JSON when set.
	Body any
	// RawBody is streamed as-is and takes precedence over Body.
	RawBody io.Reader
}

// Logger defines the logging surface the client relies on.
type Logger interface {
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) DebugObj(string, string, interface{}) {}
func (noopLogger) WarnObj(string, string, interface{})  {}
