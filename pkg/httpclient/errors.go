package httpclient

import (
	"fmt"
	"strings"
)

const maxSnippetBytes = 512

// StatusError is returned for any response outside the 2xx range.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d body: %s", e.Method, e.URL, e.StatusCode, snippet(e.Body))
}

// DecodeError reports a response body that does not match the expected shape.
type DecodeError struct {
	URL  string
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response from %s: %v (body: %s)", e.URL, e.Err, snippet(e.Body))
}

func (e *DecodeError) Unwrap() error { return e.Err }

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "<empty>"
	}
	if len(s) > maxSnippetBytes {
		return s[:maxSnippetBytes] + "..."
	}
	return s
}
