package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Options configures a RestyClient.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Headers map[string]string
	Logger  Logger
}

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
	log    Logger
}

// NewRestyClient creates a new RestyClient with the specified options.
func NewRestyClient(opts Options) *RestyClient {
	log := opts.Logger
	if log == nil {
		log = noopLogger{}
	}
	return &RestyClient{client: newRestyBaseClient(opts), log: log}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	return newRestyBaseClient(Options{Timeout: timeout})
}

// newRestyBaseClient creates a new resty.Client from the options.
func newRestyBaseClient(opts Options) *resty.Client {
	c := resty.New()
	c.SetTimeout(opts.Timeout)
	if base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"); base != "" {
		c.SetBaseURL(base)
	}
	if len(opts.Headers) > 0 {
		c.SetHeaders(opts.Headers)
	}
	return c
}

// Do performs the request and returns an error for transport failures and non-2xx responses.
func (r *RestyClient) Do(ctx context.Context, req Request) (Response, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}

	rr := r.client.R().SetContext(ctx)
	if len(req.Headers) > 0 {
		rr.SetHeaders(req.Headers)
	}
	if len(req.Query) > 0 {
		rr.SetQueryParamsFromValues(req.Query)
	}

	switch {
	case req.RawBody != nil:
		// presigned storage PUTs reject chunked uploads
		rr.SetContentLength(true)
		rr.SetBody(req.RawBody)
	case req.Body != nil:
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		rr.SetHeader("Content-Type", "application/json")
		rr.SetBody(payload)
	}
	rr.SetHeader("Accept", "application/json")

	resp, err := rr.Execute(method, req.Path)
	// presigned URLs carry credentials in the query
	logPath, _, _ := strings.Cut(req.Path, "?")
	if err != nil {
		r.log.WarnObj("http request failed", "http_error", map[string]any{
			"method": method,
			"path":   logPath,
			"error":  err.Error(),
		})
		return nil, err
	}

	r.log.DebugObj("http request completed", "http_call", map[string]any{
		"method":     method,
		"path":       logPath,
		"status":     resp.StatusCode(),
		"elapsed_ms": resp.Time().Milliseconds(),
	})

	if !resp.IsSuccess() {
		return nil, &StatusError{
			Method:     method,
			URL:        req.Path,
			StatusCode: resp.StatusCode(),
			Body:       resp.Body(),
		}
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }
