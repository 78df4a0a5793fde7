package notifiers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/flotorch/console-client/pkg/httpclient"
	"github.com/go-resty/resty/v2"
)

type httpNotifier struct {
	id      string
	method  string
	url     string
	headers map[string]string
	client  *resty.Client
	log     Logger
}

func newHTTPNotifier(_ context.Context, cfg NotifierConfig, log Logger) (Notifier, error) {
	if cfg.HTTP == nil {
		return nil, fmt.Errorf("notifier %q missing http configuration", cfg.ID)
	}

	method := cfg.HTTP.Method
	if method == "" {
		method = httpDefaultMethod
	}

	return &httpNotifier{
		id:      cfg.ID,
		method:  method,
		url:     cfg.HTTP.URL,
		headers: cfg.HTTP.Headers,
		client:  httpclient.NewRestyHTTPClient(time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second),
		log:     ensureLogger(log),
	}, nil
}

func (h *httpNotifier) ID() string   { return h.id }
func (h *httpNotifier) Type() string { return TypeHTTP }
func (h *httpNotifier) Close() error { return nil }

func (h *httpNotifier) Notify(ctx context.Context, evt Event) error {
	req := h.client.R().
		SetContext(ctx).
		SetBody(evt)

	if len(h.headers) > 0 {
		req.SetHeaders(h.headers)
	}
	req.SetHeader("Content-Type", "application/json")

	resp, err := req.Execute(h.method, h.url)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("http response status %d: %s", resp.StatusCode(), readBodySnippet(resp.Body()))
	}
	h.log.DebugObj("http notifier delivered event", "notifier_http_delivery", map[string]any{
		"notifier_id": h.id,
		"event_type":  evt.Type,
		"status":      resp.StatusCode(),
	})
	return nil
}

func readBodySnippet(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}
