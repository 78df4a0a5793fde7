// Package flotorch is a typed client for the execution API. Each method maps
// one backend operation to a single HTTP request and returns the decoded
// response; transport, status and decode failures come back exactly as the
// underlying httpclient.Client produced them.
package flotorch

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/flotorch/console-client/internal/domain"
	"github.com/flotorch/console-client/pkg/httpclient"
)

// ErrMissingID is returned without issuing a request when a path id is blank.
var ErrMissingID = errors.New("flotorch: id must not be empty")

// Client is safe for concurrent use; it holds no per-call state.
type Client struct {
	http httpclient.Client
}

// NewClient wraps the shared HTTP client.
func NewClient(c httpclient.Client) *Client {
	return &Client{http: c}
}

func executionPath(ids ...string) (string, error) {
	var b strings.Builder
	b.WriteString("/execution")
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return "", ErrMissingID
		}
		b.WriteByte('/')
		b.WriteString(url.PathEscape(id))
	}
	return b.String(), nil
}

func listQuery(q *domain.ProjectsListQuery) url.Values {
	if q == nil {
		return nil
	}
	v := url.Values{}
	for k, val := range q.Extra {
		if strings.TrimSpace(k) != "" {
			v.Set(k, val)
		}
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Name != "" {
		v.Set("name", q.Name)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if len(v) == 0 {
		return nil
	}
	return v
}
