package flotorch

import (
	"context"
	"net/http"

	"github.com/flotorch/console-client/internal/domain"
	"github.com/flotorch/console-client/pkg/httpclient"
)

// ListProjects issues GET /execution with q encoded as query parameters.
func (c *Client) ListProjects(ctx context.Context, q *domain.ProjectsListQuery) ([]domain.ProjectListItem, error) {
	return httpclient.DoJSON[[]domain.ProjectListItem](ctx, c.http, httpclient.Request{
		Method: http.MethodGet,
		Path:   "/execution",
		Query:  listQuery(q),
	})
}

// GetProject issues GET /execution/{id}.
func (c *Client) GetProject(ctx context.Context, id string) (domain.Project, error) {
	path, err := executionPath(id)
	if err != nil {
		return domain.Project{}, err
	}
	return httpclient.DoJSON[domain.Project](ctx, c.http, httpclient.Request{Method: http.MethodGet, Path: path})
}

// CreateProject issues POST /execution with body as the JSON object.
func (c *Client) CreateProject(ctx context.Context, body map[string]any) (domain.ExecutionRef, error) {
	if body == nil {
		body = map[string]any{}
	}
	return httpclient.DoJSON[domain.ExecutionRef](ctx, c.http, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/execution",
		Body:   body,
	})
}

// ExecuteProject issues POST /execution/{id}/execute.
func (c *Client) ExecuteProject(ctx context.Context, id string) (domain.ExecutionRef, error) {
	path, err := executionPath(id)
	if err != nil {
		return domain.ExecutionRef{}, err
	}
	return httpclient.DoJSON[domain.ExecutionRef](ctx, c.http, httpclient.Request{
		Method: http.MethodPost,
		Path:   path + "/execute",
	})
}

// GetPresignedUploadURL issues GET /presignedurl.
func (c *Client) GetPresignedUploadURL(ctx context.Context) (domain.PresignedUpload, error) {
	return httpclient.DoJSON[domain.PresignedUpload](ctx, c.http, httpclient.Request{
		Method: http.MethodGet,
		Path:   "/presignedurl",
	})
}
