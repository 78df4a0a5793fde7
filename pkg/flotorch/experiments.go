package flotorch

import (
	"context"
	"net/http"

	"github.com/flotorch/console-client/internal/domain"
	"github.com/flotorch/console-client/pkg/httpclient"
)

// ListExperiments issues GET /execution/{id}/experiment.
func (c *Client) ListExperiments(ctx context.Context, id string) ([]domain.ProjectExperiment, error) {
	path, err := executionPath(id)
	if err != nil {
		return nil, err
	}
	return httpclient.DoJSON[[]domain.ProjectExperiment](ctx, c.http, httpclient.Request{
		Method: http.MethodGet,
		Path:   path + "/experiment",
	})
}

// GetExperiment issues GET /execution/{id}/experiment/{eid}.
func (c *Client) GetExperiment(ctx context.Context, id, eid string) (domain.ProjectExperiment, error) {
	path, err := executionPath(id, "experiment", eid)
	if err != nil {
		return domain.ProjectExperiment{}, err
	}
	return httpclient.DoJSON[domain.ProjectExperiment](ctx, c.http, httpclient.Request{Method: http.MethodGet, Path: path})
}

// ListValidExperiments issues GET /execution/{id}/valid_experiment.
func (c *Client) ListValidExperiments(ctx context.Context, id string) ([]domain.ValidExperiment, error) {
	path, err := executionPath(id)
	if err != nil {
		return nil, err
	}
	return httpclient.DoJSON[[]domain.ValidExperiment](ctx, c.http, httpclient.Request{
		Method: http.MethodGet,
		Path:   path + "/valid_experiment",
	})
}

// CreateExperiments issues POST /execution/{id}/experiment. A nil slice is sent as [].
func (c *Client) CreateExperiments(ctx context.Context, id string, experiments []domain.ValidExperiment) (domain.ExecutionRef, error) {
	path, err := executionPath(id)
	if err != nil {
		return domain.ExecutionRef{}, err
	}
	if experiments == nil {
		experiments = []domain.ValidExperiment{}
	}
	return httpclient.DoJSON[domain.ExecutionRef](ctx, c.http, httpclient.Request{
		Method: http.MethodPost,
		Path:   path + "/experiment",
		Body:   experiments,
	})
}

// GetExperimentQuestionMetrics issues GET /execution/{id}/experiment/{eid}/question_metrics.
func (c *Client) GetExperimentQuestionMetrics(ctx context.Context, id, eid string) (domain.QuestionMetrics, error) {
	path, err := executionPath(id, "experiment", eid)
	if err != nil {
		return domain.QuestionMetrics{}, err
	}
	return httpclient.DoJSON[domain.QuestionMetrics](ctx, c.http, httpclient.Request{
		Method: http.MethodGet,
		Path:   path + "/question_metrics",
	})
}
