package flotorch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flotorch/console-client/internal/domain"
	"github.com/flotorch/console-client/pkg/httpclient"
)

type stubResponse struct {
	body []byte
}

func (s stubResponse) Body() []byte    { return s.body }
func (s stubResponse) StatusCode() int { return http.StatusOK }

// recordingClient captures every request and replies with a canned body.
type recordingClient struct {
	mu    sync.Mutex
	calls []httpclient.Request
	body  string
	err   error
}

func (r *recordingClient) Do(_ context.Context, req httpclient.Request) (httpclient.Response, error) {
	r.mu.Lock()
	r.calls = append(r.calls, req)
	r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	body := r.body
	if body == "" {
		body = "{}"
	}
	return stubResponse{body: []byte(body)}, nil
}

func TestAccessorsIssueExpectedMethodAndPath(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		body   string
		call   func(c *Client) error
		method string
		path   string
	}{
		{"list projects", "[]", func(c *Client) error { _, err := c.ListProjects(ctx, nil); return err }, http.MethodGet, "/execution"},
		{"get project", "", func(c *Client) error { _, err := c.GetProject(ctx, "42"); return err }, http.MethodGet, "/execution/42"},
		{"list experiments", "[]", func(c *Client) error { _, err := c.ListExperiments(ctx, "42"); return err }, http.MethodGet, "/execution/42/experiment"},
		{"get experiment", "", func(c *Client) error { _, err := c.GetExperiment(ctx, "42", "e1"); return err }, http.MethodGet, "/execution/42/experiment/e1"},
		{"create project", "", func(c *Client) error { _, err := c.CreateProject(ctx, map[string]any{"a": 1}); return err }, http.MethodPost, "/execution"},
		{"execute project", "", func(c *Client) error { _, err := c.ExecuteProject(ctx, "42"); return err }, http.MethodPost, "/execution/42/execute"},
		{"list valid experiments", "[]", func(c *Client) error { _, err := c.ListValidExperiments(ctx, "42"); return err }, http.MethodGet, "/execution/42/valid_experiment"},
		{"create experiments", "", func(c *Client) error { _, err := c.CreateExperiments(ctx, "7", nil); return err }, http.MethodPost, "/execution/7/experiment"},
		{"presigned url", "", func(c *Client) error { _, err := c.GetPresignedUploadURL(ctx); return err }, http.MethodGet, "/presignedurl"},
		{"question metrics", "", func(c *Client) error { _, err := c.GetExperimentQuestionMetrics(ctx, "42", "e1"); return err }, http.MethodGet, "/execution/42/experiment/e1/question_metrics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingClient{body: tt.body}
			require.NoError(t, tt.call(NewClient(rec)))
			require.Len(t, rec.calls, 1)
			assert.Equal(t, tt.method, rec.calls[0].Method)
			assert.Equal(t, tt.path, rec.calls[0].Path)
		})
	}
}

func TestListProjectsEncodesFilters(t *testing.T) {
	rec := &recordingClient{body: "[]"}
	_, err := NewClient(rec).ListProjects(context.Background(), &domain.ProjectsListQuery{
		Status: "completed",
		Limit:  5,
		Extra:  map[string]string{"region": "us-east-1"},
	})
	require.NoError(t, err)

	q := rec.calls[0].Query
	assert.Equal(t, "completed", q.Get("status"))
	assert.Equal(t, "5", q.Get("limit"))
	assert.Equal(t, "us-east-1", q.Get("region"))
	assert.Empty(t, q.Get("name"))
}

func TestListProjectsWithEmptyFilterSendsNoQuery(t *testing.T) {
	rec := &recordingClient{body: "[]"}
	_, err := NewClient(rec).ListProjects(context.Background(), &domain.ProjectsListQuery{})
	require.NoError(t, err)
	assert.Nil(t, rec.calls[0].Query)
}

func TestPathIDsAreEscaped(t *testing.T) {
	rec := &recordingClient{}
	_, err := NewClient(rec).GetExperiment(context.Background(), "a/b", "c d")
	require.NoError(t, err)
	assert.Equal(t, "/execution/a%2Fb/experiment/c%20d", rec.calls[0].Path)
}

func TestBlankIDsAreRejectedBeforeAnyRequest(t *testing.T) {
	rec := &recordingClient{}
	c := NewClient(rec)
	ctx := context.Background()

	_, err := c.GetProject(ctx, "")
	assert.ErrorIs(t, err, ErrMissingID)
	_, err = c.GetExperiment(ctx, "42", "  ")
	assert.ErrorIs(t, err, ErrMissingID)
	_, err = c.CreateExperiments(ctx, "", nil)
	assert.ErrorIs(t, err, ErrMissingID)
	_, err = c.GetExperimentQuestionMetrics(ctx, "", "e1")
	assert.ErrorIs(t, err, ErrMissingID)

	assert.Empty(t, rec.calls)
}

func TestHTTPErrorsPropagateUnchanged(t *testing.T) {
	boom := &httpclient.StatusError{Method: http.MethodGet, URL: "/execution/42", StatusCode: http.StatusBadGateway}
	c := NewClient(&recordingClient{err: boom})

	_, err := c.GetProject(context.Background(), "42")
	assert.Same(t, boom, err)

	transport := errors.New("dial tcp: connection refused")
	c = NewClient(&recordingClient{err: transport})
	_, err = c.ExecuteProject(context.Background(), "42")
	assert.Same(t, transport, err)
	assert.Same(t, transport, c.UploadToPresignedURL(context.Background(), domain.PresignedObject{PresignedURL: "https://s3/x"}, strings.NewReader("x"), ""))
}

func TestRepeatedGetsAreIndependentRequests(t *testing.T) {
	rec := &recordingClient{body: `{"id":"42","name":"rag"}`}
	c := NewClient(rec)

	first, err := c.GetProject(context.Background(), "42")
	require.NoError(t, err)
	second, err := c.GetProject(context.Background(), "42")
	require.NoError(t, err)

	assert.Len(t, rec.calls, 2)
	assert.Equal(t, first, second)
	assert.Equal(t, "rag", first.Name)
}

func TestUploadRequiresURL(t *testing.T) {
	rec := &recordingClient{}
	err := NewClient(rec).UploadToPresignedURL(context.Background(), domain.PresignedObject{Path: "kb/x"}, strings.NewReader("x"), "")
	assert.ErrorIs(t, err, ErrMissingUploadURL)
	assert.Empty(t, rec.calls)
}

// The tests below go through the real resty adapter against an httptest backend.

func newBackend(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(httpclient.NewRestyClient(httpclient.Options{BaseURL: srv.URL, Timeout: 2 * time.Second}))
}

func TestCreateProjectSendsBodyAndReturnsExecutionID(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/execution", r.URL.Path)
		var got map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, map[string]any{"a": float64(1)}, got)
		_, _ = w.Write([]byte(`{"execution_id":"exec-1"}`))
	})

	ref, err := c.CreateProject(context.Background(), map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "exec-1", ref.ExecutionID)
}

func TestCreateExperimentsWithEmptySliceSendsEmptyArray(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/execution/7/experiment", r.URL.Path)
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(raw))
		_, _ = w.Write([]byte(`{"execution_id":"7"}`))
	})

	ref, err := c.CreateExperiments(context.Background(), "7", []domain.ValidExperiment{})
	require.NoError(t, err)
	assert.Equal(t, "7", ref.ExecutionID)
}

func TestValidExperimentsPostBackUnchanged(t *testing.T) {
	const candidates = `[{"embedding_model":"titan","temp_retrieval_llm":0,"knowledge_base":false,"rerank_model_id":"cohere","guardrail_id":"g1","chunk_size":512}]`

	var posted string
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /execution/7/valid_experiment":
			_, _ = w.Write([]byte(candidates))
		case "POST /execution/7/experiment":
			raw, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			posted = string(raw)
			_, _ = w.Write([]byte(`{"execution_id":"7"}`))
		default:
			http.NotFound(w, r)
		}
	})

	list, err := c.ListValidExperiments(context.Background(), "7")
	require.NoError(t, err)
	_, err = c.CreateExperiments(context.Background(), "7", list)
	require.NoError(t, err)

	assert.JSONEq(t, candidates, posted)
}

func TestPresignedUploadKeepsBackendCasing(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/presignedurl", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"kb_data": {"path": "uploads/u1/kb.pdf", "presignedurl": "https://bucket/kb?sig=1"},
			"gt_data": {"path": "uploads/u1/gt.json", "presignedurl": "https://bucket/gt?sig=2"},
			"uuid": "u1"
		}`))
	})

	up, err := c.GetPresignedUploadURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", up.UUID)
	assert.Equal(t, "https://bucket/kb?sig=1", up.KBData.PresignedURL)
	assert.Equal(t, "uploads/u1/gt.json", up.GTData.Path)
}

func TestQuestionMetricsDecode(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"question_metrics":[{"id":"q1","experiment_id":"e1","question":"why?","reference_contexts":["a","b"]}]}`))
	})

	metrics, err := c.GetExperimentQuestionMetrics(context.Background(), "42", "e1")
	require.NoError(t, err)
	require.Len(t, metrics.QuestionMetrics, 1)
	assert.Equal(t, "why?", metrics.QuestionMetrics[0].Question)
	assert.Equal(t, []string{"a", "b"}, metrics.QuestionMetrics[0].ReferenceContexts)
}

func TestNonSuccessStatusSurfacesAsStatusError(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"detail":"not found"}`, http.StatusNotFound)
	})

	_, err := c.GetProject(context.Background(), "missing")
	var statusErr *httpclient.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestShapeMismatchSurfacesAsDecodeError(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	})

	_, err := c.ListExperiments(context.Background(), "42")
	var decodeErr *httpclient.DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestUploadToPresignedURLPutsRawBytes(t *testing.T) {
	var got []byte
	var contentType string
	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		contentType = r.Header.Get("Content-Type")
		got, _ = io.ReadAll(r.Body)
	}))
	defer storage.Close()

	c := newBackend(t, func(http.ResponseWriter, *http.Request) {
		t.Fatal("backend must not be called for uploads")
	})
	err := c.UploadToPresignedURL(context.Background(), domain.PresignedObject{
		Path:         "uploads/u1/gt.json",
		PresignedURL: storage.URL + "/gt.json?X-Amz-Signature=abc",
	}, strings.NewReader(`[{"question":"q"}]`), "application/json")
	require.NoError(t, err)
	assert.Equal(t, `[{"question":"q"}]`, string(got))
	assert.Equal(t, "application/json", contentType)
}
