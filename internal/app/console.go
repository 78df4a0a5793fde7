package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/flotorch/console-client/internal/config"
	"github.com/flotorch/console-client/internal/domain"
	"github.com/flotorch/console-client/internal/logger"
	"github.com/flotorch/console-client/internal/storage"
	"github.com/flotorch/console-client/pkg/flotorch"
	"github.com/flotorch/console-client/pkg/httpclient"
	"github.com/flotorch/console-client/pkg/notifiers"
)

const eventSource = "flotorch-console"

// Console is the runtime behind the CLI. Read calls go straight to the API
// client; launch calls additionally write to the local journal and fan out a
// notification. Journal and notification failures are logged and never fail
// the API call that triggered them.
type Console struct {
	cfg *config.Config
	api *flotorch.Client
	// journal is opened per operation; the bbolt file lock is never held across an API call.
	journal func() (storage.Store, error)
	fanout  *notifiers.Fanout
	log     logger.Logger
}

// Overview bundles a project with its experiments and experiment candidates.
type Overview struct {
	Project          domain.Project             `json:"project" yaml:"project"`
	Experiments      []domain.ProjectExperiment `json:"experiments" yaml:"experiments"`
	ValidExperiments []domain.ValidExperiment   `json:"valid_experiments" yaml:"valid_experiments"`
}

// NewConsole builds the console runtime from config.
func NewConsole(ctx context.Context, cfg *config.Config, log logger.Logger) (*Console, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	httpClient := httpclient.NewRestyClient(httpclient.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout,
		Logger:  log,
	})

	journal, err := storage.Opener(cfg.JournalType, cfg.JournalPath, storage.Options{
		EntryTTL:        cfg.JournalTTL,
		CleanupInterval: cfg.JournalCleanupInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("init journal: %w", err)
	}
	log.DebugObj("journal configured", "journal_config", map[string]any{
		"type":                     cfg.JournalType,
		"path":                     cfg.JournalPath,
		"entry_ttl_seconds":        int(cfg.JournalTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.JournalCleanupInterval.Seconds()),
	})

	fanout, err := buildFanout(ctx, cfg.NotifiersFile, log)
	if err != nil {
		return nil, err
	}

	return &Console{
		cfg:     cfg,
		api:     flotorch.NewClient(httpClient),
		journal: journal,
		fanout:  fanout,
		log:     log,
	}, nil
}

func buildFanout(ctx context.Context, path string, log logger.Logger) (*notifiers.Fanout, error) {
	if path == "" {
		return notifiers.NewFanout(nil), nil
	}

	reg, err := notifiers.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load notifiers registry: %w", err)
	}
	enabled := reg.Enabled()
	built, err := notifiers.BuildAll(ctx, notifiers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build notifiers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, n := range enabled {
		summaries = append(summaries, map[string]string{"id": n.ID, "type": n.Type})
	}
	log.DebugObj("notifiers registry loaded", "notifiers_meta", map[string]any{
		"count":     len(summaries),
		"notifiers": summaries,
	})
	return notifiers.NewFanout(built), nil
}

// API exposes the underlying client for callers that need an operation the console does not wrap.
func (c *Console) API() *flotorch.Client { return c.api }

func (c *Console) ListProjects(ctx context.Context, q *domain.ProjectsListQuery) ([]domain.ProjectListItem, error) {
	return c.api.ListProjects(ctx, q)
}

func (c *Console) GetProject(ctx context.Context, id string) (domain.Project, error) {
	return c.api.GetProject(ctx, id)
}

func (c *Console) ListExperiments(ctx context.Context, id string) ([]domain.ProjectExperiment, error) {
	return c.api.ListExperiments(ctx, id)
}

func (c *Console) GetExperiment(ctx context.Context, id, eid string) (domain.ProjectExperiment, error) {
	return c.api.GetExperiment(ctx, id, eid)
}

func (c *Console) ListValidExperiments(ctx context.Context, id string) ([]domain.ValidExperiment, error) {
	return c.api.ListValidExperiments(ctx, id)
}

func (c *Console) QuestionMetrics(ctx context.Context, id, eid string) (domain.QuestionMetrics, error) {
	return c.api.GetExperimentQuestionMetrics(ctx, id, eid)
}

// CreateProject creates an execution and journals the returned id.
func (c *Console) CreateProject(ctx context.Context, body map[string]any) (domain.ExecutionRef, error) {
	ref, err := c.api.CreateProject(ctx, body)
	if err != nil {
		return ref, err
	}
	c.recordLaunch(ctx, ref.ExecutionID, storage.ActionCreate, notifiers.NewEvent(notifiers.EventExecutionCreated, ref.ExecutionID, eventSource))
	return ref, nil
}

// ExecuteProject starts an execution. The path id is journaled when the response carries none.
func (c *Console) ExecuteProject(ctx context.Context, id string) (domain.ExecutionRef, error) {
	ref, err := c.api.ExecuteProject(ctx, id)
	if err != nil {
		return ref, err
	}
	execID := firstNonEmpty(ref.ExecutionID, id)
	c.recordLaunch(ctx, execID, storage.ActionExecute, notifiers.NewEvent(notifiers.EventExecutionStarted, execID, eventSource))
	return ref, nil
}

func (c *Console) CreateExperiments(ctx context.Context, id string, experiments []domain.ValidExperiment) (domain.ExecutionRef, error) {
	ref, err := c.api.CreateExperiments(ctx, id, experiments)
	if err != nil {
		return ref, err
	}
	execID := firstNonEmpty(ref.ExecutionID, id)
	evt := notifiers.NewEvent(notifiers.EventExperimentsCreated, execID, eventSource)
	evt.Experiments = len(experiments)
	c.recordLaunch(ctx, execID, storage.ActionCreateExperiments, evt)
	return ref, nil
}

// Overview fetches the project, its experiments and its valid experiments concurrently.
// The first failure cancels the remaining requests and is returned as is.
func (c *Console) Overview(ctx context.Context, id string) (Overview, error) {
	var out Overview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := c.api.GetProject(gctx, id)
		out.Project = p
		return err
	})
	g.Go(func() error {
		list, err := c.api.ListExperiments(gctx, id)
		out.Experiments = list
		return err
	})
	g.Go(func() error {
		list, err := c.api.ListValidExperiments(gctx, id)
		out.ValidExperiments = list
		return err
	})

	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return out, nil
}

// History lists the most recent journal entries, newest first.
func (c *Console) History(limit int) ([]storage.Entry, error) {
	store, err := c.journal()
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer c.closeJournal(store)

	entries, err := store.Recent(limit)
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	if entries == nil {
		entries = []storage.Entry{}
	}
	return entries, nil
}

// Close releases the notifiers.
func (c *Console) Close() error {
	if c == nil {
		return nil
	}
	if err := c.fanout.Close(); err != nil {
		return fmt.Errorf("close notifiers: %w", err)
	}
	return nil
}

func (c *Console) closeJournal(store storage.Store) {
	if err := store.Close(); err != nil {
		c.log.WarnObj("journal close failed", "error", err.Error())
	}
}

func (c *Console) recordLaunch(ctx context.Context, execID string, action storage.Action, evt notifiers.Event) {
	if execID == "" {
		c.log.WarnObj("launch response carried no execution id", "action", action)
		return
	}

	c.journalLaunch(execID, action)

	if c.fanout.Size() == 0 {
		return
	}
	delivered, err := c.fanout.Notify(ctx, evt)
	if err != nil {
		c.log.WarnObj("launch notification failed", "notify_error", map[string]any{
			"event_id":  evt.ID,
			"type":      evt.Type,
			"delivered": delivered,
			"error":     err.Error(),
		})
		return
	}
	c.log.DebugObj("launch notification delivered", "notify_result", map[string]any{
		"event_id":  evt.ID,
		"type":      evt.Type,
		"delivered": delivered,
	})
}

func (c *Console) journalLaunch(execID string, action storage.Action) {
	store, err := c.journal()
	if err == nil {
		err = store.Record(storage.Entry{ExecutionID: execID, Action: action, RecordedAt: time.Now().UTC()})
		c.closeJournal(store)
	}
	if err != nil {
		c.log.WarnObj("journal write failed", "journal_error", map[string]any{
			"execution_id": execID,
			"action":       action,
			"error":        err.Error(),
		})
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
