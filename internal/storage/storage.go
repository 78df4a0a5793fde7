// Package storage keeps a local journal of executions launched from this console.
package storage

import (
	"fmt"
	"strings"
	"time"
)

// Action names what the console did to an execution.
type Action string

const (
	ActionCreate            Action = "create"
	ActionExecute           Action = "execute"
	ActionCreateExperiments Action = "create_experiments"
)

// Entry is one journal record.
type Entry struct {
	ExecutionID string    `json:"execution_id" yaml:"execution_id"`
	Action      Action    `json:"action" yaml:"action"`
	RecordedAt  time.Time `json:"recorded_at" yaml:"recorded_at"`
}

// Store records launches and lists the most recent ones.
type Store interface {
	Close() error
	Record(entry Entry) error
	Recent(limit int) ([]Entry, error)
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	EntryTTL        time.Duration
	CleanupInterval time.Duration
}

const (
	defaultEntryTTL        = 7 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

// Opener validates the configuration and returns a function that opens the
// store. Callers open it around each use so the bbolt file lock is held only
// while a journal operation runs and concurrent invocations do not block.
func Opener(typ, path string, opts Options) (func() (Store, error), error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	switch typ {
	case "", "none", "disabled":
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
	return func() (Store, error) { return NewStore(typ, path, opts) }, nil
}

func normalizeOptions(opts Options) Options {
	if opts.EntryTTL <= 0 {
		opts.EntryTTL = defaultEntryTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                { return nil }
func (noopStore) Record(Entry) error          { return nil }
func (noopStore) Recent(int) ([]Entry, error) { return nil, nil }
