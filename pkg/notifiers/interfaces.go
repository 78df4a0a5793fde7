package notifiers

import "context"

// Notifier delivers events to a downstream sink (webhook, SQS, SNS, Pub/Sub).
type Notifier interface {
	ID() string
	Type() string
	Notify(ctx context.Context, evt Event) error
	Close() error
}

// Logger defines the logging surface notifiers rely on.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) InfoObj(string, string, interface{})  {}
func (noopLogger) DebugObj(string, string, interface{}) {}
func (noopLogger) WarnObj(string, string, interface{})  {}
func (noopLogger) ErrorObj(string, string, interface{}) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return noopLogger{}
	}
	return log
}
