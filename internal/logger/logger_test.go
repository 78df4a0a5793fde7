package logger

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/flotorch/console-client/internal/config"
)

var _ Logger = (*NopLogger)(nil)

func TestInitSetsPackageLogger(t *testing.T) {
	t.Cleanup(func() { S = nil; iface = &NopLogger{} })

	log, err := Init(&config.Config{AppName: "test", Env: "test", LogLevel: "debug"})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if S == nil {
		t.Fatalf("expected package logger to be set")
	}
	if !S.Desugar().Core().Enabled(-1) {
		t.Fatalf("debug level should be enabled")
	}
	log.InfoObj("logger ready", "meta", map[string]any{"ok": true})
}

func TestHelpersAreSafeBeforeInit(t *testing.T) {
	S = nil
	InfoObj("ignored", "k", 1)
	ErrorObj("ignored", "k", 1)
	if err := Close(); err != nil {
		t.Fatalf("Close before Init: %v", err)
	}
}

func TestPackageLoggerReportsCallSite(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	var log Logger = newPackageLogger(zap.New(core, zap.AddCaller()))

	log.InfoObj("through interface", "k", 1)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	caller := entries[0].Caller
	if !caller.Defined || filepath.Base(caller.File) != "logger_test.go" {
		t.Fatalf("caller should be the test file, got %s", caller.String())
	}
}

func TestZapBeforeInitIsNop(t *testing.T) {
	if _, ok := Zap().(*NopLogger); !ok {
		t.Fatalf("expected NopLogger before Init, got %T", Zap())
	}
}
