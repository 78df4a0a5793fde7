package notifiers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadRegistryYAML(t *testing.T) {
	path := writeFile(t, "notifiers.yaml", `
notifiers:
  - id: " hook "
    type: HTTP
    events: [" Execution.Started ", ""]
    http:
      url: https://hooks.example.com/flotorch
      headers:
        X-Token: abc
        "": dropped
  - id: queue
    type: sqs
    enabled: false
    sqs:
      uri: https://sqs.us-east-1.amazonaws.com/1/launches
      region: us-east-1
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	all := reg.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 notifiers, got %d", len(all))
	}

	hook := all[0]
	if hook.ID != "hook" || hook.Type != TypeHTTP {
		t.Fatalf("id/type not sanitized: %#v", hook)
	}
	if hook.HTTP.Method != "POST" || hook.HTTP.TimeoutSeconds != 5 {
		t.Fatalf("http defaults not applied: %#v", hook.HTTP)
	}
	if len(hook.HTTP.Headers) != 1 {
		t.Fatalf("empty header keys should be dropped: %#v", hook.HTTP.Headers)
	}
	if !hook.Wants(EventExecutionStarted) || hook.Wants(EventExecutionCreated) {
		t.Fatalf("event filter not applied: %#v", hook.Events)
	}

	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "hook" {
		t.Fatalf("expected only hook enabled, got %#v", enabled)
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	path := writeFile(t, "notifiers.json", `{"notifiers":[{"id":"gcp","type":"pubsub","pubsub":{"project_id":"p","topic":"t"}}]}`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if got := reg.Enabled(); len(got) != 1 || got[0].PubSub.Topic != "t" {
		t.Fatalf("unexpected registry %#v", got)
	}
}

func TestLoadRegistryValidation(t *testing.T) {
	cases := map[string]string{
		"missing id":     "notifiers:\n  - type: http\n    http:\n      url: https://x\n",
		"missing url":    "notifiers:\n  - id: a\n    type: http\n",
		"missing region": "notifiers:\n  - id: a\n    type: sns\n    sns:\n      topic_arn: arn\n",
		"duplicate id":   "notifiers:\n  - id: a\n    type: http\n    http:\n      url: https://x\n  - id: a\n    type: http\n    http:\n      url: https://y\n",
	}
	for name, body := range cases {
		t.Run(strings.ReplaceAll(name, " ", "_"), func(t *testing.T) {
			if _, err := LoadRegistry(writeFile(t, "n.yaml", body)); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoadRegistryEmptyPath(t *testing.T) {
	if _, err := LoadRegistry("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
