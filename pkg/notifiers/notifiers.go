package notifiers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// Supported notifier types.
	TypeHTTP   = "http"
	TypeSQS    = "sqs"
	TypeSNS    = "sns"
	TypePubSub = "pubsub"

	httpDefaultMethod         = "POST"
	httpDefaultTimeoutSeconds = 5
)

// configFile represents the structure of the notifiers configuration file.
type configFile struct {
	Notifiers []NotifierConfig `json:"notifiers" yaml:"notifiers"`
}

// NotifierConfig represents a single notifier entry declared in config files.
type NotifierConfig struct {
	ID      string        `json:"id" yaml:"id"`
	Type    string        `json:"type" yaml:"type"`
	Enabled *bool         `json:"enabled" yaml:"enabled"`
	Events  []string      `json:"events" yaml:"events"`
	HTTP    *HTTPConfig   `json:"http" yaml:"http"`
	SQS     *SQSConfig    `json:"sqs" yaml:"sqs"`
	SNS     *SNSConfig    `json:"sns" yaml:"sns"`
	PubSub  *PubSubConfig `json:"pubsub" yaml:"pubsub"`
}

// HTTPConfig holds webhook settings.
type HTTPConfig struct {
	URL            string            `json:"url" yaml:"url"`
	Method         string            `json:"method" yaml:"method"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	TimeoutSeconds int               `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// SQSConfig holds AWS SQS settings.
type SQSConfig struct {
	QueueURL string `json:"uri" yaml:"uri"`
	Region   string `json:"region" yaml:"region"`
}

// SNSConfig holds AWS SNS settings.
type SNSConfig struct {
	TopicARN string `json:"topic_arn" yaml:"topic_arn"`
	Region   string `json:"region" yaml:"region"`
}

// PubSubConfig holds GCP Pub/Sub settings.
type PubSubConfig struct {
	ProjectID       string `json:"project_id" yaml:"project_id"`
	Topic           string `json:"topic" yaml:"topic"`
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file"`
}

// ConfigRegistry materializes notifier definitions loaded from config files.
type ConfigRegistry struct {
	notifiers []NotifierConfig
	idx       map[string]NotifierConfig
}

// LoadRegistry loads the notifier registry from a YAML/JSON file.
func LoadRegistry(path string) (*ConfigRegistry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("notifiers file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open notifiers file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read notifiers file: %w", err)
	}

	fileReg, err := parseNotifierRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	reg := &ConfigRegistry{
		notifiers: make([]NotifierConfig, len(fileReg.Notifiers)),
		idx:       make(map[string]NotifierConfig, len(fileReg.Notifiers)),
	}

	for i := range fileReg.Notifiers {
		cfg := sanitizeNotifierConfig(fileReg.Notifiers[i])
		if err := validateNotifierConfig(cfg); err != nil {
			return nil, fmt.Errorf("notifiers[%d]: %w", i, err)
		}
		if _, exists := reg.idx[cfg.ID]; exists {
			return nil, fmt.Errorf("duplicate notifier id %q", cfg.ID)
		}
		reg.notifiers[i] = cfg
		reg.idx[cfg.ID] = cfg
	}

	return reg, nil
}

// parseNotifierRegistry decodes the file by extension, trying every format when the extension is unknown.
func parseNotifierRegistry(data []byte, ext string) (configFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	known := false
	for _, d := range decoders {
		if ext == d.ext {
			known = true
		}
	}

	var errs []error
	for _, d := range decoders {
		if known && ext != d.ext {
			continue
		}
		var reg configFile
		if err := d.fn(data, &reg); err != nil {
			errs = append(errs, fmt.Errorf("decode %s notifiers: %w", d.name, err))
			continue
		}
		return reg, nil
	}

	return configFile{}, fmt.Errorf("notifiers file format not recognized (expected YAML or JSON): %w", errors.Join(errs...))
}

// sanitizeNotifierConfig trims and normalizes the notifier config fields.
func sanitizeNotifierConfig(cfg NotifierConfig) NotifierConfig {
	cfg.ID = strings.TrimSpace(cfg.ID)
	cfg.Type = strings.ToLower(strings.TrimSpace(cfg.Type))

	if cfg.Enabled == nil {
		def := true
		cfg.Enabled = &def
	}
	events := make([]string, 0, len(cfg.Events))
	for _, e := range cfg.Events {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			events = append(events, e)
		}
	}
	cfg.Events = events

	if cfg.HTTP != nil {
		c := *cfg.HTTP
		c.URL = strings.TrimSpace(c.URL)
		c.Method = strings.ToUpper(strings.TrimSpace(c.Method))
		if c.Method == "" {
			c.Method = httpDefaultMethod
		}
		c.Headers = sanitizeHeaders(c.Headers)
		if c.TimeoutSeconds <= 0 {
			c.TimeoutSeconds = httpDefaultTimeoutSeconds
		}
		cfg.HTTP = &c
	}
	if cfg.SQS != nil {
		c := *cfg.SQS
		c.QueueURL = strings.TrimSpace(c.QueueURL)
		c.Region = strings.TrimSpace(c.Region)
		cfg.SQS = &c
	}
	if cfg.SNS != nil {
		c := *cfg.SNS
		c.TopicARN = strings.TrimSpace(c.TopicARN)
		c.Region = strings.TrimSpace(c.Region)
		cfg.SNS = &c
	}
	if cfg.PubSub != nil {
		c := *cfg.PubSub
		c.ProjectID = strings.TrimSpace(c.ProjectID)
		c.Topic = strings.TrimSpace(c.Topic)
		c.CredentialsFile = strings.TrimSpace(c.CredentialsFile)
		cfg.PubSub = &c
	}

	return cfg
}

// sanitizeHeaders trims and removes empty headers.
func sanitizeHeaders(headers map[string]string) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		key := strings.TrimSpace(k)
		val := strings.TrimSpace(v)
		if key == "" || val == "" {
			continue
		}
		out[key] = val
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// validateNotifierConfig checks that required fields are present.
func validateNotifierConfig(cfg NotifierConfig) error {
	if cfg.ID == "" {
		return errors.New("id is required")
	}
	switch cfg.Type {
	case "":
		return fmt.Errorf("type is required for notifier %q", cfg.ID)
	case TypeHTTP:
		if cfg.HTTP == nil || cfg.HTTP.URL == "" {
			return fmt.Errorf("http.url is required for notifier %q", cfg.ID)
		}
	case TypeSQS:
		if cfg.SQS == nil || cfg.SQS.QueueURL == "" {
			return fmt.Errorf("sqs.uri is required for notifier %q", cfg.ID)
		}
		if cfg.SQS.Region == "" {
			return fmt.Errorf("sqs.region is required for notifier %q", cfg.ID)
		}
	case TypeSNS:
		if cfg.SNS == nil || cfg.SNS.TopicARN == "" {
			return fmt.Errorf("sns.topic_arn is required for notifier %q", cfg.ID)
		}
		if cfg.SNS.Region == "" {
			return fmt.Errorf("sns.region is required for notifier %q", cfg.ID)
		}
	case TypePubSub:
		if cfg.PubSub == nil || cfg.PubSub.ProjectID == "" || cfg.PubSub.Topic == "" {
			return fmt.Errorf("pubsub.project_id and pubsub.topic are required for notifier %q", cfg.ID)
		}
	}
	return nil
}

// All returns all configured notifiers.
func (r *ConfigRegistry) All() []NotifierConfig {
	if r == nil {
		return nil
	}
	out := make([]NotifierConfig, len(r.notifiers))
	copy(out, r.notifiers)
	return out
}

// Enabled returns notifiers that are enabled.
func (r *ConfigRegistry) Enabled() []NotifierConfig {
	all := r.All()
	if len(all) == 0 {
		return nil
	}

	out := make([]NotifierConfig, 0, len(all))
	for _, cfg := range all {
		if cfg.EnabledValue() {
			out = append(out, cfg)
		}
	}
	return out
}

// EnabledValue returns enabled flag defaulting to true.
func (cfg NotifierConfig) EnabledValue() bool {
	if cfg.Enabled == nil {
		return true
	}
	return *cfg.Enabled
}

// Wants reports whether the notifier subscribes to the event type. No filter means every event.
func (cfg NotifierConfig) Wants(eventType string) bool {
	if len(cfg.Events) == 0 {
		return true
	}
	eventType = strings.ToLower(eventType)
	for _, e := range cfg.Events {
		if e == eventType {
			return true
		}
	}
	return false
}
