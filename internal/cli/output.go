package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

type printer struct {
	format string
	w      io.Writer
}

func newPrinter(format string, w io.Writer) (*printer, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "", formatJSON:
		return &printer{format: formatJSON, w: w}, nil
	case formatYAML, "yml":
		return &printer{format: formatYAML, w: w}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (use json or yaml)", format)
	}
}

func (p *printer) Print(v any) error {
	if p.format == formatYAML {
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
