// Package payload reads request bodies for the mutating API calls from YAML or
// JSON files. The output of "experiments valid" can be fed back unchanged.
package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/flotorch/console-client/internal/domain"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

type decoder struct {
	name string
	exts []string
	fn   func([]byte, any) error
}

var decoders = []decoder{
	{name: "json", exts: []string{".json"}, fn: json.Unmarshal},
	{name: "yaml", exts: []string{".yaml", ".yml"}, fn: yaml.Unmarshal},
}

// LoadProject reads a create-project body. An empty document yields an empty object.
func LoadProject(path string, stdin io.Reader) (map[string]any, error) {
	var body map[string]any
	if err := load(path, stdin, &body); err != nil {
		return nil, fmt.Errorf("load project body: %w", err)
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, nil
}

// LoadExperiments reads a list of experiment configurations. An empty document yields an empty list.
func LoadExperiments(path string, stdin io.Reader) ([]domain.ValidExperiment, error) {
	var list []domain.ValidExperiment
	if err := load(path, stdin, &list); err != nil {
		return nil, fmt.Errorf("load experiments: %w", err)
	}
	if list == nil {
		list = []domain.ValidExperiment{}
	}
	return list, nil
}

func load(path string, stdin io.Reader, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("file path is empty")
	}

	var (
		raw []byte
		err error
	)
	if path == Stdin {
		if stdin == nil {
			return errors.New("stdin is not available")
		}
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}
	return decode(raw, filepath.Ext(path), out)
}

// decode picks the decoder by extension; unknown extensions try JSON first, then YAML.
func decode(data []byte, ext string, out any) error {
	ext = strings.ToLower(ext)
	for _, d := range decoders {
		for _, e := range d.exts {
			if e == ext {
				if err := d.fn(data, out); err != nil {
					return fmt.Errorf("decode %s: %w", d.name, err)
				}
				return nil
			}
		}
	}

	var errs []error
	for _, d := range decoders {
		if err := d.fn(data, out); err != nil {
			errs = append(errs, fmt.Errorf("decode %s: %w", d.name, err))
			continue
		}
		return nil
	}
	return fmt.Errorf("format not recognized (expected YAML or JSON): %w", errors.Join(errs...))
}
