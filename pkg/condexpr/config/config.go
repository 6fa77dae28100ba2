// Package config loads engine invocation documents from YAML or JSON
// files. It is host-glue convenience only: the engine itself performs
// no I/O and holds no configuration beyond the per-invocation flag
// set.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/condexpr/pkg/condexpr"
)

// Invocation is an engine invocation described as a document: the
// subject value, the conditions expression, and the optional
// variables block and flag tokens.
type Invocation struct {
	Value      any      `yaml:"value" json:"value"`
	Conditions string   `yaml:"conditions" json:"conditions"`
	Variables  string   `yaml:"variables,omitempty" json:"variables,omitempty"`
	Flags      []string `yaml:"flags,omitempty" json:"flags,omitempty"`
}

// Request converts the document into an engine request.
func (inv Invocation) Request() condexpr.Request {
	return condexpr.Request{
		Value:      inv.Value,
		Conditions: inv.Conditions,
		Variables:  inv.Variables,
		Flags:      inv.Flags,
	}
}

// FromFile loads an invocation document from a file, auto-detecting
// the format by extension. Supported extensions: .yaml, .yml, .json
func FromFile(path string) (Invocation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Invocation{}, fmt.Errorf("read invocation file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return Invocation{}, fmt.Errorf("unsupported invocation file extension: %s", ext)
	}
}

// FromYAML parses YAML data into an Invocation.
func FromYAML(data []byte) (Invocation, error) {
	var inv Invocation
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return Invocation{}, fmt.Errorf("parse yaml: %w", err)
	}
	return inv, nil
}

// FromJSON parses JSON data into an Invocation.
func FromJSON(data []byte) (Invocation, error) {
	var inv Invocation
	if err := json.Unmarshal(data, &inv); err != nil {
		return Invocation{}, fmt.Errorf("parse json: %w", err)
	}
	return inv, nil
}
