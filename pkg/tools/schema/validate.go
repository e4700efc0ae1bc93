package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Validator checks tool arguments against JSON Schema documents.
// Documents are registered under a name and compiled on first use.
type Validator struct {
	mu       sync.RWMutex
	docs     map[string]json.RawMessage
	compiled map[string]*jsonschema.Schema
}

// NewValidator creates a new Validator with no schemas.
func NewValidator() *Validator {
	return &Validator{
		docs:     make(map[string]json.RawMessage),
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// Register stores the schema document for name, replacing any earlier one.
func (v *Validator) Register(name string, doc json.RawMessage) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.docs[name] = doc
	delete(v.compiled, name)
}

// Validate validates payload against the schema registered for name.
// A name without a schema, or an empty schema, accepts anything.
func (v *Validator) Validate(name string, payload map[string]any) error {
	compiled, err := v.compile(name)
	if err != nil {
		return fmt.Errorf("failed to compile schema %q: %w", name, err)
	}
	if compiled == nil {
		return nil
	}
	if payload == nil {
		payload = map[string]any{}
	}

	if err := compiled.Validate(payload); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return errors.New(flatten(ve.Error()))
		}
		return err
	}
	return nil
}

func (v *Validator) compile(name string) (*jsonschema.Schema, error) {
	v.mu.RLock()
	if s, ok := v.compiled[name]; ok {
		v.mu.RUnlock()
		return s, nil
	}
	doc, ok := v.docs[name]
	v.mu.RUnlock()

	if !ok || len(doc) == 0 || string(doc) == "{}" || string(doc) == "null" {
		return nil, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	// Double-check after acquiring write lock
	if s, ok := v.compiled[name]; ok {
		return s, nil
	}

	schemaDoc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(doc)))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema: %w", err)
	}

	url := name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, schemaDoc); err != nil {
		return nil, fmt.Errorf("failed to add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile: %w", err)
	}

	v.compiled[name] = compiled
	return compiled, nil
}

// flatten turns the library's multi-line report into one line:
// "at '/brightness': maximum: got 1.5, want 1; ...".
func flatten(report string) string {
	lines := strings.Split(report, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "jsonschema validation failed") {
			continue
		}
		out = append(out, strings.TrimPrefix(line, "- "))
	}
	if len(out) == 0 {
		return report
	}
	return strings.Join(out, "; ")
}
