package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaRegistry compiles each named schema once.
type schemaRegistry struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

var schemas = &schemaRegistry{compiled: make(map[string]*jsonschema.Schema)}

func (r *schemaRegistry) lookup(name string) (*jsonschema.Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.compiled[name]
	return s, ok
}

func (r *schemaRegistry) get(schema *Schema) (*jsonschema.Schema, error) {
	if s, ok := r.lookup(schema.Name); ok {
		return s, nil
	}

	raw, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	url := "mem://intervue/" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.compiled[schema.Name] = compiled
	r.mu.Unlock()
	return compiled, nil
}

// validateResponse checks raw against schema. A nil schema accepts anything.
// Every failure is an *ErrInvalidResponse.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	body := bytes.TrimSpace(raw)
	if len(body) == 0 {
		return &ErrInvalidResponse{Content: raw, Err: errors.New("empty reply")}
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("reply is not JSON: %w", err)}
	}

	compiled, err := schemas.get(schema)
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("compile schema %q: %w", schema.Name, err)}
	}
	if err := compiled.Validate(inst); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("reply does not match %s: %w", schema.Name, err)}
	}
	return nil
}

// normalizeJSON strips whitespace and a surrounding markdown code fence,
// which some models add around JSON even in structured mode.
func normalizeJSON(raw json.RawMessage) json.RawMessage {
	body := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(body, []byte("```")) {
		return body
	}
	body = bytes.TrimPrefix(body, []byte("```"))
	if nl := bytes.IndexByte(body, '\n'); nl >= 0 {
		// Drop the language tag line ("json").
		body = body[nl+1:]
	}
	body = bytes.TrimSuffix(bytes.TrimSpace(body), []byte("```"))
	return bytes.TrimSpace(body)
}
