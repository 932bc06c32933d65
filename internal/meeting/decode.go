package meeting

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON []byte

// ErrInvalid is returned when a document is not valid JSON or does not match
// the meeting schema.
var ErrInvalid = errors.New("invalid meeting document")

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// Schema returns the JSON Schema every extracted document must satisfy.
func Schema() json.RawMessage {
	return json.RawMessage(schemaJSON)
}

func compiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("meeting.json", bytes.NewReader(schemaJSON)); err != nil {
			compileErr = fmt.Errorf("failed to load meeting schema: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile("meeting.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("failed to compile meeting schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Validate checks raw JSON against the meeting schema without decoding it.
func Validate(raw []byte) error {
	schema, err := compiled()
	if err != nil {
		return err
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Decode validates raw JSON and decodes it into a Model. Null optional strings
// decode as "" and missing lists as empty lists.
func Decode(raw []byte) (*Model, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}

	var m Model
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	m.fillEmpty()
	return &m, nil
}
