package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Presence checks for the two /analyze shapes. They only pin down the fields
// used to tell the shapes apart; everything else is pass-through.
var (
	structuredShape = map[string]any{
		"type":     "object",
		"required": []any{"success"},
		"properties": map[string]any{
			"success":  map[string]any{"type": "boolean"},
			"analysis": map[string]any{"type": []any{"object", "null"}},
			"error":    map[string]any{"type": []any{"string", "null"}},
		},
	}

	reportShape = map[string]any{
		"type":     "object",
		"required": []any{"score"},
		"properties": map[string]any{
			"score":             map[string]any{"type": []any{"number", "object"}},
			"mistakes":          map[string]any{"type": "array"},
			"detailed_feedback": map[string]any{"type": "array"},
			"positive_points":   map[string]any{"type": "array"},
			"next_steps":        map[string]any{"type": "array"},
		},
	}

	errorShape = map[string]any{
		"type":     "object",
		"required": []any{"error"},
		"properties": map[string]any{
			"error": map[string]any{"type": "string"},
		},
	}
)

var (
	compileOnce sync.Once
	compiled    map[string]*jsonschema.Schema
	compileErr  error
)

// detectShape reports which /analyze shape raw matches.
func detectShape(raw []byte) (ResponseKind, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return 0, &InvalidResponseError{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schemas, err := shapeSchemas()
	if err != nil {
		return 0, &InvalidResponseError{Content: raw, Err: err}
	}

	if schemas["structured"].Validate(parsed) == nil {
		return KindStructured, nil
	}
	if schemas["report"].Validate(parsed) == nil {
		return KindReport, nil
	}
	if schemas["error"].Validate(parsed) == nil {
		msg, _ := parsed.(map[string]any)["error"].(string)
		return 0, &AnalysisFailedError{Message: msg}
	}
	return 0, &InvalidResponseError{Content: raw, Err: errors.New("body matches no known analysis shape")}
}

func shapeSchemas() (map[string]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		defs := map[string]map[string]any{
			"structured": structuredShape,
			"report":     reportShape,
			"error":      errorShape,
		}
		compiled = make(map[string]*jsonschema.Schema, len(defs))
		for name, def := range defs {
			s, err := compileShape(name, def)
			if err != nil {
				compileErr = err
				return
			}
			compiled[name] = s
		}
	})
	return compiled, compileErr
}

func compileShape(name string, def map[string]any) (*jsonschema.Schema, error) {
	// The compiler expects a parsed JSON value, so round-trip the Go map.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal %s schema: %w", name, err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse %s schema: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://codeval/%s.json", name)
	if err := c.AddResource(url, defParsed); err != nil {
		return nil, fmt.Errorf("add %s schema: %w", name, err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", name, err)
	}
	return s, nil
}
