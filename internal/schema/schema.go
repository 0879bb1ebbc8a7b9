// Package schema validates todoforge documents against embedded JSON Schemas.
package schema

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/todoforge/internal/store"
	"github.com/nibzard/todoforge/internal/todo"
	"github.com/nibzard/todoforge/internal/utils"
)

var (
	//go:embed todo.schema.json
	todoSchemaSource string

	//go:embed config.schema.json
	configSchemaSource string
)

const (
	todoSchemaURL   = "https://todoforge.dev/schema/todo.schema.json"
	configSchemaURL = "https://todoforge.dev/schema/config.schema.json"
)

var (
	compileOnce   sync.Once
	todoSchema    *jsonschema.Schema
	configSchema  *jsonschema.Schema
	compileErr    error
	generatedIDRe = regexp.MustCompile(`^[0-9a-f]{40}$`)
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // dotted path to the offending value
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid    bool
	Errors   []error
	Warnings []string
}

func newResult() *ValidationResult {
	return &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}
}

func (r *ValidationResult) fail(path string, err error) {
	r.Valid = false
	r.Errors = append(r.Errors, &ValidationError{Path: path, Err: err})
}

// Err joins all errors of the result, or returns nil when it is valid.
func (r *ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return errors.Join(r.Errors...)
}

func compile() error {
	compileOnce.Do(func() {
		todoSchema, compileErr = jsonschema.CompileString(todoSchemaURL, todoSchemaSource)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile %s: %w", todoSchemaURL, compileErr)
			return
		}
		configSchema, compileErr = jsonschema.CompileString(configSchemaURL, configSchemaSource)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile %s: %w", configSchemaURL, compileErr)
		}
	})
	return compileErr
}

// ValidateTodos checks a space document. Duplicate ids and ids that were
// not generated by todoforge are reported as warnings.
func ValidateTodos(doc store.Document) *ValidationResult {
	result, _ := validate(todoSchemaURL, doc)
	if !result.Valid {
		return result
	}

	c, err := todo.FromDocument(doc)
	if err != nil {
		result.fail("", err)
		return result
	}

	seen := make(map[string]int, c.Len())
	for i, t := range c.Todos {
		path := fmt.Sprintf("todos[%d].id", i)
		if first, ok := seen[t.ID]; ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: duplicate id %q (first seen at todos[%d])", path, t.ID, first))
			continue
		}
		seen[t.ID] = i
		if !generatedIDRe.MatchString(t.ID) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: %q is not a %d character hex id", path, t.ID, todo.IDLength))
		}
	}
	return result
}

// ValidateConfig checks the global configuration document. A current
// space that is missing from the list of spaces is an error.
func ValidateConfig(doc store.Document) *ValidationResult {
	result, obj := validate(configSchemaURL, doc)
	if !result.Valid {
		return result
	}

	fields, _ := obj.(map[string]any)
	current, _ := fields[store.FieldCurrentSpace].(string)
	list, _ := fields[store.FieldSpaces].([]any)

	known := make(map[string]bool, len(list))
	for i, v := range list {
		name, _ := v.(string)
		if known[name] {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("spaces[%d]: duplicate space %q", i, name))
		}
		known[name] = true
	}

	if current != "" && !known[current] {
		result.fail(store.FieldCurrentSpace, fmt.Errorf("space %q is not listed in spaces", current))
	}
	return result
}

func validate(url string, doc store.Document) (*ValidationResult, any) {
	result := newResult()
	if err := compile(); err != nil {
		result.fail("", err)
		return result, nil
	}
	s := todoSchema
	if url == configSchemaURL {
		s = configSchema
	}

	// Normalize Go-built documents to generic JSON values.
	data, err := json.Marshal(doc)
	if err != nil {
		result.fail("", fmt.Errorf("marshal document for validation: %w", err))
		return result, nil
	}
	var obj any
	if err := json.Unmarshal(data, &obj); err != nil {
		result.fail("", fmt.Errorf("unmarshal document for validation: %w", err))
		return result, nil
	}

	if err := s.Validate(obj); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
	return result, obj
}

func appendSchemaErrors(result *ValidationResult, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}
