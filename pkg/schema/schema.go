package schema

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed manifest.schema.json
var manifestSchemaJSON []byte

// ValidationError represents a single schema violation
type ValidationError struct {
	Field   string
	Message string
}

// Error collects every violation found in a document
type Error struct {
	Errors []ValidationError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, v := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "schema violation: " + strings.Join(parts, "; ")
}

var (
	compileOnce    sync.Once
	manifestSchema *gojsonschema.Schema
	compileErr     error
)

func compiled() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		manifestSchema, compileErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(manifestSchemaJSON))
	})
	return manifestSchema, compileErr
}

// ValidateManifest checks raw manifest JSON against the embedded schema.
// Syntax errors are returned as-is; schema violations as *Error.
func ValidateManifest(data []byte) error {
	s, err := compiled()
	if err != nil {
		return fmt.Errorf("failed to compile manifest schema: %w", err)
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}

	verr := &Error{}
	for _, re := range result.Errors() {
		field := re.Field()
		if field == "" || field == "(root)" {
			field = "root"
		}
		verr.Errors = append(verr.Errors, ValidationError{Field: field, Message: re.Description()})
	}
	return verr
}
