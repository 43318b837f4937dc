package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed precommit.schema.json
var embeddedSchemaData []byte

const schemaResource = "pre-commit-config.json"

// Embedded returns the raw JSON Schema for pre-commit documents.
func Embedded() []byte {
	out := make([]byte, len(embeddedSchemaData))
	copy(out, embeddedSchemaData)
	return out
}

// Violation is a single schema failure located by a JSON pointer.
type Violation struct {
	Pointer string `json:"pointer"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	loc := v.Pointer
	if loc == "" {
		loc = "/"
	}
	return fmt.Sprintf("%s: %s", loc, v.Message)
}

// Validator validates documents against the embedded JSON Schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator creates a new schema validator, loading the embedded schema.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(schemaResource, strings.NewReader(string(embeddedSchemaData))); err != nil {
		return nil, fmt.Errorf("failed to add embedded schema resource: %w", err)
	}

	schema, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile embedded schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// Validate checks data against the schema and returns a single error
// listing every violation.
func (v *Validator) Validate(data interface{}) error {
	violations, err := v.Violations(data)
	if err != nil {
		return err
	}
	if len(violations) == 0 {
		return nil
	}
	messages := make([]string, 0, len(violations))
	for _, violation := range violations {
		messages = append(messages, "- "+violation.String())
	}
	return fmt.Errorf("schema validation failed:\n%s", strings.Join(messages, "\n"))
}

// Violations checks data against the schema. data may be any value that
// marshals to JSON; it is normalised through a JSON round trip first.
// Violations are sorted by pointer.
func (v *Validator) Violations(data interface{}) ([]Violation, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document to JSON for validation: %w", err)
	}

	var dataToValidate interface{}
	if err := json.Unmarshal(jsonData, &dataToValidate); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON for validation: %w", err)
	}

	err = v.schema.Validate(dataToValidate)
	if err == nil {
		return nil, nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var violations []Violation
	collectLeaves(validationErr, &violations)
	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].Pointer < violations[j].Pointer
	})
	return violations, nil
}

// collectLeaves gathers the most specific failures; intermediate nodes
// only repeat "doesn't validate with" for their children.
func collectLeaves(err *jsonschema.ValidationError, out *[]Violation) {
	if len(err.Causes) == 0 {
		*out = append(*out, Violation{Pointer: err.InstanceLocation, Message: err.Message})
		return
	}
	for _, cause := range err.Causes {
		collectLeaves(cause, out)
	}
}
