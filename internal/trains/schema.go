package trains

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/trainreg/internal/utils"
)

// BundledSchemaName is the resource name of the built-in schema.
const BundledSchemaName = "trains.schema.json"

// bundledSchema is the built-in trains file schema.
const bundledSchema = `{
    "$schema": "https://json-schema.org/draft/2020-12/schema",
    "title": "Train departures",
    "type": "array",
    "items": {
        "type": "object",
        "properties": {
            "название пункта назначения": { "type": "string" },
            "номер поезда": { "type": "string" },
            "время отправления": { "type": "string", "pattern": "^\\d{2}:\\d{2}$" }
        },
        "required": ["название пункта назначения", "номер поезда", "время отправления"]
    }
}
`

// BundledSchema returns the built-in schema JSON content.
func BundledSchema() []byte {
	return []byte(bundledSchema)
}

// Validator checks decoded trains documents against a JSON Schema.
type Validator struct {
	schema *jsonschema.Schema
	source string
}

// NewValidator compiles the schema at schemaPath, or the bundled schema when
// schemaPath is empty.
func NewValidator(schemaPath string) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	if schemaPath == "" {
		if err := compiler.AddResource(BundledSchemaName, strings.NewReader(bundledSchema)); err != nil {
			return nil, fmt.Errorf("add bundled schema: %w", err)
		}
		schema, err := compiler.Compile(BundledSchemaName)
		if err != nil {
			return nil, fmt.Errorf("compile bundled schema: %w", err)
		}
		return &Validator{schema: schema, source: "bundled"}, nil
	}

	absPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("invalid schema path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return nil, fmt.Errorf("stat schema file: %w", err)
	}
	schema, err := compiler.Compile(absPath)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", absPath, err)
	}
	return &Validator{schema: schema, source: absPath}, nil
}

// Source returns "bundled" or the absolute path of the schema file.
func (v *Validator) Source() string {
	return v.source
}

// ValidateJSON decodes data and validates it. Syntax errors are returned
// as-is; schema violations as ValidationErrors.
func (v *Validator) ValidateJSON(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse trains file: %w", err)
	}
	return v.Validate(doc)
}

// Validate checks a document produced by json.Unmarshal into an interface{}.
func (v *Validator) Validate(doc interface{}) error {
	err := v.schema.Validate(doc)
	if err == nil {
		return nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}

	var errs ValidationErrors
	collectSchemaErrors(&errs, ve)
	if len(errs) == 0 {
		errs = append(errs, &ValidationError{Index: -1, Err: fmt.Errorf("%s", ve.Message)})
	}
	sort.SliceStable(errs, func(i, j int) bool {
		if errs[i].Index != errs[j].Index {
			return errs[i].Index < errs[j].Index
		}
		return errs[i].Path < errs[j].Path
	})
	return errs
}

func collectSchemaErrors(result *ValidationErrors, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		*result = append(*result, &ValidationError{
			Index: recordIndex(err.InstanceLocation),
			Path:  utils.JSONPointerToPath(err.InstanceLocation),
			Err:   fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// recordIndex extracts the array index from an instance location like
// "/3/номер поезда".
func recordIndex(ptr string) int {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return -1
	}
	first, _, _ := strings.Cut(ptr, "/")
	idx, err := strconv.Atoi(first)
	if err != nil {
		return -1
	}
	return idx
}
