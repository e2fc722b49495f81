package trains

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// StoreOptions controls how trains files are loaded.
type StoreOptions struct {
	// Validate checks loaded documents against a JSON Schema.
	Validate bool
	// SchemaPath is the JSON Schema file used when Validate is set.
	// If empty, the bundled schema is used.
	SchemaPath string
}

// Store reads and writes trains files.
type Store struct {
	validator *Validator
}

// NewStore creates a store. The schema is compiled once, up front.
func NewStore(opts StoreOptions) (*Store, error) {
	s := &Store{}
	if opts.Validate {
		v, err := NewValidator(opts.SchemaPath)
		if err != nil {
			return nil, err
		}
		s.validator = v
	}
	return s, nil
}

// Validating reports whether loads are schema-checked.
func (s *Store) Validating() bool {
	return s.validator != nil
}

// Validator returns the schema validator, or nil when validation is off.
func (s *Store) Validator() *Validator {
	return s.validator
}

// Load reads and parses a trains file from path.
//
// A missing file yields an empty, non-nil slice together with an error
// matching ErrNotFound. Any other failure returns a nil slice.
func (s *Store) Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Record{}, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("read trains file: %w", err)
	}

	if s.validator != nil {
		if err := s.validator.ValidateJSON(data); err != nil {
			return nil, err
		}
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse trains file: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// Save writes records to path with 4-space indentation, replacing any
// existing file.
func (s *Store) Save(path string, records []Record) error {
	var buf bytes.Buffer
	if err := Encode(&buf, records); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write trains file: %w", err)
	}

	return nil
}

// Encode writes records as a JSON array without escaping non-ASCII or HTML
// characters.
func Encode(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("marshal trains file: %w", err)
	}
	return nil
}
