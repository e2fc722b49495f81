package trains

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// JSON field names of the persisted format.
const (
	FieldDestination   = "название пункта назначения"
	FieldTrainNumber   = "номер поезда"
	FieldDepartureTime = "время отправления"
)

// ErrNotFound is returned by Store.Load when the trains file does not exist.
var ErrNotFound = errors.New("trains file not found")

// Record is a single train departure entry.
type Record struct {
	Destination   string `json:"название пункта назначения"`
	TrainNumber   string `json:"номер поезда"`
	DepartureTime string `json:"время отправления"`
}

// Registry is an ordered collection of records, sorted by destination.
type Registry struct {
	records []Record
}

// NewRegistry creates a registry holding records, sorted by destination.
func NewRegistry(records ...Record) *Registry {
	r := &Registry{}
	r.Replace(records)
	return r
}

// Add appends a record built from the given fields and re-sorts the registry.
// Inputs are accepted as-is.
func (r *Registry) Add(destination, trainNumber, departureTime string) Record {
	rec := Record{
		Destination:   destination,
		TrainNumber:   trainNumber,
		DepartureTime: departureTime,
	}
	r.records = append(r.records, rec)
	sortByDestination(r.records)
	return rec
}

// Records returns a copy of the records in registry order.
func (r *Registry) Records() []Record {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Len returns the number of records.
func (r *Registry) Len() int {
	return len(r.records)
}

// Select returns the records departing at or after searchTime, in registry
// order. The result is empty (not nil) when nothing matches.
func (r *Registry) Select(searchTime string) []Record {
	return SelectFrom(r.records, searchTime)
}

// Replace discards the current records and takes ownership of a sorted copy
// of records.
func (r *Registry) Replace(records []Record) {
	r.records = make([]Record, len(records))
	copy(r.records, records)
	sortByDestination(r.records)
}

// SelectFrom filters records by departure time without reordering them.
func SelectFrom(records []Record, searchTime string) []Record {
	result := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.DepartureTime >= searchTime {
			result = append(result, rec)
		}
	}
	return result
}

func sortByDestination(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Destination < records[j].Destination
	})
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Index int    // Record index, or -1 for document-level errors
	Path  string // JSON path to the error location
	Err   error  // Underlying error
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

// ValidationErrors lists every schema violation of a document, ordered by
// record index.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	switch len(e) {
	case 0:
		return "validation failed"
	case 1:
		return "validation failed: " + e[0].Error()
	}
	return fmt.Sprintf("validation failed: %s (and %d more)", e[0], len(e)-1)
}

// Lines returns one message per violation.
func (e ValidationErrors) Lines() []string {
	lines := make([]string, 0, len(e))
	for _, ve := range e {
		lines = append(lines, ve.Error())
	}
	return lines
}

// String renders the errors one per line.
func (e ValidationErrors) String() string {
	return strings.Join(e.Lines(), "\n")
}
