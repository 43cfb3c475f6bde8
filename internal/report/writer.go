package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/edwloef/chomsky/internal/closure"
	"github.com/edwloef/chomsky/internal/errors"
	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"
)

const (
	// csvFieldCount is the expected number of fields in a CSV report row.
	csvFieldCount = 2
	// csvRowOffset accounts for the 0-indexed loop and the skipped header row.
	csvRowOffset = 2

	schemaID = "https://github.com/edwloef/chomsky/schemas/report/v1/schema.json"
)

// JSONGeneration represents the statistics of one generation in JSON format.
type JSONGeneration struct {
	// Index is the 1-based number of the generation.
	Index int `json:"Index" jsonschema:"required,minimum=1"`
	// Frontier is the number of words the rules were applied to.
	Frontier int `json:"Frontier" jsonschema:"required,minimum=0"`
	// Derived is the number of derived words before deduplication.
	Derived int `json:"Derived" jsonschema:"required,minimum=0"`
	// Next is the size of the following frontier.
	Next int `json:"Next" jsonschema:"required,minimum=0"`
	// Results is the size of the result set after the generation.
	Results int `json:"Results" jsonschema:"required,minimum=0"`
}

// JSONReport represents a run in JSON format.
type JSONReport struct {
	// Started is the time when the run started.
	Started time.Time `json:"Started" jsonschema:"required"`
	// Ended is the time when the run ended.
	Ended time.Time `json:"Ended" jsonschema:"required"`
	// MaxIters is the iteration cap, absent when the run was not capped.
	MaxIters *int `json:"MaxIters,omitempty" jsonschema:"minimum=0"`
	// RunID identifies the run.
	RunID string `json:"RunID" jsonschema:"required,format=uuid"`
	// Grammar is the path of the grammar description.
	Grammar string `json:"Grammar" jsonschema:"required"`
	// Scheduler is the scheduler that executed the generations.
	Scheduler string `json:"Scheduler,omitempty" jsonschema:"enum=sequential,enum=parallel"`
	// Words are the terminal words in lexical order.
	Words []string `json:"Words" jsonschema:"required"`
	// Generations are the per-generation statistics.
	Generations []JSONGeneration `json:"Generations,omitempty"`
	// Iterations is the number of generations processed.
	Iterations int `json:"Iterations" jsonschema:"required,minimum=0"`
	// Fixpoint reports whether the frontier was exhausted.
	Fixpoint bool `json:"Fixpoint"`
}

// ParseJSONReport parses a JSON report from a byte slice.
func ParseJSONReport(data []byte) (*JSONReport, error) {
	report := new(JSONReport)
	if err := json.Unmarshal(data, report); err != nil {
		return nil, errors.Errorf("failed to parse JSON report: %w", err)
	}

	return report, nil
}

// CSVWord represents a word parsed from a CSV report.
type CSVWord struct {
	Word   string
	Length int
}

// ParseCSVWords parses a CSV report from a byte slice. The first row is expected to be a header
// row and is skipped.
func ParseCSVWords(data []byte) ([]CSVWord, error) {
	reader := csv.NewReader(bytes.NewReader(data))

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Errorf("failed to parse CSV report: %w", err)
	}

	if len(records) < 1 {
		return []CSVWord{}, nil
	}

	words := make([]CSVWord, 0, len(records)-1)

	for i, record := range records[1:] {
		if len(record) < csvFieldCount {
			return nil, errors.Errorf("invalid CSV record at row %d: expected %d fields, got %d", i+csvRowOffset, csvFieldCount, len(record))
		}

		length, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, errors.Errorf("invalid CSV record at row %d: %w", i+csvRowOffset, err)
		}

		words = append(words, CSVWord{Word: record[0], Length: length})
	}

	return words, nil
}

// ValidateJSONReport validates a JSON report against the schema.
// Returns nil if valid, or a SchemaValidationError with details if invalid.
func ValidateJSONReport(data []byte) error {
	schemaBytes, err := json.Marshal(Schema())
	if err != nil {
		return errors.Errorf("failed to generate schema: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return errors.Errorf("failed to validate report: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, len(result.Errors()))
		for i, validationErr := range result.Errors() {
			msgs[i] = validationErr.String()
		}

		return errors.New(&SchemaValidationError{Errors: msgs})
	}

	return nil
}

// ValidateJSONReportFromFile reads and validates a JSON report file against the schema.
func ValidateJSONReportFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Errorf("failed to read report file %s: %w", path, err)
	}

	return ValidateJSONReport(data)
}

// WriteToFile writes the report in its configured format to path. The file is written to a
// temporary file in the same directory first and renamed, so path never holds a partial report.
func (r *Report) WriteToFile(path string) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".chomsky-report-*")
	if err != nil {
		return errors.New(err)
	}

	defer os.Remove(tmpFile.Name()) //nolint:errcheck

	if err := r.Write(tmpFile); err != nil {
		tmpFile.Close() //nolint:errcheck
		return errors.Errorf("failed to write report: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return errors.Errorf("failed to close report file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), path); err != nil {
		return errors.New(err)
	}

	return nil
}

// Write writes the report in its configured format.
func (r *Report) Write(w io.Writer) error {
	switch r.format {
	case FormatText:
		return r.WriteText(w)
	case FormatJSON:
		return r.WriteJSON(w)
	case FormatCSV:
		return r.WriteCSV(w)
	default:
		return errors.New(UnsupportedFormatError{Name: string(r.format)})
	}
}

// WriteText writes the iteration count followed by one quoted word per line.
func (r *Report) WriteText(w io.Writer) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, err := fmt.Fprintf(w, "iterations: %d\n", r.Iterations); err != nil {
		return errors.New(err)
	}

	for _, word := range r.Words {
		if _, err := fmt.Fprintf(w, "%q\n", word); err != nil {
			return errors.New(err)
		}
	}

	return nil
}

// WriteCSV writes one row per word with the word and its length in symbols.
func (r *Report) WriteCSV(w io.Writer) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write([]string{"Word", "Length"}); err != nil {
		return errors.New(err)
	}

	for _, word := range r.Words {
		if err := csvWriter.Write([]string{word, strconv.Itoa(utf8.RuneCountInString(word))}); err != nil {
			return errors.New(err)
		}
	}

	csvWriter.Flush()

	if err := csvWriter.Error(); err != nil {
		return errors.New(err)
	}

	return nil
}

// WriteJSON writes the report as an indented JSON document.
func (r *Report) WriteJSON(w io.Writer) error {
	jsonBytes, err := json.MarshalIndent(r.toJSON(), "", "  ")
	if err != nil {
		return errors.New(err)
	}

	jsonBytes = append(jsonBytes, '\n')

	if _, err := w.Write(jsonBytes); err != nil {
		return errors.New(err)
	}

	return nil
}

func (r *Report) toJSON() *JSONReport {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report := &JSONReport{
		RunID:      r.RunID.String(),
		Started:    r.Started,
		Ended:      r.Ended,
		Grammar:    r.Grammar,
		Scheduler:  r.Scheduler,
		Iterations: r.Iterations,
		Fixpoint:   r.Fixpoint,
		Words:      r.Words,
	}

	if report.Words == nil {
		report.Words = []string{}
	}

	if r.MaxIters != closure.NoLimit {
		maxIters := r.MaxIters
		report.MaxIters = &maxIters
	}

	for _, generation := range r.Generations {
		report.Generations = append(report.Generations, JSONGeneration(generation))
	}

	return report
}

// WriteSchema writes the JSON schema of the report to a writer.
func WriteSchema(w io.Writer) error {
	jsonBytes, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return errors.New(err)
	}

	jsonBytes = append(jsonBytes, '\n')

	if _, err := w.Write(jsonBytes); err != nil {
		return errors.New(err)
	}

	return nil
}

// Schema returns the JSON schema of the report.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}

	schema := reflector.Reflect(&JSONReport{})
	schema.ID = schemaID
	schema.Title = "Derivation Report"
	schema.Description = "Terminal words derived from a grammar and the statistics of every generation"

	return schema
}
