package grammar

import (
	"fmt"
	"strings"
)

// EmptyPatternError is returned when a rule has an empty source pattern.
type EmptyPatternError struct {
	Index int
	To    string
}

func (err EmptyPatternError) Error() string {
	return fmt.Sprintf("rule #%d (\"\" -> %q): source pattern must not be empty", err.Index, err.To)
}

// SchemaValidationError lists every schema violation of a JSON grammar description.
type SchemaValidationError struct {
	Errors []string
}

func (err *SchemaValidationError) Error() string {
	return "grammar description does not match the schema:\n- " + strings.Join(err.Errors, "\n- ")
}

// UnknownSymbolError is returned by strict validation when a word uses a scalar that is
// declared neither as terminal nor as nonterminal symbol.
type UnknownSymbolError struct {
	// Where names the offending word, e.g. `start_symbol` or `rule #2 from`.
	Where  string
	Word   string
	Symbol string
}

func (err UnknownSymbolError) Error() string {
	return fmt.Sprintf("%s %q: symbol %q is not declared in var_symbols or term_symbols", err.Where, err.Word, err.Symbol)
}

// OverlappingSymbolError is returned by strict validation when a symbol is declared both as
// terminal and as nonterminal.
type OverlappingSymbolError struct {
	Symbol string
}

func (err OverlappingSymbolError) Error() string {
	return fmt.Sprintf("symbol %q is declared in both var_symbols and term_symbols", err.Symbol)
}

// PanicWhileParsingError is returned when the HCL parser panics on malformed input.
type PanicWhileParsingError struct {
	RecoveredValue any
	Path           string
}

func (err PanicWhileParsingError) Error() string {
	return fmt.Sprintf("recovered panic while parsing %q: %v", err.Path, err.RecoveredValue)
}
