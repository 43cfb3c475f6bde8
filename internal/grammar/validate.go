package grammar

import (
	"fmt"

	"github.com/edwloef/chomsky/internal/errors"
)

// ValidateAlphabet checks that the terminal and nonterminal declarations are disjoint and that the
// start word and every rule only use declared symbols. All violations are reported at once.
func ValidateAlphabet(desc *Description) error {
	var (
		terminals = NewTerminalSet(desc.TermSymbols...)
		alphabet  = NewTerminalSet(append(append([]string{}, desc.TermSymbols...), desc.VarSymbols...)...)
		errs      = &errors.MultiError{}
	)

	for _, symbol := range desc.VarSymbols {
		if terminals.Contains(symbol) {
			errs = errs.Append(OverlappingSymbolError{Symbol: symbol})
		}
	}

	check := func(where, word string) {
		for _, r := range word {
			if !alphabet.Contains(string(r)) {
				errs = errs.Append(UnknownSymbolError{Where: where, Word: word, Symbol: string(r)})
				return
			}
		}
	}

	check("start_symbol", desc.StartSymbol)

	for i, rule := range desc.Rules {
		check(fmt.Sprintf("rule #%d from", i), rule.From)
		check(fmt.Sprintf("rule #%d to", i), rule.To)
	}

	return errs.ErrorOrNil()
}
