package grammar

// TerminalSet is the set of terminal symbols of a grammar.
type TerminalSet map[string]struct{}

// NewTerminalSet returns a set holding the given symbols. Duplicates collapse.
func NewTerminalSet(symbols ...string) TerminalSet {
	set := make(TerminalSet, len(symbols))

	for _, symbol := range symbols {
		set[symbol] = struct{}{}
	}

	return set
}

// Contains reports whether symbol is a terminal symbol.
func (set TerminalSet) Contains(symbol string) bool {
	_, ok := set[symbol]
	return ok
}

// IsTerminalOnly reports whether every Unicode scalar value of word is a terminal symbol.
// The empty word is terminal-only.
func (set TerminalSet) IsTerminalOnly(word string) bool {
	for _, r := range word {
		if !set.Contains(string(r)) {
			return false
		}
	}

	return true
}
