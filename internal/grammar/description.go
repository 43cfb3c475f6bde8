package grammar

// Description is the plain, decoded form of a grammar description file. It carries no compiled
// state; Compile turns it into a Grammar.
type Description struct {
	// VarSymbols are the nonterminal symbols. They are informational unless strict validation is enabled.
	VarSymbols []string `json:"var_symbols" hcl:"var_symbols" jsonschema:"description=Nonterminal symbols"`
	// TermSymbols are the terminal symbols, the alphabet of the reported words.
	TermSymbols []string `json:"term_symbols" hcl:"term_symbols" jsonschema:"description=Terminal symbols"`
	// StartSymbol is the initial word.
	StartSymbol string `json:"start_symbol" hcl:"start_symbol" jsonschema:"description=Initial word of every derivation"`
	// Rules are the rewrite rules, in declaration order.
	Rules []RuleDescription `json:"rules" hcl:"rule,block" jsonschema:"description=Rewrite rules"`
}

// RuleDescription is a single `from -> to` rewrite rule.
type RuleDescription struct {
	From string `json:"from" hcl:"from" jsonschema:"description=Pattern replaced by the rule"`
	To   string `json:"to" hcl:"to" jsonschema:"description=Replacement of a single occurrence of the pattern"`
}
