// Package grammar provides the immutable model of a semi-Thue system: the start word, the terminal
// symbols and the ordered rewrite rules with their compiled matchers. Descriptions are decoded from
// JSON or HCL files and compiled into a Grammar before any derivation begins.
package grammar

import (
	"context"
	"runtime"
	"unicode/utf8"

	"github.com/edwloef/chomsky/internal/errors"
	"github.com/edwloef/chomsky/internal/matcher"
	"github.com/edwloef/chomsky/pkg/log"
	"golang.org/x/sync/errgroup"
)

// Rule is a compiled `from -> to` rewrite rule.
type Rule struct {
	matcher *matcher.Matcher
	from    string
	to      string
}

// NewRule compiles a rule. The source pattern must not be empty.
func NewRule(from, to string) (*Rule, error) {
	m, err := matcher.New(from)
	if err != nil {
		return nil, errors.New(err)
	}

	return &Rule{matcher: m, from: from, to: to}, nil
}

// From returns the source pattern.
func (rule *Rule) From() string {
	return rule.from
}

// To returns the replacement.
func (rule *Rule) To() string {
	return rule.to
}

// Apply appends to dst one derived word per non-overlapping occurrence of the source pattern in word.
func (rule *Rule) Apply(dst []string, word string) []string {
	return rule.matcher.Rewrite(dst, word, rule.to)
}

func (rule *Rule) String() string {
	return rule.from + " -> " + rule.to
}

// Grammar is a compiled grammar. It is read-only after Compile returns. Distinct rules may be
// applied concurrently; a single rule may not.
type Grammar struct {
	terminals   TerminalSet
	start       string
	varSymbols  []string
	termSymbols []string
	rules       []*Rule
}

// New returns a grammar built from already compiled rules.
func New(start string, termSymbols, varSymbols []string, rules ...*Rule) *Grammar {
	return &Grammar{
		terminals:   NewTerminalSet(termSymbols...),
		start:       start,
		varSymbols:  varSymbols,
		termSymbols: termSymbols,
		rules:       rules,
	}
}

// Start returns the start word.
func (grammar *Grammar) Start() string {
	return grammar.start
}

// TermSymbols returns the declared terminal symbols in declaration order.
func (grammar *Grammar) TermSymbols() []string {
	return grammar.termSymbols
}

// VarSymbols returns the declared nonterminal symbols in declaration order.
func (grammar *Grammar) VarSymbols() []string {
	return grammar.varSymbols
}

// Rules returns the rules in declaration order.
func (grammar *Grammar) Rules() []*Rule {
	return grammar.rules
}

// IsTerminalOnly reports whether word consists of terminal symbols only.
func (grammar *Grammar) IsTerminalOnly(word string) bool {
	return grammar.terminals.IsTerminalOnly(word)
}

// Options configure Compile and Load.
type Options struct {
	Logger      log.Logger
	Concurrency int
	Strict      bool
}

// Option is a functional option of Compile and Load.
type Option func(*Options)

// WithLogger sets the logger used to report compile warnings.
func WithLogger(logger log.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithConcurrency limits the number of rules compiled at once.
func WithConcurrency(concurrency int) Option {
	return func(opts *Options) {
		opts.Concurrency = concurrency
	}
}

// WithStrict enables validation of every word against the declared alphabet.
func WithStrict(strict bool) Option {
	return func(opts *Options) {
		opts.Strict = strict
	}
}

func newOptions(opts ...Option) *Options {
	options := &Options{
		Logger:      log.Default(),
		Concurrency: runtime.NumCPU(),
	}

	for _, opt := range opts {
		opt(options)
	}

	if options.Concurrency <= 0 {
		options.Concurrency = 1
	}

	return options
}

// Compile validates desc and compiles its rules. Rules keep their declaration order.
func Compile(ctx context.Context, desc *Description, opts ...Option) (*Grammar, error) {
	options := newOptions(opts...)

	for i, rule := range desc.Rules {
		if rule.From == "" {
			return nil, errors.New(EmptyPatternError{Index: i, To: rule.To})
		}
	}

	for _, symbol := range desc.TermSymbols {
		if utf8.RuneCountInString(symbol) != 1 {
			options.Logger.Warnf("Terminal symbol %q is not a single scalar value and can never be matched by classification", symbol)
		}
	}

	if options.Strict {
		if err := ValidateAlphabet(desc); err != nil {
			return nil, err
		}
	}

	rules := make([]*Rule, len(desc.Rules))

	group, _ := errgroup.WithContext(ctx)
	group.SetLimit(options.Concurrency)

	for i, ruleDesc := range desc.Rules {
		group.Go(func() error {
			rule, err := NewRule(ruleDesc.From, ruleDesc.To)
			if err != nil {
				return errors.Errorf("rule #%d: %w", i, err)
			}

			rules[i] = rule

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	options.Logger.Debugf("Compiled %d rules, %d terminal symbols", len(rules), len(desc.TermSymbols))

	return New(desc.StartSymbol, desc.TermSymbols, desc.VarSymbols, rules...), nil
}

// Load reads and compiles the grammar description at path.
func Load(ctx context.Context, path string, opts ...Option) (*Grammar, error) {
	desc, err := ParseFile(path)
	if err != nil {
		return nil, errors.Errorf("failed to load grammar %s: %w", path, err)
	}

	grammar, err := Compile(ctx, desc, opts...)
	if err != nil {
		return nil, errors.Errorf("failed to compile grammar %s: %w", path, err)
	}

	return grammar, nil
}
