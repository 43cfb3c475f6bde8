package schema

import (
	"fmt"

	"github.com/edwloef/chomsky/internal/errors"
	"github.com/edwloef/chomsky/internal/grammar"
	"github.com/edwloef/chomsky/internal/report"
	"github.com/edwloef/chomsky/options"
)

// Run writes the schema named name to opts.Writer.
func Run(opts *options.Options, name string) error {
	switch name {
	case GrammarSchema:
		data, err := grammar.SchemaJSON()
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(opts.Writer, "%s\n", data); err != nil {
			return errors.New(err)
		}

		return nil
	case ReportSchema:
		return report.WriteSchema(opts.Writer)
	default:
		return errors.Errorf("unknown schema %q, expected %q or %q", name, GrammarSchema, ReportSchema)
	}
}
