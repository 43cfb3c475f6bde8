package report

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

const (
	prefix              = "   "
	runSummaryHeader    = "❯❯ Derivation Summary"
	generationsLabel    = "Generations"
	wordsLabel          = "Words"
	largestLabel        = "Largest frontier"
	stopLabel           = "Stopped at"
	fixpointValue       = "fixpoint"
	cappedValue         = "iteration cap"
	separatorLineLength = 34
	labelColumnWidth    = 20
)

// Summary formats data from a report for output as a summary.
type Summary struct {
	Grammar         string
	Iterations      int
	Words           int
	LargestFrontier int
	Fixpoint        bool
	report          *Report
	shouldColor     bool
}

// Summarize returns a summary of the report.
func (r *Report) Summarize() *Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summary := &Summary{
		Grammar:     r.Grammar,
		Iterations:  r.Iterations,
		Words:       len(r.Words),
		Fixpoint:    r.Fixpoint,
		report:      r,
		shouldColor: r.shouldColor,
	}

	for _, generation := range r.Generations {
		summary.LargestFrontier = max(summary.LargestFrontier, generation.Frontier)
	}

	return summary
}

// WriteSummary writes the summary to a writer.
func (r *Report) WriteSummary(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "\n"); err != nil {
		return err
	}

	if err := r.Summarize().Write(w); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n")

	return err
}

// Write writes the summary to a writer.
func (s *Summary) Write(w io.Writer) error {
	colorizer := NewColorizer(s.shouldColor)

	header := fmt.Sprintf("%s  %s  %s",
		colorizer.headingTitleColorizer(runSummaryHeader),
		colorizer.headingCountColorizer(s.Grammar),
		colorizer.colorDuration(s.report.Duration()),
	)
	if _, err := fmt.Fprintf(w, "%s\n", header); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s%s\n", prefix, strings.Repeat("─", separatorLineLength)); err != nil {
		return err
	}

	stop := colorizer.cappedColorizer(cappedValue)
	if s.Fixpoint {
		stop = colorizer.fixpointColorizer(fixpointValue)
	}

	entries := []struct {
		label string
		value string
	}{
		{generationsLabel, colorizer.valueColorizer(strconv.Itoa(s.Iterations))},
		{wordsLabel, colorizer.valueColorizer(strconv.Itoa(s.Words))},
		{largestLabel, colorizer.valueColorizer(strconv.Itoa(s.LargestFrontier))},
		{stopLabel, stop},
	}

	for _, entry := range entries {
		label := colorizer.labelColorizer(entry.label)
		if _, err := fmt.Fprintf(w, "%s%s%s%s\n", prefix, label, padding(label), entry.value); err != nil {
			return err
		}
	}

	return nil
}

// ansiRegex is used to remove ANSI escape codes from strings.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// visualLength calculates the visual length of a string by removing ANSI escape codes.
func visualLength(text string) int {
	return len([]rune(ansiRegex.ReplaceAllString(text, "")))
}

func padding(label string) string {
	return strings.Repeat(" ", max(labelColumnWidth-visualLength(label), 2))
}
