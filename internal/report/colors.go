package report

import (
	"fmt"
	"time"

	"github.com/mgutz/ansi"
)

// Colorizer is a colorizer for the run summary output.
type Colorizer struct {
	headingTitleColorizer func(string) string
	headingCountColorizer func(string) string
	fixpointColorizer     func(string) string
	cappedColorizer       func(string) string
	labelColorizer        func(string) string
	valueColorizer        func(string) string
	nanosecondColorizer   func(string) string
	microsecondColorizer  func(string) string
	millisecondColorizer  func(string) string
	secondColorizer       func(string) string
	minuteColorizer       func(string) string
	defaultColorizer      func(string) string
}

// NewColorizer creates a new Colorizer.
func NewColorizer(shouldColor bool) *Colorizer {
	if !shouldColor {
		noColor := func(s string) string { return s }

		return &Colorizer{
			headingTitleColorizer: noColor,
			headingCountColorizer: noColor,
			fixpointColorizer:     noColor,
			cappedColorizer:       noColor,
			labelColorizer:        noColor,
			valueColorizer:        noColor,
			nanosecondColorizer:   noColor,
			microsecondColorizer:  noColor,
			millisecondColorizer:  noColor,
			secondColorizer:       noColor,
			minuteColorizer:       noColor,
			defaultColorizer:      noColor,
		}
	}

	return &Colorizer{
		headingTitleColorizer: ansi.ColorFunc("yellow+bh"),
		headingCountColorizer: ansi.ColorFunc("white+bh"),
		fixpointColorizer:     ansi.ColorFunc("green+bh"),
		cappedColorizer:       ansi.ColorFunc("yellow+bh"),
		labelColorizer:        ansi.ColorFunc("blue+h"),
		valueColorizer:        ansi.ColorFunc("white+h"),
		nanosecondColorizer:   ansi.ColorFunc("cyan+bh"),
		microsecondColorizer:  ansi.ColorFunc("cyan+bh"),
		millisecondColorizer:  ansi.ColorFunc("cyan+bh"),
		secondColorizer:       ansi.ColorFunc("green+bh"),
		minuteColorizer:       ansi.ColorFunc("yellow+bh"),
		defaultColorizer:      ansi.ColorFunc("white+bh"),
	}
}

// colorDuration returns the duration as a string, colored based on the duration.
func (c *Colorizer) colorDuration(duration time.Duration) string {
	if duration < 0 {
		return c.defaultColorizer("N/A")
	}

	if duration < time.Microsecond {
		return c.nanosecondColorizer(fmt.Sprintf("%dns", duration.Nanoseconds()))
	}

	if duration < time.Millisecond {
		return c.microsecondColorizer(fmt.Sprintf("%dµs", duration.Microseconds()))
	}

	if duration < time.Second {
		return c.millisecondColorizer(fmt.Sprintf("%dms", duration.Milliseconds()))
	}

	if duration < time.Minute {
		return c.secondColorizer(fmt.Sprintf("%ds", int(duration.Seconds())))
	}

	return c.minuteColorizer(fmt.Sprintf("%dm", int(duration.Minutes())))
}
