// Package global provides CLI global flags.
package global

import (
	"github.com/edwloef/chomsky/options"
	"github.com/urfave/cli/v2"
)

const (
	EnvVarPrefix = "CHOMSKY_"

	// Logs related flags.

	LogLevelFlagName  = "log-level"
	LogFormatFlagName = "log-format"
	NoColorFlagName   = "no-color"

	// Telemetry flags.

	TelemetryTraceExporterFlagName                  = "telemetry-trace-exporter"
	TelemetryTraceExporterInsecureEndpointFlagName  = "telemetry-trace-exporter-insecure-endpoint"
	TelemetryTraceExporterHTTPEndpointFlagName      = "telemetry-trace-exporter-http-endpoint"
	TraceparentFlagName                             = "traceparent"
	TelemetryMetricExporterFlagName                 = "telemetry-metric-exporter"
	TelemetryMetricExporterInsecureEndpointFlagName = "telemetry-metric-exporter-insecure-endpoint"

	logCategory       = "Logging"
	telemetryCategory = "Telemetry"
)

// EnvVars returns the environment variable names for a flag, e.g. `CHOMSKY_LOG_LEVEL` for `log-level`.
func EnvVars(flagName string) []string {
	return []string{EnvVarName(flagName)}
}

// NewFlags creates and returns global flags.
func NewFlags(opts *options.Options) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        LogLevelFlagName,
			Category:    logCategory,
			EnvVars:     EnvVars(LogLevelFlagName),
			Usage:       "Sets the logging level: error, warn, info, debug or trace.",
			Value:       opts.LogLevel,
			Destination: &opts.LogLevel,
		},
		&cli.StringFlag{
			Name:        LogFormatFlagName,
			Category:    logCategory,
			EnvVars:     EnvVars(LogFormatFlagName),
			Usage:       "Sets the log format: key-value or json.",
			Value:       opts.LogFormat,
			Destination: &opts.LogFormat,
		},
		&cli.BoolFlag{
			Name:        NoColorFlagName,
			Category:    logCategory,
			EnvVars:     EnvVars(NoColorFlagName),
			Usage:       "Disables color output.",
			Destination: &opts.NoColor,
		},
		&cli.StringFlag{
			Name:        TelemetryTraceExporterFlagName,
			Category:    telemetryCategory,
			EnvVars:     EnvVars(TelemetryTraceExporterFlagName),
			Usage:       "Enables traces export: none, console, otlpHttp, otlpGrpc or http.",
			Destination: &opts.Telemetry.TraceExporter,
		},
		&cli.StringFlag{
			Name:        TelemetryTraceExporterHTTPEndpointFlagName,
			Category:    telemetryCategory,
			EnvVars:     EnvVars(TelemetryTraceExporterHTTPEndpointFlagName),
			Usage:       "Endpoint of the http trace exporter.",
			Destination: &opts.Telemetry.TraceExporterHTTPEndpoint,
		},
		&cli.BoolFlag{
			Name:        TelemetryTraceExporterInsecureEndpointFlagName,
			Category:    telemetryCategory,
			EnvVars:     EnvVars(TelemetryTraceExporterInsecureEndpointFlagName),
			Usage:       "Uses an insecure connection for the trace exporter.",
			Destination: &opts.Telemetry.TraceExporterInsecureEndpoint,
		},
		&cli.StringFlag{
			Name:        TraceparentFlagName,
			Category:    telemetryCategory,
			EnvVars:     []string{"TRACEPARENT"},
			Usage:       "Continues the trace of a parent process, in W3C traceparent format.",
			Destination: &opts.Telemetry.TraceParent,
		},
		&cli.StringFlag{
			Name:        TelemetryMetricExporterFlagName,
			Category:    telemetryCategory,
			EnvVars:     EnvVars(TelemetryMetricExporterFlagName),
			Usage:       "Enables metrics export: none, console, otlpHttp or otlpGrpc.",
			Destination: &opts.Telemetry.MetricExporter,
		},
		&cli.BoolFlag{
			Name:        TelemetryMetricExporterInsecureEndpointFlagName,
			Category:    telemetryCategory,
			EnvVars:     EnvVars(TelemetryMetricExporterInsecureEndpointFlagName),
			Usage:       "Uses an insecure connection for the metric exporter.",
			Destination: &opts.Telemetry.MetricExporterInsecureEndpoint,
		},
	}
}
