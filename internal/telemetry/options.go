package telemetry

// Options configure the trace and metric exporters. Both are disabled by default.
type Options struct {
	// TraceExporter is one of `none`, `console`, `otlpHttp`, `otlpGrpc` or `http`.
	TraceExporter string
	// TraceExporterHTTPEndpoint is the endpoint of the `http` trace exporter.
	TraceExporterHTTPEndpoint string
	// TraceParent continues an existing trace, in W3C `traceparent` format.
	TraceParent string
	// MetricExporter is one of `none`, `console`, `otlpHttp` or `otlpGrpc`.
	MetricExporter string

	TraceExporterInsecureEndpoint  bool
	MetricExporterInsecureEndpoint bool
}
