package telemetry

import "fmt"

// MissingEndpointError is returned when an exporter needs an endpoint that was not configured.
type MissingEndpointError struct {
	Exporter string
	EnvVar   string
}

func (err MissingEndpointError) Error() string {
	return fmt.Sprintf("%s exporter requires an endpoint, set %s", err.Exporter, err.EnvVar)
}

// UnsupportedExporterError is returned for an unknown exporter name.
type UnsupportedExporterError struct {
	Signal string
	Name   string
}

func (err UnsupportedExporterError) Error() string {
	return fmt.Sprintf("unsupported %s exporter %q", err.Signal, err.Name)
}
