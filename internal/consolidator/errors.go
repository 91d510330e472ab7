package consolidator

// ConfigurationError reports an invalid consolidation request, such as a
// date range whose start falls after its end. It is the only error the
// engine itself produces; malformed source data degrades softly at the
// reducer layer instead.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuracion invalida: " + e.Reason
}
