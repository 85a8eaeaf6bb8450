package roomcensus

// Exporter serializes query results to an output file.
type Exporter interface {
	// Export writes results to "result.<format>" in the working directory,
	// overwriting any existing file of the same name. Returns the written
	// file path, or an error wrapping ErrUnsupportedFormat for any format
	// other than "json" or "xml".
	Export(results []NamedResult, format string) (string, error)
}
