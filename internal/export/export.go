// Package export serializes query results to result.json or result.xml.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kvolkava/roomcensus/pkg/roomcensus"
)

// Writer serializes result sets and writes the export file into dir
// (the working directory by default).
type Writer struct {
	dir string
}

// NewWriter creates a Writer that writes result.<format> into the current
// working directory.
func NewWriter() *Writer {
	return &Writer{dir: "."}
}

// NewWriterInDir creates a Writer that writes into dir. Used by tests.
func NewWriterInDir(dir string) *Writer {
	return &Writer{dir: dir}
}

// Export serializes results to the requested format and writes
// result.<format>, overwriting any existing file of the same name.
// Returns the written file path.
//
// The format is checked before anything is written: an unsupported format
// produces ErrUnsupportedFormat and no output file.
func (w *Writer) Export(results []roomcensus.NamedResult, format string) (string, error) {
	format = strings.ToLower(format)

	var (
		data []byte
		err  error
	)
	switch format {
	case roomcensus.FormatJSON:
		data, err = marshalJSON(results)
	case roomcensus.FormatXML:
		data, err = marshalXML(results)
	default:
		return "", fmt.Errorf("%s is not supported as output file format: %w", format, roomcensus.ErrUnsupportedFormat)
	}
	if err != nil {
		return "", err
	}

	path := filepath.Join(w.dir, roomcensus.ResultFilePrefix+"."+format)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// marshalJSON renders results as literal JSON.
//
// A single result set becomes an array of objects, one per row, keys in
// column order. Multiple result sets become an array of one-key objects,
// each mapping the query name to its row array, preserving execution order.
func marshalJSON(results []roomcensus.NamedResult) ([]byte, error) {
	var buf bytes.Buffer

	if len(results) == 1 {
		if err := writeRowsJSON(&buf, results[0].Result); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	buf.WriteByte('[')
	for i, nr := range results {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		if err := writeJSONString(&buf, nr.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeRowsJSON(&buf, nr.Result); err != nil {
			return nil, err
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}
