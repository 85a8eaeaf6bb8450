package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kvolkava/roomcensus/pkg/roomcensus"
)

// writeRowsJSON renders one result set as an array of objects, one per
// row. Keys follow the result's column order, which encoding/json's map
// marshalling would not preserve, so objects are assembled by hand and
// only scalar values go through json.Marshal.
func writeRowsJSON(buf *bytes.Buffer, rs roomcensus.ResultSet) error {
	buf.WriteByte('[')
	for i, row := range rs.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, col := range rs.Columns {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, col); err != nil {
				return err
			}
			buf.WriteByte(':')

			var value any
			if j < len(row) {
				value = row[j]
			}
			encoded, err := json.Marshal(value)
			if err != nil {
				return fmt.Errorf("failed to encode column %q: %w", col, err)
			}
			buf.Write(encoded)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	encoded, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(encoded)
	return nil
}
