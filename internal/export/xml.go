package export

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/kvolkava/roomcensus/pkg/roomcensus"
)

// marshalXML renders results as an XML document.
//
// A single result set becomes a <result> root with one <row> child per
// row and the row's columns as nested elements. Multiple result sets get
// an intermediate <query name="..."> element per catalog query. An empty
// result set yields a root element with no row children.
func marshalXML(results []roomcensus.NamedResult) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)

	root := xml.StartElement{Name: xml.Name{Local: "result"}}
	if err := enc.EncodeToken(root); err != nil {
		return nil, err
	}

	if len(results) == 1 {
		if err := encodeRows(enc, results[0].Result); err != nil {
			return nil, err
		}
	} else {
		for _, nr := range results {
			query := xml.StartElement{
				Name: xml.Name{Local: "query"},
				Attr: []xml.Attr{{Name: xml.Name{Local: "name"}, Value: nr.Name}},
			}
			if err := enc.EncodeToken(query); err != nil {
				return nil, err
			}
			if err := encodeRows(enc, nr.Result); err != nil {
				return nil, err
			}
			if err := enc.EncodeToken(query.End()); err != nil {
				return nil, err
			}
		}
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeRows(enc *xml.Encoder, rs roomcensus.ResultSet) error {
	for _, row := range rs.Rows {
		rowStart := xml.StartElement{Name: xml.Name{Local: "row"}}
		if err := enc.EncodeToken(rowStart); err != nil {
			return err
		}
		for j, col := range rs.Columns {
			colStart := xml.StartElement{Name: xml.Name{Local: col}}
			if err := enc.EncodeToken(colStart); err != nil {
				return err
			}
			if j < len(row) && row[j] != nil {
				text := fmt.Sprintf("%v", row[j])
				if err := enc.EncodeToken(xml.CharData(text)); err != nil {
					return err
				}
			}
			if err := enc.EncodeToken(colStart.End()); err != nil {
				return err
			}
		}
		if err := enc.EncodeToken(rowStart.End()); err != nil {
			return err
		}
	}
	return nil
}
