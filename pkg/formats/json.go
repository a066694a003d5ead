package formats

import (
	"bytes"
	"io"
	"math"
	"strconv"
	"time"

	gojson "github.com/goccy/go-json"

	"github.com/VikaVinogradova/PM-24-6/pkg/errors"
	"github.com/VikaVinogradova/PM-24-6/pkg/table"
)

type jsonCodec struct{}

type jsonDocument struct {
	Columns []string     `json:"columns"`
	Rows    [][]jsonCell `json:"rows"`
}

// jsonCell sets exactly one field. Timestamps are RFC 3339 strings.
type jsonCell struct {
	Text      *string    `json:"s,omitempty"`
	Int       *int64     `json:"i,omitempty"`
	Float     *jsonFloat `json:"f,omitempty"`
	Timestamp *string    `json:"t,omitempty"`
}

// jsonFloat is a float64 that survives JSON. Finite values are numbers; NaN
// and the infinities, which JSON cannot represent, are the strings "NaN",
// "+Inf" and "-Inf".
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func (f *jsonFloat) UnmarshalJSON(data []byte) error {
	text := string(bytes.Trim(data, `"`))
	quoted := len(text) != len(data)
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return err
	}
	if quoted && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return errors.Newf(errors.ErrorTypeData, "quoted float cell %s is finite", data)
	}
	*f = jsonFloat(v)
	return nil
}

func (c *jsonCodec) Format() Format { return JSON }

func (c *jsonCodec) Encode(w io.Writer, columns []string, rows []table.Row) error {
	doc := jsonDocument{
		Columns: columns,
		Rows:    make([][]jsonCell, len(rows)),
	}
	if doc.Columns == nil {
		doc.Columns = []string{}
	}
	for i, row := range rows {
		cells := make([]jsonCell, len(row))
		for j, v := range row {
			cells[j] = toJSONCell(v)
		}
		doc.Rows[i] = cells
	}

	if err := gojson.NewEncoder(w).Encode(doc); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write JSON document")
	}
	return nil
}

func (c *jsonCodec) Decode(r io.Reader) ([]string, []table.Row, error) {
	var doc jsonDocument
	if err := gojson.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrorTypeData, "failed to decode JSON document")
	}

	rows := make([]table.Row, len(doc.Rows))
	for i, cells := range doc.Rows {
		row := make(table.Row, len(cells))
		for j, cell := range cells {
			v, err := fromJSONCell(cell)
			if err != nil {
				return nil, nil, err.WithDetail("row", i).WithDetail("column", j)
			}
			row[j] = v
		}
		rows[i] = row
	}
	return doc.Columns, rows, nil
}

func toJSONCell(v table.Value) jsonCell {
	switch v.Kind() {
	case table.KindInt:
		n, _ := v.AsInt()
		return jsonCell{Int: &n}
	case table.KindFloat:
		f, _ := v.AsFloat()
		jf := jsonFloat(f)
		return jsonCell{Float: &jf}
	case table.KindTimestamp:
		ts, _ := v.AsTime()
		s := ts.Format(time.RFC3339Nano)
		return jsonCell{Timestamp: &s}
	default:
		s, _ := v.AsText()
		return jsonCell{Text: &s}
	}
}

func fromJSONCell(cell jsonCell) (table.Value, *errors.Error) {
	switch {
	case cell.Int != nil:
		return table.Int(*cell.Int), nil
	case cell.Float != nil:
		return table.Float(float64(*cell.Float)), nil
	case cell.Timestamp != nil:
		ts, err := time.Parse(time.RFC3339Nano, *cell.Timestamp)
		if err != nil {
			return table.Value{}, errors.Wrap(err, errors.ErrorTypeData, "invalid timestamp cell")
		}
		return table.Timestamp(ts), nil
	case cell.Text != nil:
		return table.Text(*cell.Text), nil
	default:
		return table.Value{}, errors.New(errors.ErrorTypeData, "empty JSON cell")
	}
}
