package formats

import (
	"io"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/linkedin/goavro/v2"

	"github.com/VikaVinogradova/PM-24-6/pkg/errors"
	"github.com/VikaVinogradova/PM-24-6/pkg/table"
)

// avroColumnsKey holds the JSON-encoded column list in the OCF header. Column
// names are free text and cannot be Avro field names.
const avroColumnsKey = "tabula.columns"

// avroRowSchema stores each row as an array of tagged cells so that mixed
// columns keep the kind of every individual value.
const avroRowSchema = `{
  "type": "record",
  "name": "Row",
  "namespace": "tabula",
  "fields": [
    {"name": "cells", "type": {"type": "array", "items": {
      "type": "record",
      "name": "Cell",
      "fields": [
        {"name": "kind", "type": {"type": "enum", "name": "Kind", "symbols": ["TEXT", "INT", "FLOAT", "TIMESTAMP"]}},
        {"name": "int", "type": "long", "default": 0},
        {"name": "float", "type": "double", "default": 0},
        {"name": "text", "type": "string", "default": ""}
      ]
    }}}
  ]
}`

type avroCodec struct {
	codec           *goavro.Codec
	compressionName string
}

func newAvroCodec(compressionName string) (*avroCodec, error) {
	codec, err := goavro.NewCodec(avroRowSchema)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "failed to create Avro codec")
	}
	return &avroCodec{
		codec:           codec,
		compressionName: getAvroCompression(compressionName),
	}, nil
}

func (c *avroCodec) Format() Format { return Avro }

func (c *avroCodec) Encode(w io.Writer, columns []string, rows []table.Row) error {
	header, err := gojson.Marshal(columns)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to encode column list")
	}

	ocfWriter, err := goavro.NewOCFWriter(goavro.OCFConfig{
		W:               w,
		Codec:           c.codec,
		CompressionName: c.compressionName,
		MetaData:        map[string][]byte{avroColumnsKey: header},
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to create Avro writer")
	}

	if len(rows) == 0 {
		return nil
	}
	natives := make([]interface{}, len(rows))
	for i, row := range rows {
		natives[i] = rowToAvroNative(row)
	}
	if err := ocfWriter.Append(natives); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write Avro rows")
	}
	return nil
}

func (c *avroCodec) Decode(r io.Reader) ([]string, []table.Row, error) {
	ocfReader, err := goavro.NewOCFReader(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrorTypeData, "failed to open Avro container")
	}

	header, ok := ocfReader.MetaData()[avroColumnsKey]
	if !ok {
		return nil, nil, errors.Newf(errors.ErrorTypeData, "Avro container has no %s metadata", avroColumnsKey)
	}
	var columns []string
	if err := gojson.Unmarshal(header, &columns); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrorTypeData, "failed to decode column list")
	}

	var rows []table.Row
	for ocfReader.Scan() {
		datum, err := ocfReader.Read()
		if err != nil {
			return nil, nil, errors.Wrap(err, errors.ErrorTypeData, "failed to read Avro row").
				WithDetail("row", len(rows))
		}
		row, cellErr := avroNativeToRow(datum)
		if cellErr != nil {
			return nil, nil, cellErr.WithDetail("row", len(rows))
		}
		rows = append(rows, row)
	}
	if err := ocfReader.Err(); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrorTypeData, "failed to scan Avro container")
	}
	return columns, rows, nil
}

func getAvroCompression(compression string) string {
	switch compression {
	case "snappy":
		return goavro.CompressionSnappyLabel
	case "none", "null":
		return goavro.CompressionNullLabel
	default:
		return goavro.CompressionDeflateLabel
	}
}

func rowToAvroNative(row table.Row) map[string]interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cell := map[string]interface{}{
			"kind":  "TEXT",
			"int":   int64(0),
			"float": float64(0),
			"text":  "",
		}
		switch v.Kind() {
		case table.KindInt:
			n, _ := v.AsInt()
			cell["kind"], cell["int"] = "INT", n
		case table.KindFloat:
			f, _ := v.AsFloat()
			cell["kind"], cell["float"] = "FLOAT", f
		case table.KindTimestamp:
			ts, _ := v.AsTime()
			cell["kind"], cell["text"] = "TIMESTAMP", ts.Format(time.RFC3339Nano)
		default:
			s, _ := v.AsText()
			cell["text"] = s
		}
		cells[i] = cell
	}
	return map[string]interface{}{"cells": cells}
}

func avroNativeToRow(datum interface{}) (table.Row, *errors.Error) {
	record, ok := datum.(map[string]interface{})
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeData, "unexpected Avro datum %T", datum)
	}
	cells, ok := record["cells"].([]interface{})
	if !ok {
		return nil, errors.New(errors.ErrorTypeData, "Avro row has no cells array")
	}

	row := make(table.Row, len(cells))
	for i, raw := range cells {
		cell, ok := raw.(map[string]interface{})
		if !ok {
			return nil, errors.Newf(errors.ErrorTypeData, "unexpected Avro cell %T", raw)
		}
		kind, _ := cell["kind"].(string)
		switch kind {
		case "INT":
			n, _ := cell["int"].(int64)
			row[i] = table.Int(n)
		case "FLOAT":
			f, _ := cell["float"].(float64)
			row[i] = table.Float(f)
		case "TIMESTAMP":
			s, _ := cell["text"].(string)
			ts, err := time.Parse(time.RFC3339Nano, s)
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrorTypeData, "invalid Avro timestamp cell")
			}
			row[i] = table.Timestamp(ts)
		case "TEXT":
			s, _ := cell["text"].(string)
			row[i] = table.Text(s)
		default:
			return nil, errors.Newf(errors.ErrorTypeData, "unknown Avro cell kind %q", kind)
		}
	}
	return row, nil
}
