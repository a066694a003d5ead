package formats

import (
	"bytes"
	"io"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/VikaVinogradova/PM-24-6/pkg/errors"
	"github.com/VikaVinogradova/PM-24-6/pkg/table"
)

// arrowCodec writes a single record batch. A column whose values all share
// one kind is stored with the matching Arrow type; any other column is stored
// as strings and reads back as text.
type arrowCodec struct{}

func (c *arrowCodec) Format() Format { return Arrow }

func (c *arrowCodec) Encode(w io.Writer, columns []string, rows []table.Row) error {
	pool := memory.NewGoAllocator()
	schema := arrowSchemaFor(columns, rows)

	fw, err := ipc.NewFileWriter(w, ipc.WithSchema(schema), ipc.WithAllocator(pool))
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to create Arrow writer")
	}

	if len(rows) > 0 {
		builder := array.NewRecordBuilder(pool, schema)
		defer builder.Release()

		for col, field := range schema.Fields() {
			appendArrowColumn(builder.Field(col), field.Type, rows, col)
		}

		record := builder.NewRecord()
		defer record.Release()

		if err := fw.Write(record); err != nil {
			_ = fw.Close()
			return errors.Wrap(err, errors.ErrorTypeFile, "failed to write record batch")
		}
	}

	if err := fw.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to close Arrow writer")
	}
	return nil
}

func (c *arrowCodec) Decode(r io.Reader) ([]string, []table.Row, error) {
	// The IPC file footer sits at the end, so the reader needs random access.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to read Arrow data")
	}

	reader, err := ipc.NewFileReader(bytes.NewReader(data), ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrorTypeData, "failed to open Arrow file")
	}
	defer reader.Close()

	fields := reader.Schema().Fields()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	var rows []table.Row
	for b := 0; b < reader.NumRecords(); b++ {
		record, err := reader.Record(b)
		if err != nil {
			return nil, nil, errors.Wrap(err, errors.ErrorTypeData, "failed to read record batch").
				WithDetail("batch", b)
		}
		batch := make([]table.Row, record.NumRows())
		for i := range batch {
			batch[i] = make(table.Row, len(columns))
		}
		for col := range columns {
			if err := readArrowColumn(record.Column(col), batch, col); err != nil {
				return nil, nil, err.WithDetail("column", columns[col])
			}
		}
		rows = append(rows, batch...)
	}
	return columns, rows, nil
}

func arrowSchemaFor(columns []string, rows []table.Row) *arrow.Schema {
	fields := make([]arrow.Field, len(columns))
	for col, name := range columns {
		fields[col] = arrow.Field{Name: name, Type: arrowTypeFor(rows, col)}
	}
	return arrow.NewSchema(fields, nil)
}

func arrowTypeFor(rows []table.Row, col int) arrow.DataType {
	if len(rows) == 0 {
		return arrow.BinaryTypes.String
	}
	kind := rows[0][col].Kind()
	for _, row := range rows[1:] {
		if row[col].Kind() != kind {
			return arrow.BinaryTypes.String
		}
	}
	switch kind {
	case table.KindInt:
		return arrow.PrimitiveTypes.Int64
	case table.KindFloat:
		return arrow.PrimitiveTypes.Float64
	case table.KindTimestamp:
		return arrow.FixedWidthTypes.Timestamp_us
	default:
		return arrow.BinaryTypes.String
	}
}

func appendArrowColumn(builder array.Builder, dataType arrow.DataType, rows []table.Row, col int) {
	switch b := builder.(type) {
	case *array.Int64Builder:
		for _, row := range rows {
			n, _ := row[col].AsInt()
			b.Append(n)
		}
	case *array.Float64Builder:
		for _, row := range rows {
			f, _ := row[col].AsFloat()
			b.Append(f)
		}
	case *array.TimestampBuilder:
		for _, row := range rows {
			ts, _ := row[col].AsTime()
			b.Append(arrow.Timestamp(ts.UnixMicro()))
		}
	case *array.StringBuilder:
		for _, row := range rows {
			b.Append(row[col].String())
		}
	default:
		// arrowTypeFor only produces the four types above
		panic("formats: unexpected Arrow type " + dataType.String())
	}
}

func readArrowColumn(column arrow.Array, rows []table.Row, col int) *errors.Error {
	for i := range rows {
		if column.IsNull(i) {
			rows[i][col] = table.Text("")
			continue
		}
		switch arr := column.(type) {
		case *array.Int64:
			rows[i][col] = table.Int(arr.Value(i))
		case *array.Float64:
			rows[i][col] = table.Float(arr.Value(i))
		case *array.Timestamp:
			unit := arr.DataType().(*arrow.TimestampType).Unit
			rows[i][col] = table.Timestamp(arr.Value(i).ToTime(unit).UTC())
		case *array.String:
			rows[i][col] = table.Text(arr.Value(i))
		default:
			return errors.Newf(errors.ErrorTypeData, "unsupported Arrow column type %s", column.DataType())
		}
	}
	return nil
}
