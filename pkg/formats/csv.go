package formats

import (
	"encoding/csv"
	"io"

	"github.com/VikaVinogradova/PM-24-6/pkg/errors"
	"github.com/VikaVinogradova/PM-24-6/pkg/table"
)

// csvCodec writes a header record followed by one record per row. Values are
// rendered with Value.String and read back as text.
type csvCodec struct {
	delimiter rune
}

func (c *csvCodec) Format() Format { return CSV }

func (c *csvCodec) Encode(w io.Writer, columns []string, rows []table.Row) error {
	writer := csv.NewWriter(w)
	writer.Comma = c.delimiter

	if err := writeCSVRecord(w, writer, columns); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write CSV header")
	}
	for i, row := range rows {
		if err := writeCSVRecord(w, writer, row.Strings()); err != nil {
			return errors.Wrap(err, errors.ErrorTypeFile, "failed to write CSV record").
				WithDetail("row", i)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to flush CSV writer")
	}
	return nil
}

// writeCSVRecord writes record through writer, except that a record holding a
// single empty field goes to w as a quoted empty string. csv.Writer would emit
// a blank line, and csv.Reader skips blank lines.
func writeCSVRecord(w io.Writer, writer *csv.Writer, record []string) error {
	if len(record) != 1 || record[0] != "" {
		return writer.Write(record)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\"\"\n")
	return err
}

// Decode returns the header as columns and every further record as a text
// row. Ragged records are returned as-is so the caller's AddRow reports the
// shape error.
func (c *csvCodec) Decode(r io.Reader) ([]string, []table.Row, error) {
	reader := csv.NewReader(r)
	reader.Comma = c.delimiter
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, errors.New(errors.ErrorTypeData, "CSV file has no header record")
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrorTypeData, "failed to read CSV header")
	}

	var rows []table.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.Wrap(err, errors.ErrorTypeData, "failed to read CSV record").
				WithDetail("row", len(rows))
		}
		rows = append(rows, table.TextRow(record...))
	}
	return header, rows, nil
}
