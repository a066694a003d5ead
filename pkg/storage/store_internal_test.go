package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VikaVinogradova/PM-24-6/pkg/errors"
	"github.com/VikaVinogradova/PM-24-6/pkg/formats"
	"github.com/VikaVinogradova/PM-24-6/pkg/table"
	"github.com/VikaVinogradova/PM-24-6/pkg/testutil"
)

// failingCodec writes part of a document and then fails.
type failingCodec struct{}

func (failingCodec) Format() formats.Format { return formats.JSON }

func (failingCodec) Encode(w io.Writer, _ []string, _ []table.Row) error {
	if _, err := io.WriteString(w, `{"columns":[`); err != nil {
		return err
	}
	return errors.New(errors.ErrorTypeData, "cell cannot be encoded")
}

func (failingCodec) Decode(io.Reader) ([]string, []table.Row, error) {
	return nil, nil, errors.New(errors.ErrorTypeData, "not implemented")
}

func TestSaveFile_RemovesPartialChunk(t *testing.T) {
	s, err := New(nil, WithLogger(testutil.TestLogger(t)))
	require.NoError(t, err)
	name := filepath.Join(t.TempDir(), "movies_1.json")

	err = s.saveFile(name, failingCodec{}, []string{"Title"}, []table.Row{table.TextRow("Shrek")})
	require.Error(t, err)
	var fileErr *errors.Error
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, errors.ErrorTypeFile, fileErr.Type)
	file, ok := fileErr.Detail("file")
	require.True(t, ok)
	assert.Equal(t, name, file)

	_, statErr := os.Stat(name)
	assert.True(t, os.IsNotExist(statErr), "partial chunk must be removed")
}
