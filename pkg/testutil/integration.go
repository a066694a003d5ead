package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// IntegrationTest marks a test as an integration test
func IntegrationTest(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// WriteFile creates a file named name under dir with the given content and
// returns its path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// CreateTestData writes numFiles CSV files with recordsPerFile rows each,
// using an id,name,value header, and returns their paths.
func CreateTestData(t *testing.T, dir string, numFiles int, recordsPerFile int) []string {
	t.Helper()

	var files []string
	for i := 0; i < numFiles; i++ {
		var sb strings.Builder
		sb.WriteString("id,name,value\n")
		for j := 0; j < recordsPerFile; j++ {
			fmt.Fprintf(&sb, "%d,Record_%d_%d,%.2f\n", i*recordsPerFile+j, i, j, float64(j)*1.23)
		}
		files = append(files, WriteFile(t, dir, fmt.Sprintf("test_data_%d.csv", i), sb.String()))
	}
	return files
}
