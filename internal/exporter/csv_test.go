package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(nil)

	err := w.Write(&buf, WriteOptions{
		Headers: []string{"Merchant ID", "SR %"},
		Records: [][]string{
			{"M-1", "75.00"},
			{"M-2", "0.00"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Merchant ID,SR %\nM-1,75.00\nM-2,0.00\n", buf.String())
}

func TestWriteBOMPrefix(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(nil)

	err := w.Write(&buf, WriteOptions{
		Headers:   []string{"Merchant ID"},
		BOMPrefix: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, buf.Bytes()[:3])
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "summary.csv")
	w := NewCSVWriter(nil)

	err := w.WriteFile(path, WriteOptions{
		Headers: []string{"Merchant ID"},
		Records: [][]string{{"M-1"}},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Merchant ID\nM-1\n", string(data))
}

func TestWriteBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.pdf")

	require.NoError(t, WriteBytes(path, []byte("%PDF-1.4")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}
