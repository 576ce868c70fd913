package dataset

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRanges(t *testing.T) {
	records := Generate(DefaultRows, 0)
	require.Len(t, records, DefaultRows)
	for i, r := range records {
		assert.Equal(t, i+1, r.PatientID)
		assert.GreaterOrEqual(t, r.HeartRate, 60)
		assert.LessOrEqual(t, r.HeartRate, 99)
		assert.GreaterOrEqual(t, r.Temperature, 36.0)
		assert.Less(t, r.Temperature, 102.0)
	}
}

func TestGenerateIsSeeded(t *testing.T) {
	assert.Equal(t, Generate(20, 3), Generate(20, 3))
	assert.NotEqual(t, Generate(20, 3), Generate(20, 4))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, WriteFile(path, 10, 0))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 11)
	assert.Equal(t, Header, rows[0])

	want := Generate(10, 0)
	for i, row := range rows[1:] {
		id, err := strconv.Atoi(row[0])
		require.NoError(t, err)
		assert.Equal(t, want[i].PatientID, id)

		temp, err := strconv.ParseFloat(row[2], 64)
		require.NoError(t, err)
		assert.Equal(t, want[i].Temperature, temp)
	}
}

func TestWriteFileRejectsNegativeRows(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "x.csv"), -1, 0)
	assert.Error(t, err)
}

func TestWriteFileBadPath(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "x.csv"), 1, 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
