package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/state-scatter/internal/config"
	"github.com/sells-group/state-scatter/internal/dataset"
)

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadRecords_FromLocation(t *testing.T) {
	path := writeCSV(t, "state,abbr,poverty,age,income,healthcare,obesity,smokes\n"+
		"Ohio,OH,10,40,50000,5,30,20\n"+
		"Utah,UT,5,30,60000,2,20,10\n")

	records, err := loadRecords(context.Background(), config.DatasetConfig{Path: "ignored.csv"}, path)
	require.NoError(t, err)
	assert.Equal(t, twoStates, records)
}

func TestLoadRecords_ConfiguredPath(t *testing.T) {
	path := writeCSV(t, "state;abbr;poverty;age;income;healthcare;obesity;smokes\n"+
		"Ohio;OH;10;40;50000;5;30;20\n")

	records, err := loadRecords(context.Background(), config.DatasetConfig{Path: path, Delimiter: ";"}, "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "OH", records[0].Abbr)
}

func TestLoadRecords_Missing(t *testing.T) {
	_, err := loadRecords(context.Background(), config.DatasetConfig{}, filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	var le *dataset.LoadError
	assert.ErrorAs(t, err, &le)
}

func TestLoadRecords_BadDelimiter(t *testing.T) {
	_, err := loadRecords(context.Background(), config.DatasetConfig{Delimiter: "ab"}, "x.csv")
	assert.ErrorContains(t, err, "delimiter")
}
