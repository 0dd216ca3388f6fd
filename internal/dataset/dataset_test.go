package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subslikescript-crawler/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestBatchFileName(t *testing.T) {
	b := Batch{StartPage: 101, EndPage: 150}
	assert.Equal(t, "movie_dataset_page_101_to_page_150.jsonl", b.FileName())

	got, ok := ParseBatchFileName(filepath.Join("data", b.FileName()))
	require.True(t, ok)
	assert.Equal(t, b, got)

	_, ok = ParseBatchFileName("notes.txt")
	assert.False(t, ok)
}

func TestWriteJSONLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	records := []models.Record{
		models.NewRecord(strPtr("Amélie (2001)"), strPtr("Bonjour, ça va?\n<i>Très bien</i> & 日本語")),
		models.NewRecord(strPtr("Inception (2010)"), nil),
		models.NewRecord(nil, strPtr("untitled")),
	}

	require.NoError(t, WriteJSONL(path, records))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(raw), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(string(raw), "\n"))
	assert.Contains(t, lines[0], "Amélie")
	assert.Contains(t, lines[0], "日本語")
	assert.Contains(t, lines[0], "<i>Très bien</i> &")
	assert.Equal(t, `{"Movie Title and Year":"Inception (2010)","Script Content":null}`, lines[1])

	back, err := ReadJSONL(path)
	require.NoError(t, err)
	assert.Equal(t, records, back)
}

func TestWriteJSONLOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	require.NoError(t, WriteJSONL(path, []models.Record{
		models.NewRecord(strPtr("A (2000)"), nil),
		models.NewRecord(strPtr("B (2001)"), nil),
	}))
	require.NoError(t, WriteJSONL(path, []models.Record{
		models.NewRecord(strPtr("C (2002)"), nil),
	}))

	back, err := ReadJSONL(path)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, "C (2002)", *back[0].TitleYear)
}

func TestWriteJSONLEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.jsonl")
	require.NoError(t, WriteJSONL(path, nil))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestWriteJSONLMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.jsonl")
	assert.Error(t, WriteJSONL(path, nil))
}

func TestBatchFilesOrdered(t *testing.T) {
	dir := t.TempDir()
	for _, b := range []Batch{{201, 300}, {1, 100}, {101, 200}} {
		require.NoError(t, WriteJSONL(filepath.Join(dir, b.FileName()), nil))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("x"), 0o644))

	files, err := BatchFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, Batch{1, 100}.FileName(), filepath.Base(files[0]))
	assert.Equal(t, Batch{101, 200}.FileName(), filepath.Base(files[1]))
	assert.Equal(t, Batch{201, 300}.FileName(), filepath.Base(files[2]))
}
