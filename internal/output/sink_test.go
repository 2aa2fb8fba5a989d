package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repotools/gh-meta/internal/domain"
)

func sampleRecords() []*domain.RepoMetadata {
	return []*domain.RepoMetadata{
		{
			URL:                 "https://github.com/acme/widget",
			Owner:               "acme",
			Repo:                "widget",
			ReadmeFirstSentence: "Widget is a tool, with \"quotes\", and commas.",
			LastCommitDate:      "2023-04-01T10:30:00Z",
			Stars:               "42",
			Watchers:            "42",
			Forks:               "7",
		},
		{
			URL:                 "https://github.com/acme/empty",
			Owner:               "acme",
			Repo:                "empty",
			ReadmeFirstSentence: domain.NoReadmeSentinel,
			LastCommitDate:      domain.NoCommitsSentinel,
			Stars:               domain.NotAvailable,
			Watchers:            domain.NotAvailable,
			Forks:               domain.NotAvailable,
		},
	}
}

// TestWriteCSV_RoundTrip writes records out and parses them back, asserting
// every field survives including embedded delimiters and quotes.
func TestWriteCSV_RoundTrip(t *testing.T) {
	records := sampleRecords()
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, WriteCSV(path, records))

	parsed, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, records, parsed)
}

func TestWriteCSV_Header(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(path, sampleRecords()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	firstLine, _, _ := bytes.Cut(data, []byte("\n"))
	assert.Equal(t, "url,owner,repo,first_sentence_of_readme,last_commit_date,stars,watchers,forks", string(firstLine))
}

func TestWriteCSV_NoData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	err := WriteCSV(path, nil)

	assert.ErrorIs(t, err, domain.ErrNoData)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file should be created when there is nothing to write")
}

func TestPrintRecords(t *testing.T) {
	var buf bytes.Buffer
	PrintRecords(&buf, sampleRecords()[:1])

	expected := "\nRepository: acme/widget\n" +
		"URL: https://github.com/acme/widget\n" +
		"First sentence of README: Widget is a tool, with \"quotes\", and commas.\n" +
		"Last commit date: 2023-04-01T10:30:00Z\n" +
		"Stars: 42\n" +
		"Watchers: 42\n" +
		"Forks: 7\n"
	assert.Equal(t, expected, buf.String())
}

func TestPrintRecords_Empty(t *testing.T) {
	var buf bytes.Buffer
	PrintRecords(&buf, nil)
	assert.Empty(t, buf.String())
}
