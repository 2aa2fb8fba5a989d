// Package output renders collected records to a CSV file or the console.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/repotools/gh-meta/internal/domain"
)

// Header is the fixed CSV column order.
var Header = []string{
	"url",
	"owner",
	"repo",
	"first_sentence_of_readme",
	"last_commit_date",
	"stars",
	"watchers",
	"forks",
}

// WriteCSV writes all records to path under the fixed header, one row per
// record, in collection order. It returns domain.ErrNoData and creates no
// file when records is empty.
func WriteCSV(path string, records []*domain.RepoMetadata) error {
	if len(records) == 0 {
		return domain.ErrNoData
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.URL,
			r.Owner,
			r.Repo,
			r.ReadmeFirstSentence,
			r.LastCommitDate,
			r.Stars,
			r.Watchers,
			r.Forks,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write record for %s/%s: %w", r.Owner, r.Repo, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ReadCSV parses a file previously produced by WriteCSV back into records.
func ReadCSV(path string) ([]*domain.RepoMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse %s: missing header row", path)
	}

	records := make([]*domain.RepoMetadata, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != len(Header) {
			return nil, fmt.Errorf("parse %s: expected %d fields, got %d", path, len(Header), len(row))
		}
		records = append(records, &domain.RepoMetadata{
			URL:                 row[0],
			Owner:               row[1],
			Repo:                row[2],
			ReadmeFirstSentence: row[3],
			LastCommitDate:      row[4],
			Stars:               row[5],
			Watchers:            row[6],
			Forks:               row[7],
		})
	}
	return records, nil
}

// PrintRecords renders each record as a multi-line human-readable block,
// in collection order.
func PrintRecords(w io.Writer, records []*domain.RepoMetadata) {
	for _, r := range records {
		fmt.Fprintf(w, "\nRepository: %s/%s\n", r.Owner, r.Repo)
		fmt.Fprintf(w, "URL: %s\n", r.URL)
		fmt.Fprintf(w, "First sentence of README: %s\n", r.ReadmeFirstSentence)
		fmt.Fprintf(w, "Last commit date: %s\n", r.LastCommitDate)
		fmt.Fprintf(w, "Stars: %s\n", r.Stars)
		fmt.Fprintf(w, "Watchers: %s\n", r.Watchers)
		fmt.Fprintf(w, "Forks: %s\n", r.Forks)
	}
}
