// Package usecase contains the business logic of the application.
package usecase

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/repotools/gh-meta/internal/domain"
	"github.com/repotools/gh-meta/internal/gateway"
)

// Enricher is the use case for looking up repository metadata.
// It parses identifiers, drives the per-repository fetches, and assembles
// the resulting records.
type Enricher struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
}

// NewEnricher creates a new Enricher instance.
func NewEnricher(fetcher gateway.Fetcher, logger *log.Logger) *Enricher {
	return &Enricher{
		fetcher: fetcher,
		logger:  logger,
	}
}

// ParseIdentifier derives an (owner, name) pair from a URL-like string.
// The input is trimmed, split on "/", and the last two non-empty segments
// become owner and name. Fewer than two non-empty segments is an
// ErrInvalidIdentifier. No character-set validation is applied.
func ParseIdentifier(raw string) (domain.RepoIdentifier, error) {
	var segments []string
	for _, s := range strings.Split(strings.TrimSpace(raw), "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) < 2 {
		return domain.RepoIdentifier{}, fmt.Errorf("%w: %q", domain.ErrInvalidIdentifier, raw)
	}
	return domain.RepoIdentifier{
		Owner: segments[len(segments)-2],
		Name:  segments[len(segments)-1],
	}, nil
}

// FirstSentence extracts the text up to and including the first period.
// Content without a period comes back whole with a period appended; empty
// content yields the README sentinel.
func FirstSentence(content string) string {
	if content == "" {
		return domain.NoReadmeSentinel
	}
	sentence, _, _ := strings.Cut(content, ".")
	return sentence + "."
}

// Enrich looks up a single identifier and assembles its record.
// A metadata-endpoint failure aborts the identifier entirely, while a missing
// commit list or README degrades to a sentinel value in the record.
func (e *Enricher) Enrich(ctx context.Context, raw string) (*domain.RepoMetadata, error) {
	id, err := ParseIdentifier(raw)
	if err != nil {
		return nil, err
	}

	info, err := e.fetcher.FetchRepoInfo(ctx, id.Owner, id.Name)
	if err != nil {
		return nil, err
	}

	lastCommit, err := e.fetcher.FetchLastCommitDate(ctx, id.Owner, id.Name)
	if err != nil {
		e.logger.Debug("Substituting commit sentinel", "repo", id.String(), "err", err)
		lastCommit = domain.NoCommitsSentinel
	}

	firstSentence := domain.NoReadmeSentinel
	if readme, err := e.fetcher.FetchReadme(ctx, id.Owner, id.Name); err != nil {
		e.logger.Debug("Substituting README sentinel", "repo", id.String(), "err", err)
	} else {
		firstSentence = FirstSentence(readme)
	}

	return assembleRecord(id, info, lastCommit, firstSentence), nil
}

// EnrichAll processes identifiers in input order with a skip-and-continue
// policy: a line that cannot be parsed or whose metadata fetch fails is
// reported and skipped, and processing moves on to the next line.
func (e *Enricher) EnrichAll(ctx context.Context, rawURLs []string) []*domain.RepoMetadata {
	records := make([]*domain.RepoMetadata, 0, len(rawURLs))
	for _, raw := range rawURLs {
		record, err := e.Enrich(ctx, raw)
		if err != nil {
			e.logger.Error("Skipping repository", "input", raw, "err", err)
			continue
		}
		records = append(records, record)
	}
	return records
}

// EnrichFromFile reads a newline-delimited identifier list and enriches each
// line in file order. Blank lines are reported and skipped. A missing or
// unreadable file is reported and yields zero records.
func (e *Enricher) EnrichFromFile(ctx context.Context, path string) []*domain.RepoMetadata {
	f, err := os.Open(path)
	if err != nil {
		e.logger.Error("Cannot read URL list", "path", path, "err", err)
		return nil
	}
	defer f.Close()

	var lines []string
	lineNo := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			e.logger.Warn("Skipping blank line", "path", path, "line", lineNo)
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		e.logger.Error("Cannot read URL list", "path", path, "err", err)
		return nil
	}
	return e.EnrichAll(ctx, lines)
}

// assembleRecord combines the fetch results and the identifier into a flat
// record. Counts the API omitted become the NotAvailable marker.
func assembleRecord(id domain.RepoIdentifier, info *gateway.RepoInfo, lastCommit, firstSentence string) *domain.RepoMetadata {
	return &domain.RepoMetadata{
		URL:                 id.HTMLURL(),
		Owner:               id.Owner,
		Repo:                id.Name,
		ReadmeFirstSentence: firstSentence,
		LastCommitDate:      lastCommit,
		Stars:               formatCount(info.Stars),
		Watchers:            formatCount(info.Watchers),
		Forks:               formatCount(info.Forks),
	}
}

func formatCount(n *int) string {
	if n == nil {
		return domain.NotAvailable
	}
	return strconv.Itoa(*n)
}
