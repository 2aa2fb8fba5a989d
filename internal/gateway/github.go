// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST client.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/repotools/gh-meta/internal/domain"
)

// RepoInfo holds the counters returned by the repository metadata endpoint.
// Fields are pointers so a count the API omitted stays distinguishable
// from a real zero.
type RepoInfo struct {
	Stars    *int
	Watchers *int
	Forks    *int
}

// Fetcher defines the behavior of a gateway for fetching repository
// information from GitHub. The three reads are independent and issued
// sequentially; callers decide which failures are fatal.
type Fetcher interface {
	FetchRepoInfo(ctx context.Context, owner, repo string) (*RepoInfo, error)
	FetchLastCommitDate(ctx context.Context, owner, repo string) (string, error)
	FetchReadme(ctx context.Context, owner, repo string) (string, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient *github.Client
	httpClient *http.Client // reused for raw README downloads
	logger     *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// token may be empty, in which case requests are sent unauthenticated.
func NewGitHubGateway(token string, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	httpClient := &http.Client{Transport: rateLimitWaiter}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = &http.Client{
			Transport: &oauth2.Transport{
				Base:   rateLimitWaiter,
				Source: ts,
			},
		}
	}
	return &GitHubGateway{
		restClient: github.NewClient(httpClient),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// FetchRepoInfo fetches star/watcher/fork counts for owner/repo.
// A non-success response maps to domain.ErrFetchFailed carrying the
// provider's error message.
func (g *GitHubGateway) FetchRepoInfo(ctx context.Context, owner, repo string) (*RepoInfo, error) {
	g.logger.Debug("[1/3] Fetching repository metadata", "repo", owner+"/"+repo)
	r, _, err := g.restClient.Repositories.Get(ctx, owner, repo)
	if err != nil {
		var ghErr *github.ErrorResponse
		if errors.As(err, &ghErr) && ghErr.Message != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrFetchFailed, ghErr.Message)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	return &RepoInfo{
		Stars:    r.StargazersCount,
		Watchers: r.WatchersCount,
		Forks:    r.ForksCount,
	}, nil
}

// FetchLastCommitDate fetches the committer timestamp of the most recent
// commit, formatted as RFC 3339. An empty or unavailable commit list maps
// to domain.ErrNoCommits.
func (g *GitHubGateway) FetchLastCommitDate(ctx context.Context, owner, repo string) (string, error) {
	g.logger.Debug("[2/3] Fetching latest commit", "repo", owner+"/"+repo)
	opts := &github.CommitsListOptions{ListOptions: github.ListOptions{PerPage: 1}}
	commits, _, err := g.restClient.Repositories.ListCommits(ctx, owner, repo, opts)
	if err != nil {
		// GitHub answers 409 for repositories without any commits.
		return "", fmt.Errorf("%w: %v", domain.ErrNoCommits, err)
	}
	if len(commits) == 0 {
		return "", domain.ErrNoCommits
	}
	date := commits[0].GetCommit().GetCommitter().GetDate()
	if date.IsZero() {
		return "", domain.ErrNoCommits
	}
	return date.UTC().Format(time.RFC3339), nil
}

// FetchReadme resolves the README's download URL through the content
// endpoint, then fetches the raw text from that URL. Every failure mode maps
// to domain.ErrReadmeUnavailable.
func (g *GitHubGateway) FetchReadme(ctx context.Context, owner, repo string) (string, error) {
	g.logger.Debug("[3/3] Fetching README", "repo", owner+"/"+repo)
	readme, _, err := g.restClient.Repositories.GetReadme(ctx, owner, repo, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrReadmeUnavailable, err)
	}
	downloadURL := readme.GetDownloadURL()
	if downloadURL == "" {
		return "", fmt.Errorf("%w: response carries no download URL", domain.ErrReadmeUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrReadmeUnavailable, err)
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrReadmeUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: download returned status %d", domain.ErrReadmeUnavailable, resp.StatusCode)
	}
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrReadmeUnavailable, err)
	}
	return string(content), nil
}
