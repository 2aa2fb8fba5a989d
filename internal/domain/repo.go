// Package domain contains the core data structures and domain logic for the application.
package domain

import "fmt"

// NotAvailable is the marker used for numeric fields the API did not provide.
// It distinguishes "field missing from the response" from a real zero.
const NotAvailable = "N/A"

// Sentinel values substituted when optional repository data cannot be fetched.
const (
	NoCommitsSentinel = "No commits found"
	NoReadmeSentinel  = "README not available"
)

// RepoIdentifier is an (owner, name) pair derived from a URL-like input string.
type RepoIdentifier struct {
	Owner string
	Name  string
}

// String returns the canonical "owner/name" form of the identifier.
func (id RepoIdentifier) String() string {
	return id.Owner + "/" + id.Name
}

// HTMLURL returns the repository's public web URL.
func (id RepoIdentifier) HTMLURL() string {
	return fmt.Sprintf("https://github.com/%s/%s", id.Owner, id.Name)
}

// RepoMetadata is one enriched repository record. It is assembled once per
// successfully looked-up repository and is immutable afterwards.
// Numeric counts are kept as strings so that NotAvailable can stand in for
// counts the API omitted.
type RepoMetadata struct {
	URL                 string `json:"url"`
	Owner               string `json:"owner"`
	Repo                string `json:"repo"`
	ReadmeFirstSentence string `json:"first_sentence_of_readme"`
	LastCommitDate      string `json:"last_commit_date"`
	Stars               string `json:"stars"`
	Watchers            string `json:"watchers"`
	Forks               string `json:"forks"`
}
