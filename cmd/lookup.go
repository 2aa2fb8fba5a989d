// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/repotools/gh-meta/internal/domain"
	"github.com/repotools/gh-meta/internal/gateway"
	"github.com/repotools/gh-meta/internal/output"
	"github.com/repotools/gh-meta/internal/usecase"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Looks up repository metadata and prints or exports it",
	Long: `Looks up metadata for a single repository URL or for a newline-delimited
file of repository URLs, and prints the results to the console or writes them
to a CSV file.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Get the verbose flag from the root command to set up the logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}

		// Get other flags. The token is optional; without it requests are
		// unauthenticated and subject to lower rate limits.
		url, _ := cmd.Flags().GetString("url")
		file, _ := cmd.Flags().GetString("file")
		outputPath, _ := cmd.Flags().GetString("output")
		token := os.Getenv("GITHUB_TOKEN")

		if url == "" && file == "" {
			fmt.Fprintln(os.Stderr, "Please specify either a repository URL with --url or a file containing URLs with --file.")
			_ = cmd.Usage()
			return
		}

		// Inject dependencies and run the main business logic.
		githubGateway, err := gateway.NewGitHubGateway(token, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		enricher := usecase.NewEnricher(githubGateway, logger)

		var records []*domain.RepoMetadata
		if url != "" {
			records = enricher.EnrichAll(ctx, []string{url})
		} else {
			records = enricher.EnrichFromFile(ctx, file)
		}

		if outputPath == "" {
			output.PrintRecords(os.Stdout, records)
			return
		}
		if err := output.WriteCSV(outputPath, records); err != nil {
			if errors.Is(err, domain.ErrNoData) {
				logger.Warn("No data to write")
				return
			}
			fmt.Fprintf(os.Stderr, "Failed to write CSV: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Results written to %s\n", outputPath)
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().StringP("url", "u", "", "GitHub repository URL (for a single repository)")
	lookupCmd.Flags().StringP("file", "f", "", "File containing repository URLs, one per line")
	lookupCmd.Flags().StringP("output", "o", "", "Output CSV file to store results")
	lookupCmd.MarkFlagsMutuallyExclusive("url", "file")
}
