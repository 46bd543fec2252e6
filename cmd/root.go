package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ask-search-be",
	Short: "Web-search chat backend with query logging and a vector index",
	Long: `ask-search-be serves an authenticated ask endpoint backed by a hosted
completion model with web search. Every exchange is logged to MongoDB and
indexed in Weaviate. The ingest subcommand bulk-loads PDF documents into
the same vector index.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
