package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/votann/ask-search-be/config"
	"github.com/votann/ask-search-be/database"
	"github.com/votann/ask-search-be/service"
	"github.com/votann/ask-search-be/types"
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Bulk-load a PDF into the vector index",
	Long: `Extracts text from a PDF, splits it into overlapping token windows and
writes one embedded record per chunk into the target Weaviate collection.

Chunk ids are derived from the file name and chunk index, so re-running
with the same parameters overwrites the previous records. Running with
different chunk parameters writes a new id set; records from the earlier
parameters are not cleaned up.`,
	Run: func(cmd *cobra.Command, args []string) {
		filePath, _ := cmd.Flags().GetString("file")
		collection, _ := cmd.Flags().GetString("collection")
		maxTokens, _ := cmd.Flags().GetInt("max-tokens")
		overlap, _ := cmd.Flags().GetInt("overlap")
		databaseURL, _ := cmd.Flags().GetString("database-url")
		embeddingModel, _ := cmd.Flags().GetString("embedding-model")

		if filePath == "" {
			log.Fatal("--file is required")
		}

		chunkService, err := service.NewChunkService()
		if err != nil {
			log.Fatalf("Failed to create chunker: %v", err)
		}
		pdfService := service.NewPDFService()
		embeddingService := service.NewEmbeddingService("", os.Getenv("OPENAI_API_KEY"), embeddingModel)

		weaviateDb, err := database.NewWeaviateStore(config.WeaviateStoreConfig{
			Host:   databaseURL,
			APIKey: os.Getenv("WEAVIATE_APIKEY"),
		})
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}

		ingestService := service.NewIngestService(pdfService, chunkService, embeddingService, weaviateDb)

		ctx := context.Background()
		result, err := ingestService.Ingest(ctx, types.IngestRequest{
			FilePath:   filePath,
			Collection: collection,
			MaxTokens:  maxTokens,
			Overlap:    overlap,
		})
		fmt.Printf("Extracted %d chunks from %s\n", result.ChunksExtracted, filePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Ingest failed after writing %d/%d chunks: %v\n",
				result.ChunksWritten, result.ChunksExtracted, err)
			os.Exit(1)
		}

		count, err := weaviateDb.Count(ctx, collection)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to count collection %s: %v\n", collection, err)
			os.Exit(1)
		}
		fmt.Printf("Finished ingest: collection %q now has %d items\n", collection, count)
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringP("file", "f", "", "Path to the PDF file to ingest")
	ingestCmd.Flags().StringP("collection", "n", "Document", "Collection name (new or existing)")
	ingestCmd.Flags().Int("max-tokens", 400, "Chunk size in tokens")
	ingestCmd.Flags().Int("overlap", 50, "Token overlap between chunks")
	ingestCmd.Flags().StringP("database-url", "d", "http://localhost:8080", "URL for the Weaviate database")
	ingestCmd.Flags().String("embedding-model", "text-embedding-3-small", "Embedding model for chunk vectors")
}
