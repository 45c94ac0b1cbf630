package main

import (
	"context"
	"flag"
	"log"

	"postcare-ai-be/internal/config"
	"postcare-ai-be/internal/pkg/logger"
	"postcare-ai-be/internal/repository/implementation"
	"postcare-ai-be/internal/service"
	"postcare-ai-be/pkg/chunker"
	"postcare-ai-be/pkg/database"
	"postcare-ai-be/pkg/embedding"

	"github.com/fatih/color"
)

// Offline corpus ingestion. Reads every .txt and .md file from the corpus
// directory, chunks and embeds them and rebuilds the vector index.
func main() {
	dirFlag := flag.String("dir", "", "corpus directory (defaults to CORPUS_DIR)")
	flag.Parse()

	cfg := config.Load()

	dir := *dirFlag
	if dir == "" {
		dir = cfg.App.CorpusDir
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	var embedder embedding.Provider
	if cfg.Ai.EmbeddingProvider == "openai" {
		embedder = embedding.NewOpenAIProvider(cfg.Keys.OpenAI, "text-embedding-3-small")
	} else {
		embedder = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	}

	ingestion := service.NewIngestionService(
		implementation.NewCorpusChunkRepository(db),
		embedder,
		chunker.New(cfg.Retrieval.ChunkSize, cfg.Retrieval.ChunkOverlap),
		nil, // no queue in offline mode
		logger.NewIsolatedLogger(cfg.App.LogFilePath),
	)

	color.Cyan("Ingesting corpus from %s", dir)

	report, err := ingestion.IngestDirectory(context.Background(), dir)
	if err != nil {
		color.Red("Ingestion failed: %v", err)
		log.Fatal(err)
	}

	for _, unit := range report.Units {
		switch {
		case unit.Error != "":
			color.Red("  ✗ %s: %s", unit.DocumentId, unit.Error)
		case unit.ChunksSkipped > 0:
			color.Yellow("  ⚠ %s: %d chunks indexed, %d skipped", unit.DocumentId, unit.ChunksCreated, unit.ChunksSkipped)
		default:
			color.Green("  ✓ %s: %d chunks indexed", unit.DocumentId, unit.ChunksCreated)
		}
	}

	color.Cyan("Done: %d documents, %d chunks created, %d chunks skipped",
		report.Documents, report.ChunksCreated, report.ChunksSkipped)
}
