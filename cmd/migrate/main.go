package main

import (
	"log"
	"os"

	"postcare-ai-be/internal/model"
	"postcare-ai-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. Pre-Migration: Extensions (Things GORM AutoMigrate doesn't do)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Fatalf("Error: Failed to run setup SQL %q: %v", sql, err)
		}
	}

	// 4. AutoMigrate Models
	log.Println("Step 2: Migrating models...")
	if err := db.AutoMigrate(
		&model.Patient{},
		&model.CorpusChunk{},
		&model.Interaction{},
	); err != nil {
		log.Fatal("Error: AutoMigrate failed:", err)
	}

	// 5. Vector index for similarity search
	log.Println("Step 3: Creating vector index...")
	indexSQL := `CREATE INDEX IF NOT EXISTS idx_corpus_chunks_embedding
		ON corpus_chunks USING hnsw (embedding_value vector_cosine_ops);`
	if err := db.Exec(indexSQL).Error; err != nil {
		log.Printf("Warning: Failed to create vector index (pgvector >= 0.5 required): %v", err)
	}

	log.Println("✅ Migration completed")
}
