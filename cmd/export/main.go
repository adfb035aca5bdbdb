package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vocabdrill/internal/config"
	"vocabdrill/internal/database"
	"vocabdrill/internal/repository"
	"vocabdrill/internal/service"
)

func main() {
	// Define subcommands
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	pruneCmd := flag.NewFlagSet("prune", flag.ExitOnError)

	// Export flags
	exportLibrary := exportCmd.String("library", "", "Library name (required)")
	exportOutput := exportCmd.String("output", "", "Output file path (default: <library>_YYYYMMDD.json)")
	exportSentences := exportCmd.Bool("sentences", false, "Include one example sentence per word")

	// Prune flags
	pruneTTL := pruneCmd.Duration("ttl", 0, "Delete progress older than this (default: PROGRESS_TTL)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		if *exportLibrary == "" {
			fmt.Println("Error: -library flag is required")
			exportCmd.PrintDefaults()
			os.Exit(1)
		}
		exportService := service.NewExportService(service.NewQuizService(repository.NewLibraryRepository(db)))
		handleExport(ctx, exportService, *exportLibrary, *exportOutput, *exportSentences)

	case "prune":
		pruneCmd.Parse(os.Args[2:])
		ttl := *pruneTTL
		if ttl <= 0 {
			ttl = cfg.ProgressTTL
		}
		handlePrune(ctx, repository.NewProgressRepository(db), ttl)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(ctx context.Context, exportService *service.ExportService, library, outputPath string, withSentences bool) {
	// Generate default filename if not provided
	if outputPath == "" {
		slug := strings.ToLower(strings.Join(strings.Fields(library), "_"))
		outputPath = fmt.Sprintf("%s_%s.json", slug, time.Now().Format("20060102"))
	}

	// Ensure directory exists
	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	log.Printf("Exporting library to: %s", outputPath)
	if err := exportService.Export(ctx, outputPath, library, withSentences); err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	log.Println("Export complete!")
}

func handlePrune(ctx context.Context, progressRepo *repository.ProgressRepository, ttl time.Duration) {
	cutoff := time.Now().Add(-ttl)
	log.Printf("Deleting progress last written before %s", cutoff.Format(time.RFC3339))

	n, err := progressRepo.DeleteExpired(ctx, cutoff)
	if err != nil {
		log.Fatalf("Prune failed: %v", err)
	}
	log.Printf("Prune complete! Removed %d rows", n)
}

func printUsage() {
	fmt.Println("vocabdrill Library Export Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  export export [options]    Export a library to a deck JSON file")
	fmt.Println("  export prune [options]     Delete expired quiz progress")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -library <name>   Library name (required)")
	fmt.Println("  -output <file>    Output file path (default: <library>_YYYYMMDD.json)")
	fmt.Println("  -sentences        Include one example sentence per word")
	fmt.Println()
	fmt.Println("Prune Options:")
	fmt.Println("  -ttl <duration>   Age after which progress is deleted (default: PROGRESS_TTL)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  export export -library \"GEPT Basic\"")
	fmt.Println("  export export -library \"GEPT Basic\" -sentences -output decks/basic.json")
	fmt.Println("  export prune -ttl 72h")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DB_TYPE          Database type: sqlite, sqlite-pure, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./vocabdrill.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
}
