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

	tea "github.com/charmbracelet/bubbletea"

	"vocabdrill/internal/database"
	"vocabdrill/internal/deck"
	"vocabdrill/internal/progress"
	"vocabdrill/internal/quiz"
	"vocabdrill/internal/repository"
)

// progressTTL keeps local drill progress around for a long time
const progressTTL = 365 * 24 * time.Hour

func main() {
	deckPath := flag.String("deck", "", "Deck file to drill (.json or .csv)")
	modeName := flag.String("mode", "word", "Quiz mode: word, sentence or card")
	dbPath := flag.String("db", "drill.db", "SQLite file that keeps drill progress")
	reset := flag.Bool("reset", false, "Clear saved progress for this deck before starting")
	flag.Parse()

	if *deckPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: drill -deck words.json [-mode word|sentence|card] [-db drill.db] [-reset]")
		os.Exit(1)
	}

	mode, err := quiz.ParseMode(*modeName)
	if err != nil {
		log.Fatalf("Invalid mode: %v", err)
	}

	file, err := deck.LoadFile(*deckPath)
	if err != nil {
		log.Fatalf("Failed to load deck: %v", err)
	}
	pool, err := buildPool(mode, file)
	if err != nil {
		log.Fatalf("Nothing to drill in %s mode: %v", mode, err)
	}

	title := file.Library
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(*deckPath), filepath.Ext(*deckPath))
	}

	var m model
	if mode == quiz.ModeFlashcard {
		d, err := quiz.NewDeck(pool)
		if err != nil {
			log.Fatalf("Failed to open deck: %v", err)
		}
		m = newDeckModel(title, d)
	} else {
		ctx := context.Background()
		db, store, err := openStore(*dbPath, "drill:"+title)
		if err != nil {
			log.Fatalf("Failed to open progress database: %v", err)
		}
		defer db.Close()

		if *reset {
			if err := store.Clear(ctx, mode.Namespace()); err != nil {
				log.Fatalf("Failed to reset progress: %v", err)
			}
		}

		ctrl, err := quiz.NewController(ctx, pool, store)
		if err != nil {
			log.Fatalf("Failed to start quiz: %v", err)
		}
		m = newQuizModel(ctx, title, ctrl)
	}

	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}

// buildPool picks the deck rows a mode quizzes on
func buildPool(mode quiz.Mode, file deck.File) (*quiz.Pool, error) {
	if mode == quiz.ModeSentence {
		return quiz.BuildPool(mode, file.Questions)
	}
	return quiz.BuildPool(mode, file.Words)
}

// openStore opens the pure-Go SQLite progress database, creating its
// schema on first use
func openStore(path, clientID string) (*database.DB, *progress.SQLStore, error) {
	db, err := database.Open(database.NewPureSQLiteDialect(), database.DialectConfig{Path: path})
	if err != nil {
		return nil, nil, err
	}
	if err := db.RunMigrations(""); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	repo := repository.NewProgressRepository(db)
	return db, progress.NewSQLStore(repo, clientID, progressTTL), nil
}
