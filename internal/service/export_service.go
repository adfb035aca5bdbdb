package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"vocabdrill/internal/deck"
)

// ExportService writes libraries out as deck files
type ExportService struct {
	quizService *QuizService
}

// NewExportService creates a new export service
func NewExportService(quizService *QuizService) *ExportService {
	return &ExportService{quizService: quizService}
}

// ExportToWriter writes the named library as a deck. Sentences are included
// when withSentences is set.
func (s *ExportService) ExportToWriter(ctx context.Context, w io.Writer, libraryName string, withSentences bool) (deck.File, error) {
	// Export picks sentences as an anonymous client would
	m, err := s.quizService.Load(ctx, "", libraryName)
	if err != nil {
		return deck.File{}, err
	}

	f := deck.File{Library: m.Library.Name, Words: m.Words}
	if withSentences {
		f.Questions = m.Questions
	}
	if err := deck.WriteJSON(w, f); err != nil {
		return deck.File{}, fmt.Errorf("failed to encode deck: %w", err)
	}
	return f, nil
}

// Export writes the named library to outputPath
func (s *ExportService) Export(ctx context.Context, outputPath, libraryName string, withSentences bool) error {
	log.Printf("Starting export of library %q...", libraryName)

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	f, err := s.ExportToWriter(ctx, file, libraryName, withSentences)
	if err != nil {
		return err
	}

	log.Printf("Library exported successfully to %s", outputPath)
	log.Printf("Exported: %d words, %d sentences", len(f.Words), len(f.Questions))
	return nil
}
