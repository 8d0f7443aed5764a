// Package store persists analysis results: the latest run plus a capped,
// most-recent-first history.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/kolade082/ksavers/internal/logging"
	"github.com/kolade082/ksavers/internal/models"
)

const (
	lastFile    = "last.json"
	historyFile = "history.json"
)

// HistoryEntry is one persisted analysis with its storage envelope.
type HistoryEntry struct {
	ID        string                `json:"id"`
	Timestamp string                `json:"timestamp"`
	Result    models.AnalysisResult `json:"result"`
}

// Store writes analysis results under a directory as JSON files. Results
// contain decimal amounts, which round-trip through their JSON
// representation.
type Store struct {
	dir    string
	limit  int
	logger logging.Logger
}

// New creates a Store rooted at dir, keeping at most limit history entries.
func New(dir string, limit int, logger logging.Logger) *Store {
	if limit < 1 {
		limit = 10
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Store{dir: dir, limit: limit, logger: logger}
}

// Save stores result as the latest analysis and prepends it to the history,
// trimming the history to the configured cap.
func (s *Store) Save(result *models.AnalysisResult) error {
	if result == nil {
		return fmt.Errorf("cannot save nil analysis result")
	}

	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return fmt.Errorf("error creating store directory: %w", err)
	}

	if err := s.writeJSON(lastFile, result); err != nil {
		return err
	}

	history, err := s.History()
	if err != nil {
		return err
	}

	entry := HistoryEntry{
		ID:        uuid.New().String(),
		Timestamp: time.Now().Format(time.RFC3339),
		Result:    *result,
	}
	history = append([]HistoryEntry{entry}, history...)
	if len(history) > s.limit {
		history = history[:s.limit]
	}

	if err := s.writeJSON(historyFile, history); err != nil {
		return err
	}

	s.logger.WithFields(
		logging.Field{Key: "id", Value: entry.ID},
		logging.Field{Key: "history_size", Value: len(history)},
	).Info("Saved analysis")

	return nil
}

// Last returns the most recently saved analysis, or nil when none exists.
func (s *Store) Last() (*models.AnalysisResult, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, lastFile)) // #nosec G304 -- store-owned path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading last analysis: %w", err)
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("error decoding last analysis: %w", err)
	}
	return &result, nil
}

// History returns saved analyses, most recent first. Missing history is an
// empty list, not an error.
func (s *Store) History() ([]HistoryEntry, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, historyFile)) // #nosec G304 -- store-owned path
	if err != nil {
		if os.IsNotExist(err) {
			return []HistoryEntry{}, nil
		}
		return nil, fmt.Errorf("error reading analysis history: %w", err)
	}

	var history []HistoryEntry
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("error decoding analysis history: %w", err)
	}
	return history, nil
}

// Clear removes the latest analysis and the whole history.
func (s *Store) Clear() error {
	for _, name := range []string{lastFile, historyFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("error removing %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) writeJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0600); err != nil {
		return fmt.Errorf("error writing %s: %w", name, err)
	}
	return nil
}
