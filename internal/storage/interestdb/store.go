// Package interestdb persists per-chat interest lists using BadgerHold.
package interestdb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/ssehuun/telegram-news-bot/internal/common"
	"github.com/ssehuun/telegram-news-bot/internal/interfaces"
	"github.com/ssehuun/telegram-news-bot/internal/models"
)

// Store implements interfaces.InterestStore using BadgerHold, one
// InterestRecord per chat key.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore opens (or creates) the interest database at path.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create interestdb path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open interestdb at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("Interest DB opened")
	return &Store{db: db, logger: logger}, nil
}

// Load returns all persisted interest lists keyed by chat. Read failures
// degrade to an empty mapping: bad interest data must never fail
// startup.
func (s *Store) Load(_ context.Context) (map[string][]string, error) {
	lists := make(map[string][]string)

	var records []models.InterestRecord
	if err := s.db.Find(&records, nil); err != nil {
		s.logger.Warn().Err(err).Msg("Interest list load failed: starting empty")
		return lists, nil
	}

	for _, rec := range records {
		if rec.ChatKey == "" || len(rec.Tickers) == 0 {
			continue
		}
		lists[rec.ChatKey] = append([]string(nil), rec.Tickers...)
	}
	return lists, nil
}

// Save persists the full mapping, removing chats that are no longer
// present.
func (s *Store) Save(_ context.Context, lists map[string][]string) error {
	var existing []models.InterestRecord
	if err := s.db.Find(&existing, nil); err != nil {
		return fmt.Errorf("failed to read existing interest records: %w", err)
	}

	now := time.Now()

	for chatKey, tickers := range lists {
		rec := models.InterestRecord{
			ChatKey:   chatKey,
			Tickers:   append([]string(nil), tickers...),
			UpdatedAt: now,
		}

		var prev models.InterestRecord
		if err := s.db.Get(chatKey, &prev); err == nil {
			rec.Version = prev.Version + 1
		} else {
			rec.Version = 1
		}

		if err := s.db.Upsert(chatKey, rec); err != nil {
			return fmt.Errorf("failed to save interest list for chat '%s': %w", chatKey, err)
		}
	}

	for _, rec := range existing {
		if _, ok := lists[rec.ChatKey]; !ok {
			if err := s.db.Delete(rec.ChatKey, models.InterestRecord{}); err != nil && err != badgerhold.ErrNotFound {
				return fmt.Errorf("failed to delete interest list for chat '%s': %w", rec.ChatKey, err)
			}
		}
	}

	return nil
}

// ImportLegacyFile migrates an old JSON interest file into the store,
// once. Two historical formats are accepted: a flat ticker array (filed
// under the default chat key) and a chat-keyed map. The import is
// skipped when the store already has data or the file is missing or
// corrupt, all silently. Migration is best-effort.
func (s *Store) ImportLegacyFile(ctx context.Context, path string) {
	if path == "" {
		return
	}

	existing, _ := s.Load(ctx)
	if len(existing) > 0 {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	lists := parseLegacy(data)
	if len(lists) == 0 {
		return
	}

	if err := s.Save(ctx, lists); err != nil {
		s.logger.Warn().Err(err).Str("file", path).Msg("Legacy interest import failed")
		return
	}

	s.logger.Info().Str("file", path).Int("chats", len(lists)).Msg("Legacy interest file imported")
}

// parseLegacy decodes either legacy format into the chat-keyed mapping.
func parseLegacy(data []byte) map[string][]string {
	var flat []string
	if err := json.Unmarshal(data, &flat); err == nil {
		if len(flat) == 0 {
			return nil
		}
		return map[string][]string{models.DefaultChatKey: flat}
	}

	var keyed map[string][]string
	if err := json.Unmarshal(data, &keyed); err == nil {
		return keyed
	}

	return nil
}

// Close shuts down the BadgerHold database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ensure Store implements InterestStore
var _ interfaces.InterestStore = (*Store)(nil)
