// Package interest manages per-chat interest lists.
package interest

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/ssehuun/telegram-news-bot/internal/common"
	"github.com/ssehuun/telegram-news-bot/internal/interfaces"
	"github.com/ssehuun/telegram-news-bot/internal/models"
)

// User-facing rejection classes. The command layer maps these to chat
// replies.
var (
	ErrUnknownTicker   = errors.New("ticker does not exist")
	ErrDuplicateTicker = errors.New("ticker already in list")
	ErrTickerNotListed = errors.New("ticker not in list")
)

// Service implements InterestService. Lists live in memory and are
// persisted whole on every mutation, so a crash loses at most nothing.
type Service struct {
	store   interfaces.InterestStore
	gateway interfaces.MarketGateway
	logger  *common.Logger

	mu    sync.Mutex
	lists map[string][]string
}

// NewService creates the service and loads persisted lists. A load
// failure degrades to empty lists.
func NewService(ctx context.Context, store interfaces.InterestStore, gateway interfaces.MarketGateway, logger *common.Logger) *Service {
	lists, err := store.Load(ctx)
	if err != nil || lists == nil {
		lists = make(map[string][]string)
	}

	return &Service{
		store:   store,
		gateway: gateway,
		logger:  logger,
		lists:   lists,
	}
}

// Add appends a ticker to a chat's list after an existence check.
// Duplicates are rejected: each ticker appears at most once per chat.
func (s *Service) Add(ctx context.Context, chatKey, ticker string) error {
	ticker = models.NormalizeTicker(ticker)

	if !s.gateway.IsValid(ctx, ticker) {
		return ErrUnknownTicker
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.lists[chatKey] {
		if t == ticker {
			return ErrDuplicateTicker
		}
	}

	s.lists[chatKey] = append(s.lists[chatKey], ticker)
	if err := s.persistLocked(ctx); err != nil {
		return err
	}

	s.logger.Info().Str("chat", chatKey).Str("ticker", ticker).Msg("Interest ticker added")
	return nil
}

// Remove deletes a ticker from a chat's list.
func (s *Service) Remove(ctx context.Context, chatKey, ticker string) error {
	ticker = models.NormalizeTicker(ticker)

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.lists[chatKey]
	idx := -1
	for i, t := range list {
		if t == ticker {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrTickerNotListed
	}

	list = append(list[:idx], list[idx+1:]...)
	if len(list) == 0 {
		delete(s.lists, chatKey)
	} else {
		s.lists[chatKey] = list
	}

	if err := s.persistLocked(ctx); err != nil {
		return err
	}

	s.logger.Info().Str("chat", chatKey).Str("ticker", ticker).Msg("Interest ticker removed")
	return nil
}

// List returns a chat's tickers in insertion order.
func (s *Service) List(_ context.Context, chatKey string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lists[chatKey]...)
}

// Chats returns every chat key with a non-empty list, sorted for
// deterministic scheduling.
func (s *Service) Chats(_ context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	chats := make([]string, 0, len(s.lists))
	for chatKey, tickers := range s.lists {
		if len(tickers) > 0 {
			chats = append(chats, chatKey)
		}
	}
	sort.Strings(chats)
	return chats
}

func (s *Service) persistLocked(ctx context.Context) error {
	snapshot := make(map[string][]string, len(s.lists))
	for chatKey, tickers := range s.lists {
		snapshot[chatKey] = append([]string(nil), tickers...)
	}
	return s.store.Save(ctx, snapshot)
}

// Ensure Service implements InterestService
var _ interfaces.InterestService = (*Service)(nil)
