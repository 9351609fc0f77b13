package interest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssehuun/telegram-news-bot/internal/common"
	"github.com/ssehuun/telegram-news-bot/internal/models"
)

// mockStore implements interfaces.InterestStore.
type mockStore struct {
	loadFn    func() (map[string][]string, error)
	saveFn    func(lists map[string][]string) error
	saveCalls int
	lastSaved map[string][]string
}

func (m *mockStore) Load(_ context.Context) (map[string][]string, error) {
	if m.loadFn != nil {
		return m.loadFn()
	}
	return nil, nil
}

func (m *mockStore) Save(_ context.Context, lists map[string][]string) error {
	m.saveCalls++
	m.lastSaved = lists
	if m.saveFn != nil {
		return m.saveFn(lists)
	}
	return nil
}

func (m *mockStore) Close() error { return nil }

// mockGateway implements interfaces.MarketGateway. validFn nil means
// everything validates.
type mockGateway struct {
	validFn func(ticker string) bool
}

func (m *mockGateway) FetchSeries(_ context.Context, _ string, _, _ time.Time) ([]models.PriceBar, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockGateway) IsValid(_ context.Context, ticker string) bool {
	if m.validFn != nil {
		return m.validFn(ticker)
	}
	return true
}

func newTestService(store *mockStore, gw *mockGateway) *Service {
	if store == nil {
		store = &mockStore{}
	}
	if gw == nil {
		gw = &mockGateway{}
	}
	return NewService(context.Background(), store, gw, common.NewSilentLogger())
}

func TestAddNormalizesAndPersists(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store, nil)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "100", "5930"))
	assert.Equal(t, []string{"005930"}, svc.List(ctx, "100"))
	assert.Equal(t, 1, store.saveCalls)
	assert.Equal(t, map[string][]string{"100": {"005930"}}, store.lastSaved)
}

func TestAddRejectsUnknownTicker(t *testing.T) {
	gw := &mockGateway{validFn: func(_ string) bool { return false }}
	store := &mockStore{}
	svc := newTestService(store, gw)

	err := svc.Add(context.Background(), "100", "999999")
	assert.ErrorIs(t, err, ErrUnknownTicker)
	assert.Equal(t, 0, store.saveCalls, "a rejected add must not persist")
}

func TestAddRejectsDuplicate(t *testing.T) {
	svc := newTestService(nil, nil)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "100", "005930"))
	assert.ErrorIs(t, svc.Add(ctx, "100", "005930"), ErrDuplicateTicker)
	assert.ErrorIs(t, svc.Add(ctx, "100", "5930"), ErrDuplicateTicker, "normalized forms collide")
	assert.Equal(t, []string{"005930"}, svc.List(ctx, "100"))
}

func TestListsAreIsolatedPerChat(t *testing.T) {
	svc := newTestService(nil, nil)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "100", "005930"))
	require.NoError(t, svc.Add(ctx, "200", "005930"))
	require.NoError(t, svc.Add(ctx, "200", "AAPL"))

	assert.Equal(t, []string{"005930"}, svc.List(ctx, "100"))
	assert.Equal(t, []string{"005930", "AAPL"}, svc.List(ctx, "200"))
}

func TestRemove(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store, nil)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "100", "005930"))
	require.NoError(t, svc.Add(ctx, "100", "000660"))

	require.NoError(t, svc.Remove(ctx, "100", "5930"))
	assert.Equal(t, []string{"000660"}, svc.List(ctx, "100"))

	assert.ErrorIs(t, svc.Remove(ctx, "100", "005930"), ErrTickerNotListed)
	assert.ErrorIs(t, svc.Remove(ctx, "300", "005930"), ErrTickerNotListed)
}

func TestRemoveLastTickerDropsChat(t *testing.T) {
	svc := newTestService(nil, nil)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "100", "005930"))
	require.NoError(t, svc.Remove(ctx, "100", "005930"))

	assert.Empty(t, svc.List(ctx, "100"))
	assert.Empty(t, svc.Chats(ctx))
}

func TestChatsSortedNonEmpty(t *testing.T) {
	svc := newTestService(nil, nil)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "300", "005930"))
	require.NoError(t, svc.Add(ctx, "100", "005930"))
	require.NoError(t, svc.Add(ctx, "200", "AAPL"))

	assert.Equal(t, []string{"100", "200", "300"}, svc.Chats(ctx))
}

func TestLoadFailureDegradesToEmpty(t *testing.T) {
	store := &mockStore{
		loadFn: func() (map[string][]string, error) {
			return nil, fmt.Errorf("store corrupt")
		},
	}
	svc := newTestService(store, nil)
	ctx := context.Background()

	assert.Empty(t, svc.Chats(ctx))
	require.NoError(t, svc.Add(ctx, "100", "005930"))
	assert.Equal(t, []string{"005930"}, svc.List(ctx, "100"))
}

func TestLoadedListsSurviveRestart(t *testing.T) {
	store := &mockStore{
		loadFn: func() (map[string][]string, error) {
			return map[string][]string{"100": {"005930", "AAPL"}}, nil
		},
	}
	svc := newTestService(store, nil)

	assert.Equal(t, []string{"005930", "AAPL"}, svc.List(context.Background(), "100"))
}

func TestSaveFailureSurfacesError(t *testing.T) {
	store := &mockStore{
		saveFn: func(_ map[string][]string) error {
			return fmt.Errorf("disk full")
		},
	}
	svc := newTestService(store, nil)

	assert.Error(t, svc.Add(context.Background(), "100", "005930"))
}

func TestListReturnsCopy(t *testing.T) {
	svc := newTestService(nil, nil)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "100", "005930"))
	got := svc.List(ctx, "100")
	got[0] = "mutated"

	assert.Equal(t, []string{"005930"}, svc.List(ctx, "100"))
}
