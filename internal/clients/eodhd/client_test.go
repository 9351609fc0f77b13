package eodhd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient("test-key", WithBaseURL(server.URL))
	return client, server
}

func TestGetEOD(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(`[
			{"date": "2026-08-27", "close": 71000},
			{"date": "2026-08-28", "close": 71500}
		]`))
	})
	defer server.Close()

	from := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	bars, err := client.GetEOD(context.Background(), "005930.KO", from, to)
	require.NoError(t, err)

	assert.Equal(t, "/eod/005930.KO", gotPath)
	assert.Equal(t, []string{"test-key"}, gotQuery["api_token"])
	assert.Equal(t, []string{"json"}, gotQuery["fmt"])
	assert.Equal(t, []string{"d"}, gotQuery["period"])
	assert.Equal(t, []string{"a"}, gotQuery["order"])
	assert.Equal(t, []string{"2026-08-24"}, gotQuery["from"])
	assert.Equal(t, []string{"2026-08-31"}, gotQuery["to"])

	require.Len(t, bars, 2)
	assert.Equal(t, 71000.0, bars[0].Close)
	assert.Equal(t, 71500.0, bars[1].Close)
}

func TestGetEODSortsAndSkipsBadDates(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[
			{"date": "2026-08-28", "close": 71500},
			{"date": "not-a-date", "close": 1},
			{"date": "2026-08-27", "close": 71000}
		]`))
	})
	defer server.Close()

	bars, err := client.GetEOD(context.Background(), "005930.KO", time.Time{}, time.Time{})
	require.NoError(t, err)

	require.Len(t, bars, 2)
	assert.True(t, bars[0].Date.Before(bars[1].Date))
	assert.Equal(t, 71000.0, bars[0].Close)
}

func TestGetEODZeroTimesOmitRange(t *testing.T) {
	var gotQuery map[string][]string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	})
	defer server.Close()

	bars, err := client.GetEOD(context.Background(), "AAPL.US", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, bars)
	assert.NotContains(t, gotQuery, "from")
	assert.NotContains(t, gotQuery, "to")
}

func TestGetExchangeSymbols(t *testing.T) {
	var gotPath string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[
			{"Code": "005930", "Name": "Samsung Electronics"},
			{"Code": "000660", "Name": "SK hynix"}
		]`))
	})
	defer server.Close()

	symbols, err := client.GetExchangeSymbols(context.Background(), "KO")
	require.NoError(t, err)

	assert.Equal(t, "/exchange-symbol-list/KO", gotPath)
	require.Len(t, symbols, 2)
	assert.Equal(t, "005930", symbols[0].Code)
	assert.Equal(t, "Samsung Electronics", symbols[0].Name)
}

func TestNonOKStatusIsAPIError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte("plan limit reached"))
	})
	defer server.Close()

	_, err := client.GetEOD(context.Background(), "005930.KO", time.Time{}, time.Time{})
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusPaymentRequired, apiErr.StatusCode)
	assert.Equal(t, "plan limit reached", apiErr.Message)
}

func TestMalformedJSONIsAnError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{not json`))
	})
	defer server.Close()

	_, err := client.GetEOD(context.Background(), "005930.KO", time.Time{}, time.Time{})
	assert.Error(t, err)
}
