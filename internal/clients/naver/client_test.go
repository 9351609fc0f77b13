package naver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clusterPayload = `{
	"clusters": [
		{"items": [
			{"title": "첫 번째 기사", "officeId": "001", "articleId": "0001234"},
			{"title": "두 번째 기사", "officeId": "002", "articleId": "0005678"}
		]},
		{"items": [
			{"title": "다른 클러스터", "officeId": "003", "articleId": "0009999"}
		]}
	]
}`

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(WithBaseURL(server.URL))
	return client, server
}

func TestDomesticNewsPicksFirstClusterFirstItem(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(clusterPayload))
	})
	defer server.Close()

	item, err := client.DomesticNews(context.Background(), "005930")
	require.NoError(t, err)

	assert.Equal(t, "/domestic/detail/news", gotPath)
	assert.Equal(t, []string{"005930"}, gotQuery["itemCode"])
	assert.Equal(t, []string{"1"}, gotQuery["page"])
	assert.Equal(t, []string{"1"}, gotQuery["pageSize"])

	assert.Equal(t, "첫 번째 기사", item.Title)
	assert.Equal(t, "001", item.OfficeID)
	assert.Equal(t, "0001234", item.ArticleID)
	assert.Equal(t, "https://n.news.naver.com/article/001/0001234", item.URL)
}

func TestWorldNewsSendsSymbolAsIs(t *testing.T) {
	var gotPath, gotSymbol string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSymbol = r.URL.Query().Get("symbol")
		w.Write([]byte(clusterPayload))
	})
	defer server.Close()

	item, err := client.WorldNews(context.Background(), "AAPL.O")
	require.NoError(t, err)
	assert.Equal(t, "/news/worldstock", gotPath)
	assert.Equal(t, "AAPL.O", gotSymbol)
	assert.Equal(t, "첫 번째 기사", item.Title)
}

func TestRequestCarriesBrowserHeaders(t *testing.T) {
	var gotUA, gotReferer string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotReferer = r.Header.Get("Referer")
		w.Write([]byte(clusterPayload))
	})
	defer server.Close()

	_, err := client.DomesticNews(context.Background(), "005930")
	require.NoError(t, err)
	assert.Equal(t, "Mozilla/5.0", gotUA)
	assert.Equal(t, "https://stock.naver.com/domestic/stock/005930/news", gotReferer)
}

func TestEmptyClustersIsAnError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"clusters": []}`))
	})
	defer server.Close()

	_, err := client.DomesticNews(context.Background(), "005930")
	assert.Error(t, err)
}

func TestEmptyFirstClusterIsAnError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"clusters": [{"items": []}]}`))
	})
	defer server.Close()

	_, err := client.WorldNews(context.Background(), "AAPL.O")
	assert.Error(t, err)
}

func TestNonOKStatusIsAPIError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("blocked by access policy"))
	})
	defer server.Close()

	_, err := client.DomesticNews(context.Background(), "005930")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "blocked by access policy", apiErr.Message)
	assert.Equal(t, "/domestic/detail/news", apiErr.Endpoint)
}

func TestMalformedJSONIsAnError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{not json`))
	})
	defer server.Close()

	_, err := client.DomesticNews(context.Background(), "005930")
	assert.Error(t, err)
}
