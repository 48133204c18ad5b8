package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"finance_dashboard/internal/config"
	"finance_dashboard/internal/fetcher"
	"finance_dashboard/internal/models"
	"finance_dashboard/internal/schema"

	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, newsURL, moversURL, indicatorURL string) *fetcher.Client {
	t.Helper()
	validator, err := schema.NewValidator()
	require.NoError(t, err)

	cfg := &config.Config{
		NewsURL:      newsURL,
		MoversURL:    moversURL,
		IndicatorURL: indicatorURL,
		APIKey:       "test-key",
		FetchTimeout: 2,
	}
	return fetcher.NewClient(cfg, validator)
}

func TestFetchNews(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    string
		wantErr bool
		items   int
	}{
		{
			name:   "valid response",
			status: http.StatusOK,
			body: `{"articles": [
				{"title": "Rates hold", "description": "Fed holds.", "url": "https://n.example.com/1", "source": "Wire", "published_at": "2025-06-18T18:00:00Z"},
				{"title": "Inflation cools", "url": "https://n.example.com/2"}
			]}`,
			items: 2,
		},
		{
			name:    "schema mismatch",
			status:  http.StatusOK,
			body:    `{"articles": [{"description": "no title or url"}]}`,
			wantErr: true,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{}`,
			wantErr: true,
		},
		{
			name:    "broken json",
			status:  http.StatusOK,
			body:    `{"articles": [`,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "test-key", r.URL.Query().Get("apikey"))
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := newClient(t, server.URL, server.URL, server.URL)
			out := client.FetchNews(context.Background())

			require.Equal(t, fetcher.SourceNews, out.Source)
			if tc.wantErr {
				require.Error(t, out.Err)
				return
			}
			require.NoError(t, out.Err)
			require.Len(t, out.News, tc.items)
			require.Equal(t, "Rates hold", out.News[0].Title)
		})
	}
}

func TestFetchMovers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"top_gainers": [
			{"ticker": "AAPL", "price": "198.11", "change_percentage": "2.4%"},
			{"ticker": "BAD", "price": "not-a-number"},
			{"ticker": "MSFT", "price": "452.30"}
		]}`))
	}))
	defer server.Close()

	client := newClient(t, server.URL, server.URL, server.URL)
	out := client.FetchMovers(context.Background())

	require.NoError(t, out.Err)
	require.Equal(t, "Stocks", out.Trend.Name)
	// Точка с нечисловой ценой пропускается, остальные сохраняются.
	require.Len(t, out.Trend.Points, 2)
	require.Equal(t, "AAPL", out.Trend.Points[0].Label)
	require.Equal(t, 198.11, out.Trend.Points[0].Value)
}

func TestFetchIndicator(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, fetcher.CodeTreasuryYield, r.URL.Query().Get("function"))
		w.Write([]byte(`{"name": "10-Year Treasury Constant Maturity Rate", "interval": "monthly", "unit": "percent",
			"data": [
				{"date": "2025-06-01", "value": "4.38"},
				{"date": "2025-05-01", "value": "4.42"}
			]}`))
	}))
	defer server.Close()

	client := newClient(t, server.URL, server.URL, server.URL)
	out := client.FetchIndicator(context.Background(), fetcher.CodeTreasuryYield)

	require.NoError(t, out.Err)
	require.Equal(t, fetcher.CodeTreasuryYield, out.Source)
	require.Equal(t, "Treasury Yield", out.Trend.Name)
	require.Len(t, out.Trend.Points, 2)
	require.Equal(t, models.Point{Label: "2025-06-01", Value: 4.38}, out.Trend.Points[0])
}

func TestFetchIndicator_Unreachable(t *testing.T) {
	client := newClient(t, "http://127.0.0.1:1", "http://127.0.0.1:1", "http://127.0.0.1:1")
	out := client.FetchIndicator(context.Background(), fetcher.CodeRealGDP)
	require.Error(t, out.Err)
}

func TestTrendName(t *testing.T) {
	require.Equal(t, "GDP", fetcher.TrendName(fetcher.CodeRealGDP))
	require.Equal(t, "Inflation", fetcher.TrendName(fetcher.CodeInflation))
	require.Equal(t, "Unemployment", fetcher.TrendName(fetcher.CodeUnemployment))
	require.Equal(t, "Treasury Yield", fetcher.TrendName(fetcher.CodeTreasuryYield))
	require.Equal(t, "Federal Interest Rate", fetcher.TrendName(fetcher.CodeFederalFundsRate))
}

func TestTrendName_UnknownCodePanics(t *testing.T) {
	require.Panics(t, func() {
		fetcher.TrendName("CONSUMER_SENTIMENT")
	})
}
