package server_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"finance_dashboard/internal/economy"
	"finance_dashboard/internal/server"

	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(_ context.Context) error { return f.err }

// Сервис в режиме CI не трогает ни кэш, ни хранилище — для теста
// обработчика этого достаточно.
func newTestServer(tiers map[string]server.Pinger) *server.Server {
	svc := economy.NewService(nil, nil, nil, economy.Options{CIMode: true})
	return server.NewServer(svc, tiers)
}

func TestGetEconomy(t *testing.T) {
	srv := newTestServer(nil)

	req := httptest.NewRequest("GET", "/api/economy", nil)
	w := httptest.NewRecorder()

	srv.GetEconomy(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	body := w.Body.String()
	for _, key := range []string{"Stocks", "GDP", "Inflation", "Unemployment", "Treasury Yield", "Federal Interest Rate", "news"} {
		require.Contains(t, body, `"`+key+`"`)
	}
}

func TestHealthCheck(t *testing.T) {
	t.Run("all tiers up", func(t *testing.T) {
		srv := newTestServer(map[string]server.Pinger{
			"postgres": &fakePinger{},
			"redis":    &fakePinger{},
		})

		w := httptest.NewRecorder()
		srv.HealthCheck(w, httptest.NewRequest("GET", "/health", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "OK", w.Body.String())
	})

	t.Run("tier down", func(t *testing.T) {
		srv := newTestServer(map[string]server.Pinger{
			"postgres": &fakePinger{},
			"redis":    &fakePinger{err: errors.New("refused")},
		})

		w := httptest.NewRecorder()
		srv.HealthCheck(w, httptest.NewRequest("GET", "/health", nil))

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		require.Contains(t, w.Body.String(), "redis unavailable")
	})
}

func TestAccessLog_SetsRequestID(t *testing.T) {
	handler := server.AccessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/economy", nil))

	require.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
