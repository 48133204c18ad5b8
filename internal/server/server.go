package server

import (
	"context"
	"encoding/json"
	"net/http"

	"finance_dashboard/internal/economy"
)

// Pinger проверяет доступность одного из ярусов хранения.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server хранит зависимости HTTP-обработчиков: точку входа обзора рынка
// и оба яруса хранения для проверки здоровья.
type Server struct {
	svc   *economy.Service
	tiers map[string]Pinger
}

// NewServer создаёт Server поверх точки входа и ярусов хранения.
func NewServer(svc *economy.Service, tiers map[string]Pinger) *Server {
	return &Server{svc: svc, tiers: tiers}
}

// GetEconomy отдаёт агрегированный обзор рынка. Ошибок у этой операции
// нет по контракту: агрегат всегда полон, худший случай — резервный снимок.
func (s *Server) GetEconomy(w http.ResponseWriter, r *http.Request) {
	result := s.svc.GetEconomicIndicators(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// HealthCheck отвечает 200 OK, если доступны оба яруса хранения, иначе 503
// с именем недоступного яруса.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	for name, tier := range s.tiers {
		if err := tier.Ping(r.Context()); err != nil {
			http.Error(w, name+" unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.Write([]byte("OK"))
}
