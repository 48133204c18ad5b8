package server

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"finance_dashboard/internal/logger"
)

const requestIDHeader = "X-Request-ID"

// statusWriter запоминает код ответа для журнала доступа.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// AccessLog присваивает запросу идентификатор и пишет строку журнала
// доступа после обработки.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			b := make([]byte, 6)
			rand.Read(b)
			requestID = hex.EncodeToString(b)
		}
		w.Header().Set(requestIDHeader, requestID)

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r)

		logger.Log.WithFields(map[string]interface{}{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     sw.status,
			"duration":   time.Since(start).String(),
			"request_id": requestID,
		}).Info("Request processed")
	})
}
