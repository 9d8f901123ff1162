package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	applog "github.com/KaramelBytes/happiness-cli/internal/log"
)

const requestIDHeader = "X-Request-ID"

// requestID tags each request with an id, echoed in the response header and
// attached to the request logger.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		logger := s.logger.With(applog.FieldRequestID, id)
		next.ServeHTTP(w, r.WithContext(applog.NewContext(r.Context(), logger)))
	})
}

// accessLog logs one line per completed request; 4xx at warn, 5xx at error.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		logger := applog.FromContext(r.Context())
		args := []any{
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldQuery, r.URL.RawQuery,
			applog.FieldStatusCode, status,
			applog.FieldDuration, time.Since(start).Milliseconds(),
		}
		switch {
		case status >= 500:
			logger.ErrorContext(r.Context(), "http request completed", args...)
		case status >= 400:
			logger.WarnContext(r.Context(), "http request completed", args...)
		default:
			logger.InfoContext(r.Context(), "http request completed", args...)
		}
	})
}
