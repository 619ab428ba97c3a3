package middleware

import (
	"log/slog"
	"net/http"
)

// Chain wraps the handler with the full middleware stack.
// Order: CORS → RequestID → Logging → Metrics → MaxBytes → mux
//
// No request timeout: a comparison completes only when
// the slowest model has answered.
func Chain(handler http.Handler, logger *slog.Logger, maxBodyBytes int64) http.Handler {
	h := handler
	h = MaxBytes(maxBodyBytes)(h)
	h = Metrics(h)
	h = Logging(logger)(h)
	h = RequestID(h)
	h = CORS(h)
	return h
}
