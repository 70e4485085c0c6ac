package middleware

import (
	"net/http"

	"github.com/frahmantamala/organization-management/internal/transport"
	"github.com/frahmantamala/organization-management/pkg/logger"
	"github.com/google/uuid"
)

const maxTraceIDLen = 128

// RequestID adopts the caller's X-Trace-ID or generates one, echoes it on
// the response and scopes the request logger with it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(transport.TraceIDHeader)
		if traceID == "" || len(traceID) > maxTraceIDLen {
			traceID = uuid.NewString()
		}

		w.Header().Set(transport.TraceIDHeader, traceID)
		ctx := logger.With(r.Context(), "trace_id", traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
