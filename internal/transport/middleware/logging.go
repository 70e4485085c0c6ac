package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/frahmantamala/organization-management/internal/transport"
	"github.com/go-chi/chi"
)

const (
	filtered       = "[FILTERED]"
	maxLoggedBytes = 4 << 10
)

// sensitiveMarkers are matched case-insensitively against header names and
// JSON keys.
var sensitiveMarkers = []string{"authorization", "token", "secret", "password", "cookie", "key", "credential"}

func isSensitive(name string) bool {
	name = strings.ToLower(name)
	for _, marker := range sensitiveMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}

// LoggingMiddleware logs every request and its response. Success bodies are
// never captured since the sign-in response is a bearer token.
func LoggingMiddleware(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			traceID := w.Header().Get(transport.TraceIDHeader)

			requestBody := peekBody(r)
			logger.InfoContext(r.Context(), "incoming request",
				"trace_id", traceID,
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"remote_addr", r.RemoteAddr,
				"headers", redactHeaders(r.Header),
				"body", redactBody(requestBody),
			)

			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			attrs := []any{
				"trace_id", traceID,
				"method", r.Method,
				"route", routePattern(r),
				"status_code", rec.status,
				"duration_ms", time.Since(start).Milliseconds(),
				"response_size", rec.size,
			}
			if rec.errBody.Len() > 0 {
				attrs = append(attrs, "body", redactBody(rec.errBody.Bytes()))
			}
			logger.Log(r.Context(), levelFor(rec.status), "response", attrs...)
		})
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}

// peekBody reads at most maxLoggedBytes+1 bytes of the request body and
// stitches them back in front of the unread rest, so body limits applied by
// the handler still see the whole stream.
func peekBody(r *http.Request) []byte {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	peeked, _ := io.ReadAll(io.LimitReader(r.Body, maxLoggedBytes+1))
	r.Body = replayBody{
		Reader: io.MultiReader(bytes.NewReader(peeked), r.Body),
		Closer: r.Body,
	}
	return peeked
}

type replayBody struct {
	io.Reader
	io.Closer
}

type responseRecorder struct {
	http.ResponseWriter
	status  int
	size    int
	errBody bytes.Buffer
}

func (rw *responseRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseRecorder) Write(b []byte) (int, error) {
	if rw.status >= http.StatusBadRequest && rw.errBody.Len() < maxLoggedBytes {
		rw.errBody.Write(b)
	}
	rw.size += len(b)
	return rw.ResponseWriter.Write(b)
}

func redactHeaders(headers http.Header) map[string]string {
	out := make(map[string]string, len(headers))
	for name, values := range headers {
		if isSensitive(name) {
			out[name] = filtered
			continue
		}
		out[name] = strings.Join(values, ", ")
	}
	return out
}

func redactBody(body []byte) any {
	if len(body) == 0 {
		return ""
	}
	if len(body) > maxLoggedBytes {
		return "[TRUNCATED]"
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return "[NON-JSON BODY]"
	}
	return redactValue(data)
}

func redactValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for key, inner := range val {
			if isSensitive(key) {
				out[key] = filtered
				continue
			}
			out[key] = redactValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = redactValue(inner)
		}
		return out
	default:
		return val
	}
}
