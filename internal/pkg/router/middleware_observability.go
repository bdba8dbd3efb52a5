package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/ligtascommute/backend/internal/pkg/config"
	"github.com/ligtascommute/backend/internal/pkg/instrument"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const maxLoggedBodyBytes = 32 << 10

// statusRecorder captures the response status and handler error for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
	err    error
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}

	return s.ResponseWriter.Write(b)
}

// SetError records the handler error so the access log can include it.
func (s *statusRecorder) SetError(err error) {
	s.err = err
}

func middlewareObservability(cfg config.Config, in instrument.Instrumentation) Middleware {
	tracer := in.Tracer("http.server")
	meter := in.Meter("http.server")

	requestCounter, _ := meter.Int64Counter("http.server.requests",
		metric.WithDescription("Number of HTTP requests handled"))
	requestDuration, _ := meter.Float64Histogram("http.server.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			route := matchedRoutePath(r)

			ctx, span := tracer.Start(r.Context(), r.Method+" "+route,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", r.Method),
					attribute.String("http.route", route),
					attribute.String("client.address", r.RemoteAddr),
				),
			)
			defer span.End()

			body := peekBody(r)

			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r.WithContext(ctx))

			if rec.status == 0 {
				rec.status = http.StatusOK
			}

			elapsed := time.Since(start)
			attrs := metric.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("http.route", route),
				attribute.Int("http.response.status_code", rec.status),
			)
			requestCounter.Add(ctx, 1, attrs)
			requestDuration.Record(ctx, float64(elapsed.Milliseconds()), attrs)

			span.SetAttributes(attribute.Int("http.response.status_code", rec.status))
			if rec.err != nil {
				span.RecordError(rec.err)
				span.SetStatus(codes.Error, rec.err.Error())
			}

			maskKeys := getMaskKeys(cfg)
			logAttrs := []any{
				"method", r.Method,
				"route", route,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", elapsed.Milliseconds(),
				"client_ip", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			}
			if len(body) > 0 {
				logAttrs = append(logAttrs, "request_body", parseAndMaskBody(body, maskKeys))
			}
			if rec.err != nil {
				logAttrs = append(logAttrs, "error", rec.err.Error())
			}

			if rec.status >= http.StatusInternalServerError {
				slog.ErrorContext(ctx, "http request", logAttrs...)
			} else {
				slog.InfoContext(ctx, "http request", logAttrs...)
			}
		})
	}
}

// peekBody reads up to maxLoggedBodyBytes of the request body for logging and
// restores the body so the handler can still decode it.
func peekBody(r *http.Request) []byte {
	if r.Body == nil || r.Method == http.MethodGet {
		return nil
	}
	if ct := r.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxLoggedBodyBytes))
	if err != nil {
		return nil
	}
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), r.Body))

	return body
}

func getMaskKeys(cfg config.Config) map[string]struct{} {
	if cfg == nil {
		return nil
	}

	arr := cfg.GetArray("instrument.log_mask_fields")
	if len(arr) == 0 {
		return nil
	}

	keys := make(map[string]struct{}, len(arr))
	for _, k := range arr {
		keys[strings.ToLower(k)] = struct{}{}
	}

	return keys
}

// parseAndMaskBody decodes a JSON body and masks configured sensitive fields.
// Non-JSON bodies are reported by size only.
func parseAndMaskBody(body []byte, maskKeys map[string]struct{}) any {
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return map[string]any{"unparsed_bytes": len(body)}
	}

	return maskData(data, maskKeys)
}

func maskData(data any, maskKeys map[string]struct{}) any {
	switch v := data.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			if _, ok := maskKeys[strings.ToLower(k)]; ok {
				out[k] = "***"
				continue
			}
			out[k] = maskData(val, maskKeys)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = maskData(val, maskKeys)
		}
		return out
	default:
		return v
	}
}

// matchedRoutePath returns the registered route pattern for the request,
// falling back to the raw URL path when httprouter did not record one.
func matchedRoutePath(r *http.Request) string {
	params := httprouter.ParamsFromContext(r.Context())
	if path := params.MatchedRoutePath(); path != "" {
		return path
	}

	return r.URL.Path
}
