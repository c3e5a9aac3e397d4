package http

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries the id that ties a logged request to its response
const RequestIDHeader = "X-Request-ID"

// maxLoggedBody bounds how much of a body is copied into a log record
const maxLoggedBody = 64 * 1024

// LoggingTransport logs every request and response that passes through it.
// Headers are masked; bodies are logged only when LogBodies is set and are
// restored so the caller still reads the full payload.
type LoggingTransport struct {
	Base      http.RoundTripper
	Logger    *slog.Logger
	Masker    CredentialMasker
	LogBodies bool
	Level     slog.Level
}

// NewLoggingTransport wraps base with request/response logging at debug level
func NewLoggingTransport(base http.RoundTripper, logger *slog.Logger, logBodies bool) *LoggingTransport {
	return &LoggingTransport{
		Base:      base,
		Logger:    logger,
		Masker:    DefaultCredentialMasker(),
		LogBodies: logBodies,
		Level:     slog.LevelDebug,
	}
}

// RoundTrip implements http.RoundTripper
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if !t.Logger.Enabled(ctx, t.Level) {
		return t.base().RoundTrip(req)
	}

	// RoundTrippers must not modify the caller's request
	req = req.Clone(ctx)
	requestID := req.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.New().String()
		req.Header.Set(RequestIDHeader, requestID)
	}

	attrs := []any{
		slog.String("request_id", requestID),
		slog.String("method", req.Method),
		slog.String("uri", t.Masker.MaskString(req.URL.String())),
		slog.String("headers", formatHeaders(t.Masker.MaskHeaders(req.Header))),
	}
	if t.LogBodies && req.Body != nil && req.Body != http.NoBody {
		body, restored, err := drain(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body = restored
		attrs = append(attrs, slog.String("body", t.Masker.MaskString(body)))
	}
	t.Logger.Log(ctx, t.Level, "=== Http Request ===", attrs...)

	start := time.Now()
	resp, err := t.base().RoundTrip(req)
	if err != nil {
		t.Logger.Log(ctx, t.Level, "=== Http Response ===",
			slog.String("request_id", requestID),
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()))
		return nil, err
	}

	attrs = []any{
		slog.String("request_id", requestID),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
		slog.String("headers", formatHeaders(t.Masker.MaskHeaders(resp.Header))),
	}
	if t.LogBodies && resp.Body != nil && !isStreaming(resp) {
		body, restored, err := drain(resp.Body)
		if err != nil {
			_ = resp.Body.Close() //nolint:errcheck // Best effort close
			return nil, err
		}
		resp.Body = restored
		attrs = append(attrs, slog.String("body", t.Masker.MaskString(body)))
	}
	t.Logger.Log(ctx, t.Level, "=== Http Response ===", attrs...)

	return resp, nil
}

func (t *LoggingTransport) base() http.RoundTripper {
	if t.Base == nil {
		return http.DefaultTransport
	}
	return t.Base
}

// drain reads body fully and returns its (possibly truncated) text plus a
// replacement reader holding the complete content.
func drain(body io.ReadCloser) (string, io.ReadCloser, error) {
	defer func() { _ = body.Close() }() //nolint:errcheck // Best effort close

	data, err := io.ReadAll(body)
	if err != nil {
		return "", nil, err
	}

	text := data
	if len(text) > maxLoggedBody {
		text = text[:maxLoggedBody]
	}
	return string(text), io.NopCloser(bytes.NewReader(data)), nil
}

// server-sent event streams are never buffered
func isStreaming(resp *http.Response) bool {
	return strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream")
}

type requestIDKey struct{}

// WithRequestID stores an id in ctx; LoggingTransport does not read it, but
// HeaderTransport forwards it as the X-Request-ID header.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the id stored by WithRequestID
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
