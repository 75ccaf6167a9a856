package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"PaymentWebhooks/pkg/correlation"

	"github.com/gin-gonic/gin"
)

const maxBody = 8 * 1024

// capped keeps the first max bytes written to it and discards the rest.
type capped struct {
	bytes.Buffer
	max int
}

func (b *capped) Write(p []byte) (int, error) {
	if room := b.max - b.Len(); room > 0 {
		if len(p) > room {
			b.Buffer.Write(p[:room])
		} else {
			b.Buffer.Write(p)
		}
	}
	return len(p), nil
}

// teeBody copies what the handler reads into a capped buffer.
type teeBody struct {
	io.Reader
	io.Closer
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *capped
}

func (r *responseBodyWriter) Write(b []byte) (int, error) {
	_, _ = r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// CorrelationMiddleware takes X-Correlation-ID from the request or generates
// one, stores it in the request context and echoes it in the response.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		corrID := c.GetHeader(correlation.HeaderName)
		if corrID == "" {
			corrID = correlation.NewID()
		}

		ctx := correlation.WithID(c.Request.Context(), corrID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(correlation.HeaderName, corrID)

		c.Next()
	}
}

// RequestLogger logs one record per request. Bodies are attached only to
// failed responses, truncated to 8KB. The request body is captured as the
// handler reads it, so size limits applied downstream still hold.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestBody := &capped{max: maxBody}
		if c.Request.Body != nil {
			c.Request.Body = teeBody{Reader: io.TeeReader(c.Request.Body, requestBody), Closer: c.Request.Body}
		}

		responseBody := &capped{max: maxBody}
		c.Writer = &responseBodyWriter{body: responseBody, ResponseWriter: c.Writer}

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("route", c.FullPath()),
			slog.String("path", c.Request.URL.Path),
			slog.String("query", c.Request.URL.RawQuery),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
		}

		if status < 400 {
			slog.InfoContext(c.Request.Context(), "HTTP Request", attrs...)
			return
		}

		attrs = append(attrs,
			maybeJSON("request_body", requestBody.Bytes()),
			maybeJSON("response_body", responseBody.Bytes()),
		)
		slog.WarnContext(c.Request.Context(), "HTTP Request", attrs...)
	}
}

func maybeJSON(key string, b []byte) slog.Attr {
	bb := bytes.TrimSpace(b)
	if len(bb) == 0 {
		return slog.Any(key, nil)
	}
	if json.Valid(bb) {
		return slog.Any(key, json.RawMessage(bb))
	}
	return slog.String(key, string(bb))
}
