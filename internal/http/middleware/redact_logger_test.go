package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// captureLogs swaps the global logger for a buffer for the duration of fn.
func captureLogs(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	old := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = old }()
	fn()
	return buf.String()
}

func serveRedacting(t *testing.T, opts RedactOptions, mutate func(*http.Request)) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), RedactingLogger(opts))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	return captureLogs(t, func() {
		req := httptest.NewRequest(http.MethodGet, "/x?email=lifter@example.com", nil)
		if mutate != nil {
			mutate(req)
		}
		r.ServeHTTP(httptest.NewRecorder(), req)
	})
}

func TestRedactingLogger_ScrubsEmailsInQuery(t *testing.T) {
	out := serveRedacting(t, RedactOptions{}, nil)

	if strings.Contains(out, "lifter@example.com") {
		t.Fatalf("email leaked into logs: %s", out)
	}
	if !strings.Contains(out, "[REDACTED:email]") {
		t.Fatalf("email not redacted: %s", out)
	}
	if !strings.Contains(out, "http_request") {
		t.Fatalf("missing access log line: %s", out)
	}
}

func TestRedactingLogger_MasksSensitiveHeaders(t *testing.T) {
	out := serveRedacting(t, RedactOptions{MaskHeaders: []string{"X-API-Key"}}, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer super-secret-token")
		req.Header.Set("X-API-Key", "key-material")
	})

	if strings.Contains(out, "super-secret-token") || strings.Contains(out, "key-material") {
		t.Fatalf("sensitive header leaked: %s", out)
	}
	if !strings.Contains(out, "[REDACTED]") {
		t.Fatalf("headers not masked: %s", out)
	}
}

func TestRedactingLogger_RedactsUUIDsBeforePhones(t *testing.T) {
	out := serveRedacting(t, RedactOptions{}, func(req *http.Request) {
		req.Header.Set("X-Trace", "11111111-2222-3333-8444-555555555555")
	})

	if strings.Contains(out, "11111111-2222-3333-8444-555555555555") {
		t.Fatalf("uuid leaked: %s", out)
	}
	if !strings.Contains(out, "[REDACTED:id]") {
		t.Fatalf("uuid not redacted as id: %s", out)
	}
}
