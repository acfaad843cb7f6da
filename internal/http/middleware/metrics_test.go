package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	dto "github.com/prometheus/client_model/go"
)

// counterValue reads the current http_requests_total value for a label set.
// The "path" label is the registered route, not the concrete URL.
func counterValue(t *testing.T, method, path, status string) float64 {
	t.Helper()
	m, err := httpReqs.GetMetricWithLabelValues(method, path, status)
	if err != nil {
		t.Fatalf("get metric: %v", err)
	}
	var pb dto.Metric
	if err := m.Write(&pb); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return pb.GetCounter().GetValue()
}

func TestMetrics_CountsRequestsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())
	r.GET("/things/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := counterValue(t, "GET", "/things/:id", "200")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/42", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	if after := counterValue(t, "GET", "/things/:id", "200"); after != before+1 {
		t.Fatalf("counter = %v, want %v", after, before+1)
	}
}

func TestMetrics_UnmatchedRouteUsesRawPath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())

	before := counterValue(t, "GET", "/missing", "404")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}

	if after := counterValue(t, "GET", "/missing", "404"); after != before+1 {
		t.Fatalf("counter = %v, want %v", after, before+1)
	}
}
