package monitoring

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCounterIsNamespaced(t *testing.T) {
	mc := NewMetricsCollector("home-intercom", "v1", "abc")
	counter := mc.NewCounter("ping_count", "pings", []string{"dummy_label"})
	counter.WithLabelValues("").Inc()

	expected := `
# HELP home_intercom_ping_count pings
# TYPE home_intercom_ping_count counter
home_intercom_ping_count{dummy_label=""} 1
`
	require.NoError(t, testutil.GatherAndCompare(mc.Registry(), strings.NewReader(expected), "home_intercom_ping_count"))
}

func TestCollectorsDoNotShareRegistry(t *testing.T) {
	a := NewMetricsCollector("svc", "v1", "abc")
	b := NewMetricsCollector("svc", "v1", "abc")

	assert.NotPanics(t, func() {
		a.NewCounter("things_total", "things", nil)
		b.NewCounter("things_total", "things", nil)
	})
}

func TestMetricsMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mc := NewMetricsCollector("svc", "v1", "abc")

	app := gin.New()
	app.Use(mc.MetricsMiddleware())
	app.GET("/hello", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hello", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(mc.httpRequestsTotal.WithLabelValues("GET", "/hello", "204")))
	assert.Equal(t, 0.0, testutil.ToFloat64(mc.activeConnections))

	scrape := gin.New()
	scrape.GET("/metrics", mc.Handler())
	w = httptest.NewRecorder()
	scrape.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `svc_http_requests_total{endpoint="/hello",method="GET",status="204"} 1`)
	assert.Contains(t, body, `svc_service_info{commit="abc",version="v1"} 1`)
	assert.Contains(t, body, "go_goroutines")
}
