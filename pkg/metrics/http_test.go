package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.POST("/hooks/:name", func(c *gin.Context) { c.Status(http.StatusAccepted) })

	t.Run("labels by route template", func(t *testing.T) {
		// given
		counter := HTTPRequestsTotal.WithLabelValues("/hooks/:name", http.MethodPost, "202")
		before := testutil.ToFloat64(counter)

		// when
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/hooks/stripe", strings.NewReader(`{}`)))

		// then
		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, before+1, testutil.ToFloat64(counter))
		assert.Zero(t, testutil.ToFloat64(HTTPRequestsInFlight))
	})

	t.Run("unknown paths share one label", func(t *testing.T) {
		counter := HTTPRequestsTotal.WithLabelValues(routeUnmatched, http.MethodGet, "404")
		before := testutil.ToFloat64(counter)

		for _, path := range []string{"/wp-admin", "/.env"} {
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
		}

		assert.Equal(t, before+2, testutil.ToFloat64(counter))
	})
}
