package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opensearch-project/opensearch-go"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestRegistry_CheckAll(t *testing.T) {
	up := NewPostgresChecker(pingerFunc(func(context.Context) error { return nil }))
	down := NewPostgresChecker(pingerFunc(func(context.Context) error { return errors.New("connection refused") }))

	t.Run("no checkers is up", func(t *testing.T) {
		assert.Equal(t, StatusUp, NewRegistry().CheckAll(context.Background()).Status)
	})

	t.Run("one failing checker is down", func(t *testing.T) {
		res := NewRegistry(up, down).CheckAll(context.Background())

		assert.Equal(t, StatusDown, res.Status)
		require.Len(t, res.Checks, 2)
		assert.Equal(t, StatusUp, res.Checks[0].Status)
		assert.Equal(t, "connection refused", res.Checks[1].Message)
		assert.Equal(t, "postgres", res.Checks[1].Name)
		assert.GreaterOrEqual(t, res.Checks[0].LatencyMS, int64(0))
	})
}

func TestReadinessHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	down := NewPostgresChecker(pingerFunc(func(context.Context) error { return errors.New("boom") }))

	r := gin.New()
	r.GET("/health/ready", ReadinessHandler(NewRegistry(down), time.Second))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body ReadinessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, StatusDown, body.Status)
}

func TestKafkaChecker(t *testing.T) {
	t.Run("no brokers", func(t *testing.T) {
		res := NewKafkaChecker(nil).Check(context.Background())

		assert.Equal(t, StatusDown, res.Status)
		assert.Equal(t, errNoBrokers.Error(), res.Message)
	})

	t.Run("every broker refused", func(t *testing.T) {
		// given
		c := NewKafkaChecker([]string{"b1:9092", "b2:9092"})
		c.dial = func(context.Context, string, string) (*kafka.Conn, error) {
			return nil, errors.New("refused")
		}

		// when
		res := c.Check(context.Background())

		// then
		assert.Equal(t, StatusDown, res.Status)
		assert.Contains(t, res.Message, "b1:9092: refused")
		assert.Contains(t, res.Message, "b2:9092: refused")
	})
}

func TestOpenSearchChecker(t *testing.T) {
	for name, tc := range map[string]struct {
		code int
		want Status
	}{
		"healthy":     {http.StatusOK, StatusUp},
		"error reply": {http.StatusInternalServerError, StatusDown},
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.code)
			}))
			defer srv.Close()

			client, err := opensearch.NewClient(opensearch.Config{Addresses: []string{srv.URL}, MaxRetries: 0, DisableRetry: true})
			require.NoError(t, err)

			assert.Equal(t, tc.want, NewOpenSearchChecker(client).Check(context.Background()).Status)
		})
	}
}
