package common_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github/chapool/go-near-tools/internal/api"
	"github/chapool/go-near-tools/internal/test"
)

func TestGetMetrics(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		// hit any route first so the http middleware has recorded something
		warmup := test.PerformRequest(t, s, "GET", "/-/ready", nil, nil)
		require.Equal(t, http.StatusOK, warmup.Result().StatusCode)

		res := test.PerformRequestWithParams(t, s, "GET", "/-/metrics", nil, nil, mgmtSecret())
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		require.Contains(t, res.Body.String(), "http_requests_total")
	})
}

func TestGetMetricsNoAuth(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/-/metrics", nil, nil)
		require.Equal(t, http.StatusUnauthorized, res.Result().StatusCode)
	})
}
