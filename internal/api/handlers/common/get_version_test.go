package common_test

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github/chapool/go-near-tools/internal/api"
	"github/chapool/go-near-tools/internal/config"
	"github/chapool/go-near-tools/internal/test"
	"github/chapool/go-near-tools/internal/types"
)

func TestGetVersionPlain(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequestWithParams(t, s, "GET", "/-/version", nil, nil, mgmtSecret())
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		require.Equal(t, config.GetFormattedBuildArgs(), res.Body.String())
	})
}

func TestGetVersionJSON(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		headers := http.Header{}
		headers.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)

		res := test.PerformRequestWithParams(t, s, "GET", "/-/version", nil, headers, mgmtSecret())
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.PublicVersionInfoResponse
		test.ParseResponseAndValidate(t, res, &response)
		require.Equal(t, config.ModuleName, *response.Module)
		require.Equal(t, config.Commit, *response.Commit)
		require.Equal(t, config.BuildDate, *response.BuildDate)
	})
}

func TestGetVersionNoAuth(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/-/version", nil, nil)
		require.Equal(t, http.StatusUnauthorized, res.Result().StatusCode)
	})
}
