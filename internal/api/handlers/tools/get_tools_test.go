package tools_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github/chapool/go-near-tools/internal/api"
	"github/chapool/go-near-tools/internal/test"
	"github/chapool/go-near-tools/internal/types"
)

func TestGetToolsList(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/tools", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.PublicToolListResponse
		test.ParseResponseAndValidate(t, res, &response)
		require.Len(t, response.Tools, 15)

		names := make([]string, 0, len(response.Tools))
		for _, info := range response.Tools {
			names = append(names, *info.Name)
			require.NotEmpty(t, *info.Description)
		}
		require.Contains(t, names, "near_transfer")
		require.Contains(t, names, "near_run_batch")
		require.Contains(t, names, "near_view_function")

		test.Snapshoter.Save(t, response)
	})
}
