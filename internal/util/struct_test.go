package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-near-tools/internal/util"
)

type initializedProbe struct {
	Name    string
	Count   int
	Nested  *initializedProbe
	ignored string //nolint:unused
}

func TestIsStructInitialized(t *testing.T) {
	probe := &initializedProbe{
		Name:   "a",
		Count:  1,
		Nested: &initializedProbe{Name: "b", Count: 2, Nested: &initializedProbe{Name: "c", Count: 3}},
	}

	// the innermost Nested pointer is nil, but only the top level is inspected
	require.Error(t, util.IsStructInitialized(probe.Nested.Nested))
	require.NoError(t, util.IsStructInitialized(probe))

	probe.Count = 0
	err := util.IsStructInitialized(probe)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Count")
	assert.NotContains(t, err.Error(), "ignored")
}

func TestIsStructInitializedNonStruct(t *testing.T) {
	assert.Error(t, util.IsStructInitialized(42))
	assert.Error(t, util.IsStructInitialized((*initializedProbe)(nil)))
}
