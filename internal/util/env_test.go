package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github/chapool/go-near-tools/internal/util"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("UTIL_TEST_STRING", "value")

	assert.Equal(t, "value", util.GetEnv("UTIL_TEST_STRING", "fallback"))
	assert.Equal(t, "fallback", util.GetEnv("UTIL_TEST_STRING_UNSET", "fallback"))
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("UTIL_TEST_INT", "42")
	t.Setenv("UTIL_TEST_INT_BROKEN", "forty-two")

	assert.Equal(t, 42, util.GetEnvAsInt("UTIL_TEST_INT", 7))
	assert.Equal(t, 7, util.GetEnvAsInt("UTIL_TEST_INT_BROKEN", 7))
	assert.Equal(t, 7, util.GetEnvAsInt("UTIL_TEST_INT_UNSET", 7))
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("UTIL_TEST_BOOL", "TRUE")
	t.Setenv("UTIL_TEST_BOOL_BROKEN", "yep")

	assert.True(t, util.GetEnvAsBool("UTIL_TEST_BOOL", false))
	assert.False(t, util.GetEnvAsBool("UTIL_TEST_BOOL_BROKEN", false))
	assert.True(t, util.GetEnvAsBool("UTIL_TEST_BOOL_UNSET", true))
}

func TestGetEnvAsStringArr(t *testing.T) {
	t.Setenv("UTIL_TEST_ARR", "https://a.example.org, https://b.example.org")

	assert.Equal(t, []string{"https://a.example.org", " https://b.example.org"}, util.GetEnvAsStringArr("UTIL_TEST_ARR", nil))
	assert.Equal(t, []string{"https://a.example.org", "https://b.example.org"}, util.GetEnvAsStringArrTrimmed("UTIL_TEST_ARR", nil))
	assert.Equal(t, []string{"x"}, util.GetEnvAsStringArr("UTIL_TEST_ARR_UNSET", []string{"x"}))
}
