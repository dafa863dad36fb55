package codec_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-near-tools/internal/near/codec"
	"github/chapool/go-near-tools/internal/near/nearerr"
)

func TestEncodeArgs(t *testing.T) {
	b, err := codec.EncodeArgs(map[string]any{"account_id": "alice.near"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"account_id":"alice.near"}`, string(b))

	b, err = codec.EncodeArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(b))

	_, err = codec.EncodeArgs(map[string]any{"bad": func() {}})
	require.Error(t, err)
	assert.True(t, nearerr.IsCategory(err, nearerr.CategoryArgEncoding))
}

func TestDecodeResult(t *testing.T) {
	assert.Equal(t, "", codec.DecodeResult(nil))
	assert.Equal(t, "", codec.DecodeResult([]byte("  ")))

	v := codec.DecodeResult([]byte(`{"total":"100000000000000000000000000"}`))
	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "100000000000000000000000000", m["total"])

	// Large JSON numbers survive without float rounding.
	v = codec.DecodeResult([]byte(`340282366920938463463374607431768211455`))
	n, ok := v.(json.Number)
	require.True(t, ok)
	assert.Equal(t, "340282366920938463463374607431768211455", n.String())

	// Non-JSON payloads come back verbatim.
	assert.Equal(t, "hello world", codec.DecodeResult([]byte("hello world")))
	assert.Equal(t, `{"broken":`, codec.DecodeResult([]byte(`{"broken":`)))
	assert.Equal(t, "1 2", codec.DecodeResult([]byte("1 2")))
}

func TestDecodeBase64(t *testing.T) {
	b, err := codec.DecodeBase64("args_base64", "aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), b)

	_, err = codec.DecodeBase64("code_base64", "@@not-base64@@")
	require.Error(t, err)
	assert.True(t, nearerr.IsCategory(err, nearerr.CategoryInvalidBase64))
	assert.Contains(t, err.Error(), "code_base64")
}

func TestBase64DecodedLen(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"aGVsbG8=", 5},
		{"aGVsbG8h", 6},
		{"aQ==", 1},
		{"aGk=", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, codec.Base64DecodedLen(tt.in), "in=%q", tt.in)

		// Length math agrees with an actual decode for valid input.
		if tt.in != "" {
			b, err := codec.DecodeBase64("probe", tt.in)
			require.NoError(t, err)
			assert.Len(t, b, tt.want)
		}
	}
}
