package execsrvc

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineOutputWithNul(t *testing.T) {
	raw := `{"run":{"code":0,"time":0.01,"memory":64,"stdout":"Correct\n\u0000","stderr":"a\u0000b","output":"Correct\n\u0000a\u0000b"}}`
	res := mapPistonResponse(decodePiston(t, raw), []byte(raw)).withoutNul()

	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, "Correct\n\uFFFD", *res.Stdout)
	assert.Equal(t, "a\uFFFDb", *res.Stderr)
	assert.NotContains(t, *res.Output, "\x00")

	stored, err := json.Marshal(res)
	require.NoError(t, err)
	assert.NotContains(t, string(stored), `\u0000`)
	assert.True(t, json.Valid(stored))

	var engine struct {
		Run struct {
			Stdout string `json:"stdout"`
		} `json:"run"`
	}
	require.NoError(t, json.Unmarshal(res.EngineResponse, &engine))
	assert.Equal(t, "Correct\n\uFFFD", engine.Run.Stdout)
}

func TestScrubNulEscapes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":"x"}`, `{"a":"x"}`},
		{`{"a":"\u0000"}`, `{"a":"\ufffd"}`},
		{`{"a":"\\u0000"}`, `{"a":"\\u0000"}`},
		{`{"a":"\\\u0000"}`, `{"a":"\\\ufffd"}`},
		{`{"a":"\u00001"}`, `{"a":"\ufffd1"}`},
	}
	for _, tt := range tests {
		got := scrubNulEscapes([]byte(tt.in))
		assert.Equal(t, tt.want, string(got), "input %s", tt.in)
		assert.True(t, json.Valid(got))
	}
}

func TestWithoutNulKeepsCleanResult(t *testing.T) {
	res := internalErrorResult(assert.AnError)
	assert.Equal(t, res, res.withoutNul())
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello world", 5, "hello..."},
		{"héllo", 2, "h..."},
		{"日本語", 4, "日..."},
		{"日本語", 2, "..."},
		{"日本語", 9, "日本語"},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.n)
		assert.Equal(t, tt.want, got, "truncate(%q, %d)", tt.in, tt.n)
		assert.True(t, utf8.ValidString(got))
	}
}

func TestSimulatedStdoutKeepsRunes(t *testing.T) {
	src := strings.Repeat("a", 69) + "é and more"
	out := simulatedStdout(ExecRequest{Language: "rust", SrcCode: src})
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, strings.Repeat("a", 69)+"...")
}
