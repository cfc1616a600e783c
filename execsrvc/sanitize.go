package execsrvc

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// postgres text and jsonb cannot hold U+0000
const nulReplacement = "\uFFFD"

// withoutNul replaces NUL characters in the text fields and in the raw
// engine payload so that the result can be stored as jsonb.
func (r ExecResult) withoutNul() ExecResult {
	r.Stdout = scrubNulPtr(r.Stdout)
	r.Stderr = scrubNulPtr(r.Stderr)
	r.Output = scrubNulPtr(r.Output)
	r.ErrorMsg = scrubNulPtr(r.ErrorMsg)
	r.EngineResponse = scrubNulEscapes(r.EngineResponse)
	return r
}

func scrubNulPtr(s *string) *string {
	if s == nil || !strings.ContainsRune(*s, 0) {
		return s
	}
	return strPtr(strings.ReplaceAll(*s, "\x00", nulReplacement))
}

// scrubNulEscapes rewrites \u0000 escapes inside JSON strings. Escaped
// backslashes are skipped so that a literal `\\u0000` is left alone.
func scrubNulEscapes(raw []byte) []byte {
	if !bytes.Contains(raw, []byte(`\u0000`)) {
		return raw
	}
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			out = append(out, raw[i])
			continue
		}
		if raw[i+1] == 'u' && bytes.HasPrefix(raw[i+2:], []byte("0000")) {
			out = append(out, `\ufffd`...)
			i += 5
			continue
		}
		out = append(out, raw[i], raw[i+1])
		i++
	}
	return out
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
