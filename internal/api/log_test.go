package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatLogLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "info keeps attribute order",
			input: `time=2026-01-18T06:50:46.074+01:00 level=INFO msg="Profile loaded" label=sniper slot=3`,
			want:  "06:50:46 Profile loaded (label=sniper, slot=3)",
		},
		{
			name:  "warn tagged, long values cut",
			input: `time=2026-01-18T06:50:46.074+01:00 level=WARN msg="User alert" message="ERROR: no data found under label - ghost"`,
			want:  "06:50:46 [WARN] User alert (message=ERROR: no data found un…)",
		},
		{
			name:  "source dropped, quoted value unescaped",
			input: `time=2026-01-18T06:50:46.074+01:00 level=DEBUG source=/src/binder.go:49 msg="Binder: field set" id=crossColor value="say \"hi\""`,
			want:  "06:50:46 Binder: field set (id=crossColor, value=say \"hi\")",
		},
		{
			name:  "message only",
			input: `time=2026-01-18T06:50:46.074+01:00 level=INFO msg="Settings reset to defaults"`,
			want:  "06:50:46 Settings reset to defaults",
		},
		{
			name:  "unstructured passes through",
			input: "plain text",
			want:  "plain text",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatLogLine(tt.input))
		})
	}
}

func TestSplitLogLine_StopsAtBareWord(t *testing.T) {
	attrs := splitLogLine(`a=1 b="two words" trailing c=3`)
	assert.Equal(t, []logAttr{{"a", "1"}, {"b", "two words"}}, attrs)
}

func TestRecentLog(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/api/log/recent", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string][]string](t, resp)
	assert.Contains(t, body, "lines")
}
