package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"reticlego/pkg/logging"
)

// maxValueLen caps attribute values in the status bar; longer ones (origin
// ids, wrapped errors) are cut with an ellipsis.
const maxValueLen = 24

// handleLatestLog returns the last captured log line.
func handleLatestLog(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{
		"log": formatLogLine(logging.Latest.Last()),
	}); err != nil {
		slog.Error("Failed to write log response", "error", err)
	}
}

// handleRecentLog returns every retained log line, oldest first.
func handleRecentLog(w http.ResponseWriter, r *http.Request) {
	lines := logging.Latest.Lines()
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, formatLogLine(l))
	}
	writeJSON(w, http.StatusOK, map[string][]string{"lines": out})
}

type logAttr struct{ key, val string }

// splitLogLine reads the key=value pairs of a slog text line. Quoted values
// are unquoted. It stops at the first token that is not a pair.
func splitLogLine(raw string) []logAttr {
	var attrs []logAttr
	s := strings.TrimSpace(raw)
	for s != "" {
		eq := strings.IndexByte(s, '=')
		if eq <= 0 || strings.ContainsAny(s[:eq], " \"") {
			break
		}
		key, rest := s[:eq], s[eq+1:]
		var val string
		if strings.HasPrefix(rest, `"`) {
			quoted, err := strconv.QuotedPrefix(rest)
			if err != nil {
				break
			}
			val, _ = strconv.Unquote(quoted)
			rest = rest[len(quoted):]
		} else {
			val, rest, _ = strings.Cut(rest, " ")
		}
		attrs = append(attrs, logAttr{key, strings.TrimSpace(val)})
		s = strings.TrimLeft(rest, " ")
	}
	return attrs
}

// formatLogLine turns a slog text line into the settings page status text:
// "15:04:05 [WARN] msg (key=value, ...)". INFO carries no level tag,
// attributes keep their logged order and source locations are dropped.
// Lines that are not slog output pass through unchanged.
func formatLogLine(raw string) string {
	var (
		ts, level, msg string
		params         []string
	)
	for _, a := range splitLogLine(raw) {
		switch a.key {
		case "time":
			if t, err := time.Parse(time.RFC3339, a.val); err == nil {
				ts = t.Format("15:04:05")
			}
		case "level":
			level = a.val
		case "msg":
			msg = a.val
		case "source":
		default:
			val := a.val
			if r := []rune(val); len(r) > maxValueLen {
				val = string(r[:maxValueLen-1]) + "…"
			}
			params = append(params, a.key+"="+val)
		}
	}
	if msg == "" {
		return raw
	}

	var b strings.Builder
	if ts != "" {
		b.WriteString(ts + " ")
	}
	if level != "" && level != "INFO" && level != "DEBUG" {
		b.WriteString("[" + level + "] ")
	}
	b.WriteString(msg)
	if len(params) > 0 {
		b.WriteString(" (" + strings.Join(params, ", ") + ")")
	}
	return b.String()
}
