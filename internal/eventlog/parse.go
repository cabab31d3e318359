package eventlog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatLine renders an event as one flat-log line:
//
//	2026-08-30T10:11:12Z  size=16  path=icons/icon16.png  glyph="한"
//
// The glyph field is omitted for icons produced from a source image.
func FormatLine(e Event) string {
	line := fmt.Sprintf("%s  size=%d  path=%s",
		e.Time.Format(time.RFC3339), e.Size, e.Path)
	if e.Glyph != "" {
		line += fmt.Sprintf("  glyph=%q", e.Glyph)
	}
	return line
}

// ParseEntries parses flat-log content back into events, oldest first.
// Unparseable lines are skipped.
func ParseEntries(content string) []Event {
	var entries []Event
	for _, line := range strings.Split(content, "\n") {
		if e, ok := parseLine(strings.TrimSpace(line)); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

func parseLine(line string) (Event, bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Event{}, false
	}
	ts, err := time.Parse(time.RFC3339, fields[0])
	if err != nil {
		return Event{}, false
	}

	e := Event{Time: ts}
	for _, f := range fields[1:] {
		switch {
		case strings.HasPrefix(f, "size="):
			e.Size, _ = strconv.Atoi(strings.TrimPrefix(f, "size="))
		case strings.HasPrefix(f, "path="):
			e.Path = strings.TrimPrefix(f, "path=")
		}
	}
	// The glyph is quoted and may contain spaces, so take it from the
	// raw line rather than the split fields.
	if i := strings.Index(line, "glyph="); i >= 0 {
		if g, err := strconv.Unquote(line[i+len("glyph="):]); err == nil {
			e.Glyph = g
		}
	}
	if e.Size <= 0 || e.Path == "" {
		return Event{}, false
	}
	return e, true
}
