package render

import "strings"

// CleanDoc collapses raw multi-line documentation text into a single clean
// description string. Block-comment decoration (every non-blank line starting
// with "*") is stripped; lines are trimmed; a line continuing the previous
// one joins with a space; a single blank line becomes a newline; two or more
// consecutive blank lines become exactly one blank line, a paragraph break.
// An empty result means the description key is omitted entirely.
func CleanDoc(raw string) string {
	if raw == "" {
		return ""
	}
	norm := strings.ReplaceAll(raw, "\r\n", "\n")
	norm = strings.ReplaceAll(norm, "\r", "\n")
	lines := strings.Split(norm, "\n")

	if allStarred(lines) {
		for i, ln := range lines {
			t := strings.TrimSpace(ln)
			if strings.HasPrefix(t, "*") {
				lines[i] = t[1:]
			}
		}
	}

	var b strings.Builder
	blanks := 0
	started := false
	for _, ln := range lines {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			if started {
				blanks++
			}
			continue
		}
		if started {
			switch {
			case blanks == 0:
				b.WriteByte(' ')
			case blanks == 1:
				b.WriteByte('\n')
			default:
				b.WriteString("\n\n")
			}
		}
		b.WriteString(ln)
		blanks = 0
		started = true
	}
	return b.String()
}

// allStarred reports whether every non-blank line opens with "*" after
// trimming, the conventional block-comment interior.
func allStarred(lines []string) bool {
	saw := false
	for _, ln := range lines {
		t := strings.TrimSpace(ln)
		if t == "" {
			continue
		}
		if !strings.HasPrefix(t, "*") {
			return false
		}
		saw = true
	}
	return saw
}
