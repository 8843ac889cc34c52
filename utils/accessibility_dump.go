package utils

import "strings"

// Header lines written by the accessibility reader ahead of the collected texts.
const (
	dumpAppPrefix   = "APP_AL_FRENTE:"
	dumpClassPrefix = "CLASS:"
	dumpCountPrefix = "TOTAL_TEXTOS:"
	dumpSeparator   = "-----"
)

// DumpLines splits an accessibility dump into trimmed, non-empty text
// lines, dropping the reader's header.
func DumpLines(text string) []string {
	text = strings.ReplaceAll(text, "\r", "")
	rawLines := strings.Split(text, "\n")

	lines := make([]string, 0, len(rawLines))
	for _, l := range rawLines {
		l = strings.TrimSpace(l)
		if l == "" || l == dumpSeparator || isDumpHeader(l) {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// DumpSourceApp returns the package name of the app that was in front, if
// the dump carries one.
func DumpSourceApp(text string) string {
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if strings.HasPrefix(l, dumpAppPrefix) {
			return strings.TrimSpace(strings.TrimPrefix(l, dumpAppPrefix))
		}
	}
	return ""
}

func isDumpHeader(l string) bool {
	return strings.HasPrefix(l, dumpAppPrefix) ||
		strings.HasPrefix(l, dumpClassPrefix) ||
		strings.HasPrefix(l, dumpCountPrefix)
}
