package mock

import "strings"

// filteredHeaders are header names that must never reach the upstream
// provider. This is the sole guard against leaking caller credentials into
// the prompt, so it runs before any header-derived text is assembled.
var filteredHeaders = map[string]struct{}{
	"authorization": {},
	"basic":         {},
}

// FilterHeaderLines returns the header lines with credential-bearing headers
// removed. The name comparison is case-insensitive; the order of the
// remaining lines is preserved. The input is not modified.
func FilterHeaderLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		name, _, ok := strings.Cut(line, ":")
		if ok {
			if _, drop := filteredHeaders[strings.ToLower(strings.TrimSpace(name))]; drop {
				continue
			}
		}
		out = append(out, line)
	}
	return out
}
