package domain

import "strings"

// Placeholder is rendered instead of an empty result body.
const Placeholder = "(none)"

// Result is what a single Check produced.
type Result struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	FixAvailable bool   `json:"fix_available"`
}

// Body returns the trimmed content, or Placeholder when nothing is left.
func (r Result) Body() string {
	body := strings.TrimSpace(r.Content)
	if body == "" {
		return Placeholder
	}
	return body
}

// Cap keeps the first n lines. Callers order lines most relevant first.
// A non-positive n keeps nothing.
func Cap(lines []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}

// JoinLines joins lines with newlines, falling back to Placeholder.
func JoinLines(lines []string) string {
	if len(lines) == 0 {
		return Placeholder
	}
	return strings.Join(lines, "\n")
}

// NonEmptyLines splits s into lines and drops blank ones.
func NonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
