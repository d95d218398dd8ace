package canvas

import (
	"regexp"
	"strings"
	"time"
)

// CanvasNamer produces canvas filenames from a token pattern. Supported
// tokens are {name}, {type} and {date}; the result is lower-kebab-cased
// and always carries the .canvas extension.
type CanvasNamer struct {
	pattern string
}

// NewCanvasNamer creates a namer; an empty pattern falls back to
// "{name}-{type}-{date}"
func NewCanvasNamer(pattern string) *CanvasNamer {
	if pattern == "" {
		pattern = "{name}-{type}-{date}"
	}
	return &CanvasNamer{pattern: pattern}
}

// FileName substitutes the tokens and normalizes the result
func (n *CanvasNamer) FileName(name, canvasType string, date time.Time) string {
	result := n.pattern
	result = strings.ReplaceAll(result, "{name}", name)
	result = strings.ReplaceAll(result, "{type}", canvasType)
	result = strings.ReplaceAll(result, "{date}", date.Format("2006-01-02"))

	result = kebabCase(result)
	if !strings.HasSuffix(result, ".canvas") {
		result += ".canvas"
	}
	return result
}

var nonNameChars = regexp.MustCompile(`[^a-z0-9.-]+`)
var dashRuns = regexp.MustCompile(`-{2,}`)

// kebabCase lowercases and collapses everything outside [a-z0-9.-] into
// single dashes
func kebabCase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonNameChars.ReplaceAllString(s, "-")
	s = dashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
