package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cast"
)

var templateToken = regexp.MustCompile(`\{\{\s*([\w.\-]+)\s*\}\}`)

/**
 * Interpolate replaces every {{dotted.path}} occurrence with the
 * string form of the resolved context value. A path that resolves
 * to nothing leaves the original token unchanged, so the output is
 * never partial or garbled. Interpolate never fails.
 */
func Interpolate(template string, ctx map[string]any) string {
	if !strings.Contains(template, "{{") {
		return template
	}
	return templateToken.ReplaceAllStringFunc(template, func(token string) string {
		path := templateToken.FindStringSubmatch(token)[1]
		v, ok := ResolvePath(ctx, path)
		if !ok {
			return token
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return s
	})
}

// Unresolved reports whether s still carries template tokens after
// interpolation.
func Unresolved(s string) bool {
	return templateToken.MatchString(s)
}
