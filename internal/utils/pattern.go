package utils

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/umisama/go-regexpcache"
)

// CompilePattern compiles a regular expression through the shared cache
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	return regexpcache.Compile(pattern)
}

// CompileFullMatch compiles pattern so that it only matches a whole string.
// Errors refer to the pattern as written, not the anchored form.
func CompileFullMatch(pattern string) (*regexp.Regexp, error) {
	if _, err := regexpcache.Compile(pattern); err != nil {
		return nil, err
	}
	return regexpcache.Compile(`^(?:` + pattern + `)$`)
}

// TranslateReplacement converts an ECMAScript style replacement ($1, $12, $&, $$)
// into a Go regexp template. groups is the number of capture groups of the
// expression the template is used with; a two digit reference is only taken
// when that group exists. A '$' not followed by a reference stays literal.
func TranslateReplacement(replacement string, groups int) string {
	var b strings.Builder
	for i := 0; i < len(replacement); i++ {
		c := replacement[i]
		if c != '$' {
			b.WriteByte(c)
			continue
		}

		if i+1 >= len(replacement) {
			b.WriteString("$$")
			continue
		}

		next := replacement[i+1]
		switch {
		case next == '$':
			b.WriteString("$$")
			i++
		case next == '&':
			b.WriteString("${0}")
			i++
		case isDigit(next):
			n := int(next - '0')
			width := 1
			if i+2 < len(replacement) && isDigit(replacement[i+2]) {
				if two := n*10 + int(replacement[i+2]-'0'); two <= groups {
					n = two
					width = 2
				}
			}
			b.WriteString("${" + strconv.Itoa(n) + "}")
			i += width
		default:
			b.WriteString("$$")
		}
	}
	return b.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
