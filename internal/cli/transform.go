package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/toyz/rename-tool/internal/errors"
	"github.com/toyz/rename-tool/internal/utils"
)

// Transform maps an old entry name to a new one. The set of transforms is
// closed: Prefix, Suffix, Replace and RegexReplace.
type Transform interface {
	Apply(name string) string
	String() string
	transform()
}

// Prefix prepends Value to the name
type Prefix struct {
	Value string
}

func (Prefix) transform() {}

// Apply returns the name with Value in front
func (t Prefix) Apply(name string) string {
	return t.Value + name
}

// String describes the transform for verbose output
func (t Prefix) String() string {
	return fmt.Sprintf("prefix %q", t.Value)
}

// Suffix inserts Value before the last extension separator, or appends it
// when the name has no '.'
type Suffix struct {
	Value string
}

func (Suffix) transform() {}

// Apply returns the name with Value placed before its extension
func (t Suffix) Apply(name string) string {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return name + t.Value
	}
	return name[:dot] + t.Value + name[dot:]
}

// String describes the transform for verbose output
func (t Suffix) String() string {
	return fmt.Sprintf("suffix %q", t.Value)
}

// Replace substitutes every non-overlapping occurrence of Old, left to right.
// An empty Old leaves the name untouched.
type Replace struct {
	Old string
	New string
}

func (Replace) transform() {}

// Apply returns the name with every Old replaced by New
func (t Replace) Apply(name string) string {
	if t.Old == "" {
		return name
	}
	return strings.ReplaceAll(name, t.Old, t.New)
}

// String describes the transform for verbose output
func (t Replace) String() string {
	return fmt.Sprintf("replace %q with %q", t.Old, t.New)
}

// RegexReplace substitutes every match of a regular expression. The
// replacement may reference capture groups as $1, $&, and $$ for a literal '$'.
type RegexReplace struct {
	pattern     string
	replacement string
	re          *regexp.Regexp
	template    string
}

// NewRegexReplace compiles pattern and prepares the replacement template
func NewRegexReplace(pattern, replacement string) (*RegexReplace, error) {
	re, err := utils.CompilePattern(pattern)
	if err != nil {
		return nil, errors.WrapPatternError(pattern, err)
	}

	return &RegexReplace{
		pattern:     pattern,
		replacement: replacement,
		re:          re,
		template:    utils.TranslateReplacement(replacement, re.NumSubexp()),
	}, nil
}

func (*RegexReplace) transform() {}

// Apply returns the name with every match substituted
func (t *RegexReplace) Apply(name string) string {
	return t.re.ReplaceAllString(name, t.template)
}

// String describes the transform for verbose output
func (t *RegexReplace) String() string {
	return fmt.Sprintf("regex %q -> %q", t.pattern, t.replacement)
}
