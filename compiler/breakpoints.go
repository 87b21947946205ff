package compiler

import (
	"maps"
	"strconv"
	"strings"
)

const (
	featureMaxWidth = "max-width"
	featureMinWidth = "min-width"
)

// Breakpoints maps breakpoint names to viewport widths in pixels.
type Breakpoints map[string]int

// DefaultBreakpoints returns built-in breakpoint table.
func DefaultBreakpoints() Breakpoints {
	return Breakpoints{
		"xxl": 1500,
		"xl":  1250,
		"l":   1024,
		"md":  768,
		"s":   425,
		"xs":  375,
		"xxs": 320,
	}
}

// Merge returns a copy of the table with overrides applied on top.
func (b Breakpoints) Merge(overrides map[string]int) Breakpoints {
	out := make(Breakpoints, len(b)+len(overrides))
	maps.Copy(out, b)
	maps.Copy(out, overrides)
	return out
}

// Resolve interprets breakpoint spec ("md", "max_md", "min_l", "min_900",
// "max_600px"). Specs starting with "min" produce min-width queries,
// everything else is max-width. Width is looked up by the last "_" separated
// token, unknown tokens are accepted only when they are plain pixel numbers.
func (b Breakpoints) Resolve(spec string) (feature string, width int, ok bool) {
	if len(spec) == 0 {
		return "", 0, false
	}

	feature = featureMaxWidth
	if strings.HasPrefix(spec, "min") {
		feature = featureMinWidth
	}

	token := spec[strings.LastIndexByte(spec, '_')+1:]
	if w, found := b[token]; found {
		return feature, w, w > 0
	}

	w, err := strconv.Atoi(strings.TrimSuffix(token, "px"))
	if err != nil || w <= 0 {
		return "", 0, false
	}
	return feature, w, true
}
