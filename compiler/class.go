package compiler

import (
	"strings"

	"zcss/css"
)

// stateVariants maps class name prefixes to pseudo-classes of the generated
// selector, "hover:bg_color-red" -> ".hover\:bg_color-red:hover".
var stateVariants = map[string]string{
	"hover":         "hover",
	"focus":         "focus",
	"active":        "active",
	"visited":       "visited",
	"focus_within":  "focus-within",
	"focus_visible": "focus-visible",
	"disabled":      "disabled",
	"checked":       "checked",
	"first_child":   "first-child",
	"last_child":    "last-child",
}

// parsedClass is utility class name split into grammar parts.
type parsedClass struct {
	name       string   // as seen in the document, used for selector
	base       string   // without prefix and state variant
	pseudo     string   // pseudo-class from state variant
	parts      []string // base split on "-"
	head       string   // family key
	breakpoint string   // optional breakpoint spec
	value      string   // value tail
	important  bool     // value tail carried "_imp" suffix
}

// parseClass splits class name, prefix is expected (and removed) when not
// empty. Returns false if class name does not belong to us.
func parseClass(name, prefix string) (*parsedClass, bool) {
	pc := &parsedClass{name: name, base: name}

	if len(prefix) > 0 {
		rest, ok := strings.CutPrefix(pc.base, prefix)
		if !ok {
			return nil, false
		}
		pc.base = rest
	}

	if variant, rest, ok := strings.Cut(pc.base, ":"); ok && !strings.HasPrefix(pc.base, "__") {
		if pseudo, known := stateVariants[variant]; known {
			pc.pseudo, pc.base = pseudo, rest
		}
	}
	if len(pc.base) == 0 {
		return nil, false
	}

	pc.parts = strings.Split(pc.base, "-")
	pc.head = pc.parts[0]
	switch {
	case len(pc.parts) == 2:
		pc.value = pc.parts[1]
	case len(pc.parts) > 2:
		pc.breakpoint = pc.parts[1]
		pc.value = strings.Join(pc.parts[2:], "-")
	}
	// combinator names mark their utilities individually
	if v, ok := strings.CutSuffix(pc.value, importantSuffix); ok && len(v) > 0 && !strings.HasPrefix(pc.base, "__") {
		pc.value, pc.important = v, true
	}
	return pc, true
}

// headParts returns family key split on "_".
func (pc *parsedClass) headParts() []string {
	return strings.Split(pc.head, "_")
}

// selector returns escaped class selector for generated rule.
func (pc *parsedClass) selector() string {
	sel := css.ClassSelector(pc.name)
	if len(pc.pseudo) > 0 {
		sel += ":" + pc.pseudo
	}
	return sel
}

type role int

const (
	roleBase role = iota
	roleVariables
	roleFontImport
)

// emission is what family decoder produces for a single class name.
type emission struct {
	decls css.Declarations

	// selector used verbatim instead of the class selector
	selector string

	// when set declarations target pseudo-element of the selector
	pseudoElement string
	pseudoTarget  string

	// pre-rendered rule text, used instead of declarations when not empty
	raw string
	// companion rules emitted right after the main one
	extra string

	// register selector in transform registry
	transform         bool
	transformSelector string

	// breakpoint coming from decoder specific grammar
	breakpoint    string
	ownBreakpoint bool

	role role
}

// Extracts "key:value" pairs joined by sep, malformed pairs are skipped.
func keyValues(s, sep string) [][2]string {
	var out [][2]string
	for item := range strings.SplitSeq(s, sep) {
		k, v, ok := strings.Cut(item, ":")
		if !ok || len(k) == 0 {
			continue
		}
		out = append(out, [2]string{k, v})
	}
	return out
}
