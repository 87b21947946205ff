package css

import (
	"strconv"
	"strings"
)

const importantMark = " !important"

// Declaration is a single "property: value" pair.
type Declaration struct {
	Property string
	Value    string
}

// Declarations is an ordered list of declarations. Order is significant -
// when the same property appears twice the later one wins, the same way it
// does in a CSS block.
type Declarations []Declaration

// Add appends declaration, empty properties and values are quietly ignored so
// decoders could produce partial rules.
func (d *Declarations) Add(property, value string) {
	if len(property) == 0 || len(strings.TrimSpace(value)) == 0 {
		return
	}
	*d = append(*d, Declaration{Property: property, Value: value})
}

// Get returns the effective value of the property.
func (d Declarations) Get(property string) (string, bool) {
	for i := len(d) - 1; i >= 0; i-- {
		if d[i].Property == property {
			return d[i].Value, true
		}
	}
	return "", false
}

// Important returns copy of declarations with every value marked as important.
func (d Declarations) Important() Declarations {
	out := make(Declarations, 0, len(d))
	for _, decl := range d {
		if !strings.HasSuffix(decl.Value, importantMark) {
			decl.Value += importantMark
		}
		out = append(out, decl)
	}
	return out
}

// Body renders declarations as a bare block body, one tab indented
// declaration per line, always terminated with ';'.
func (d Declarations) Body() string {
	if len(d) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, decl := range d {
		if i > 0 {
			sb.WriteString(";\n")
		}
		sb.WriteByte('\t')
		sb.WriteString(decl.Property)
		sb.WriteString(": ")
		sb.WriteString(decl.Value)
	}
	sb.WriteByte(';')
	return sb.String()
}

// selectorSpecials are characters legal in utility class names which must be
// escaped in class selectors.
const selectorSpecials = `.,#%+&:/@()[]!?=*>~'"`

// EscapeClassName backslash-escapes characters which would otherwise change
// meaning of the class selector.
func EscapeClassName(name string) string {
	if !strings.ContainsAny(name, selectorSpecials) {
		return name
	}
	var sb strings.Builder
	sb.Grow(len(name) + 8)
	for _, r := range name {
		if strings.ContainsRune(selectorSpecials, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// ClassSelector returns selector for the class name.
func ClassSelector(name string) string {
	return "." + EscapeClassName(name)
}

// BuildRule renders declarations as a rule for the class name (escaped), or as
// a bare declaration body when declarationsOnly is set. Empty declarations
// produce empty string.
func BuildRule(decls Declarations, className string, declarationsOnly bool) string {
	if len(decls) == 0 {
		return ""
	}
	if declarationsOnly {
		return decls.Body()
	}
	return BuildSelectorRule(decls, ClassSelector(className))
}

// BuildSelectorRule renders declarations under selector used verbatim.
func BuildSelectorRule(decls Declarations, selector string) string {
	if len(decls) == 0 {
		return ""
	}
	return selector + " {\n" + decls.Body() + "\n}\n"
}

// BuildPseudoRule renders declarations for pseudo-element of the selector.
// Selector is used as is and could be empty to target document wide
// pseudo-element.
func BuildPseudoRule(decls Declarations, selector, pseudo string, declarationsOnly bool) string {
	if len(decls) == 0 {
		return ""
	}
	if declarationsOnly {
		return decls.Body()
	}
	return BuildSelectorRule(decls, selector+"::"+pseudo)
}

// WrapMedia wraps already rendered rule into width media query, feature is
// either "max-width" or "min-width".
func WrapMedia(feature string, width int, rule string) string {
	if len(rule) == 0 {
		return ""
	}
	return "@media (" + feature + ": " + strconv.Itoa(width) + "px) {\n  " + strings.TrimSuffix(rule, "\n") + "\n}\n"
}
