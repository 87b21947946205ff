package compiler

import (
	"slices"
	"strings"

	"zcss/css"
)

// transformDefaults lists every composable transform function with its
// neutral argument, order defines composition order.
var transformDefaults = []css.Declaration{
	{Property: "matrix", Value: "1,0,0,1,0,0"},
	{Property: "matrix3d", Value: "1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1"},
	{Property: "perspective", Value: "none"},
	{Property: "rotate", Value: "0deg"},
	{Property: "rotate3d", Value: "0, 0, 0, 0deg"},
	{Property: "rotateX", Value: "0deg"},
	{Property: "rotateY", Value: "0deg"},
	{Property: "rotateZ", Value: "0deg"},
	{Property: "translate", Value: "0px, 0px"},
	{Property: "translate3d", Value: "0px, 0px, 0px"},
	{Property: "translateX", Value: "0px"},
	{Property: "translateY", Value: "0px"},
	{Property: "translateZ", Value: "0px"},
	{Property: "scale", Value: "1, 1"},
	{Property: "scale3d", Value: "1, 1, 1"},
	{Property: "scaleX", Value: "1"},
	{Property: "scaleY", Value: "1"},
	{Property: "scaleZ", Value: "1"},
	{Property: "skew", Value: "0deg, 0deg"},
	{Property: "skewX", Value: "0deg"},
	{Property: "skewY", Value: "0deg"},
}

const transformClass = ".transform"

// transformVariables renders root block with default transform arguments.
func transformVariables() string {
	decls := make(css.Declarations, 0, len(transformDefaults))
	for _, d := range transformDefaults {
		decls.Add("--"+d.Property, d.Value)
	}
	return css.BuildSelectorRule(decls, "html")
}

// transformValue composes all transform functions through their variables.
func transformValue() string {
	fns := make([]string, 0, len(transformDefaults))
	for _, d := range transformDefaults {
		fns = append(fns, d.Property+"(var(--"+d.Property+"))")
	}
	return strings.Join(fns, " ")
}

// transformRegistry keeps selectors which use transform variables, most
// recently registered first.
type transformRegistry struct {
	selectors []string
}

// add registers selector, returns false when nothing changed.
func (r *transformRegistry) add(selector string) bool {
	if len(selector) == 0 {
		return false
	}
	if i := slices.Index(r.selectors, selector); i >= 0 {
		if i == 0 {
			return false
		}
		r.selectors = slices.Delete(r.selectors, i, i+1)
	}
	r.selectors = slices.Insert(r.selectors, 0, selector)
	return true
}

func (r *transformRegistry) len() int {
	return len(r.selectors)
}

// rule renders consolidated transform rule for all registered selectors.
func (r *transformRegistry) rule() string {
	selector := strings.Join(append([]string{transformClass}, r.selectors...), ", ")
	return css.BuildSelectorRule(css.Declarations{{Property: "transform", Value: transformValue()}}, selector)
}
