package compiler

import (
	"strings"

	"zcss/css"
)

// vars_<e|c|i>_<name>@key:value,key2:value2 declares custom properties for an
// element, class or id. Whole name is used since values may contain "-".
func decodeVars(pc *parsedClass) (em emission) {
	scope, list, ok := strings.Cut(pc.base, "@")
	if !ok {
		return
	}
	parts := strings.SplitN(scope, "_", 3)
	if len(parts) != 3 || len(parts[2]) == 0 {
		return
	}

	var selector string
	switch parts[1] {
	case "e":
		selector = parts[2]
	case "c":
		selector = "." + parts[2]
	case "i":
		selector = "#" + parts[2]
	default:
		return
	}

	var decls css.Declarations
	for item := range strings.FieldsFuncSeq(list, func(r rune) bool { return r == ',' || r == '&' }) {
		k, v, ok := strings.Cut(item, ":")
		if !ok || len(k) == 0 {
			continue
		}
		decls.Add("--"+strings.TrimPrefix(kebab(k), "-"), Normalize(v, nil, false))
	}
	em.decls = decls
	em.raw = css.BuildSelectorRule(decls, selector)
	em.role = roleVariables
	return
}
