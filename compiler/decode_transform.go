package compiler

import (
	"strings"
)

// transform-[bp-]rotate:45deg&scale:1.2 and transform_<fn>-[bp-]value set
// transform function variables, transform_<origin|style|box> are literal
// properties.
func decodeTransform(pc *parsedClass) (em emission) {
	_, fn, single := strings.Cut(pc.head, "_")
	if !single {
		for _, kv := range keyValues(pc.value, "&") {
			em.decls.Add("--"+kv[0], Normalize(kv[1], nil, false))
		}
	} else {
		switch fn {
		case "origin", "style", "box":
			em.decls.Add("transform-"+fn, Normalize(pc.value, nil, false))
		default:
			em.decls.Add("--"+fn, Normalize(pc.value, nil, false))
		}
	}
	em.transform = len(em.decls) > 0
	return
}

// usesTransformVariables reports whether utility class sets transform
// function variables.
func usesTransformVariables(name string) bool {
	if !strings.HasPrefix(name, "transform") {
		return false
	}
	return !strings.HasPrefix(name, "transform_origin") && !strings.HasPrefix(name, "transform_style")
}

// transition[_<sub>]-[bp-]value
func decodeTransition(pc *parsedClass) (em emission) {
	em.decls.Add(kebabName(pc.head), Normalize(pc.value, nil, false))
	return
}
