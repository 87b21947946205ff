package compiler

import (
	"strings"
)

// filterFunctions maps class keys to CSS filter functions.
var filterFunctions = map[string]string{
	"blur":       "blur",
	"brightness": "brightness",
	"contrast":   "contrast",
	"gray":       "grayscale",
	"hue":        "hue-rotate",
	"invert":     "invert",
	"opacity":    "opacity",
	"sat":        "saturate",
	"sepia":      "sepia",
	"shadow":     "drop-shadow",
	"dropShadow": "drop-shadow",
}

func filterFunction(key, token string) string {
	fn, ok := filterFunctions[key]
	if !ok {
		return ""
	}
	if fn == "drop-shadow" {
		return fn + "(" + normalizeAll(strings.Split(token, "_"), colorKeywords, " ") + ")"
	}
	return fn + "(" + Normalize(token, nil, false) + ")"
}

// filter|bdFilter-[bp-]blur:2px&brightness:1.2&dropShadow:0_2px_4px_#000 and
// filter|bdFilter_<fn>-[bp-]value. Functions are composed in declaration order.
func decodeFilter(pc *parsedClass) (em emission) {
	kind, fn, single := strings.Cut(pc.head, "_")

	prop := "filter"
	if kind == "bdFilter" {
		prop = "backdrop-filter"
	}

	var (
		funcs []string
		imp   bool
	)
	if single {
		if f := filterFunction(fn, pc.value); len(f) > 0 {
			funcs = append(funcs, f)
		}
	} else {
		for _, kv := range keyValues(pc.value, "&") {
			token, marked := cutImportant(kv[1])
			imp = imp || marked
			if f := filterFunction(kv[0], token); len(f) > 0 {
				funcs = append(funcs, f)
			}
		}
	}
	if len(funcs) > 0 {
		em.decls.Add(prop, withImportant(strings.Join(funcs, " "), imp))
	}
	return
}

func decodeOpacity(pc *parsedClass) (em emission) {
	em.decls.Add("opacity", Normalize(pc.value, nil, false))
	return
}

// shadow|txt_shadow-[bp-]0_2px_4px_#000,0_0_2px_red
func decodeShadow(pc *parsedClass) (em emission) {
	prop := "box-shadow"
	if pc.head == "txt_shadow" {
		prop = "text-shadow"
	}

	var (
		shadows []string
		imp     bool
	)
	for s := range strings.SplitSeq(pc.value, ",") {
		s, marked := cutImportant(s)
		imp = imp || marked
		if v := normalizeAll(strings.Split(s, "_"), colorKeywords, " "); len(v) > 0 {
			shadows = append(shadows, v)
		}
	}
	if len(shadows) > 0 {
		em.decls.Add(prop, withImportant(strings.Join(shadows, ", "), imp))
	}
	return
}

// text_grad-[bp-]linearGradient(red,blue) paints text with background.
func decodeTextGradient(pc *parsedClass) (em emission) {
	em.decls.Add("color", "transparent")
	em.decls.Add("background", Normalize(pc.value, nil, false))
	em.decls.Add("-webkit-background-clip", "text")
	em.decls.Add("background-clip", "text")
	return
}
