package compiler

import (
	"strings"
)

// [max_|min_](wd|ht|size)-[bp-]value
func decodeSize(pc *parsedClass) (em emission) {
	val := Normalize(pc.value, nil, false)

	prefix := ""
	if p, _, ok := strings.Cut(pc.head, "_"); ok && (p == "max" || p == "min") {
		prefix = p + "-"
	}
	if strings.HasSuffix(pc.head, "wd") || strings.HasSuffix(pc.head, "size") {
		em.decls.Add(prefix+"width", val)
	}
	if strings.HasSuffix(pc.head, "ht") || strings.HasSuffix(pc.head, "size") {
		em.decls.Add(prefix+"height", val)
	}
	return
}

// aspect_ratio-[bp-]value
func decodeAspectRatio(pc *parsedClass) (em emission) {
	em.decls.Add("aspect-ratio", Normalize(pc.value, nil, false))
	return
}

// p|m[_t|_r|_b|_l|_x|_y]-[bp-]value and p|m-[bp-]first_second shorthand.
func decodeSpacing(pc *parsedClass) (em emission) {
	prop := "margin"
	if strings.HasPrefix(pc.head, "p") {
		prop = "padding"
	}

	if first, second, ok := strings.Cut(pc.value, "_"); ok {
		em.decls.Add(prop, Normalize(first, nil, false)+" "+Normalize(second, nil, false))
		return
	}

	val := Normalize(pc.value, nil, false)
	dir := ""
	if _, d, ok := strings.Cut(pc.head, "_"); ok {
		dir = d
	}
	if strings.Contains(dir, "t") || dir == "y" || dir == "" {
		em.decls.Add(prop+"-top", val)
	}
	if strings.Contains(dir, "r") || dir == "x" || dir == "" {
		em.decls.Add(prop+"-right", val)
	}
	if strings.Contains(dir, "b") || dir == "y" || dir == "" {
		em.decls.Add(prop+"-bottom", val)
	}
	if strings.Contains(dir, "l") || dir == "x" || dir == "" {
		em.decls.Add(prop+"-left", val)
	}
	return
}
