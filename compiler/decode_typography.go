package compiler

import (
	"strings"
)

// font-[bp-]s:1rem&weight:600&st:italic&family:Open+Sans,serif and
// font_<family|size|weight|style>-[bp-]value
func decodeFont(pc *parsedClass) (em emission) {
	if pc.head != "font" {
		_, sub, _ := strings.Cut(pc.head, "_")
		if sub == "family" {
			em.decls.Add("font-family", fontFamily(pc.value))
		} else {
			em.decls.Add("font-"+kebabName(sub), Normalize(pc.value, nil, false))
		}
		return
	}

	for _, kv := range keyValues(pc.value, "&") {
		switch kv[0] {
		case "s":
			em.decls.Add("font-size", Normalize(kv[1], nil, false))
		case "weight":
			em.decls.Add("font-weight", Normalize(kv[1], nil, false))
		case "st":
			em.decls.Add("font-style", Normalize(kv[1], nil, false))
		case "family":
			em.decls.Add("font-family", fontFamily(kv[1]))
		}
	}
	return
}

func fontFamily(list string) string {
	var names []string
	for name := range strings.SplitSeq(list, ",") {
		if len(name) > 0 {
			names = append(names, Normalize(name, nil, true))
		}
	}
	return strings.Join(names, ", ")
}

func decodeColor(pc *parsedClass) (em emission) {
	em.decls.Add("color", Normalize(pc.value, colorKeywords, false))
	return
}

// letter_space-[bp-]value and letter_dir-[bp-]up|down|right|left. Direction
// uses writing mode plus transform variables.
func decodeLetter(pc *parsedClass) (em emission) {
	switch pc.head {
	case "letter_space":
		em.decls.Add("letter-spacing", Normalize(pc.value, nil, false))
	case "letter_dir":
		switch pc.value {
		case "up":
			em.decls.Add("writing-mode", "horizontal-tb")
		case "down":
			em.decls.Add("writing-mode", "horizontal-tb")
			em.decls.Add("--scale", "-1")
		case "right":
			em.decls.Add("writing-mode", "vertical-lr")
		case "left":
			em.decls.Add("writing-mode", "vertical-rl")
			em.decls.Add("--rotate", "180deg")
		default:
			return
		}
		em.transform = true
	}
	return
}

// line_height|line_clamp|line_break-[bp-]value
func decodeLine(pc *parsedClass) (em emission) {
	switch pc.head {
	case "line_height":
		em.decls.Add("line-height", Normalize(pc.value, nil, false))
	case "line_clamp":
		em.decls.Add("overflow", "hidden")
		em.decls.Add("display", "-webkit-box")
		em.decls.Add("-webkit-box-orient", "vertical")
		em.decls.Add("-webkit-line-clamp", Normalize(pc.value, nil, false))
	default:
		em.decls.Add("word-break", Normalize(pc.value, nil, false))
	}
	return
}

// txt_decor[_sub], txt_stroke[_sub], txt_underline[_offset] and txt_<prop>
func decodeText(pc *parsedClass) (em emission) {
	parts := pc.headParts()
	if len(parts) < 2 {
		return
	}

	val := Normalize(pc.value, colorKeywords, false)
	switch parts[1] {
	case "decor", "stroke":
		prop := "text-decoration"
		if parts[1] == "stroke" {
			prop = "-webkit-text-stroke"
		}
		if len(parts) > 2 {
			prop += "-" + kebabName(strings.Join(parts[2:], "_"))
		}
		em.decls.Add(prop, val)
	case "underline":
		em.decls.Add("text-underline-offset", val)
	default:
		em.decls.Add("text-"+kebabName(strings.Join(parts[1:], "_")), val)
	}
	return
}

// @import-<url>, rest of the class name is taken verbatim.
func decodeImport(pc *parsedClass) (em emission) {
	url := strings.Join(pc.parts[1:], "-")
	if len(url) == 0 {
		return
	}
	em.raw = "@import url('" + url + "');\n"
	em.role = roleFontImport
	return
}

// content-[bp-]value sets generated content.
func decodeContent(pc *parsedClass) (em emission) {
	em.decls.Add("content", `"`+Normalize(pc.value, nil, false)+`"`)
	return
}
