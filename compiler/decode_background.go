package compiler

import (
	"strings"
)

// background sub-properties in emission order
var bgProperties = []string{"color", "image", "position", "size", "repeat", "origin", "clip", "attachment"}

var bgAliases = map[string]string{
	"clr":        "color",
	"color":      "color",
	"img":        "image",
	"image":      "image",
	"pos":        "position",
	"position":   "position",
	"s":          "size",
	"size":       "size",
	"re":         "repeat",
	"repeat":     "repeat",
	"org":        "origin",
	"origin":     "origin",
	"clip":       "clip",
	"att":        "attachment",
	"attachment": "attachment",
}

func bgKeywords(prop string) map[string]string {
	switch prop {
	case "color":
		return colorKeywords
	case "repeat":
		return repeatKeywords
	case "origin":
		return originKeywords
	case "clip":
		return clipKeywords
	default:
		return nil
	}
}

// bg-[bp-]clr:red&img:url@a.png,img:url@b.png (layers are "," separated)
// bg_<color|image|position|size|repeat|origin|clip|attachment>-[bp-]v1,v2
func decodeBackground(pc *parsedClass) (em emission) {
	values := make(map[string][]string, len(bgProperties))

	add := func(alias, token string) {
		prop, ok := bgAliases[alias]
		if !ok || len(token) == 0 {
			return
		}
		values[prop] = append(values[prop], Normalize(token, bgKeywords(prop), false))
	}

	if pc.head == "bg" {
		for layer := range strings.SplitSeq(pc.value, ",") {
			for _, kv := range keyValues(layer, "&") {
				add(kv[0], kv[1])
			}
		}
	} else {
		_, alias, _ := strings.Cut(pc.head, "_")
		for token := range strings.SplitSeq(pc.value, ",") {
			add(alias, token)
		}
	}

	for _, prop := range bgProperties {
		if v := values[prop]; len(v) > 0 {
			em.decls.Add("background-"+prop, strings.Join(v, ", "))
		}
	}
	return
}

// bg_blend|mix_blend-[bp-]value
func decodeBlend(pc *parsedClass) (em emission) {
	prop := "mix-blend-mode"
	if strings.HasPrefix(pc.head, "bg") {
		prop = "background-blend-mode"
	}
	em.decls.Add(prop, Normalize(pc.value, nil, false))
	return
}
