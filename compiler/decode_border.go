package compiler

var borderDirections = map[string]string{
	"t": "-top",
	"r": "-right",
	"b": "-bottom",
	"l": "-left",
}

var radiusCorners = map[string]string{
	"tr": "border-top-right-radius",
	"br": "border-bottom-right-radius",
	"bl": "border-bottom-left-radius",
	"tl": "border-top-left-radius",
}

// borderKey maps compact keys and single form suffixes to sub-property names.
func borderKey(key string) string {
	switch key {
	case "clr", "color":
		return "color"
	case "wd", "width":
		return "width"
	case "st", "style":
		return "style"
	case "off", "offset":
		return "offset"
	default:
		return ""
	}
}

// border|outline[_t|_r|_b|_l]-[bp-]wd:2px&st:dashed&clr:red (unset width,
// style and color fall back to 1px solid #fff),
// border|outline[_dir]_<width|color|style|offset>-[bp-]value,
// border_rad[_tr|_br|_bl|_tl]-[bp-]value
func decodeBorder(pc *parsedClass) (em emission) {
	parts := pc.headParts()
	name := parts[0]

	if name == "border" && len(parts) > 1 && parts[1] == "rad" {
		prop := "border-radius"
		if len(parts) > 2 {
			corner, ok := radiusCorners[parts[2]]
			if !ok {
				return
			}
			prop = corner
		}
		em.decls.Add(prop, Normalize(pc.value, nil, false))
		return
	}

	dir, single := "", ""
	for _, p := range parts[1:] {
		if d, ok := borderDirections[p]; ok && len(dir) == 0 && len(single) == 0 {
			dir = d
			continue
		}
		if k := borderKey(p); len(k) > 0 && len(single) == 0 {
			single = k
			continue
		}
		// unknown qualifier
		return
	}
	prefix := name + dir + "-"

	if len(single) > 0 {
		em.decls.Add(prefix+single, borderValue(single, pc.value))
		return
	}

	values := map[string]string{
		"width": "1px",
		"style": "solid",
		"color": "#fff",
	}
	for _, kv := range keyValues(pc.value, "&") {
		if k := borderKey(kv[0]); len(k) > 0 {
			values[k] = borderValue(k, kv[1])
		}
	}
	for _, k := range []string{"color", "width", "style", "offset"} {
		em.decls.Add(prefix+k, values[k])
	}
	return
}

func borderValue(key, token string) string {
	if key == "color" {
		return Normalize(token, colorKeywords, false)
	}
	return Normalize(token, nil, false)
}

// ring[_t|_r|_b|_l]-[bp-]wd:2px&clr:#000 draws border with inset box-shadow.
func decodeRing(pc *parsedClass) (em emission) {
	parts := pc.headParts()
	dir := ""
	if len(parts) > 1 {
		dir = parts[1]
	}

	width, color, imp := "1px", "#fff", false
	for _, kv := range keyValues(pc.value, "&") {
		token, marked := cutImportant(kv[1])
		imp = imp || marked
		switch kv[0] {
		case "clr":
			color = Normalize(token, colorKeywords, false)
		case "wd":
			width = Normalize(token, nil, false)
		}
	}

	var shadow string
	switch dir {
	case "t":
		shadow = "inset 0 " + width + " 0 " + color
	case "r":
		shadow = "inset -" + width + " 0 0 " + color
	case "b":
		shadow = "inset 0 -" + width + " 0 " + color
	case "l":
		shadow = "inset " + width + " 0 0 " + color
	case "":
		shadow = "inset 0 0 0 " + width + " " + color
	default:
		return
	}
	em.decls.Add("box-shadow", withImportant(shadow, imp))
	return
}
