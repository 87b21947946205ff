package compiler

import (
	"strings"
)

const (
	pseudoScrollbar      = "-webkit-scrollbar"
	pseudoScrollbarThumb = "-webkit-scrollbar-thumb"
)

// scrollbarKey maps compact and single form keys to properties.
func scrollbarKey(key string) string {
	switch key {
	case "ht", "height":
		return "height"
	case "wd", "width":
		return "width"
	case "bgClr":
		return "background-color"
	case "border":
		return "border"
	case "borderRad":
		return "border-radius"
	default:
		return ""
	}
}

// scroll_bar|scroll_thumb[_<target>]-[bp-]hide|wd:8px&bgClr:#eee,
// scroll_bar|scroll_thumb_<target>_<prop>-[bp-]value,
// scroll_behavior|overscroll_behavior-[bp-]value,
// scroll_snap-[bp-]type:x+mandatory&align:start&padding:t+1rem and
// scroll_snap_<type|align|stop|padding|margin>-[bp-]value
//
// Scrollbar rules target the pseudo-element of the element named by target,
// or of the class itself when target is omitted.
func decodeScroll(pc *parsedClass) (em emission) {
	parts := pc.headParts()

	switch {
	case pc.head == "scroll_behavior" || pc.head == "overscroll_behavior":
		em.decls.Add(kebabName(pc.head), Normalize(pc.value, nil, false))

	case len(parts) >= 2 && parts[0] == "scroll" && (parts[1] == "bar" || parts[1] == "thumb"):
		em.pseudoElement = pseudoScrollbar
		if parts[1] == "thumb" {
			em.pseudoElement = pseudoScrollbarThumb
		}
		if len(parts) > 2 {
			em.pseudoTarget = parts[2]
		}

		switch {
		case pc.value == "hide":
			em.decls.Add("display", "none")
		case len(parts) > 3:
			em.decls.Add(scrollbarKey(parts[3]), Normalize(pc.value, colorKeywords, false))
		default:
			for _, kv := range keyValues(pc.value, "&") {
				em.decls.Add(scrollbarKey(kv[0]), Normalize(kv[1], colorKeywords, false))
			}
		}

	case len(parts) >= 2 && parts[0] == "scroll" && parts[1] == "snap":
		if len(parts) > 2 {
			em.decls.Add(snapProperty(parts[2], pc.value))
			return
		}
		for _, kv := range keyValues(pc.value, "&") {
			em.decls.Add(snapProperty(kv[0], kv[1]))
		}
	}
	return
}

// snapProperty returns property and value for scroll snap key, padding and
// margin take optional direction "t+1rem".
func snapProperty(key, token string) (string, string) {
	switch key {
	case "type", "align", "stop":
		return "scroll-snap-" + key, Normalize(token, nil, false)
	case "padding", "margin":
		prop := "scroll-" + key
		if dir, val, ok := strings.Cut(token, "+"); ok {
			if side, known := sideNames[dir]; known {
				return prop + "-" + side, Normalize(val, nil, false)
			}
		}
		return prop, Normalize(token, nil, false)
	default:
		return "", ""
	}
}
