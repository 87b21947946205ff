package compiler

var interactionProperties = map[string]string{
	"accent_color":   "accent-color",
	"accent_clr":     "accent-color",
	"caret_color":    "caret-color",
	"caret_clr":      "caret-color",
	"cursor":         "cursor",
	"pointer_events": "pointer-events",
	"resize":         "resize",
	"touch_act":      "touch-action",
	"user_select":    "user-select",
}

func decodeInteraction(pc *parsedClass) (em emission) {
	prop, ok := interactionProperties[pc.head]
	if !ok {
		return
	}
	var keywords map[string]string
	if prop == "accent-color" || prop == "caret-color" {
		keywords = colorKeywords
	}
	em.decls.Add(prop, Normalize(pc.value, keywords, false))
	return
}
