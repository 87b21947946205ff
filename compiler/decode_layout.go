package compiler

import (
	"strings"

	"zcss/css"
)

// d-[bp-]value or d-[bp-]flex&flexDir:col&justify:c&align:c&gap:1rem
func decodeDisplay(pc *parsedClass) (em emission) {
	if !strings.Contains(pc.value, "&") {
		em.decls.Add("display", Normalize(pc.value, nil, false))
		return
	}

	kind := ""
	for item := range strings.SplitSeq(pc.value, "&") {
		key, val, ok := strings.Cut(item, ":")
		if !ok {
			em.decls.Add("display", Normalize(item, nil, false))
			kind = item
			continue
		}
		switch key {
		case "flexDir":
			em.decls.Add("flex-direction", Normalize(val, flexDirKeywords, false))
		case "justify":
			if kind == "flex" || kind == "inlineFlex" {
				em.decls.Add("justify-content", Normalize(val, alignKeywords, false))
			} else {
				em.decls.Add("justify-items", Normalize(val, alignKeywords, false))
			}
		case "align":
			em.decls.Add("align-items", Normalize(val, alignKeywords, false))
		case "gap":
			em.decls.Add("gap", Normalize(val, nil, false))
		}
	}
	return
}

// flex_dir|flex_grow|flex_shrink|flex_wrap-[bp-]value, flex-[bp-]shorthand
// and flex_child-[bp-]even|fixed_wd|auto
func decodeFlex(pc *parsedClass) (em emission) {
	switch pc.head {
	case "flex_dir":
		em.decls.Add("flex-direction", Normalize(pc.value, flexDirKeywords, false))
	case "flex_grow":
		em.decls.Add("flex-grow", Normalize(pc.value, nil, false))
	case "flex_shrink":
		em.decls.Add("flex-shrink", Normalize(pc.value, nil, false))
	case "flex_wrap":
		em.decls.Add("flex-wrap", Normalize(pc.value, flexWrapKeywords, false))
	case "flex_basis":
		em.decls.Add("flex-basis", Normalize(pc.value, nil, false))
	case "flex_child":
		var child css.Declarations
		switch pc.value {
		case "even":
			child.Add("flex", "1 0 0%")
		case "fixed_wd":
			child.Add("flex", "0 0 auto")
		case "auto":
			child.Add("flex", "0 0 auto")
			child.Add("width", "auto !important")
		default:
			return
		}
		child.Add("max-width", "100%")
		em.decls.Add("display", "flex")
		em.extra = renderChildRule(pc.selector()+" > *", child)
	case "flex":
		em.decls.Add("flex", Normalize(pc.value, nil, false))
	}
	return
}

// renderChildRule keeps compact "max-width:100%" spelling of companion rules.
func renderChildRule(selector string, decls css.Declarations) string {
	var sb strings.Builder
	sb.WriteString(selector + " {\n")
	for _, d := range decls {
		if d.Property == "max-width" {
			sb.WriteString("\tmax-width:" + d.Value + ";\n")
			continue
		}
		sb.WriteString("\t" + d.Property + ": " + d.Value + ";\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

// grid-[bp-]re_col:1fr+3&gap:1rem, grid-[bp-]col:1fr+2fr,
// grid-[bp-]colSpan:1+3, grid-[bp-]rowSpan:span+2,
// grid_col-[bp-]autoFit+200px,
// grid_auto-[bp-]cols:..&flow:..&rows:..&rGap:.., grid_auto_flow-[bp-]value
func decodeGrid(pc *parsedClass) (em emission) {
	display := true

	switch {
	case pc.head == "grid_col":
		fit, width, ok := strings.Cut(pc.value, "+")
		if !ok {
			return
		}
		em.decls.Add("grid-template-columns",
			"repeat("+Normalize(fit, nil, false)+", minmax("+Normalize(width, nil, false)+", 1fr))")

	case pc.head == "grid_auto":
		for _, kv := range keyValues(pc.value, "&") {
			switch key, val := kv[0], kv[1]; {
			case key == "cols":
				em.decls.Add("grid-auto-columns", Normalize(val, nil, false))
			case strings.HasSuffix(strings.ToLower(key), "gap"):
				em.decls.Add(gapProperty(key), Normalize(val, nil, false))
			default:
				em.decls.Add("grid-auto-"+kebab(key), Normalize(val, nil, false))
			}
		}

	case strings.HasPrefix(pc.head, "grid_auto_"):
		em.decls.Add(kebabName(pc.head), Normalize(pc.value, nil, false))

	case strings.Contains(pc.value, "Span:"):
		key, val, _ := strings.Cut(pc.value, ":")
		values := strings.Split(val, "+")
		sep := "/"
		if values[0] == "span" {
			sep = " "
		}
		prop := "grid-row"
		if key == "colSpan" {
			prop = "grid-column"
		}
		em.decls.Add(prop, normalizeAll(values, nil, sep))
		display = false

	case pc.head == "grid":
		for _, kv := range keyValues(pc.value, "&") {
			switch key, val := kv[0], kv[1]; {
			case key == "re_col" || key == "re_row":
				val, imp := cutImportant(val)
				width, count, ok := strings.Cut(val, "+")
				if !ok {
					continue
				}
				em.decls.Add(gridTemplate(strings.TrimPrefix(key, "re_")),
					withImportant("repeat("+Normalize(count, nil, false)+", "+Normalize(width, nil, false)+")", imp))
			case key == "col" || key == "row":
				em.decls.Add(gridTemplate(key), Normalize(val, nil, false))
			case strings.HasSuffix(strings.ToLower(key), "gap"):
				em.decls.Add(gapProperty(key), Normalize(val, nil, false))
			}
		}

	default:
		return
	}

	if display && len(em.decls) > 0 {
		em.decls.Add("display", "grid")
	}
	return
}

func gridTemplate(axis string) string {
	if axis == "col" {
		return "grid-template-columns"
	}
	return "grid-template-rows"
}

func gapProperty(key string) string {
	switch key {
	case "rGap":
		return "row-gap"
	case "cGap":
		return "column-gap"
	default:
		return "gap"
	}
}

// justify_(content|items|self)-[bp-]value
func decodeJustify(pc *parsedClass) (em emission) {
	em.decls.Add(kebabName(pc.head), Normalize(pc.value, alignKeywords, false))
	return
}

// align_(content|items|self)-[bp-]value
func decodeAlign(pc *parsedClass) (em emission) {
	em.decls.Add(kebabName(pc.head), Normalize(pc.value, alignKeywords, false))
	return
}

// center_el-[bp-][c|t|r|b|l][+abs|+fix] centers element in its container,
// align_(left|right|top|bottom)-[bp-](abs|fix)[+offset] pins element to a
// side and centers it along the other axis.
func decodeCenter(pc *parsedClass) (em emission) {
	mode, arg, _ := strings.Cut(pc.value, "+")

	centerAxis := func(side, offset string) {
		em.decls.Add(side, offset)
		if side == "left" {
			em.decls.Add("--translateX", "-50%")
		} else {
			em.decls.Add("--translateY", "-50%")
		}
	}

	if pc.head == "center_el" {
		position := "fixed"
		if strings.HasSuffix(pc.value, "abs") {
			position = "absolute"
		}
		em.decls.Add("position", position)
		switch mode {
		case "t", "b":
			em.decls.Add(sideNames[mode], "0")
			centerAxis("left", "50%")
		case "l", "r":
			em.decls.Add(sideNames[mode], "0")
			centerAxis("top", "50%")
		default:
			centerAxis("top", "50%")
			centerAxis("left", "50%")
		}
	} else {
		side := strings.TrimPrefix(pc.head, "align_")
		position := "fixed"
		if mode == "abs" {
			position = "absolute"
		}
		offset := "50%"
		if len(arg) > 0 {
			offset = Normalize(arg, nil, false)
		}
		em.decls.Add("position", position)
		em.decls.Add(side, "0")
		if side == "left" || side == "right" {
			centerAxis("top", offset)
		} else {
			centerAxis("left", offset)
		}
	}
	em.transform = true
	return
}

// gap|col_gap|row_gap-[bp-]value
func decodeGap(pc *parsedClass) (em emission) {
	prop := "gap"
	switch pc.head {
	case "col_gap":
		prop = "column-gap"
	case "row_gap":
		prop = "row-gap"
	}
	em.decls.Add(prop, Normalize(pc.value, nil, false))
	return
}

func decodeOrder(pc *parsedClass) (em emission) {
	em.decls.Add("order", Normalize(pc.value, nil, false))
	return
}

func decodePosition(pc *parsedClass) (em emission) {
	em.decls.Add("position", Normalize(pc.value, positionKeywords, false))
	return
}

// overflow[_x|_y]-[bp-]value
func decodeOverflow(pc *parsedClass) (em emission) {
	em.decls.Add(kebabName(pc.head), Normalize(pc.value, overflowKeywords, false))
	return
}

func decodeZIndex(pc *parsedClass) (em emission) {
	em.decls.Add("z-index", Normalize(pc.value, nil, false))
	return
}

// top|right|bottom|left-[bp-]value, value has to be a number or a variable.
func decodeInset(pc *parsedClass) (em emission) {
	if !strings.ContainsAny(pc.value, "0123456789") && !strings.HasPrefix(pc.value, "v") {
		return
	}
	em.decls.Add(pc.head, Normalize(pc.value, nil, false))
	return
}

// column-[bp-]count:3&gap:1rem&wd:200px, column_<prop>-[bp-]value,
// column_rule-[bp-]1px+solid+red, column_rule_<prop>-[bp-]value,
// columns-[bp-]width_count
func decodeColumn(pc *parsedClass) (em emission) {
	parts := pc.headParts()
	switch {
	case pc.head == "columns":
		em.decls.Add("columns", normalizeAll(strings.Split(pc.value, "_"), nil, " "))
	case pc.head == "column":
		for _, kv := range keyValues(pc.value, "&") {
			key := kv[0]
			if key == "wd" {
				key = "width"
			}
			em.decls.Add("column-"+kebab(key), Normalize(kv[1], nil, false))
		}
	case parts[1] == "rule" && len(parts) == 2:
		em.decls.Add("column-rule", Normalize(pc.value, colorKeywords, false))
	default:
		em.decls.Add(kebabName(pc.head), Normalize(pc.value, nil, false))
	}
	return
}

// obj_fit|obj_pos-[bp-]value
func decodeObject(pc *parsedClass) (em emission) {
	prop := "object-fit"
	if pc.head == "obj_pos" {
		prop = "object-position"
	}
	em.decls.Add(prop, Normalize(pc.value, nil, false))
	return
}

// float|clear|content_visibility|backface_visibility|perspective_origin|
// aspect like single property families.
func decodeSingle(property string) decoder {
	return func(pc *parsedClass) (em emission) {
		em.decls.Add(property, Normalize(pc.value, nil, false))
		return
	}
}
