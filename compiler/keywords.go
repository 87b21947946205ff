package compiler

// Mnemonic keyword tables used by family decoders. Values missing from a table
// go through generic normalization.

var colorKeywords = map[string]string{
	"currentColor": "currentColor",
	"current":      "currentColor",
	"transparent":  "transparent",
	"inherit":      "inherit",
	"initial":      "initial",
	"unset":        "unset",
}

var clipKeywords = map[string]string{
	"borderBox":  "border-box",
	"paddingBox": "padding-box",
	"contentBox": "content-box",
	"text":       "text",
}

var originKeywords = map[string]string{
	"borderBox":  "border-box",
	"paddingBox": "padding-box",
	"contentBox": "content-box",
}

var repeatKeywords = map[string]string{
	"repeat":   "repeat",
	"xRepeat":  "repeat-x",
	"yRepeat":  "repeat-y",
	"noRepeat": "no-repeat",
	"round":    "round",
	"space":    "space",
}

var alignKeywords = map[string]string{
	"c":       "center",
	"fs":      "flex-start",
	"fe":      "flex-end",
	"s":       "start",
	"e":       "end",
	"left":    "left",
	"right":   "right",
	"sb":      "space-between",
	"sa":      "space-around",
	"se":      "space-evenly",
	"stretch": "stretch",
	"b":       "baseline",
	"fb":      "first baseline",
	"lb":      "last baseline",
}

var flexDirKeywords = map[string]string{
	"row":  "row",
	"rowR": "row-reverse",
	"col":  "column",
	"colR": "column-reverse",
}

var flexWrapKeywords = map[string]string{
	"wrap":   "wrap",
	"wrapR":  "wrap-reverse",
	"nowrap": "nowrap",
}

var positionKeywords = map[string]string{
	"static": "static",
	"rel":    "relative",
	"abs":    "absolute",
	"fix":    "fixed",
	"sticky": "sticky",
}

var overflowKeywords = map[string]string{
	"auto":   "auto",
	"hidden": "hidden",
	"scroll": "scroll",
}

var sideNames = map[string]string{
	"t":      "top",
	"r":      "right",
	"b":      "bottom",
	"l":      "left",
	"top":    "top",
	"right":  "right",
	"bottom": "bottom",
	"left":   "left",
}
