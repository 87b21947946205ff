package compiler

import (
	"regexp"
	"strings"
)

// decoder turns parsed class name into declarations.
type decoder func(pc *parsedClass) emission

// matcher selects decoder for parsed class name.
type matcher func(pc *parsedClass) bool

type rule struct {
	name    string
	match   matcher
	decode  decoder
	wantVal bool // class has to carry value tail
}

func headIs(heads ...string) matcher {
	return func(pc *parsedClass) bool {
		for _, h := range heads {
			if pc.head == h {
				return true
			}
		}
		return false
	}
}

func headMatches(re string) matcher {
	r := regexp.MustCompile(re)
	return func(pc *parsedClass) bool {
		return r.MatchString(pc.head)
	}
}

func baseHasPrefix(prefix string) matcher {
	return func(pc *parsedClass) bool {
		return strings.HasPrefix(pc.base, prefix)
	}
}

// rules is the prioritized dispatch table, first match wins. Order matters
// where family keys overlap: blend modes before background, center and side
// alignment before generic align.
var rules = []rule{
	{"size", headMatches(`^(max_|min_)?(wd|ht|size)$`), decodeSize, true},
	{"aspect-ratio", headIs("aspect_ratio"), decodeAspectRatio, true},
	{"display", headIs("d"), decodeDisplay, true},
	{"flex", headMatches(`^flex(_(dir|grow|shrink|wrap|basis|child))?$`), decodeFlex, true},
	{"grid", headMatches(`^grid(_col|_auto(_\w+)?)?$`), decodeGrid, true},
	{"justify", headMatches(`^justify_(content|items|self)$`), decodeJustify, true},
	{"center", headMatches(`^(center_el|align_(left|right|top|bottom))$`), decodeCenter, true},
	{"align", headMatches(`^align_(content|items|self)$`), decodeAlign, true},
	{"gap", headIs("gap", "col_gap", "row_gap"), decodeGap, true},
	{"order", headIs("order"), decodeOrder, true},
	{"position", headIs("pos"), decodePosition, true},
	{"overflow", headMatches(`^overflow(_x|_y)?$`), decodeOverflow, true},
	{"z-index", headIs("zIndex"), decodeZIndex, true},
	{"inset", headIs("top", "right", "bottom", "left"), decodeInset, true},
	{"vars", baseHasPrefix("vars_"), decodeVars, false},
	{"spacing", headMatches(`^(p|m)(_(t|r|b|l|x|y))?$`), decodeSpacing, true},
	{"blend", headIs("bg_blend", "mix_blend"), decodeBlend, true},
	{"background", headMatches(`^bg(_(color|clr|image|img|position|pos|size|s|repeat|re|origin|org|clip|attachment|att))?$`), decodeBackground, true},
	{"border", headMatches(`^(border|outline)(_\w+)?$`), decodeBorder, true},
	{"ring", headMatches(`^ring(_(t|r|b|l))?$`), decodeRing, true},
	{"filter", headMatches(`^(filter|bdFilter)(_\w+)?$`), decodeFilter, true},
	{"opacity", headIs("opacity"), decodeOpacity, true},
	{"shadow", headIs("shadow", "txt_shadow"), decodeShadow, true},
	{"text-gradient", headIs("text_grad"), decodeTextGradient, true},
	{"font", headMatches(`^font(_(family|size|weight|style|variant|stretch))?$`), decodeFont, true},
	{"color", headIs("color"), decodeColor, true},
	{"letter", headIs("letter_space", "letter_dir"), decodeLetter, true},
	{"text", headMatches(`^txt_\w+$`), decodeText, true},
	{"line", headIs("line_height", "line_clamp", "line_break"), decodeLine, true},
	{"font-import", headIs("@import"), decodeImport, true},
	{"scroll", headMatches(`^(scroll_(bar|thumb|snap)(_\w+)?|scroll_behavior|overscroll_behavior)$`), decodeScroll, true},
	{"transform", headMatches(`^transform(_\w+)?$`), decodeTransform, true},
	{"transition", headMatches(`^transition(_\w+)?$`), decodeTransition, true},
	{"perspective-origin", headIs("perspective_origin"), decodeSingle("perspective-origin"), true},
	{"column", headMatches(`^(columns|column(_\w+)?)$`), decodeColumn, true},
	{"object", headIs("obj_fit", "obj_pos"), decodeObject, true},
	{"float", headIs("float"), decodeSingle("float"), true},
	{"clear", headIs("clear"), decodeSingle("clear"), true},
	{"content-visibility", headIs("content_visibility"), decodeSingle("content-visibility"), true},
	{"backface-visibility", headIs("backface_visibility"), decodeSingle("backface-visibility"), true},
	{"interaction", func(pc *parsedClass) bool { _, ok := interactionProperties[pc.head]; return ok }, decodeInteraction, true},
	{"content", headIs("content"), decodeContent, true},
}

// lookup returns first rule matching parsed class.
func lookup(pc *parsedClass) (*rule, bool) {
	for i := range rules {
		r := &rules[i]
		if r.wantVal && len(pc.value) == 0 {
			continue
		}
		if r.match(pc) {
			return r, true
		}
	}
	return nil, false
}
