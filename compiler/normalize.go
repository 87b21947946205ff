package compiler

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	importantSuffix = "_imp"
	importantMark   = " !important"
)

var (
	varRefPattern     = regexp.MustCompile(`^v[A-Z]`)
	signedNumberPlus  = regexp.MustCompile(`(^|[\s(,])p(\d)`)
	signedNumberMinus = regexp.MustCompile(`(^|[\s(,])m(\d)`)
)

// Normalize turns raw value token into CSS value. It never fails, tokens it
// does not recognize are passed through with generic rewrites applied:
//
//   - "_imp" suffix becomes " !important"
//   - exact keyword table match returns mapped value
//   - font literal: "Open+Sans" becomes "\"Open Sans\"", camelCase is kebab-cased
//   - "vMainColor" becomes "var(--main-color)"
//   - "url@img/a.png" becomes "url(img/a.png)"
//   - "+" becomes space, "p10"/"m10" become "+10"/"-10", camelCase is kebab-cased
func Normalize(token string, keywords map[string]string, fontLiteral bool) string {
	imp := ""
	if strings.HasSuffix(token, importantSuffix) {
		token = strings.TrimSuffix(token, importantSuffix)
		imp = importantMark
	}
	if len(token) == 0 {
		return ""
	}

	if v, ok := keywords[token]; ok && len(v) > 0 {
		return v + imp
	}
	if fontLiteral {
		return fontName(token) + imp
	}
	if varRefPattern.MatchString(token) {
		return "var(--" + strings.TrimPrefix(kebab(token[1:]), "-") + ")" + imp
	}
	if rest, ok := strings.CutPrefix(token, "url@"); ok {
		return "url(" + rest + ")" + imp
	}

	val := strings.ReplaceAll(token, "+", " ")
	val = signedNumberPlus.ReplaceAllString(val, "${1}+${2}")
	val = signedNumberMinus.ReplaceAllString(val, "${1}-${2}")

	words := strings.Split(val, " ")
	for i, w := range words {
		// hex colors keep their case
		if !strings.HasPrefix(w, "#") {
			words[i] = kebab(w)
		}
	}
	return strings.Join(words, " ") + imp
}

// cutImportant removes "_imp" suffix, composite values have to put the mark
// after the whole value.
func cutImportant(token string) (string, bool) {
	return strings.CutSuffix(token, importantSuffix)
}

func withImportant(value string, imp bool) string {
	if imp && len(value) > 0 {
		return value + importantMark
	}
	return value
}

// normalizeAll normalizes every token and joins results with separator.
func normalizeAll(tokens []string, keywords map[string]string, sep string) string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if v := Normalize(t, keywords, false); len(v) > 0 {
			out = append(out, v)
		}
	}
	return strings.Join(out, sep)
}

func fontName(val string) string {
	switch {
	case strings.Contains(val, "+"):
		return `"` + strings.ReplaceAll(val, "+", " ") + `"`
	case strings.IndexFunc(val, unicode.IsUpper) >= 0:
		return kebab(val)
	default:
		return val
	}
}

// kebab converts camelCase to kebab-case, "flexStart" to "flex-start".
func kebab(s string) string {
	if strings.IndexFunc(s, unicode.IsUpper) < 0 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 4)
	for _, r := range s {
		if unicode.IsUpper(r) {
			sb.WriteByte('-')
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// kebabName converts property-like class segments: underscores and camel
// humps both become dashes, "justify_content" -> "justify-content".
func kebabName(s string) string {
	return kebab(strings.ReplaceAll(s, "_", "-"))
}
