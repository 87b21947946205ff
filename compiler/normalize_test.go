package compiler_test

import (
	"testing"

	"zcss/compiler"
)

func TestNormalize(t *testing.T) {
	keywords := map[string]string{"c": "center", "sb": "space-between"}

	tests := []struct {
		name     string
		token    string
		keywords map[string]string
		font     bool
		want     string
	}{
		{"plain", "10px", nil, false, "10px"},
		{"important", "10px_imp", nil, false, "10px !important"},
		{"bare important", "_imp", nil, false, ""},
		{"keyword", "c", keywords, false, "center"},
		{"keyword important", "sb_imp", keywords, false, "space-between !important"},
		{"missing keyword", "stretch", keywords, false, "stretch"},
		{"variable", "vMainColor", nil, false, "var(--main-color)"},
		{"variable important", "vGap_imp", nil, false, "var(--gap) !important"},
		{"url", "url@img/a.png", nil, false, "url(img/a.png)"},
		{"camel case", "flexStart", nil, false, "flex-start"},
		{"words", "1px+solid+red", nil, false, "1px solid red"},
		{"hex keeps case", "1px+solid+#FFF", nil, false, "1px solid #FFF"},
		{"plus sign", "p10px", nil, false, "+10px"},
		{"minus sign", "m5px", nil, false, "-5px"},
		{"sign inside", "calc(100%+m5px)", nil, false, "calc(100% -5px)"},
		{"not a sign", "max", nil, false, "max"},
		{"font words", "Open+Sans", nil, true, `"Open Sans"`},
		{"font camel", "sansSerif", nil, true, "sans-serif"},
		{"font plain", "serif", nil, true, "serif"},
		{"font important", "serif_imp", nil, true, "serif !important"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compiler.Normalize(tt.token, tt.keywords, tt.font); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.token, got, tt.want)
			}
		})
	}
}
