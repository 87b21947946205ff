package css_test

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"zcss/css"
)

const generated = `@import url('https://fonts.example.com/css?family=Inter');
html {
	--rotate: 0deg;
	--scale: 1, 1;
}
.transform, .rot-45 {
	transform: rotate(var(--rotate)) scale(var(--scale));
}
.wd-50\% {
	width: 50%;
}
.color-red_imp {
	color: red !important;
}
.flex_child-even {
	display: flex;
}
.flex_child-even > * {
	flex: 1 0 0%;
	max-width:100%;
}
@media (max-width: 1024px) {
  .wd-max_l-75\% {
	width: 75%;
}
}
@media (max-width: 768px) {
  .wd-max_md-100\% {
	width: 100%;
}
}
`

func TestParser_ParseGenerated(t *testing.T) {
	p := css.NewParser(zap.NewNop())
	sheet := p.Parse([]byte(generated), "generated")

	if len(sheet.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", sheet.Warnings)
	}

	imports := sheet.Imports()
	if len(imports) != 1 || imports[0] != "https://fonts.example.com/css?family=Inter" {
		t.Errorf("unexpected imports: %v", imports)
	}

	html := sheet.RulesBySelector("html")
	if len(html) != 1 {
		t.Fatalf("expected html rule, got %d", len(html))
	}
	if v, ok := html[0].Declarations.Get("--scale"); !ok || v != "1, 1" {
		t.Errorf("--scale = %q, %v", v, ok)
	}

	if got := sheet.RulesBySelector(".rot-45"); len(got) != 1 {
		t.Errorf("grouped selector must produce separate rule, got %d", len(got))
	}

	wd := sheet.RulesBySelector(`.wd-50\%`)
	if len(wd) != 1 {
		t.Fatalf("expected escaped selector rule, rules: %v", sheet.Rules())
	}
	if v, _ := wd[0].Declarations.Get("width"); v != "50%" {
		t.Errorf("width = %q", v)
	}

	child := sheet.RulesBySelector(".flex_child-even > *")
	if len(child) != 1 {
		t.Fatalf("expected child combinator rule")
	}
	if v, _ := child[0].Declarations.Get("flex"); v != "1 0 0%" {
		t.Errorf("flex = %q", v)
	}

	blocks := sheet.MediaBlocks()
	if len(blocks) != 2 {
		t.Fatalf("expected 2 media blocks, got %d", len(blocks))
	}
	if blocks[0].Query.Feature != "max-width" || blocks[0].Query.Width != 1024 {
		t.Errorf("unexpected first query %+v", blocks[0].Query)
	}
	if blocks[1].Query.Width != 768 {
		t.Errorf("unexpected second query %+v", blocks[1].Query)
	}
	if len(blocks[1].Rules) != 1 || blocks[1].Rules[0].Selector != `.wd-max_md-100\%` {
		t.Errorf("unexpected media rules %+v", blocks[1].Rules)
	}
}

func TestStylesheet_Effective(t *testing.T) {
	src := `.a { color: red; }
.a { color: blue !important; }
.a { color: green; }
@media (max-width: 768px) {
  .b { width: 10px; }
}
@media (max-width: 425px) {
  .b { width: 5px; }
}
`
	sheet := css.NewParser(nil).Parse([]byte(src))

	if v, _ := sheet.Effective(".a", "color", 1000); v != "blue" {
		t.Errorf("important value must win, got %q", v)
	}

	tests := []struct {
		viewport int
		want     string
		found    bool
	}{
		{1000, "", false},
		{700, "10px", true},
		{400, "5px", true},
	}
	for _, tt := range tests {
		v, ok := sheet.Effective(".b", "width", tt.viewport)
		if v != tt.want || ok != tt.found {
			t.Errorf("Effective(.b, width, %d) = %q, %v; want %q, %v", tt.viewport, v, ok, tt.want, tt.found)
		}
	}
}

func TestParser_Warnings(t *testing.T) {
	src := `@font-face { font-family: X; }
@media print { .a { color: red; } }
.empty {}
`
	sheet := css.NewParser(nil).Parse([]byte(src))
	if len(sheet.Warnings) != 3 {
		t.Errorf("expected 3 warnings, got %d: %v", len(sheet.Warnings), sheet.Warnings)
	}
}

func TestStylesheet_WriteToRoundTrip(t *testing.T) {
	p := css.NewParser(nil)
	first := p.Parse([]byte(generated))

	out := first.String()
	if strings.Count(out, "@media") != 2 {
		t.Errorf("media block lost in output:\n%s", out)
	}

	second := p.Parse([]byte(out))
	if len(second.Items) != len(first.Items) {
		t.Fatalf("item count changed: %d -> %d", len(first.Items), len(second.Items))
	}
	if v, _ := second.Effective(`.wd-max_md-100\%`, "width", 500); v != "100%" {
		t.Errorf("width after round trip = %q", v)
	}
}
