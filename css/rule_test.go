package css_test

import (
	"testing"

	"zcss/css"
)

func TestEscapeClassName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"wd-10px", "wd-10px"},
		{"hover:bg-color-red", `hover\:bg-color-red`},
		{"wd-50%", `wd-50\%`},
		{"p-1.5rem", `p-1\.5rem`},
		{"bg-clr:red&img:url@a/b.png", `bg-clr\:red\&img\:url\@a\/b\.png`},
		{"color-#fff", `color-\#fff`},
		{"m-0+auto", `m-0\+auto`},
		{"font-family:A,B", `font-family\:A\,B`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := css.EscapeClassName(tt.in); got != tt.want {
				t.Errorf("EscapeClassName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDeclarations_Add(t *testing.T) {
	var d css.Declarations
	d.Add("color", "red")
	d.Add("", "blue")
	d.Add("width", "")
	d.Add("height", "  ")
	d.Add("color", "green")

	if len(d) != 2 {
		t.Fatalf("expected 2 declarations, got %d: %v", len(d), d)
	}
	if v, ok := d.Get("color"); !ok || v != "green" {
		t.Errorf("Get(color) = %q, %v; want green, true", v, ok)
	}
	if _, ok := d.Get("width"); ok {
		t.Error("empty value must not be stored")
	}
}

func TestDeclarations_Important(t *testing.T) {
	var d css.Declarations
	d.Add("color", "red")
	d.Add("width", "10px !important")

	imp := d.Important()
	if imp[0].Value != "red !important" {
		t.Errorf("unexpected value %q", imp[0].Value)
	}
	if imp[1].Value != "10px !important" {
		t.Errorf("important must not be doubled, got %q", imp[1].Value)
	}
	if d[0].Value != "red" {
		t.Error("Important() must not modify receiver")
	}
}

func TestBuildRule(t *testing.T) {
	var d css.Declarations
	d.Add("width", "50%")
	d.Add("height", "50%")

	got := css.BuildRule(d, "size-50%", false)
	want := ".size-50\\% {\n\twidth: 50%;\n\theight: 50%;\n}\n"
	if got != want {
		t.Errorf("BuildRule() =\n%q\nwant\n%q", got, want)
	}

	got = css.BuildRule(d, "size-50%", true)
	want = "\twidth: 50%;\n\theight: 50%;"
	if got != want {
		t.Errorf("BuildRule(declarationsOnly) = %q, want %q", got, want)
	}

	if got := css.BuildRule(nil, "anything", false); got != "" {
		t.Errorf("empty declarations must produce empty rule, got %q", got)
	}
}

func TestBuildPseudoRule(t *testing.T) {
	var d css.Declarations
	d.Add("display", "none")

	got := css.BuildPseudoRule(d, ".list", "-webkit-scrollbar", false)
	want := ".list::-webkit-scrollbar {\n\tdisplay: none;\n}\n"
	if got != want {
		t.Errorf("BuildPseudoRule() = %q, want %q", got, want)
	}

	got = css.BuildPseudoRule(d, "", "-webkit-scrollbar", false)
	if got != "::-webkit-scrollbar {\n\tdisplay: none;\n}\n" {
		t.Errorf("BuildPseudoRule() with empty selector = %q", got)
	}
	if got := css.BuildPseudoRule(nil, ".x", "after", false); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}

func TestWrapMedia(t *testing.T) {
	rule := ".wd-max_md-50\\% {\n\twidth: 50%;\n}\n"
	got := css.WrapMedia("max-width", 768, rule)
	want := "@media (max-width: 768px) {\n  .wd-max_md-50\\% {\n\twidth: 50%;\n}\n}\n"
	if got != want {
		t.Errorf("WrapMedia() =\n%s\nwant\n%s", got, want)
	}
	if css.WrapMedia("min-width", 10, "") != "" {
		t.Error("empty rule must stay empty")
	}
}
