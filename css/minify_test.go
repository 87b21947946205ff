package css_test

import (
	"testing"

	"zcss/css"
)

func TestMinify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "rule",
			in:   ".wd-50\\% {\n\twidth: 50%;\n\theight: 1px;\n}\n",
			want: ".wd-50\\%{width:50%;height:1px}",
		},
		{
			name: "media",
			in:   "@media (max-width: 768px) {\n  .a {\n\tmargin: 0 auto;\n}\n}\n",
			want: "@media (max-width:768px){.a{margin:0 auto}}",
		},
		{
			name: "comments and groups",
			in:   "/* header */\n.transform, .b > * {\n\ttransform: rotate(var(--rotate)) scale(var(--scale));\n}\n",
			want: ".transform,.b > *{transform:rotate(var(--rotate)) scale(var(--scale))}",
		},
		{
			name: "important",
			in:   ".c {\n\tcolor: red !important;\n}\n",
			want: ".c{color:red !important}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := css.Minify([]byte(tt.in))
			if err != nil {
				t.Fatalf("Minify() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Minify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMinify_ParsesBack(t *testing.T) {
	min, err := css.Minify([]byte(generated))
	if err != nil {
		t.Fatalf("Minify() error = %v", err)
	}
	sheet := css.NewParser(nil).Parse(min)
	if v, _ := sheet.Effective(".color-red_imp", "color", 1000); v != "red" {
		t.Errorf("color after minification = %q", v)
	}
	if len(sheet.MediaBlocks()) != 2 {
		t.Errorf("media blocks lost: %s", min)
	}
}
