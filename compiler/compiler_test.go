package compiler_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"zcss/compiler"
	"zcss/css"
)

func TestCompiler_BreakpointFolding(t *testing.T) {
	opts := compiler.DefaultOptions()
	opts.Breakpoints = compiler.Breakpoints{"md": 768}
	c, sink := newCompiler(t, opts)

	if err := c.ProcessBatch([]string{"wd-max_md-50%"}); err != nil {
		t.Fatalf("ProcessBatch() error = %v", err)
	}

	want := "@media (max-width: 768px) {\n  .wd-max_md-50\\% {\n\twidth: 50%;\n}\n}\n"
	if got := sink.Partition(768); got != want {
		t.Errorf("Partition(768) =\n%q\nwant\n%q", got, want)
	}
	if sink.Base() != "" {
		t.Errorf("Base() = %q, want empty", sink.Base())
	}
}

func TestCompiler_MinWidth(t *testing.T) {
	c, sink := newCompiler(t, compiler.DefaultOptions())

	if err := c.ProcessBatch([]string{"d-min_1200-none"}); err != nil {
		t.Fatalf("ProcessBatch() error = %v", err)
	}
	if got := sink.Partition(1200); !strings.HasPrefix(got, "@media (min-width: 1200px) {\n  .d-min_1200-none {") {
		t.Errorf("Partition(1200) = %q", got)
	}
}

func TestCompiler_PartitionOrdering(t *testing.T) {
	c, sink := newCompiler(t, compiler.DefaultOptions())

	if err := c.ProcessBatch([]string{"wd-md-1px", "wd-l-1px", "wd-s-1px"}); err != nil {
		t.Fatalf("ProcessBatch() error = %v", err)
	}
	if got, want := sink.Widths(), []int{425, 768, 1024}; !slices.Equal(got, want) {
		t.Fatalf("Widths() = %v, want %v", got, want)
	}

	out := sink.String()
	i1024 := strings.Index(out, "(max-width: 1024px)")
	i768 := strings.Index(out, "(max-width: 768px)")
	i425 := strings.Index(out, "(max-width: 425px)")
	if !(i1024 < i768 && i768 < i425) {
		t.Errorf("partitions are not rendered widest first:\n%s", out)
	}
}

func TestCompiler_FlexChild(t *testing.T) {
	c, sink := newCompiler(t, compiler.DefaultOptions())

	c.Dispatch("flex_child-even", false)

	want := ".flex_child-even {\n\tdisplay: flex;\n}\n" +
		".flex_child-even > * {\n\tflex: 1 0 0%;\n\tmax-width:100%;\n}\n"
	if got := sink.Base(); got != want {
		t.Errorf("Base() =\n%q\nwant\n%q", got, want)
	}
}

func TestCompiler_Escaping(t *testing.T) {
	if got := css.EscapeClassName("hover:bg-color-red"); got != `hover\:bg-color-red` {
		t.Errorf("EscapeClassName() = %q", got)
	}

	c, sink := newCompiler(t, compiler.DefaultOptions())
	c.Dispatch("hover:bg_color-red", false)
	c.Dispatch("wd-33.3%", false)

	base := sink.Base()
	for _, want := range []string{
		".hover\\:bg_color-red:hover {\n\tbackground-color: red;\n}\n",
		".wd-33\\.3\\% {\n\twidth: 33.3%;\n}\n",
	} {
		if !strings.Contains(base, want) {
			t.Errorf("Base() does not contain %q:\n%s", want, base)
		}
	}
}

func TestCompiler_AtMostOnce(t *testing.T) {
	c, sink := newCompiler(t, compiler.DefaultOptions())

	if err := c.ProcessBatch([]string{"wd-10px", "wd-10px", "ht-5px"}); err != nil {
		t.Fatal(err)
	}
	if err := c.ProcessBatch([]string{"ht-5px", "wd-10px"}); err != nil {
		t.Fatal(err)
	}

	base := sink.Base()
	if n := strings.Count(base, ".wd-10px {"); n != 1 {
		t.Errorf("wd-10px emitted %d times", n)
	}
	if n := strings.Count(base, ".ht-5px {"); n != 1 {
		t.Errorf("ht-5px emitted %d times", n)
	}
	if got, want := c.Processed(), []string{"wd-10px", "ht-5px"}; !slices.Equal(got, want) {
		t.Errorf("Processed() = %v, want %v", got, want)
	}
}

func TestCompiler_DispatchRecordsName(t *testing.T) {
	c, sink := newCompiler(t, compiler.DefaultOptions())

	c.Observe("ht-1px")
	c.Dispatch("wd-10px", false)
	c.Dispatch("ht-1px", false)
	if err := c.ProcessBatch([]string{"wd-10px", "ht-1px", "d-none"}); err != nil {
		t.Fatal(err)
	}

	base := sink.Base()
	for _, sel := range []string{".wd-10px {", ".ht-1px {", ".d-none {"} {
		if n := strings.Count(base, sel); n != 1 {
			t.Errorf("%s emitted %d times:\n%s", sel, n, base)
		}
	}
	if got, want := c.Processed(), []string{"wd-10px", "ht-1px", "d-none"}; !slices.Equal(got, want) {
		t.Errorf("Processed() = %v, want %v", got, want)
	}

	// declarations only mode leaves no trace
	c.Dispatch("m-1px", true)
	if slices.Contains(c.Processed(), "m-1px") {
		t.Error("declarations only dispatch recorded name")
	}
}

func TestCompiler_ObserveFlush(t *testing.T) {
	c, sink := newCompiler(t, compiler.DefaultOptions())

	c.Observe("wd-1px", "ht-1px")
	if len(c.Processed()) != 0 || sink.Base() != "" {
		t.Fatal("Observe() compiled class names")
	}
	if err := c.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := len(c.Processed()); got != 2 {
		t.Errorf("Processed() has %d names, want 2", got)
	}

	c.Observe("ht-1px", "d-none")
	if err := c.Flush(); err != nil {
		t.Fatal(err)
	}
	if got, want := c.Processed(), []string{"wd-1px", "ht-1px", "d-none"}; !slices.Equal(got, want) {
		t.Errorf("Processed() = %v, want %v", got, want)
	}
}

func TestCompiler_Unknown(t *testing.T) {
	c, sink := newCompiler(t, compiler.DefaultOptions())

	if got := c.Dispatch("totally_unknown-xyz", false); got != "" {
		t.Errorf("Dispatch() = %q", got)
	}
	if err := c.ProcessBatch([]string{"totally_unknown-xyz"}); err != nil {
		t.Errorf("ProcessBatch() error = %v in silent mode", err)
	}
	if sink.Base() != "" || len(sink.Widths()) != 0 || sink.Variables() != "" || sink.FontImports() != "" {
		t.Errorf("sink is not empty:\n%s", sink.String())
	}
}

func TestCompiler_StrictErrors(t *testing.T) {
	opts := compiler.DefaultOptions()
	opts.ErrorMode = compiler.ErrorModeStrict
	c, sink := newCompiler(t, opts)

	err := c.ProcessBatch([]string{"wd-10px", "nope-1", "wd-max_huge-1px", "wd-{10px}"})
	if err == nil {
		t.Fatal("ProcessBatch() error = nil in strict mode")
	}
	if n := len(multierr.Errors(err)); n != 3 {
		t.Errorf("got %d errors, want 3: %v", n, err)
	}
	for _, target := range []error{compiler.ErrUnrecognizedClass, compiler.ErrUnresolvedBreakpoint, compiler.ErrInvalidClassName} {
		if !errors.Is(err, target) {
			t.Errorf("error %v does not wrap %v", err, target)
		}
	}
	if !strings.Contains(sink.Base(), ".wd-10px {") {
		t.Errorf("valid sibling was not emitted:\n%s", sink.Base())
	}
	if len(sink.Widths()) != 0 {
		t.Errorf("unresolved breakpoint created partition %v", sink.Widths())
	}
}

func TestCompiler_WarnMode(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	opts := compiler.DefaultOptions()
	opts.ErrorMode = compiler.ErrorModeWarn
	opts.WarnThreshold = 2
	c := compiler.New(compiler.NewMemorySink(), opts, zap.New(core))

	if err := c.ProcessBatch([]string{"nope-1", "wd-1px"}); err != nil {
		t.Fatalf("ProcessBatch() error = %v in warn mode", err)
	}

	if n := logs.FilterMessage("Unable to compile class").Len(); n != 1 {
		t.Errorf("got %d compile warnings, want 1", n)
	}
	if n := logs.FilterMessage("Large number of class names processed").Len(); n != 1 {
		t.Errorf("got %d size warnings, want 1", n)
	}
}

func TestCompiler_ClassPrefix(t *testing.T) {
	opts := compiler.DefaultOptions()
	opts.ClassPrefix = "z-"
	c, sink := newCompiler(t, opts)

	if err := c.ProcessBatch([]string{"z-wd-10px", "wd-20px"}); err != nil {
		t.Fatal(err)
	}
	base := sink.Base()
	if !strings.Contains(base, ".z-wd-10px {\n\twidth: 10px;\n}\n") {
		t.Errorf("prefixed class missing:\n%s", base)
	}
	if strings.Contains(base, "20px") {
		t.Errorf("class without prefix compiled:\n%s", base)
	}
}

func TestCompiler_GlobalImportant(t *testing.T) {
	opts := compiler.DefaultOptions()
	opts.Important = true
	c, sink := newCompiler(t, opts)

	c.Dispatch("wd-10px", false)
	c.Dispatch("ht-5px_imp", false)

	want := ".wd-10px {\n\twidth: 10px !important;\n}\n.ht-5px_imp {\n\theight: 5px !important;\n}\n"
	if got := sink.Base(); got != want {
		t.Errorf("Base() =\n%q\nwant\n%q", got, want)
	}
	if got := c.Dispatch("wd-10px", true); got != "\twidth: 10px;" {
		t.Errorf("declarations only = %q", got)
	}
}

func TestCompiler_TransformRegistry(t *testing.T) {
	c, sink := newCompiler(t, compiler.DefaultOptions())

	rule := sink.TransformRule()
	if !strings.HasPrefix(rule, ".transform {\n\ttransform: matrix(var(--matrix)) matrix3d(var(--matrix3d))") {
		t.Fatalf("initial transform rule = %q", rule)
	}
	if !strings.Contains(rule, "skewY(var(--skewY));\n}\n") {
		t.Errorf("transform rule is not complete: %q", rule)
	}
	if vars := sink.String(); !strings.Contains(vars, "html {\n\t--matrix: 1,0,0,1,0,0;\n") {
		t.Errorf("transform defaults missing:\n%s", vars)
	}

	if err := c.ProcessBatch([]string{"transform_rotate-45deg", "transform_scale-2", "transform_origin-center"}); err != nil {
		t.Fatal(err)
	}
	if got := sink.TransformRule(); !strings.HasPrefix(got, ".transform, .transform_origin-center, .transform_scale-2, .transform_rotate-45deg {") {
		t.Errorf("transform rule = %q", got)
	}

	if err := c.ProcessBatch([]string{"__.card@transform_rotate-10deg,color-red", "center_el-c+abs", "letter_dir-down"}); err != nil {
		t.Fatal(err)
	}
	got := sink.TransformRule()
	if !strings.HasPrefix(got, ".transform, .letter_dir-down, .center_el-c\\+abs, .card, .transform_origin-center,") {
		t.Errorf("transform rule = %q", got)
	}
	if strings.Count(got, ".card,") != 1 {
		t.Errorf("selector registered twice: %q", got)
	}
}

func TestCompiler_Combinator(t *testing.T) {
	c, sink := newCompiler(t, compiler.DefaultOptions())

	if err := c.ProcessBatch([]string{"__.card__h2--max_md@color-red,p_x-1rem", "__ul>li@d-flex,nope-1"}); err != nil {
		t.Fatal(err)
	}

	want := "@media (max-width: 768px) {\n  .card h2 {\n\tcolor: red;\n\tpadding-right: 1rem;\n\tpadding-left: 1rem;\n}\n}\n"
	if got := sink.Partition(768); got != want {
		t.Errorf("Partition(768) =\n%q\nwant\n%q", got, want)
	}
	if got := sink.Base(); got != "ul>li {\n\tdisplay: flex;\n}\n" {
		t.Errorf("Base() = %q", got)
	}
	if got := sink.TransformRule(); strings.Contains(got, ".card h2") {
		t.Errorf("combinator without transforms registered: %q", got)
	}
	if got := c.Dispatch("__.card@color-red", true); got != "" {
		t.Errorf("combinator in declarations only mode = %q", got)
	}
}

func TestCompiler_Variables(t *testing.T) {
	c, sink := newCompiler(t, compiler.DefaultOptions())

	if err := c.ProcessBatch([]string{"vars_c_card@mainColor:red,gap:1rem", "vars_e_body@bgClr:vMainColor", "vars_i_app@wd:m10px&ht:1px+solid"}); err != nil {
		t.Fatal(err)
	}
	want := ".card {\n\t--main-color: red;\n\t--gap: 1rem;\n}\n" +
		"body {\n\t--bg-clr: var(--main-color);\n}\n" +
		"#app {\n\t--wd: -10px;\n\t--ht: 1px solid;\n}\n"
	if got := sink.Variables(); got != want {
		t.Errorf("Variables() =\n%q\nwant\n%q", got, want)
	}
	if sink.Base() != "" {
		t.Errorf("variables leaked into base: %q", sink.Base())
	}
}

func TestCompiler_FontImport(t *testing.T) {
	c, sink := newCompiler(t, compiler.DefaultOptions())

	if err := c.ProcessBatch([]string{"@import-https://fonts.example.com/css2?family=Roboto-Mono"}); err != nil {
		t.Fatal(err)
	}
	want := "@import url('https://fonts.example.com/css2?family=Roboto-Mono');\n"
	if got := sink.FontImports(); got != want {
		t.Errorf("FontImports() = %q, want %q", got, want)
	}
	if !strings.HasPrefix(sink.String(), want) {
		t.Errorf("imports are not rendered first:\n%s", sink.String())
	}
}

func TestCompiler_Scrollbar(t *testing.T) {
	c, sink := newCompiler(t, compiler.DefaultOptions())

	if err := c.ProcessBatch([]string{"scroll_bar_body-hide", "scroll_thumb-bgClr:#888", "scroll_bar_html_wd-6px"}); err != nil {
		t.Fatal(err)
	}
	base := sink.Base()
	for _, want := range []string{
		"body::-webkit-scrollbar {\n\tdisplay: none;\n}\n",
		".scroll_thumb-bgClr\\:\\#888::-webkit-scrollbar-thumb {\n\tbackground-color: #888;\n}\n",
		"html::-webkit-scrollbar {\n\twidth: 6px;\n}\n",
	} {
		if !strings.Contains(base, want) {
			t.Errorf("Base() does not contain %q:\n%s", want, base)
		}
	}
}

func TestCompiler_Validation(t *testing.T) {
	c, sink := newCompiler(t, compiler.DefaultOptions())
	c.Dispatch("content-a;b", false)
	c.Dispatch("wd-1px}x", false)
	if sink.Base() != "" {
		t.Errorf("invalid class names compiled:\n%s", sink.Base())
	}

	opts := compiler.DefaultOptions()
	opts.ValidateClasses = false
	c, sink = newCompiler(t, opts)
	c.Dispatch("content-a;b", false)
	if sink.Base() == "" {
		t.Error("validation disabled but class was rejected")
	}
}

func TestCompiler_ID(t *testing.T) {
	a, _ := newCompiler(t, compiler.DefaultOptions())
	b, _ := newCompiler(t, compiler.DefaultOptions())
	if a.ID() == b.ID() {
		t.Errorf("compilers share id %s", a.ID())
	}
}

func TestCompiler_Check(t *testing.T) {
	opts := compiler.DefaultOptions()
	opts.Breakpoints = compiler.Breakpoints{"md": 768}
	c, sink := newCompiler(t, opts)

	tests := []struct {
		name string
		want error
	}{
		{"wd-10px", nil},
		{"wd-md-10px", nil},
		{"wd-xl-10px", compiler.ErrUnresolvedBreakpoint},
		{"nope-1", compiler.ErrUnrecognizedClass},
		{"wd-1px;", compiler.ErrInvalidClassName},
		{"vars_e_root@main:red", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Check(tt.name)
			if tt.want == nil && err != nil {
				t.Errorf("Check() error = %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Check() error = %v, want %v", err, tt.want)
			}
		})
	}
	if len(c.Processed()) != 0 || sink.Base() != "" || len(sink.Widths()) != 0 {
		t.Error("Check() recorded or wrote class names")
	}
}
