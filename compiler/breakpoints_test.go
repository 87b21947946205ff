package compiler_test

import (
	"testing"

	"zcss/compiler"
)

func TestBreakpoints_Resolve(t *testing.T) {
	bp := compiler.DefaultBreakpoints()

	tests := []struct {
		spec    string
		feature string
		width   int
		ok      bool
	}{
		{"md", "max-width", 768, true},
		{"max_md", "max-width", 768, true},
		{"min_l", "min-width", 1024, true},
		{"min_900", "min-width", 900, true},
		{"max_600px", "max-width", 600, true},
		{"1200", "max-width", 1200, true},
		{"max_huge", "", 0, false},
		{"max_0", "", 0, false},
		{"max_m10", "", 0, false},
		{"", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			feature, width, ok := bp.Resolve(tt.spec)
			if ok != tt.ok {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.spec, ok, tt.ok)
			}
			if !ok {
				return
			}
			if feature != tt.feature || width != tt.width {
				t.Errorf("Resolve(%q) = %s %d, want %s %d", tt.spec, feature, width, tt.feature, tt.width)
			}
		})
	}
}

func TestBreakpoints_Merge(t *testing.T) {
	base := compiler.DefaultBreakpoints()
	merged := base.Merge(map[string]int{"md": 800, "tablet": 900})

	if merged["md"] != 800 {
		t.Errorf("md = %d, want 800", merged["md"])
	}
	if merged["tablet"] != 900 {
		t.Errorf("tablet = %d, want 900", merged["tablet"])
	}
	if base["md"] != 768 {
		t.Errorf("original table modified, md = %d", base["md"])
	}
	if _, w, _ := merged.Resolve("min_tablet"); w != 900 {
		t.Errorf("min_tablet resolved to %d", w)
	}
}
