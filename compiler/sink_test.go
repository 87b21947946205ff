package compiler_test

import (
	"slices"
	"strings"
	"testing"

	"zcss/compiler"
)

func TestMemorySink_PartitionOrder(t *testing.T) {
	sink := compiler.NewMemorySink()

	sink.AppendForPartition(768, "/* 768 */\n")
	sink.AppendForPartition(1024, "/* 1024 */\n")
	sink.AppendForPartition(425, "/* 425 */\n")
	sink.AppendForPartition(768, "/* 768 again */\n")

	if got, want := sink.Widths(), []int{425, 768, 1024}; !slices.Equal(got, want) {
		t.Fatalf("Widths() = %v, want %v", got, want)
	}
	if got := sink.Partition(768); got != "/* 768 */\n/* 768 again */\n" {
		t.Errorf("Partition(768) = %q", got)
	}
	if got := sink.Partition(1); got != "" {
		t.Errorf("Partition(1) = %q, want empty", got)
	}
}

func TestMemorySink_WriteTo(t *testing.T) {
	sink := compiler.NewMemorySink()

	sink.AppendForPartition(425, "p425\n")
	sink.AppendBase("base\n")
	sink.AppendForPartition(1024, "p1024\n")
	sink.AppendVariables("vars\n")
	sink.SetTransformVariables("tvars\n")
	sink.ReplaceTransformRule("trule-old\n")
	sink.ReplaceTransformRule("trule\n")
	sink.AppendFontImport("import\n")

	want := "import\nvars\ntvars\ntrule\nbase\np1024\np425\n"
	if got := sink.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	var sb strings.Builder
	n, err := sink.WriteTo(&sb)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if n != int64(len(want)) {
		t.Errorf("WriteTo() = %d bytes, want %d", n, len(want))
	}
}
