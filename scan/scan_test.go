package scan_test

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"

	"zcss/scan"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestExtractHTML(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{"simple", `<div class="wd-10px ht-20px"></div>`, []string{"wd-10px", "ht-20px"}},
		{"nested", `<ul class="d-flex"><li class="p-1rem">x</li><li class=" p-1rem
			hover:bg_color-red "></li></ul>`, []string{"d-flex", "p-1rem", "p-1rem", "hover:bg_color-red"}},
		{"self closing", `<img class="wd-100%" src="a.png"/>`, []string{"wd-100%"}},
		{"no attributes", `<p>text</p><br>`, nil},
		{"other attributes ignored", `<a href="x" data-class="wd-1px" title="ht-1px">x</a>`, nil},
		{"entities", `<p class="content-&quot;a&quot;"></p>`, []string{`content-"a"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scan.ExtractHTML(strings.NewReader(tt.doc), nil)
			if err != nil {
				t.Fatalf("ExtractHTML() error = %v", err)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("ExtractHTML() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractHTML_Charset(t *testing.T) {
	body, err := charmap.Windows1251.NewEncoder().String(`<p class="content-'привет'"></p>`)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("meta declaration", func(t *testing.T) {
		doc := `<html><head><meta charset="windows-1251"></head><body>` + body + `</body></html>`
		got, err := scan.ExtractHTML(strings.NewReader(doc), nil)
		if err != nil {
			t.Fatalf("ExtractHTML() error = %v", err)
		}
		if len(got) != 1 || got[0] != "content-'привет'" {
			t.Errorf("ExtractHTML() = %q", got)
		}
	})

	t.Run("fallback", func(t *testing.T) {
		got, err := scan.ExtractHTML(strings.NewReader(body), charmap.Windows1251)
		if err != nil {
			t.Fatalf("ExtractHTML() error = %v", err)
		}
		if len(got) != 1 || got[0] != "content-'привет'" {
			t.Errorf("ExtractHTML() = %q", got)
		}
	})
}

func TestExtractList(t *testing.T) {
	list := `# layout
wd-10px ht-10px

  d-flex	gap-1rem
#p-1rem
`
	got, err := scan.ExtractList(strings.NewReader(list))
	if err != nil {
		t.Fatalf("ExtractList() error = %v", err)
	}
	want := []string{"wd-10px", "ht-10px", "d-flex", "gap-1rem"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("ExtractList() = %q, want %q", got, want)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		want scan.Kind
	}{
		{"index.html", scan.KindHTML},
		{"INDEX.HTM", scan.KindHTML},
		{"page.gohtml", scan.KindHTML},
		{"extra.txt", scan.KindList},
		{"site.classes", scan.KindList},
		{"logo.png", scan.KindUnknown},
		{"noext", scan.KindUnknown},
	}
	for _, tt := range tests {
		if got := scan.KindOf(tt.name); got != tt.want {
			t.Errorf("KindOf(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestScanner_Scan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "site", "index.html"), `<div class="wd-10px d-flex"></div>`)
	writeFile(t, filepath.Join(dir, "site", "parts", "nav.htm"), `<nav class="d-flex p-1rem"></nav>`)
	writeFile(t, filepath.Join(dir, "site", "extra.classes"), "ht-5px")
	writeFile(t, filepath.Join(dir, "site", "logo.png"), "png")
	writeZip(t, filepath.Join(dir, "site", "bundle.zip"), map[string]string{
		"pages/a.html": `<b class="fw-700"></b>`,
		"lists/b.txt":  "mg-0",
		"img/c.png":    "png",
	})

	s := scan.New(nil, nil, zap.NewNop())
	ctx := context.Background()

	t.Run("single file", func(t *testing.T) {
		srcs, err := s.Scan(ctx, filepath.Join(dir, "site", "index.html"))
		if err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		if len(srcs) != 1 || strings.Join(srcs[0].Classes, " ") != "wd-10px d-flex" {
			t.Errorf("Scan() = %+v", srcs)
		}
	})

	t.Run("directory", func(t *testing.T) {
		srcs, err := s.Scan(ctx, filepath.Join(dir, "site"))
		if err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		if len(srcs) != 5 {
			t.Fatalf("Scan() returned %d sources, want 5: %+v", len(srcs), srcs)
		}
		got := scan.Classes(srcs)
		for _, want := range []string{"wd-10px", "d-flex", "p-1rem", "ht-5px", "fw-700", "mg-0"} {
			found := false
			for _, n := range got {
				found = found || n == want
			}
			if !found {
				t.Errorf("class %q missing from %q", want, got)
			}
		}
		if len(got) != 6 {
			t.Errorf("Classes() = %q, duplicates were not removed", got)
		}
	})

	t.Run("bundle", func(t *testing.T) {
		srcs, err := s.Scan(ctx, filepath.Join(dir, "site", "bundle.zip"))
		if err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		if len(srcs) != 2 {
			t.Errorf("Scan() = %+v", srcs)
		}
	})

	t.Run("path in bundle", func(t *testing.T) {
		srcs, err := s.Scan(ctx, filepath.Join(dir, "site", "bundle.zip", "pages"))
		if err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		if len(srcs) != 1 || !strings.HasSuffix(srcs[0].Name, "bundle.zip/pages/a.html") {
			t.Errorf("Scan() = %+v", srcs)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := s.Scan(ctx, filepath.Join(dir, "absent", "index.html")); err == nil {
			t.Error("expected error for absent source")
		}
	})

	t.Run("unsupported file", func(t *testing.T) {
		if _, err := s.Scan(ctx, filepath.Join(dir, "site", "logo.png")); err == nil {
			t.Error("expected error for unsupported file")
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := s.Scan(cctx, filepath.Join(dir, "site")); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}

func TestIsBundle(t *testing.T) {
	dir := t.TempDir()

	fake := filepath.Join(dir, "fake.zip")
	writeFile(t, fake, "not a real zip file")
	if ok, err := scan.IsBundle(fake); err != nil || ok {
		t.Errorf("IsBundle(fake) = %v, %v", ok, err)
	}

	real := filepath.Join(dir, "real.zip")
	writeZip(t, real, map[string]string{"a.txt": "wd-1px"})
	if ok, err := scan.IsBundle(real); err != nil || !ok {
		t.Errorf("IsBundle(real) = %v, %v", ok, err)
	}

	txt := filepath.Join(dir, "list.txt")
	writeFile(t, txt, "wd-1px")
	if ok, err := scan.IsBundle(txt); err != nil || ok {
		t.Errorf("IsBundle(txt) = %v, %v", ok, err)
	}

	if _, err := scan.IsBundle(filepath.Join(dir, "absent.zip")); err == nil {
		t.Error("expected error for absent file")
	}
}
