package build

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"

	"zcss/compiler"
	"zcss/config"
	"zcss/css"
)

// Values are available to header template.
type Values struct {
	App      string
	Version  string
	Compiler string
	Sources  []string
	Classes  int
	Time     time.Time
}

func expandHeader(field string, values Values) (string, error) {
	if len(strings.TrimSpace(field)) == 0 {
		return "", nil
	}

	tmpl, err := template.New(string(config.HeaderTemplateFieldName)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", config.HeaderTemplateFieldName, err)
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", fmt.Errorf("unable to expand template field %s: %w", config.HeaderTemplateFieldName, err)
	}
	return buf.String(), nil
}

// defaultDestination derives stylesheet name from the first source.
func defaultDestination(dir, src string) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return filepath.Join(dir, config.StylesheetFileName(slug.Make(base)))
}

// render produces complete stylesheet: optional header followed by sink
// content, minified if requested.
func render(sink *compiler.MemorySink, header string, minify bool) ([]byte, error) {
	body := new(bytes.Buffer)
	if _, err := sink.WriteTo(body); err != nil {
		return nil, fmt.Errorf("unable to render stylesheet: %w", err)
	}

	data := body.Bytes()
	if minify {
		var err error
		if data, err = css.Minify(data); err != nil {
			return nil, fmt.Errorf("unable to minify stylesheet: %w", err)
		}
	}

	if len(header) == 0 {
		return data, nil
	}
	out := make([]byte, 0, len(header)+1+len(data))
	out = append(out, header...)
	if !strings.HasSuffix(header, "\n") {
		out = append(out, '\n')
	}
	return append(out, data...), nil
}

// writeFile replaces destination so readers never see partially written
// stylesheet.
func writeFile(dst string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("unable to create destination directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return fmt.Errorf("unable to create stylesheet: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("unable to replace stylesheet: %w", err)
	}
	return nil
}
