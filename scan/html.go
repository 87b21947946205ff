package scan

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// decodeHTML converts document to UTF-8. Byte order marks, meta charset
// declarations and valid UTF-8 content win, fallback replaces last resort
// windows-1252 guess.
func decodeHTML(data []byte, fallback encoding.Encoding) io.Reader {
	enc, name, certain := charset.DetermineEncoding(data, "")
	if !certain && name == "windows-1252" && fallback != nil {
		enc = fallback
	}
	if enc == encoding.Nop {
		return bytes.NewReader(data)
	}
	return transform.NewReader(bytes.NewReader(data), enc.NewDecoder())
}

// ExtractHTML returns class names from class attributes of all elements in
// document order.
func ExtractHTML(r io.Reader, fallback encoding.Encoding) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read document: %w", err)
	}
	var names []string
	z := html.NewTokenizer(decodeHTML(data, fallback))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return names, fmt.Errorf("unable to tokenize document: %w", err)
			}
			return names, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			_, more := z.TagName()
			for more {
				var key, val []byte
				key, val, more = z.TagAttr()
				if string(key) == "class" {
					names = append(names, strings.Fields(string(val))...)
				}
			}
		}
	}
}

// ExtractList returns class names from plain list: whitespace separated
// names, lines starting with '#' are comments.
func ExtractList(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read list: %w", err)
	}

	var names []string
	for line := range strings.Lines(string(data)) {
		line = strings.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		names = append(names, strings.Fields(line)...)
	}
	return names, nil
}
