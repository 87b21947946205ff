// Package scan collects class names from templates: HTML documents, plain
// class lists and zip bundles of those.
package scan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"zcss/archive"
)

// Kind of the template source.
type Kind int

const (
	KindUnknown Kind = iota
	KindHTML
	KindList
)

// KindOf detects source kind by file name.
func KindOf(name string) Kind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm", ".xhtml", ".tmpl", ".gohtml":
		return KindHTML
	case ".txt", ".classes", ".lst":
		return KindList
	}
	return KindUnknown
}

// Source is a single scanned template.
type Source struct {
	// Name is the path of the file, for files in bundles it has form
	// "archive.zip/path/in/archive".
	Name    string
	Classes []string
}

// Scanner visits files, directories and zip bundles.
type Scanner struct {
	// fallback encoding for HTML documents without charset declaration
	fallback encoding.Encoding
	// forced code page for non UTF-8 file names in bundles
	codePage encoding.Encoding
	log      *zap.Logger
}

func New(fallback, codePage encoding.Encoding, log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{fallback: fallback, codePage: codePage, log: log.Named("scan")}
}

// Scan processes path which may point to a template file, a directory
// (recursively, symbolic links are not followed), a zip bundle or a path
// inside zip bundle: "bundle.zip/pages". Sources are returned in the order
// they were visited. Unreadable files inside directories and bundles are
// logged and skipped.
func (s *Scanner) Scan(ctx context.Context, path string) ([]Source, error) {
	var head, tail string
	for head = path; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				return nil, fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(path, head))
			}
			return s.scanDir(ctx, head)
		}
		if !fi.Mode().IsRegular() {
			return nil, fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(path, head))
		}

		bundle, err := IsBundle(head)
		if err != nil {
			return nil, fmt.Errorf("unable to check archive type: %w", err)
		}
		if bundle {
			prefix := strings.TrimPrefix(strings.TrimPrefix(path, head), string(filepath.Separator))
			return s.scanBundle(ctx, head, filepath.ToSlash(prefix))
		}
		if len(tail) != 0 {
			break
		}

		src, err := s.scanFile(head)
		if err != nil {
			return nil, err
		}
		return []Source{src}, nil
	}
	return nil, fmt.Errorf("input source was not found (%s)", path)
}

// Extract returns class names from template content according to its kind.
func (s *Scanner) Extract(kind Kind, r io.Reader) ([]string, error) {
	switch kind {
	case KindHTML:
		return ExtractHTML(r, s.fallback)
	case KindList:
		return ExtractList(r)
	}
	return nil, errors.New("unsupported template kind")
}

func (s *Scanner) scanFile(path string) (Source, error) {
	kind := KindOf(path)
	if kind == KindUnknown {
		return Source{}, fmt.Errorf("input was not recognized as template (%s)", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return Source{}, err
	}
	defer f.Close()

	names, err := s.Extract(kind, f)
	if err != nil {
		return Source{}, fmt.Errorf("unable to scan %s: %w", path, err)
	}
	s.log.Debug("Scanned template", zap.String("file", path), zap.Int("classes", len(names)))
	return Source{Name: path, Classes: names}, nil
}

func (s *Scanner) scanDir(ctx context.Context, dir string) ([]Source, error) {
	var sources []Source
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			s.log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		bundle, err := IsBundle(path)
		if err != nil {
			s.log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if bundle {
			srcs, err := s.scanBundle(ctx, path, "")
			if err != nil {
				if ctx.Err() != nil {
					return err
				}
				s.log.Error("Unable to scan archive", zap.String("file", path), zap.Error(err))
				return nil
			}
			sources = append(sources, srcs...)
			return nil
		}

		if KindOf(path) == KindUnknown {
			s.log.Debug("Skipping file, not recognized as template or archive", zap.String("file", path))
			return nil
		}
		src, err := s.scanFile(path)
		if err != nil {
			s.log.Error("Unable to scan file", zap.String("file", path), zap.Error(err))
			return nil
		}
		sources = append(sources, src)
		return nil
	})
	return sources, err
}

func (s *Scanner) scanBundle(ctx context.Context, path, prefix string) ([]Source, error) {
	var sources []Source
	opts := archive.Options{
		Prefix:   prefix,
		CodePage: s.codePage,
		Match: func(name string) bool {
			return KindOf(name) != KindUnknown
		},
	}
	err := archive.Walk(ctx, path, opts, func(e archive.Entry) error {
		data, err := archive.ReadEntry(e)
		if err != nil {
			s.log.Error("Unable to read file in archive", zap.String("archive", e.Archive), zap.String("file", e.Name), zap.Error(err))
			return nil
		}
		names, err := s.Extract(KindOf(e.Name), bytes.NewReader(data))
		if err != nil {
			s.log.Error("Unable to scan file in archive", zap.String("archive", e.Archive), zap.String("file", e.Name), zap.Error(err))
			return nil
		}
		sources = append(sources, Source{Name: filepath.ToSlash(filepath.Join(path, e.Name)), Classes: names})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		s.log.Debug("Nothing to scan", zap.String("archive", path), zap.String("prefix", prefix))
	}
	return sources, nil
}

// IsBundle reports whether file is a zip archive. Both extension and content
// are checked.
func IsBundle(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	// filetype needs only header
	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	return filetype.Is(head[:n], "zip"), nil
}

// Classes flattens sources into a single list keeping first occurrence of
// every name.
func Classes(sources []Source) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, src := range sources {
		for _, n := range src.Classes {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			names = append(names, n)
		}
	}
	return names
}
