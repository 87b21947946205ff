// Package archive builds Walk abstraction on top of "archive/zip" for
// template bundles.
package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"golang.org/x/text/encoding"
)

// Entry is a regular file in a bundle selected by Walk.
type Entry struct {
	// Archive is the path to archive passed to Walk.
	Archive string
	// Name is the entry path, decoded to UTF-8 when code page was forced.
	Name string
	File *zip.File
}

// Options select entries to be visited.
type Options struct {
	// Prefix limits walk to entries under path inside archive, empty means all.
	Prefix string
	// Match is called with decoded entry name, nil accepts everything.
	Match func(name string) bool
	// CodePage is used to decode entry names not marked as UTF-8. Zip
	// "standard" does not define file name encoding, old bundles produced on
	// Windows often use OEM code pages.
	CodePage encoding.Encoding
}

// WalkFunc is the type of the function called for each entry visited by
// Walk. If an error is returned, processing stops.
type WalkFunc func(e Entry) error

// Walk walks all files in the archive which satisfy options, calling walkFn
// for each item in archive order. Entries with path traversal components
// ("..") or absolute paths make Walk fail to prevent Zip Slip attacks.
func Walk(ctx context.Context, archive string, opts Options, walkFn WalkFunc) error {

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := decodeName(f, opts.CodePage)
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(name, opts.Prefix) {
			continue
		}
		if opts.Match != nil && !opts.Match(name) {
			continue
		}
		if err := walkFn(Entry{Archive: archive, Name: name, File: f}); err != nil {
			return err
		}
	}
	return nil
}

// ReadEntry returns complete content of the entry.
func ReadEntry(e Entry) ([]byte, error) {
	rc, err := e.File.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to open %s in %s: %w", e.Name, e.Archive, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s in %s: %w", e.Name, e.Archive, err)
	}
	return data, nil
}

func decodeName(f *zip.File, cp encoding.Encoding) string {
	if !f.NonUTF8 || cp == nil {
		return f.Name
	}
	if n, err := cp.NewDecoder().String(f.Name); err == nil {
		return n
	}
	return f.Name
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
