package css

import (
	"fmt"
	"strconv"
	"strings"
)

type treeWriter struct {
	w *strings.Builder
}

func newTreeWriter() *treeWriter {
	return &treeWriter{w: &strings.Builder{}}
}

func (tw treeWriter) String() string {
	return tw.w.String()
}

func (tw treeWriter) line(depth int, format string, args ...any) {
	for range depth {
		tw.w.WriteString("  ")
	}
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw treeWriter) value(depth int, label, value string) {
	for range depth {
		tw.w.WriteString("  ")
	}
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}

// Tree returns indented dump of stylesheet structure, one item per line.
func (s *Stylesheet) Tree() string {
	tw := newTreeWriter()
	tw.line(0, "stylesheet (%d items)", len(s.Items))
	for _, item := range s.Items {
		switch {
		case item.Import != nil:
			tw.value(1, "import", *item.Import)
		case item.Rule != nil:
			treeRule(tw, 1, item.Rule)
		case item.MediaBlock != nil:
			mb := item.MediaBlock
			if len(mb.Query.Feature) > 0 {
				tw.line(1, "media %s %dpx", mb.Query.Feature, mb.Query.Width)
			} else {
				tw.value(1, "media", mb.Query.Raw)
			}
			for i := range mb.Rules {
				treeRule(tw, 2, &mb.Rules[i])
			}
		}
	}
	for _, w := range s.Warnings {
		tw.value(1, "warning", w)
	}
	return tw.String()
}

func treeRule(tw *treeWriter, depth int, r *Rule) {
	tw.line(depth, "rule %s", r.Selector)
	for _, d := range r.Declarations {
		tw.value(depth+1, d.Property, d.Value)
	}
}
