package compiler

import (
	"io"
	"slices"
	"sort"
	"strings"
	"sync"
)

// StyleSink receives generated CSS. Every method appends text to a separate
// segment of the resulting stylesheet, implementation decides how segments are
// stored and assembled.
type StyleSink interface {
	// AppendBase adds unconditional rule.
	AppendBase(rule string)
	// AppendForPartition adds media wrapped rule to the partition for width.
	AppendForPartition(width int, rule string)
	// AppendVariables adds custom property declaration block.
	AppendVariables(rule string)
	// AppendFontImport adds @import statement.
	AppendFontImport(rule string)
	// SetTransformVariables sets transform custom property defaults.
	SetTransformVariables(block string)
	// ReplaceTransformRule replaces consolidated transform rule.
	ReplaceTransformRule(rule string)
}

// MemorySink keeps generated CSS in memory. Partitions are ordered by width
// and rendered widest first, so rules for narrower viewports come later and
// win by source order.
type MemorySink struct {
	mu sync.Mutex

	imports       strings.Builder
	variables     strings.Builder
	transformVars string
	transformRule string
	base          strings.Builder

	widths     []int // ascending
	partitions map[int]*strings.Builder
}

// NewMemorySink creates an empty sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{partitions: make(map[int]*strings.Builder)}
}

func (s *MemorySink) AppendBase(rule string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.base.WriteString(rule)
}

func (s *MemorySink) AppendForPartition(width int, rule string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.partition(width).WriteString(rule)
}

func (s *MemorySink) AppendVariables(rule string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.variables.WriteString(rule)
}

func (s *MemorySink) AppendFontImport(rule string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.imports.WriteString(rule)
}

func (s *MemorySink) SetTransformVariables(block string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transformVars = block
}

func (s *MemorySink) ReplaceTransformRule(rule string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transformRule = rule
}

// partition returns existing partition or creates a new one keeping widths
// sorted. Must be called with lock held.
func (s *MemorySink) partition(width int) *strings.Builder {
	if p, ok := s.partitions[width]; ok {
		return p
	}
	i := sort.SearchInts(s.widths, width)
	s.widths = slices.Insert(s.widths, i, width)
	p := &strings.Builder{}
	s.partitions[width] = p
	return p
}

// Widths returns known partition widths in ascending order.
func (s *MemorySink) Widths() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.widths)
}

// Partition returns content of the partition for width.
func (s *MemorySink) Partition(width int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.partitions[width]; ok {
		return p.String()
	}
	return ""
}

// Base returns unconditional rules.
func (s *MemorySink) Base() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.base.String()
}

// Variables returns custom property blocks.
func (s *MemorySink) Variables() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.variables.String()
}

// FontImports returns @import statements.
func (s *MemorySink) FontImports() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.imports.String()
}

// TransformRule returns current consolidated transform rule.
func (s *MemorySink) TransformRule() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transformRule
}

// WriteTo renders complete stylesheet: imports, variables, transform
// defaults, transform rule, base rules and then partitions from the widest to
// the narrowest.
func (s *MemorySink) WriteTo(w io.Writer) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	segments := []string{
		s.imports.String(),
		s.variables.String(),
		s.transformVars,
		s.transformRule,
		s.base.String(),
	}
	for i := len(s.widths) - 1; i >= 0; i-- {
		segments = append(segments, s.partitions[s.widths[i]].String())
	}

	var total int64
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		n, err := io.WriteString(w, seg)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *MemorySink) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}
