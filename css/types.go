package css

import (
	"fmt"
	"io"
	"strings"
)

// MediaQuery represents parsed width media query condition, the only kind
// produced by the compiler.
type MediaQuery struct {
	Raw     string // Original media query string
	Feature string // "max-width" or "min-width", empty if query is not a width query
	Width   int    // Width in pixels
}

// Matches returns true if the query applies to the viewport of the given width.
func (mq MediaQuery) Matches(viewport int) bool {
	switch mq.Feature {
	case "max-width":
		return viewport <= mq.Width
	case "min-width":
		return viewport >= mq.Width
	default:
		return false
	}
}

// Rule represents a single CSS rule (selector + declarations).
type Rule struct {
	Selector     string
	Declarations Declarations
}

// MediaBlock represents a @media block with its query and nested rules.
type MediaBlock struct {
	Query MediaQuery
	Rules []Rule
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one of Rule, MediaBlock, or Import is non-nil.
type StylesheetItem struct {
	Rule       *Rule       // A plain rule (selector + properties)
	MediaBlock *MediaBlock // A @media block containing nested rules
	Import     *string     // An @import URL
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Items    []StylesheetItem // All top-level items in source order
	Warnings []string         // Warnings for unsupported features
}

// Imports returns all @import URLs from the stylesheet in source order.
func (s *Stylesheet) Imports() []string {
	var urls []string
	for _, item := range s.Items {
		if item.Import != nil {
			urls = append(urls, *item.Import)
		}
	}
	return urls
}

// Rules returns all top-level rules in source order.
func (s *Stylesheet) Rules() []Rule {
	var rules []Rule
	for _, item := range s.Items {
		if item.Rule != nil {
			rules = append(rules, *item.Rule)
		}
	}
	return rules
}

// MediaBlocks returns all @media blocks in source order.
func (s *Stylesheet) MediaBlocks() []MediaBlock {
	var blocks []MediaBlock
	for _, item := range s.Items {
		if item.MediaBlock != nil {
			blocks = append(blocks, *item.MediaBlock)
		}
	}
	return blocks
}

// RulesBySelector returns all top-level rules matching the given selector string.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, item := range s.Items {
		if item.Rule != nil && item.Rule.Selector == selector {
			matches = append(matches, *item.Rule)
		}
	}
	return matches
}

// Effective returns value of the property for selector as it would be
// resolved at the given viewport width: rules are applied in source order,
// media blocks only when they match and important values are never replaced
// by normal ones.
func (s *Stylesheet) Effective(selector, property string, viewport int) (string, bool) {
	var (
		value     string
		found     bool
		important bool
	)
	apply := func(r Rule) {
		if r.Selector != selector {
			return
		}
		v, ok := r.Declarations.Get(property)
		if !ok {
			return
		}
		imp := strings.HasSuffix(v, importantMark)
		if important && !imp {
			return
		}
		value, found, important = strings.TrimSuffix(v, importantMark), true, imp
	}
	for _, item := range s.Items {
		switch {
		case item.Rule != nil:
			apply(*item.Rule)
		case item.MediaBlock != nil:
			if !item.MediaBlock.Query.Matches(viewport) {
				continue
			}
			for _, r := range item.MediaBlock.Rules {
				apply(r)
			}
		}
	}
	return value, found
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, item := range s.Items {
		var n int
		var err error

		switch {
		case item.Import != nil:
			n, err = fmt.Fprintf(w, "@import url('%s');\n", *item.Import)
		case item.MediaBlock != nil:
			n, err = writeMediaBlock(w, item.MediaBlock)
		case item.Rule != nil:
			n, err = io.WriteString(w, BuildSelectorRule(item.Rule.Declarations, item.Rule.Selector))
		}

		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeMediaBlock writes an @media block to w.
func writeMediaBlock(w io.Writer, mb *MediaBlock) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "@media %s {\n", mb.Query.Raw)
	total += n
	if err != nil {
		return total, err
	}
	for _, rule := range mb.Rules {
		n, err = io.WriteString(w, "  "+BuildSelectorRule(rule.Declarations, rule.Selector))
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}
