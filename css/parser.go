package css

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses generated stylesheets back into structured rules. It
// understands exactly what compiler produces: plain rules, width media
// blocks and @import statements.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Items:    make([]StylesheetItem, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err != io.EOF {
				sheet.Warnings = append(sheet.Warnings, "parse error: "+err.Error())
				p.log.Debug("CSS parse error", zap.Error(err))
			}
			return sheet

		case css.BeginAtRuleGrammar:
			atRule := string(data)
			if atRule != "@media" {
				sheet.Warnings = append(sheet.Warnings, "unsupported block @-rule: "+atRule)
				p.skipAtRuleBlock(parser)
				continue
			}
			mq := parseMediaQuery(parser.Values())
			if len(mq.Feature) == 0 {
				sheet.Warnings = append(sheet.Warnings, "unsupported media query: "+mq.Raw)
			}
			rules := p.parseMediaBlockRules(parser, sheet)
			p.log.Debug("Parsed @media block", zap.String("query", mq.Raw), zap.Int("rules", len(rules)))
			sheet.Items = append(sheet.Items, StylesheetItem{
				MediaBlock: &MediaBlock{Query: mq, Rules: rules},
			})

		case css.AtRuleGrammar:
			// Simple @-rule without block (e.g., @import)
			atRule := string(data)
			if atRule != "@import" {
				sheet.Warnings = append(sheet.Warnings, "unsupported @-rule: "+atRule)
				continue
			}
			if url := extractImportURL(parser.Values()); url != "" {
				sheet.Items = append(sheet.Items, StylesheetItem{Import: &url})
				p.log.Debug("Parsed @import", zap.String("url", url))
			}

		case css.BeginRulesetGrammar:
			for _, rule := range p.parseRuleset(parser, data, sheet) {
				sheet.Items = append(sheet.Items, StylesheetItem{Rule: &rule})
			}

		case css.QualifiedRuleGrammar:
			sheet.Warnings = append(sheet.Warnings, "dangling selector: "+string(data))
		}
	}
}

// parseRuleset consumes declarations of the ruleset which has just begun and
// returns one rule per selector in the group.
func (p *Parser) parseRuleset(parser *css.Parser, data []byte, sheet *Stylesheet) []Rule {
	selectors := parseSelectors(data, parser.Values())
	decls := p.parseDeclarations(parser)
	if len(decls) == 0 {
		sheet.Warnings = append(sheet.Warnings, "empty rule: "+strings.Join(selectors, ", "))
	}
	rules := make([]Rule, 0, len(selectors))
	for _, sel := range selectors {
		rules = append(rules, Rule{Selector: sel, Declarations: append(Declarations(nil), decls...)})
	}
	return rules
}

// parseSelectors splits selector group on top level commas. Escaped commas
// are part of identifier tokens and are left alone. Combinators are always
// surrounded by single spaces.
func parseSelectors(data []byte, values []css.Token) []string {
	var (
		selectors []string
		sb        strings.Builder
		spacing   bool
	)
	flush := func() {
		if s := strings.TrimSpace(sb.String()); s != "" {
			selectors = append(selectors, s)
		}
		sb.Reset()
		spacing = false
	}

	tokens := append([]css.Token{{TokenType: css.DelimToken, Data: data}}, values...)
	for _, v := range tokens {
		switch {
		case v.TokenType == css.CommaToken:
			flush()
		case v.TokenType == css.WhitespaceToken:
			spacing = sb.Len() > 0
		case v.TokenType == css.DelimToken && len(v.Data) == 1 && strings.ContainsRune(">+~", rune(v.Data[0])):
			sb.WriteByte(' ')
			sb.Write(v.Data)
			sb.WriteByte(' ')
			spacing = false
		default:
			if spacing && !strings.HasSuffix(sb.String(), " ") {
				sb.WriteByte(' ')
			}
			spacing = false
			sb.Write(v.Data)
		}
	}
	flush()
	return selectors
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser) Declarations {
	var decls Declarations
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return decls

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			decls.Add(string(data), joinTokens(parser.Values()))
		}
	}
}

// joinTokens builds value string collapsing whitespace runs.
func joinTokens(tokens []css.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			continue
		}
		if t.TokenType == css.DelimToken && string(t.Data) == "!" && sb.Len() > 0 {
			// keep importance marker separated the way generator writes it
			sb.WriteByte(' ')
		}
		sb.Write(t.Data)
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// extractImportURL extracts the URL from @import tokens.
// Handles: @import "url"; @import url("url"); @import url(url);
func extractImportURL(tokens []css.Token) string {
	for i, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			s := strings.TrimSuffix(strings.TrimPrefix(string(t.Data), "url("), ")")
			return unquote(strings.TrimSpace(s))
		case css.FunctionToken:
			// url('...') with quoted argument is tokenized as function
			if strings.EqualFold(string(t.Data), "url(") && i+1 < len(tokens) {
				return unquote(string(tokens[i+1].Data))
			}
		}
	}
	return ""
}

// parseMediaQuery recognizes "(max-width: Npx)" and "(min-width: Npx)".
func parseMediaQuery(tokens []css.Token) MediaQuery {
	mq := MediaQuery{Raw: joinTokens(tokens)}

	var feature string
	for _, t := range tokens {
		switch t.TokenType {
		case css.IdentToken:
			switch name := strings.ToLower(string(t.Data)); name {
			case "max-width", "min-width":
				feature = name
			}
		case css.DimensionToken, css.NumberToken:
			if len(feature) == 0 {
				continue
			}
			num := strings.TrimSuffix(strings.ToLower(string(t.Data)), "px")
			if w, err := strconv.Atoi(num); err == nil {
				mq.Feature, mq.Width = feature, w
			}
			return mq
		}
	}
	return mq
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// parseMediaBlockRules parses rules inside an @media block and returns them.
func (p *Parser) parseMediaBlockRules(parser *css.Parser, sheet *Stylesheet) []Rule {
	var rules []Rule
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return rules
		case css.BeginRulesetGrammar:
			rules = append(rules, p.parseRuleset(parser, data, sheet)...)
		}
	}
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
