package css

import (
	"bytes"
	"fmt"
	"io"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Minify removes comments and insignificant whitespace from generated
// stylesheet. It is not a general purpose minifier - values are never
// rewritten, only token separators are dropped.
func Minify(data []byte) ([]byte, error) {
	// per the docs in NewInputBytes, leave room for a null byte
	in := make([]byte, len(data), len(data)+1)
	copy(in, data)

	lexer := css.NewLexer(parse.NewInputBytes(in))

	var (
		out     bytes.Buffer
		spacing bool
	)
	for {
		tt, text := lexer.Next()
		switch tt {
		case css.ErrorToken:
			if err := lexer.Err(); err != nil && err != io.EOF {
				return nil, fmt.Errorf("unable to tokenize stylesheet: %w", err)
			}
			return out.Bytes(), nil
		case css.CommentToken:
			continue
		case css.WhitespaceToken:
			spacing = true
			continue
		case css.RightBraceToken:
			// last declaration does not need terminator
			if n := out.Len(); n > 0 && out.Bytes()[n-1] == ';' {
				out.Truncate(n - 1)
			}
		}
		if spacing && out.Len() > 0 && needsSeparator(out.Bytes()[out.Len()-1], text[0]) {
			out.WriteByte(' ')
		}
		spacing = false
		out.Write(text)
	}
}

func needsSeparator(prev, next byte) bool {
	switch prev {
	case '{', '}', ';', ',', '(', ':':
		return false
	}
	switch next {
	case '{', '}', ';', ',', ')':
		return false
	}
	return true
}
