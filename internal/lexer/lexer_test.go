package lexer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsavage/depict/internal/lexer"
	"github.com/jsavage/depict/internal/token"
)

func scanAll(t *testing.T, in string) []token.Token {
	t.Helper()
	lx, err := lexer.New(strings.NewReader(in))
	require.NoError(t, err)

	var toks []token.Token
	for {
		tok, err := lx.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func TestLexer(t *testing.T) {
	tests := map[string]struct {
		in   string
		want []token.Kind
	}{
		"Empty": {
			in:   "",
			want: []token.Kind{token.EOF},
		},
		"OnlyWhitespace": {
			in:   "  \t  \n\t\t",
			want: []token.Kind{token.NEWLINE, token.EOF},
		},
		"SingleStatement": {
			in:   "A B: ping",
			want: []token.Kind{token.IDENT, token.IDENT, token.Colon, token.IDENT, token.EOF},
		},
		"ActionListWithResponse": {
			in:   "A B: ping / pong, done",
			want: []token.Kind{token.IDENT, token.IDENT, token.Colon, token.IDENT, token.Slash, token.IDENT, token.Comma, token.IDENT, token.EOF},
		},
		"CommentToEndOfLine": {
			in:   "A B: ping % a comment\nC D: pong",
			want: []token.Kind{token.IDENT, token.IDENT, token.Colon, token.IDENT, token.NEWLINE, token.IDENT, token.IDENT, token.Colon, token.IDENT, token.EOF},
		},
		"MultiWordLabel": {
			in:   "A B: say hello there",
			want: []token.Kind{token.IDENT, token.IDENT, token.Colon, token.IDENT, token.IDENT, token.IDENT, token.EOF},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			toks := scanAll(t, test.in)
			got := make([]token.Kind, len(toks))
			for i, tok := range toks {
				got[i] = tok.Type
			}
			assert.Equal(t, test.want, got)
		})
	}
}

func TestLexerIndentTracksTabWidth(t *testing.T) {
	lx, err := lexer.New(strings.NewReader("A: x\n\tB: y\n        C: z"))
	require.NoError(t, err)

	var lineIndents []int
	atLineStart := true
	for {
		tok, err := lx.Next()
		require.NoError(t, err)
		if tok.Type == token.EOF {
			break
		}
		if atLineStart && tok.Type == token.IDENT {
			lineIndents = append(lineIndents, tok.Start.Indent)
			atLineStart = false
		}
		if tok.Type == token.NEWLINE {
			atLineStart = true
		}
	}

	require.Len(t, lineIndents, 3)
	assert.Equal(t, 0, lineIndents[0])
	assert.Equal(t, 8, lineIndents[1]) // one tab expands to the next multiple of 8
	assert.Equal(t, 8, lineIndents[2]) // eight spaces expands to the same column
}

func TestLexerRejectsUnscannableInput(t *testing.T) {
	// a vertical tab is whitespace but neither skipped nor a token
	lx, err := lexer.New(strings.NewReader("A: \v"))
	require.NoError(t, err)

	for {
		tok, err := lx.Next()
		if err != nil {
			var scanErr *lexer.ScanError
			require.ErrorAs(t, err, &scanErr)
			return
		}
		require.NotEqual(t, token.EOF, tok.Type, "expected a scan error before EOF")
	}
}
