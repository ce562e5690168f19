package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsavage/depict/internal/token"
)

func TestKindString(t *testing.T) {
	tests := map[token.Kind]string{
		token.ERROR:   "ERROR",
		token.EOF:     "EOF",
		token.NEWLINE: "NEWLINE",
		token.IDENT:   "IDENT",
		token.Colon:   ":",
		token.Comma:   ",",
		token.Slash:   "/",
		token.Pipe:    "|",
	}
	for k, want := range tests {
		assert.Equal(t, want, k.String())
	}
}

func TestIsSpecial(t *testing.T) {
	for _, r := range []rune{':', ',', '/', '|', '%'} {
		assert.Truef(t, token.IsSpecial(r), "%q should be special", r)
	}
	for _, r := range []rune{'a', 'Z', '_', '-'} {
		assert.Falsef(t, token.IsSpecial(r), "%q should not be special", r)
	}
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "hello", token.Token{Type: token.IDENT, Literal: "hello"}.String())
	assert.Equal(t, ":", token.Token{Type: token.Colon}.String())
}
