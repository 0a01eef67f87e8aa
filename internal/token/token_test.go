package token_test

import (
	"testing"

	"github.com/Emir2099/Ardent-sub000/internal/token"
)

func TestKeywordsMapEachPhraseToOneType(t *testing.T) {
	// "is of" and "is equal to"/"is greater than" all start with "is"; the
	// lexer relies on a longest-match scan, but the table itself need not
	// be pre-sorted (lexer.sortedKeywords does that) — this just confirms
	// every keyword phrase is present and maps to a distinct, named Type.
	seen := map[string]token.Type{}
	for _, kw := range token.Keywords {
		if other, ok := seen[kw.Phrase]; ok && other != kw.Type {
			t.Fatalf("phrase %q maps to two different types", kw.Phrase)
		}
		seen[kw.Phrase] = kw.Type
	}
	if _, ok := seen["is of"]; !ok {
		t.Fatalf("expected \"is of\" in the keyword table")
	}
	if _, ok := seen["Let it be proclaimed:"]; !ok {
		t.Fatalf("expected \"Let it be proclaimed:\" in the keyword table")
	}
}

func TestTypeStringFallsBackToKeywordPhrase(t *testing.T) {
	if got := token.KW_IS_OF.String(); got != "is of" {
		t.Errorf("expected %q, got %q", "is of", got)
	}
}

func TestTypeStringBuiltinKinds(t *testing.T) {
	cases := map[token.Type]string{
		token.EOF:    "end of scroll",
		token.IDENT:  "identifier",
		token.NUMBER: "number",
		token.STRING: "phrase",
		token.LBRACE: "{",
		token.RBRACE: "}",
	}
	for typ, want := range cases {
		if got := typ.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", typ, got, want)
		}
	}
}

func TestTokenStringIsItsLexeme(t *testing.T) {
	tok := token.Token{Type: token.IDENT, Lexeme: "x", Line: 1}
	if tok.String() != "x" {
		t.Errorf("expected token.String() to return the lexeme, got %q", tok.String())
	}
}
