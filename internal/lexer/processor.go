package lexer

import (
	"github.com/pycatalyst/catalyst/internal/diagnostics"
	"github.com/pycatalyst/catalyst/internal/pipeline"
	"github.com/pycatalyst/catalyst/internal/token"
)

// LexerProcessor is the pipeline stage that turns source text into tokens.
type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.Failed() {
		return ctx
	}

	l := New(ctx.SourceCode)
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			msg := tok.Literal
			if msg == "" || msg == tok.Lexeme {
				msg = "unexpected character " + "'" + tok.Lexeme + "'"
			}
			ctx.AddError(diagnostics.NewError(diagnostics.ErrL001, tok, "%s", msg))
			return ctx
		}
		ctx.Tokens = append(ctx.Tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return ctx
}
