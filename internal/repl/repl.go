// Package repl implements the interactive session: each accepted input is
// appended to the session's source and the whole program is retranslated,
// so the printed C++ always reflects every statement entered so far. An
// input that fails to translate is reported and dropped without touching
// the session state.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/pycatalyst/catalyst/internal/config"
	"github.com/pycatalyst/catalyst/internal/diagnostics"
	"github.com/pycatalyst/catalyst/internal/lexer"
	"github.com/pycatalyst/catalyst/internal/parser"
	"github.com/pycatalyst/catalyst/internal/pipeline"
	"github.com/pycatalyst/catalyst/internal/translator"
)

const (
	primaryPrompt   = ">>> "
	secondaryPrompt = "... "
)

// Session is one interactive translation session.
type Session struct {
	cfg    *config.Config
	out    io.Writer
	errOut io.Writer
	color  bool

	source strings.Builder
}

func NewSession(cfg *config.Config, out, errOut io.Writer, color bool) *Session {
	return &Session{cfg: cfg, out: out, errOut: errOut, color: color}
}

// Run reads inputs until end of file or interrupt.
func (s *Session) Run() error {
	rl, err := readline.New(primaryPrompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		input, err := s.readInput(rl)
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		s.accept(input)
	}
}

// readInput reads one logical input: a single line, or a block statement
// followed by its indented suite, terminated by a blank line.
func (s *Session) readInput(rl *readline.Instance) (string, error) {
	rl.SetPrompt(primaryPrompt)
	line, err := rl.Readline()
	if err != nil {
		return "", err
	}
	if !opensBlock(line) {
		return line + "\n", nil
	}

	var b strings.Builder
	b.WriteString(line + "\n")
	rl.SetPrompt(secondaryPrompt)
	for {
		next, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			break
		}
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(next) == "" {
			break
		}
		b.WriteString(next + "\n")
	}
	return b.String(), nil
}

// opensBlock reports whether the line starts a compound statement, i.e.
// ends with a colon outside of any string or comment.
func opensBlock(line string) bool {
	code := line
	if i := strings.IndexByte(code, '#'); i >= 0 {
		code = code[:i]
	}
	return strings.HasSuffix(strings.TrimRight(code, " \t"), ":")
}

// accept retranslates the session source extended with input, keeping the
// input only when the whole program still translates.
func (s *Session) accept(input string) {
	candidate := s.source.String() + input

	p := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&translator.TranslatorProcessor{},
		&translator.RenderProcessor{},
	)
	ctx := p.Run(&pipeline.Context{
		FilePath:   "<repl>",
		SourceCode: candidate,
		Config:     s.cfg,
	})

	if ctx.Failed() {
		diagnostics.Format(s.errOut, ctx.Errors, s.color)
		return
	}
	s.source.Reset()
	s.source.WriteString(candidate)
	fmt.Fprint(s.out, ctx.Output)
}
