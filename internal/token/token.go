package token

// Type identifies the lexical class of a token.
type Type string

// Token is a single lexical unit of a source file. Lexeme is the raw text as
// it appeared in the source; Literal is the decoded value for literals
// (e.g. the unquoted string contents).
type Token struct {
	Type    Type
	Lexeme  string
	Literal string
	Line    int
	Column  int
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Layout tokens. NEWLINE terminates a logical line; INDENT/DEDENT are
	// synthesized from leading whitespace changes.
	NEWLINE = "NEWLINE"
	INDENT  = "INDENT"
	DEDENT  = "DEDENT"

	// Identifiers and literals
	IDENT  = "IDENT"
	INT    = "INT"
	FLOAT  = "FLOAT"
	STRING = "STRING"

	// Operators
	ASSIGN          = "="
	PLUS            = "+"
	MINUS           = "-"
	ASTERISK        = "*"
	SLASH           = "/"
	DOUBLE_SLASH    = "//"
	PERCENT         = "%"
	POWER           = "**"
	PLUS_ASSIGN     = "+="
	MINUS_ASSIGN    = "-="
	ASTERISK_ASSIGN = "*="
	SLASH_ASSIGN    = "/="

	EQ     = "=="
	NOT_EQ = "!="
	LT     = "<"
	GT     = ">"
	LTE    = "<="
	GTE    = ">="

	// Delimiters
	COMMA    = ","
	COLON    = ":"
	DOT      = "."
	AT       = "@"
	LPAREN   = "("
	RPAREN   = ")"
	LBRACKET = "["
	RBRACKET = "]"
	LBRACE   = "{"
	RBRACE   = "}"

	// Keywords
	DEF      = "DEF"
	CLASS    = "CLASS"
	RETURN   = "RETURN"
	IF       = "IF"
	ELIF     = "ELIF"
	ELSE     = "ELSE"
	WHILE    = "WHILE"
	FOR      = "FOR"
	IN       = "IN"
	IS       = "IS"
	BREAK    = "BREAK"
	CONTINUE = "CONTINUE"
	PASS     = "PASS"
	IMPORT   = "IMPORT"
	FROM     = "FROM"
	LAMBDA   = "LAMBDA"
	YIELD    = "YIELD"
	NOT      = "NOT"
	AND      = "AND"
	OR       = "OR"
	TRUE     = "TRUE"
	FALSE    = "FALSE"
	NONE     = "NONE"
)

var keywords = map[string]Type{
	"def":      DEF,
	"class":    CLASS,
	"return":   RETURN,
	"if":       IF,
	"elif":     ELIF,
	"else":     ELSE,
	"while":    WHILE,
	"for":      FOR,
	"in":       IN,
	"is":       IS,
	"break":    BREAK,
	"continue": CONTINUE,
	"pass":     PASS,
	"import":   IMPORT,
	"from":     FROM,
	"lambda":   LAMBDA,
	"yield":    YIELD,
	"not":      NOT,
	"and":      AND,
	"or":       OR,
	"True":     TRUE,
	"False":    FALSE,
	"None":     NONE,
}

// LookupIdent returns the keyword type for name, or IDENT.
func LookupIdent(name string) Type {
	if t, ok := keywords[name]; ok {
		return t
	}
	return IDENT
}
