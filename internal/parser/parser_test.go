package parser_test

import (
	"testing"

	"github.com/pycatalyst/catalyst/internal/ast"
	"github.com/pycatalyst/catalyst/internal/lexer"
	"github.com/pycatalyst/catalyst/internal/parser"
	"github.com/pycatalyst/catalyst/internal/token"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	l := lexer.New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			t.Fatalf("illegal token %q: %s", tok.Lexeme, tok.Literal)
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	p := parser.New(toks)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	return program
}

func parseFails(t *testing.T, input string) {
	t.Helper()
	l := lexer.New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			return // lexing already rejects it
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	p := parser.New(toks)
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected parse errors for %q", input)
	}
}

func firstStatement(t *testing.T, input string) ast.Statement {
	t.Helper()
	program := parse(t, input)
	if len(program.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(program.Statements))
	}
	return program.Statements[0]
}

func TestAssignStatement(t *testing.T) {
	stmt, ok := firstStatement(t, "x = 5\n").(*ast.AssignStatement)
	if !ok {
		t.Fatal("not an AssignStatement")
	}
	target, ok := stmt.Target.(*ast.Identifier)
	if !ok || target.Value != "x" {
		t.Fatalf("target = %v, want identifier x", stmt.Target)
	}
	value, ok := stmt.Value.(*ast.IntegerLiteral)
	if !ok || value.Value != 5 {
		t.Fatalf("value = %v, want 5", stmt.Value)
	}
}

func TestAugAssignStatement(t *testing.T) {
	tests := []struct {
		input string
		op    string
	}{
		{"x += 1\n", "+"},
		{"x -= 1\n", "-"},
		{"x *= 2\n", "*"},
		{"x /= 2\n", "/"},
	}
	for _, tc := range tests {
		stmt, ok := firstStatement(t, tc.input).(*ast.AugAssignStatement)
		if !ok {
			t.Fatalf("%q: not an AugAssignStatement", tc.input)
		}
		if stmt.Operator != tc.op {
			t.Errorf("%q: operator = %q, want %q", tc.input, stmt.Operator, tc.op)
		}
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3\n", "(1 + (2 * 3))"},
		{"(1 + 2) * 3\n", "((1 + 2) * 3)"},
		{"-a * b\n", "((-a) * b)"},
		{"not a and b\n", "((not a) and b)"},
		{"a and b or c\n", "((a and b) or c)"},
		{"a < b == c\n", "((a < b) == c)"},
		{"2 ** 3 ** 2\n", "(2 ** (3 ** 2))"},
		{"a + b % c\n", "(a + (b % c))"},
		{"a // b // c\n", "((a // b) // c)"},
		{"a + f(b) * c\n", "(a + (f(b) * c))"},
		{"-x ** 2\n", "(-(x ** 2))"},
	}
	for _, tc := range tests {
		stmt, ok := firstStatement(t, tc.input).(*ast.ExpressionStatement)
		if !ok {
			t.Fatalf("%q: not an ExpressionStatement", tc.input)
		}
		if got := sprintExpr(stmt.Expression); got != tc.want {
			t.Errorf("%q: got %s, want %s", tc.input, got, tc.want)
		}
	}
}

// sprintExpr renders an expression fully parenthesized for precedence
// assertions.
func sprintExpr(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.Identifier:
		return n.Value
	case *ast.IntegerLiteral, *ast.FloatLiteral:
		return n.TokenLiteral()
	case *ast.PrefixExpression:
		if n.Operator == "not" {
			return "(not " + sprintExpr(n.Right) + ")"
		}
		return "(" + n.Operator + sprintExpr(n.Right) + ")"
	case *ast.InfixExpression:
		return "(" + sprintExpr(n.Left) + " " + n.Operator + " " + sprintExpr(n.Right) + ")"
	case *ast.CallExpression:
		out := sprintExpr(n.Function) + "("
		for i, a := range n.Arguments {
			if i > 0 {
				out += ", "
			}
			out += sprintExpr(a)
		}
		return out + ")"
	}
	return "?"
}

func TestFunctionStatement(t *testing.T) {
	input := "def add(a, b=2):\n    return a + b\n"
	fn, ok := firstStatement(t, input).(*ast.FunctionStatement)
	if !ok {
		t.Fatal("not a FunctionStatement")
	}
	if fn.Name.Value != "add" {
		t.Errorf("name = %q, want add", fn.Name.Value)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("got %d params, want 2", len(fn.Params))
	}
	if fn.Params[0].Name != "a" || fn.Params[0].Default != nil {
		t.Errorf("param 0 = %v", fn.Params[0])
	}
	if fn.Params[1].Name != "b" || fn.Params[1].Default == nil {
		t.Errorf("param 1 should carry a default")
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("got %d body statements, want 1", len(fn.Body.Statements))
	}
	if _, ok := fn.Body.Statements[0].(*ast.ReturnStatement); !ok {
		t.Error("body statement is not a return")
	}
}

func TestDecoratedFunctionIsMarked(t *testing.T) {
	input := "@memo\ndef f():\n    pass\n"
	fn, ok := firstStatement(t, input).(*ast.FunctionStatement)
	if !ok {
		t.Fatal("not a FunctionStatement")
	}
	if !fn.Decorated {
		t.Error("Decorated flag not set")
	}
}

func TestClassStatement(t *testing.T) {
	input := "class Dog(Animal):\n    def __init__(self, name):\n        self.name = name\n    def bark(self):\n        return self.name\n"
	cls, ok := firstStatement(t, input).(*ast.ClassStatement)
	if !ok {
		t.Fatal("not a ClassStatement")
	}
	if cls.Name.Value != "Dog" {
		t.Errorf("name = %q, want Dog", cls.Name.Value)
	}
	if len(cls.Bases) != 1 || cls.Bases[0].Value != "Animal" {
		t.Fatalf("bases = %v, want [Animal]", cls.Bases)
	}
	if len(cls.Body.Statements) != 2 {
		t.Fatalf("got %d methods, want 2", len(cls.Body.Statements))
	}
	init, ok := cls.Body.Statements[0].(*ast.FunctionStatement)
	if !ok || init.Name.Value != "__init__" {
		t.Fatalf("first method = %v, want __init__", cls.Body.Statements[0])
	}
	assign, ok := init.Body.Statements[0].(*ast.AssignStatement)
	if !ok {
		t.Fatal("initializer body is not an assignment")
	}
	if _, ok := assign.Target.(*ast.AttributeExpression); !ok {
		t.Error("assignment target is not a self attribute")
	}
}

func TestIfElifElseChain(t *testing.T) {
	input := "if a:\n    pass\nelif b:\n    pass\nelse:\n    pass\n"
	stmt, ok := firstStatement(t, input).(*ast.IfStatement)
	if !ok {
		t.Fatal("not an IfStatement")
	}
	elif, ok := stmt.Alternative.(*ast.IfStatement)
	if !ok {
		t.Fatalf("alternative = %T, want nested IfStatement", stmt.Alternative)
	}
	if _, ok := elif.Alternative.(*ast.BlockStatement); !ok {
		t.Fatalf("final alternative = %T, want BlockStatement", elif.Alternative)
	}
}

func TestForAndWhile(t *testing.T) {
	program := parse(t, "for i in range(3):\n    pass\nwhile True:\n    break\n")
	if len(program.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(program.Statements))
	}
	loop, ok := program.Statements[0].(*ast.ForStatement)
	if !ok {
		t.Fatal("not a ForStatement")
	}
	if loop.Var.Value != "i" {
		t.Errorf("loop var = %q, want i", loop.Var.Value)
	}
	if _, ok := loop.Iterable.(*ast.CallExpression); !ok {
		t.Errorf("iterable = %T, want call", loop.Iterable)
	}
	if _, ok := program.Statements[1].(*ast.WhileStatement); !ok {
		t.Fatal("not a WhileStatement")
	}
}

func TestCollectionLiterals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, e ast.Expression)
	}{
		{"list", "[1, 2, 3]\n", func(t *testing.T, e ast.Expression) {
			lst, ok := e.(*ast.ListLiteral)
			if !ok || len(lst.Elements) != 3 {
				t.Fatalf("got %T, want 3-element list", e)
			}
		}},
		{"empty_list", "[]\n", func(t *testing.T, e ast.Expression) {
			lst, ok := e.(*ast.ListLiteral)
			if !ok || len(lst.Elements) != 0 {
				t.Fatalf("got %T, want empty list", e)
			}
		}},
		{"tuple", "(1, 2)\n", func(t *testing.T, e ast.Expression) {
			tup, ok := e.(*ast.TupleLiteral)
			if !ok || len(tup.Elements) != 2 {
				t.Fatalf("got %T, want 2-element tuple", e)
			}
		}},
		{"grouped_is_not_tuple", "(1)\n", func(t *testing.T, e ast.Expression) {
			if _, ok := e.(*ast.IntegerLiteral); !ok {
				t.Fatalf("got %T, want plain integer", e)
			}
		}},
		{"trailing_comma_tuple", "(1, 2,)\n", func(t *testing.T, e ast.Expression) {
			tup, ok := e.(*ast.TupleLiteral)
			if !ok || len(tup.Elements) != 2 {
				t.Fatalf("got %T, want 2-element tuple", e)
			}
		}},
		{"set", "{1, 2}\n", func(t *testing.T, e ast.Expression) {
			set, ok := e.(*ast.SetLiteral)
			if !ok || len(set.Elements) != 2 {
				t.Fatalf("got %T, want 2-element set", e)
			}
		}},
		{"empty_braces_are_dict", "{}\n", func(t *testing.T, e ast.Expression) {
			if _, ok := e.(*ast.DictLiteral); !ok {
				t.Fatalf("got %T, want dict", e)
			}
		}},
		{"dict", "{1: 2, 3: 4}\n", func(t *testing.T, e ast.Expression) {
			d, ok := e.(*ast.DictLiteral)
			if !ok || len(d.Keys) != 2 {
				t.Fatalf("got %T, want 2-entry dict", e)
			}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stmt, ok := firstStatement(t, tc.input).(*ast.ExpressionStatement)
			if !ok {
				t.Fatal("not an ExpressionStatement")
			}
			tc.check(t, stmt.Expression)
		})
	}
}

func TestAttributeAndIndex(t *testing.T) {
	stmt := firstStatement(t, "a.b[0]\n").(*ast.ExpressionStatement)
	idx, ok := stmt.Expression.(*ast.IndexExpression)
	if !ok {
		t.Fatalf("got %T, want IndexExpression", stmt.Expression)
	}
	attr, ok := idx.Object.(*ast.AttributeExpression)
	if !ok || attr.Attribute.Value != "b" {
		t.Fatalf("object = %T, want attribute b", idx.Object)
	}
}

func TestImportForms(t *testing.T) {
	program := parse(t, "import math\nfrom math import sqrt, pow\n")
	plain := program.Statements[0].(*ast.ImportStatement)
	if plain.Module != "math" || plain.From {
		t.Errorf("plain import = %+v", plain)
	}
	from := program.Statements[1].(*ast.ImportStatement)
	if !from.From || from.Module != "math" || len(from.Names) != 2 {
		t.Errorf("from import = %+v", from)
	}
}

func TestMethodCallChain(t *testing.T) {
	stmt := firstStatement(t, "xs.append(len(xs))\n").(*ast.ExpressionStatement)
	call, ok := stmt.Expression.(*ast.CallExpression)
	if !ok {
		t.Fatalf("got %T, want CallExpression", stmt.Expression)
	}
	attr, ok := call.Function.(*ast.AttributeExpression)
	if !ok || attr.Attribute.Value != "append" {
		t.Fatalf("function = %T, want attribute append", call.Function)
	}
	if len(call.Arguments) != 1 {
		t.Fatalf("got %d arguments, want 1", len(call.Arguments))
	}
	if _, ok := call.Arguments[0].(*ast.CallExpression); !ok {
		t.Error("argument is not a nested call")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing_colon", "if a\n    pass\n"},
		{"missing_suite", "def f():\npass\n"},
		{"bad_for", "for in x:\n    pass\n"},
		{"dangling_operator", "x = 1 +\n"},
		{"unclosed_call", "f(1, 2\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parseFails(t, tc.input)
		})
	}
}
