package translator_test

import (
	"strings"
	"testing"

	"github.com/pycatalyst/catalyst/internal/config"
	"github.com/pycatalyst/catalyst/internal/diagnostics"
	"github.com/pycatalyst/catalyst/internal/lexer"
	"github.com/pycatalyst/catalyst/internal/parser"
	"github.com/pycatalyst/catalyst/internal/pipeline"
	"github.com/pycatalyst/catalyst/internal/translator"
)

func translate(t *testing.T, source string) *pipeline.Context {
	t.Helper()
	p := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&translator.TranslatorProcessor{},
		&translator.RenderProcessor{},
	)
	return p.Run(&pipeline.Context{
		FilePath:   "test.py",
		SourceCode: source,
		Config:     config.Default(),
	})
}

func mustTranslate(t *testing.T, source string) string {
	t.Helper()
	ctx := translate(t, source)
	if ctx.Failed() {
		t.Fatalf("translation failed: %v", ctx.Errors[0])
	}
	return ctx.Output
}

func mustFail(t *testing.T, source, wantCode string) *diagnostics.Diagnostic {
	t.Helper()
	ctx := translate(t, source)
	if !ctx.Failed() {
		t.Fatalf("translation succeeded, want a %s diagnostic\noutput:\n%s", wantCode, ctx.Output)
	}
	d := ctx.Errors[0]
	if d.Code != wantCode {
		t.Fatalf("diagnostic code = %s (%s), want %s", d.Code, d.Message, wantCode)
	}
	if d.File != "test.py" {
		t.Errorf("diagnostic file = %q, want test.py", d.File)
	}
	return d
}

func wantContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, frag := range fragments {
		if !strings.Contains(output, frag) {
			t.Errorf("output missing %q\noutput:\n%s", frag, output)
		}
	}
}

func TestArithmeticProgram(t *testing.T) {
	output := mustTranslate(t, "x = 1\ny = 2.0\nz = x + y\nprint(z)\n")
	want := `#include <iostream>

int main(int argc, char **argv)
{
    int x = 1;
    double y = 2.0;
    double z = (x + y);
    std::cout << z << std::endl;
    return 0;
}
`
	if output != want {
		t.Errorf("output:\n%s\nwant:\n%s", output, want)
	}
}

func TestDeterministicOutput(t *testing.T) {
	source := "import math\nx = 2\nprint(sqrt(x), x ** 2)\n"
	first := mustTranslate(t, source)
	second := mustTranslate(t, source)
	if first != second {
		t.Errorf("two runs over the same source differ:\n%s\n---\n%s", first, second)
	}
}

func TestOperatorRenderings(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"int floor division", "q = 7 // 2\n", "int q = (7 / 2);"},
		{"float floor division", "q = 7.0 // 2\n", "double q = std::floor(7.0 / 2);"},
		{"int modulo", "r = 7 % 2\n", "int r = (7 % 2);"},
		{"float modulo", "r = 7.5 % 2\n", "double r = std::fmod(7.5, 2);"},
		{"power is always float", "p = 2 ** 3\n", "double p = std::pow(2, 3);"},
		{"true division", "d = 1 / 2\n", "int d = (1 / 2);"},
		{"string concatenation", "a = \"x\"\nb = a + \"y\"\n", "std::string b = (a + \"y\");"},
		{"unary minus", "n = 5\nm = -n\n", "int m = (-n);"},
		{"logical not", "f = True\ng = not f\n", "bool g = !f;"},
		{"comparison yields bool", "b = 1 < 2\n", "bool b = (1 < 2);"},
		{"logical and", "b = True and False\n", "bool b = (true && false);"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantContains(t, mustTranslate(t, tt.source), tt.want)
		})
	}
}

func TestFloatContaminatesWidening(t *testing.T) {
	output := mustTranslate(t, "a = 1\nb = 2.5\nc = a * b\nd = c + a\n")
	wantContains(t, output, "double c = (a * b);", "double d = (c + a);")
}

func TestPowerIncludesCmathOnce(t *testing.T) {
	output := mustTranslate(t, "a = 2 ** 3\nb = 3 ** 2\n")
	if n := strings.Count(output, "#include <cmath>"); n != 1 {
		t.Errorf("cmath included %d times, want 1\noutput:\n%s", n, output)
	}
}

func TestDocstringBecomesComment(t *testing.T) {
	output := mustTranslate(t, "\"\"\"Totals two numbers.\"\"\"\nx = 1\n")
	wantContains(t, output, "/* Totals two numbers. */")
}

func TestFunctionFixedByFirstCall(t *testing.T) {
	output := mustTranslate(t, "def add(a, b):\n    return a + b\n\ns = add(1, 2)\nprint(s)\n")
	wantContains(t, output,
		"int add(int a, int b);",
		"int add(int a, int b)\n{\n    return (a + b);\n}",
		"int s = add(1, 2);",
	)
}

func TestFunctionFixedByFloatCall(t *testing.T) {
	output := mustTranslate(t, "def half(x):\n    return x / 2.0\n\nh = half(5.0)\n")
	wantContains(t, output, "double half(double x);", "double h = half(5.0);")
}

func TestFunctionWithoutReturnIsVoid(t *testing.T) {
	output := mustTranslate(t, "def greet(name):\n    print(name)\n\ngreet(\"hi\")\n")
	wantContains(t, output, "void greet(std::string name);", "greet(\"hi\");")
}

func TestReturnNoneIsVoid(t *testing.T) {
	output := mustTranslate(t, "def stop():\n    return None\n\nstop()\n")
	wantContains(t, output, "void stop();", "return;")
}

func TestDefaultParameterTypesEagerly(t *testing.T) {
	output := mustTranslate(t, "def scale(x, factor=2):\n    return x * factor\n\ny = scale(3)\n")
	wantContains(t, output,
		"int scale(int x, int factor = 2);",
		"int scale(int x, int factor)",
		"int y = scale(3);",
	)
}

func TestBodyAssignmentFixesParameter(t *testing.T) {
	output := mustTranslate(t, "def reset(x):\n    x = 0\n    return x\n\nr = reset(9)\n")
	wantContains(t, output, "int reset(int x)", "x = 0;")
}

func TestIfElifElseChain(t *testing.T) {
	source := "x = 5\nif x < 3:\n    print(1)\nelif x < 6:\n    print(2)\nelse:\n    print(3)\n"
	output := mustTranslate(t, source)
	want := `    if (x < 3)
    {
        std::cout << 1 << std::endl;
    }
    else if (x < 6)
    {
        std::cout << 2 << std::endl;
    }
    else
    {
        std::cout << 3 << std::endl;
    }
`
	wantContains(t, output, want)
}

func TestConditionLosesRedundantParens(t *testing.T) {
	output := mustTranslate(t, "x = 1\ny = 2\nif (x > 0) and (y > 0):\n    print(x)\n")
	wantContains(t, output, "if ((x > 0) && (y > 0))")
}

func TestWhileLoop(t *testing.T) {
	output := mustTranslate(t, "n = 3\nwhile n > 0:\n    print(n)\n    n -= 1\n")
	wantContains(t, output, "while (n > 0)", "n -= 1;")
}

func TestRangeLoops(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"stop only", "for i in range(5):\n    print(i)\n", "for (int i = 0; i < 5; i++)"},
		{"start and stop", "for i in range(1, 4):\n    print(i)\n", "for (int i = 1; i < 4; i++)"},
		{"explicit step", "for i in range(0, 10, 2):\n    print(i)\n", "for (int i = 0; i < 10; i += 2)"},
		{"descending", "for i in range(10, 0, -1):\n    print(i)\n", "for (int i = 10; i > 0; i += (-1))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantContains(t, mustTranslate(t, tt.source), tt.want)
		})
	}
}

func TestElementLoopOverSequence(t *testing.T) {
	output := mustTranslate(t, "values = [1, 2, 3]\nfor v in values:\n    print(v)\n")
	wantContains(t, output,
		"std::vector<int> values = { 1, 2, 3 };",
		"for (int v : values)",
	)
}

func TestLoopVariableReuseKeepsType(t *testing.T) {
	output := mustTranslate(t, "for i in range(3):\n    print(i)\nfor i in range(5):\n    print(i)\n")
	wantContains(t, output, "for (int i = 0; i < 3; i++)", "for (i = 0; i < 5; i++)")
}

func TestBreakAndContinueInLoop(t *testing.T) {
	source := "for i in range(10):\n    if i == 3:\n        break\n    if i == 1:\n        continue\n    print(i)\n"
	wantContains(t, mustTranslate(t, source), "break;", "continue;")
}

func TestCollections(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			"list append and len",
			"xs = [1, 2]\nxs.append(3)\nprint(len(xs))\n",
			[]string{"std::vector<int> xs = { 1, 2 };", "xs.push_back(3);", "std::cout << xs.size() << std::endl;"},
		},
		{
			"set mutators",
			"s = {1, 2}\ns.add(3)\ns.discard(1)\ns.remove(2)\ns.clear()\n",
			[]string{"std::unordered_set<int> s = { 1, 2 };", "s.insert(3);", "s.erase(1);", "s.erase(2);", "s.clear();"},
		},
		{
			"tuple literal and index",
			"p = (1, \"a\")\nprint(p[0])\n",
			[]string{"std::tuple<int, std::string> p = std::make_tuple(1, \"a\");", "std::get<0>(p)"},
		},
		{
			"sequence index read and write",
			"xs = [1, 2, 3]\nxs[0] = 9\nprint(xs[1])\n",
			[]string{"xs[0] = 9;", "std::cout << xs[1] << std::endl;"},
		},
		{
			"empty list is unresolved until used",
			"xs = []\n",
			[]string{"std::vector<auto> xs = { };"},
		},
		{
			"string length",
			"s = \"abc\"\nprint(len(s))\n",
			[]string{"s.length()"},
		},
		{
			"numeric str conversion",
			"n = 42\nmsg = \"n=\" + str(n)\n",
			[]string{"std::string msg = (\"n=\" + std::to_string(n));"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantContains(t, mustTranslate(t, tt.source), tt.want...)
		})
	}
}

func TestPrintWithoutArguments(t *testing.T) {
	output := mustTranslate(t, "print(\"a\")\nprint()\n")
	wantContains(t, output, "std::cout << std::endl;")
	if strings.Contains(output, "<<  <<") {
		t.Errorf("empty print rendered a dangling stream operator:\n%s", output)
	}
}

func TestEmptyListRefinedByLaterBinding(t *testing.T) {
	output := mustTranslate(t, "xs = []\nxs = [1]\nxs.append(2)\nprint(len(xs))\n")
	wantContains(t, output,
		"std::vector<int> xs = { };",
		"xs = { 1 };",
		"xs.push_back(2);",
		"std::cout << xs.size() << std::endl;",
	)
}

func TestMathBuiltins(t *testing.T) {
	source := "import math\nx = 2.0\na = sqrt(x)\nb = pow(x, 3)\nc = log(x)\nd = log(x, 10)\n"
	output := mustTranslate(t, source)
	wantContains(t, output,
		"double a = std::sqrt(x);",
		"double b = std::pow(x, 3);",
		"double c = std::log(x);",
		"double d = (std::log(x) / std::log(10));",
	)
}

func TestClassWithConstructorAndMethod(t *testing.T) {
	source := `class Point:
    def __init__(self, x, y):
        self.x = x
        self.y = y

    def dist(self):
        return sqrt(self.x * self.x + self.y * self.y)

p = Point(1.0, 2.0)
print(p.dist())
`
	output := mustTranslate(t, source)
	wantContains(t, output,
		"class Point;",
		"double x;",
		"double y;",
		"Point(double x, double y)",
		"this->x = x;",
		"double dist()",
		"return std::sqrt(((this->x * this->x) + (this->y * this->y)));",
		"Point p = Point(1.0, 2.0);",
		"std::cout << p.dist() << std::endl;",
	)
}

func TestTupleTypedAttribute(t *testing.T) {
	source := `class Pair:
    def __init__(self):
        self.p = (1, 2.5)

    def first(self):
        return self.p[0]

q = Pair()
print(q.first())
`
	output := mustTranslate(t, source)
	wantContains(t, output,
		"std::tuple<int, double> p;",
		"this->p = std::make_tuple(1, 2.5);",
		"return std::get<0>(this->p);",
		"int first()",
	)
}

func TestAttributeAccessOutsideClass(t *testing.T) {
	source := "class Box:\n    def __init__(self, v):\n        self.v = v\n\nb = Box(7)\nprint(b.v)\n"
	wantContains(t, mustTranslate(t, source), "int v;", "std::cout << b.v << std::endl;")
}

func TestClassInheritanceHeader(t *testing.T) {
	source := "class Base:\n    pass\n\nclass Child(Base):\n    pass\n\nc = Child()\n"
	wantContains(t, mustTranslate(t, source), "class Child : public Base")
}

func TestMethodCallOnSelf(t *testing.T) {
	source := `class Counter:
    def __init__(self, n):
        self.n = n

    def bump(self):
        self.n += 1

    def twice(self):
        self.bump()
        self.bump()

c = Counter(0)
c.twice()
`
	wantContains(t, mustTranslate(t, source), "this->n += 1;", "this->bump();", "c.twice();")
}

func TestIncludeOrderAndDedup(t *testing.T) {
	output := mustTranslate(t, "xs = [1.5]\nprint(xs[0])\nys = [2.5]\n")
	vector := strings.Index(output, "#include <vector>")
	iostream := strings.Index(output, "#include <iostream>")
	if vector < 0 || iostream < 0 || vector > iostream {
		t.Errorf("includes out of first-required order\noutput:\n%s", output)
	}
	if n := strings.Count(output, "#include <vector>"); n != 1 {
		t.Errorf("vector included %d times, want 1", n)
	}
}

func TestImportMathIsNoOp(t *testing.T) {
	output := mustTranslate(t, "import math\nx = 1\n")
	if strings.Contains(output, "math") {
		t.Errorf("import leaked into output:\n%s", output)
	}
}

func TestFailures(t *testing.T) {
	tests := []struct {
		name   string
		source string
		code   string
	}{
		{"undefined name", "print(z)\n", diagnostics.ErrT002},
		{"string plus int", "x = 1\ny = x + \"a\"\n", diagnostics.ErrT001},
		{"string multiply", "s = \"a\"\nt = s * 2\n", diagnostics.ErrT001},
		{"rebinding changes type", "x = 1\nx = \"a\"\n", diagnostics.ErrT004},
		{"aug assign changes type", "x = 1\nx /= 2.0\n", diagnostics.ErrT004},
		{"second call with other types", "def f(a):\n    return a\n\nx = f(1)\ny = f(1.5)\n", diagnostics.ErrT004},
		{"conflicting returns", "def f(x):\n    if x > 0:\n        return 1\n    return \"a\"\n", diagnostics.ErrT004},
		{"heterogeneous list", "xs = [1, \"a\"]\n", diagnostics.ErrT001},
		{"heterogeneous set", "s = {1, 2.5}\n", diagnostics.ErrT001},
		{"list and float do not widen", "xs = [1]\nx = xs + 1.0\n", diagnostics.ErrT001},
		{"break outside loop", "break\n", diagnostics.ErrT001},
		{"continue outside loop", "continue\n", diagnostics.ErrT001},
		{"return outside function", "return 1\n", diagnostics.ErrT001},
		{"dict literal", "d = {}\n", diagnostics.ErrT001},
		{"lambda", "f = lambda x: x\n", diagnostics.ErrT001},
		{"tuple unpacking", "(a, b) = (1, 2)\n", diagnostics.ErrT001},
		{"nested function", "def outer():\n    def inner():\n        pass\n", diagnostics.ErrT001},
		{"decorated function", "@deco\ndef f():\n    pass\n", diagnostics.ErrT001},
		{"is operator", "x = 1\nb = x is x\n", diagnostics.ErrT001},
		{"in operator", "xs = [1]\nb = 1 in xs\n", diagnostics.ErrT001},
		{"import os", "import os\n", diagnostics.ErrT001},
		{"range outside for", "r = range(3)\n", diagnostics.ErrT001},
		{"range step must be literal", "n = 2\nfor i in range(0, 10, n):\n    print(i)\n", diagnostics.ErrT001},
		{"tuple index must be literal", "p = (1, 2)\ni = 0\nx = p[i]\n", diagnostics.ErrT001},
		{"tuple index out of range", "p = (1, 2)\nx = p[5]\n", diagnostics.ErrT001},
		{"redeclared function", "def f():\n    pass\n\ndef f():\n    pass\n", diagnostics.ErrT003},
		{"call arity", "def f(a):\n    return a\n\nx = f(1, 2)\n", diagnostics.ErrT001},
		{"print a void call", "def f():\n    pass\n\nprint(f())\n", diagnostics.ErrT001},
		{"assign a void call", "def f():\n    pass\n\nx = f()\n", diagnostics.ErrT001},
		{"condition of string type", "s = \"a\"\nif s:\n    print(s)\n", diagnostics.ErrT001},
		{"attribute on plain value", "x = 1\ny = x.field\n", diagnostics.ErrT001},
		{"new attribute outside init", "class A:\n    def __init__(self):\n        self.x = 1\n\n    def set(self):\n        self.y = 2\n", diagnostics.ErrT002},
		{"multiple inheritance", "class A:\n    pass\n\nclass B:\n    pass\n\nclass C(A, B):\n    pass\n", diagnostics.ErrT001},
		{"store wrong element type", "xs = [1, 2]\nxs[0] = \"a\"\n", diagnostics.ErrT004},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mustFail(t, tt.source, tt.code)
		})
	}
}

func TestArgumentMismatchNamesTheParameter(t *testing.T) {
	d := mustFail(t, "def f(a):\n    return a\n\nx = f(1)\ny = f(1.5)\n", diagnostics.ErrT004)
	if !strings.Contains(d.Message, "argument 1") || !strings.Contains(d.Message, "\"f\"") {
		t.Errorf("message = %q, want the argument index and function name", d.Message)
	}
}

func TestHeterogeneousLiteralNamesBothTypes(t *testing.T) {
	d := mustFail(t, "xs = [1, \"a\"]\n", diagnostics.ErrT001)
	if !strings.Contains(d.Message, "int") || !strings.Contains(d.Message, "str") {
		t.Errorf("message = %q, want both element types named", d.Message)
	}
}

func TestFailedRunProducesNoOutput(t *testing.T) {
	ctx := translate(t, "print(missing)\n")
	if !ctx.Failed() {
		t.Fatal("translation succeeded unexpectedly")
	}
	if ctx.Output != "" {
		t.Errorf("failed run still rendered output:\n%s", ctx.Output)
	}
}

func TestMainAlwaysReturnsZeroLast(t *testing.T) {
	output := mustTranslate(t, "x = 1\n")
	if !strings.HasSuffix(output, "    return 0;\n}\n") {
		t.Errorf("output does not end with the entry return:\n%s", output)
	}
}
