package config

import (
	"path/filepath"
)

// SourceFileExt is the canonical source extension.
const SourceFileExt = ".py"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".py"}

// IsSourceFile reports whether path carries a recognized source extension.
func IsSourceFile(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range SourceFileExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// OutputFileName is the stem of the emitted translation unit.
const OutputFileName = "main"

// Built-in function names
const (
	PrintFuncName = "print"
	LenFuncName   = "len"
	SqrtFuncName  = "sqrt"
	PowFuncName   = "pow"
	LogFuncName   = "log"
	StrFuncName   = "str"
	RangeFuncName = "range"
)

// Built-in method names
const (
	AppendMethodName  = "append"
	AddMethodName     = "add"
	RemoveMethodName  = "remove"
	DiscardMethodName = "discard"
	ClearMethodName   = "clear"
)

// InitMethodName is the initializer a class constructor is synthesized from.
// The receiver parameter is positional: whatever name a method's first
// parameter carries acts as the receiver, so no self constant exists.
const InitMethodName = "__init__"

// MathModuleName is the only importable module; its members are built-ins.
const MathModuleName = "math"
