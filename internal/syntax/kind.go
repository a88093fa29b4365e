// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syntax implements the parser for the document language: it
// turns source text into an immutable [Tree] (spec.md §3 "SyntaxNode"),
// and maps byte offsets to (line, column) positions.
//
// There is no ready-made parser for this language anywhere in the
// example corpus (the nearest candidate, go-tree-sitter, requires a
// precompiled grammar this repository cannot generate), so this
// package is a hand-written recursive-descent parser in gopls's own
// style of wrapping go/parser: a thin, span-preserving tree with a
// single entry point, [Parse].
package syntax

import "fmt"

// Kind identifies the grammatical form of a [Node]. The set is closed:
// every node in a parsed tree has exactly one of these kinds.
type Kind uint8

const (
	KindInvalid Kind = iota

	// Markup mode.
	KindMarkup     // a run of markup at the top level or inside content blocks
	KindText       // a run of plain prose text
	KindHeading    // "= Heading", "== Subheading", ...
	KindLabel      // "<label-name>"
	KindStrong     // "*strong*"
	KindEmph       // "_emph_"
	KindLinebreak  // explicit "\" linebreak
	KindRaw        // `raw text`
	KindEscape     // "\#", "\*", ...
	KindMathMarker // "$" delimiter, recorded so spans nest correctly

	// Math mode.
	KindMath     // "$ ... $"
	KindMathAtom // an identifier or literal inside math mode

	// Code mode (after "#", or inside any expression context).
	KindCodeBlock    // "{ ... }"
	KindContentBlock // "[ ... ]"
	KindParenExpr    // "( ... )"
	KindLet          // "#let name = expr" or "#let name(params) = expr"
	KindImport       // "#import "path"" or "#import "path": a, b"
	KindImportItem   // one bound name in an import list
	KindInclude      // "#include "path""
	KindShow         // "#show selector: expr"
	KindSet          // "#set fn(args)"
	KindIf           // "#if cond {} else {}"
	KindFor          // "#for x in expr {}"
	KindWhile        // "#while cond {}"
	KindBreak
	KindContinue
	KindReturn
	KindFuncLit   // "(params) => body" or "(params) => { body }"
	KindParam     // one parameter in a function literal's parameter list
	KindCall      // "name(args)"
	KindArg       // one argument in a call's argument list
	KindFieldAcc  // "a.b"
	KindIdent     // a bare identifier reference
	KindLiteral   // int, float, string, bool, none, auto, length, color, ...
	KindArrayLit  // "(1, 2, 3)"
	KindDictLit   // "(a: 1, b: 2)"
	KindUnaryExpr // "-x", "not x"
	KindBinaryExpr
	KindDestructure // "let (a, b) = expr"

	KindComment     // "// ..." or "/* ... */"
	KindTypingDoc   // any "///" doc comment, the form that carries "@typing ..." annotations
	KindErrorNode   // a malformed span kept so the tree still covers the source
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "Invalid"
	case KindMarkup:
		return "Markup"
	case KindText:
		return "Text"
	case KindHeading:
		return "Heading"
	case KindLabel:
		return "Label"
	case KindStrong:
		return "Strong"
	case KindEmph:
		return "Emph"
	case KindLinebreak:
		return "Linebreak"
	case KindRaw:
		return "Raw"
	case KindEscape:
		return "Escape"
	case KindMathMarker:
		return "MathMarker"
	case KindMath:
		return "Math"
	case KindMathAtom:
		return "MathAtom"
	case KindCodeBlock:
		return "CodeBlock"
	case KindContentBlock:
		return "ContentBlock"
	case KindParenExpr:
		return "ParenExpr"
	case KindLet:
		return "Let"
	case KindImport:
		return "Import"
	case KindImportItem:
		return "ImportItem"
	case KindInclude:
		return "Include"
	case KindShow:
		return "Show"
	case KindSet:
		return "Set"
	case KindIf:
		return "If"
	case KindFor:
		return "For"
	case KindWhile:
		return "While"
	case KindBreak:
		return "Break"
	case KindContinue:
		return "Continue"
	case KindReturn:
		return "Return"
	case KindFuncLit:
		return "FuncLit"
	case KindParam:
		return "Param"
	case KindCall:
		return "Call"
	case KindArg:
		return "Arg"
	case KindFieldAcc:
		return "FieldAccess"
	case KindIdent:
		return "Ident"
	case KindLiteral:
		return "Literal"
	case KindArrayLit:
		return "ArrayLit"
	case KindDictLit:
		return "DictLit"
	case KindUnaryExpr:
		return "UnaryExpr"
	case KindBinaryExpr:
		return "BinaryExpr"
	case KindDestructure:
		return "Destructure"
	case KindComment:
		return "Comment"
	case KindTypingDoc:
		return "TypingDoc"
	case KindErrorNode:
		return "ErrorNode"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Mode identifies which of the language's three lexical modes a span of
// source was lexed in. Identifier resolution rules differ by mode
// (spec.md §4.3).
type Mode uint8

const (
	ModeMarkup Mode = iota
	ModeMath
	ModeCode
)

func (m Mode) String() string {
	switch m {
	case ModeMarkup:
		return "markup"
	case ModeMath:
		return "math"
	case ModeCode:
		return "code"
	default:
		return "unknown"
	}
}
