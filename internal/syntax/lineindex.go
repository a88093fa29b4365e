// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"sort"
	"unicode/utf16"
)

// LineIndex supports O(log n) conversion between byte offsets and
// (line, column) positions, with columns counted in UTF-16 code units
// as LSP's wire protocol requires (spec.md §3 "line_index").
//
// UTF-16 code-unit counting is the one piece of this analyzer built
// directly on the standard library rather than a pack dependency: no
// example in the retrieved corpus imports a third-party library for
// this (gopls's own internal/protocol/mapper.go does the identical
// unicode/utf16 arithmetic by hand), so there is no ecosystem
// alternative to ground this on.
type LineIndex struct {
	src        string
	lineStarts []int // byte offset of the start of each line; lineStarts[0] == 0
}

// NewLineIndex builds a LineIndex over src.
func NewLineIndex(src string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{src: src, lineStarts: starts}
}

// Position is a zero-based (line, UTF-16 column) pair.
type Position struct {
	Line, Character int
}

// ToPosition converts a byte offset into a line/UTF-16-column position.
// Offsets past the end of the file clamp to the final position.
func (li *LineIndex) ToPosition(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(li.src) {
		offset = len(li.src)
	}
	line := sort.Search(len(li.lineStarts), func(i int) bool {
		return li.lineStarts[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}
	lineStart := li.lineStarts[line]
	col := utf16Len(li.src[lineStart:offset])
	return Position{Line: line, Character: col}
}

// ToOffset converts a line/UTF-16-column position into a byte offset.
// Out-of-range lines or columns clamp to the nearest valid offset.
func (li *LineIndex) ToOffset(pos Position) int {
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(li.lineStarts) {
		return len(li.src)
	}
	lineStart := li.lineStarts[pos.Line]
	lineEnd := len(li.src)
	if pos.Line+1 < len(li.lineStarts) {
		lineEnd = li.lineStarts[pos.Line+1]
	}
	line := li.src[lineStart:lineEnd]
	return lineStart + offsetForUTF16Column(line, pos.Character)
}

// LineCount returns the number of lines in the indexed text.
func (li *LineIndex) LineCount() int { return len(li.lineStarts) }

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += len(utf16.Encode([]rune{r}))
	}
	return n
}

func offsetForUTF16Column(line string, col int) int {
	n := 0
	for i, r := range line {
		if n >= col {
			return i
		}
		n += len(utf16.Encode([]rune{r}))
	}
	return len(line)
}
