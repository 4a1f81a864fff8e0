/*
 * pqparse
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package parser

import (
	"bytes"
	"strings"

	"github.com/krotik/common/stringutil"
)

/*
Render re-emits M source text for the subtree rooted at n, for round-trip
checks and diagnostics rather than human-authored formatting (spec.md §4.2.a).
Grounded in the teacher's prettyprinter.go, adapted from a Name+arity-keyed
template map to a single generic walk: every token of the original source
already survives as a leaf Constant/Identifier/literal somewhere in the tree
(the grammar keeps punctuation and keywords as concrete children rather than
discarding them), so re-emission only has to decide the WHITESPACE between
already-present tokens, not reconstruct any of them. Wrapper productions
built via readCsvArray/arrayWrapperProduction (record fields, list items,
section members, parameters, field specifications) get the teacher's
selective multi-line indentation via stringutil.GenerateRollingString; every
other node renders inline on one line.
*/
func Render(n *Node) string {
	return strings.TrimRight(render(n, 0), "\n ")
}

func render(n *Node, depth int) string {
	if n.Leaf {
		return n.Literal
	}

	parts := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Kind == NodeArrayWrapper && len(c.Children) > 0 {
			parts = append(parts, renderIndentedWrapper(c, depth))
		} else {
			parts = append(parts, render(c, depth))
		}
	}
	return joinParts(parts)
}

/*
renderIndentedWrapper renders an ArrayWrapper's items one per line, indented
one level deeper than depth, with the closing line returning to depth so the
caller's next sibling (typically a closing bracket/brace Constant) lines up
under the opening one.
*/
func renderIndentedWrapper(w *Node, depth int) string {
	inner := depth + 1
	var buf bytes.Buffer
	for _, item := range w.Children {
		buf.WriteString("\n")
		buf.WriteString(stringutil.GenerateRollingString(" ", inner*2))
		buf.WriteString(render(item, inner))
	}
	buf.WriteString("\n")
	buf.WriteString(stringutil.GenerateRollingString(" ", depth*2))
	return buf.String()
}

/*
joinParts concatenates a node's already-rendered children, inserting a single
space at each boundary except where the adjoining characters call for tight
punctuation (no space before a comma or closing bracket, none after an
opening one) or where one side already ends/starts with rendered whitespace
(an indented wrapper's boundary).
*/
func joinParts(parts []string) string {
	const noSpaceBefore = ",)]};?"
	const noSpaceAfter = "([{@"

	var buf bytes.Buffer
	var lastByte byte
	haveLast := false

	for _, p := range parts {
		if p == "" {
			continue
		}
		first := p[0]
		if haveLast {
			switch {
			case lastByte == '\n' || lastByte == ' ' || first == '\n':
			case strings.IndexByte(noSpaceBefore, first) >= 0:
			case strings.IndexByte(noSpaceAfter, lastByte) >= 0:
			default:
				buf.WriteByte(' ')
			}
		}
		buf.WriteString(p)
		lastByte = p[len(p)-1]
		haveLast = true
	}

	return buf.String()
}
