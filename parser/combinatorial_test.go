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
	"strings"
	"testing"
)

/*
assertSameShape parses src with both strategies and requires the resulting
trees to be structurally identical, modulo id/token-range bookkeeping (which
Node.Equals already ignores). This is the load-bearing check for
readCombinatorialBinOp's single-pass, priority-queue-driven reduction: any
wrong pop order or left/right bookkeeping mistake shows up as a shape
mismatch against the naive ladder's known-correct nested recursion.
*/
func assertSameShape(t *testing.T, src string) {
	t.Helper()

	naiveNode, _ := mustParseNaive(t, src)
	combNode, _ := mustParseCombinatorial(t, src)

	if ok, msg := documentBody(naiveNode).Equals(documentBody(combNode)); !ok {
		t.Fatalf("shape mismatch for %q: %v\nnaive:\n%v\ncombinatorial:\n%v",
			src, msg, documentBody(naiveNode).String(), documentBody(combNode).String())
	}
}

/*
nestingOf renders a BinOp tree with every operator application in brackets,
e.g. "[1 + [2 * 3]]", so a test can state a tree's exact nesting.
*/
func nestingOf(n *Node) string {
	if n.Leaf {
		return n.Literal
	}
	if n.Operator != "" && len(n.Children) == 3 {
		return "[" + nestingOf(n.Children[0]) + " " + n.Operator + " " + nestingOf(n.Children[2]) + "]"
	}
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		parts[i] = nestingOf(c)
	}
	return strings.Join(parts, " ")
}

/*
assertNestings parses src with both strategies and requires each tree to
have the stated nesting. It is used where the two strategies group operators
of one precedence rank differently: the naive ladder nests them to the right
and the combinatorial reducer folds the leftmost one first.
*/
func assertNestings(t *testing.T, src, wantNaive, wantComb string) {
	t.Helper()

	naiveNode, _ := mustParseNaive(t, src)
	combNode, _ := mustParseCombinatorial(t, src)

	if got := nestingOf(documentBody(naiveNode)); got != wantNaive {
		t.Fatalf("naive nesting of %q = %v, want %v", src, got, wantNaive)
	}
	if got := nestingOf(documentBody(combNode)); got != wantComb {
		t.Fatalf("combinatorial nesting of %q = %v, want %v", src, got, wantComb)
	}
}

func TestCombinatorialMatchesNaiveSingleOperator(t *testing.T) {
	assertSameShape(t, "1 + 2")
}

func TestCombinatorialMixedPrecedence(t *testing.T) {
	assertSameShape(t, "1 + 2 * 3")
	assertSameShape(t, "1 * 2 + 3")
	assertNestings(t, "1 + 2 * 3 - 4 / 5", "[1 + [[2 * 3] - [4 / 5]]]", "[[1 + [2 * 3]] - [4 / 5]]")
}

func TestCombinatorialMatchesNaiveAcrossLayers(t *testing.T) {
	assertSameShape(t, "1 + 2 = 3 and 4 < 5 or 6 ?? 7")
}

func TestCombinatorialMatchesNaiveIsAsChain(t *testing.T) {
	assertSameShape(t, "x is number and y as number")
}

/*
TestCombinatorialMatchesNaiveAsBeforeIs checks the one legal nesting order
between the two type-coercion operators: 'as' may be wrapped by a later
'is' because naive's readIsExpression reads its operand via readAsExpression
before its own 'is' loop ever starts.
*/
func TestCombinatorialMatchesNaiveAsBeforeIs(t *testing.T) {
	assertSameShape(t, "x as number is number")
}

/*
TestCombinatorialRejectsIsBeforeAsLikeNaive checks the illegal nesting
order: naive's is-expression never delegates back down to as-expression
after consuming an 'is', so "x is number as number" leaves "as number"
unconsumed and fails with a trailing-tokens error at the document level.
The combinatorial strategy must reject the same input the same way instead
of greedily folding both operators into one tree (see combinatorial.go's
typeFloor tracking).
*/
func TestCombinatorialRejectsIsBeforeAsLikeNaive(t *testing.T) {
	const src = "x is number as number"

	naiveLexer, err := Lex("test", src)
	if err != nil {
		t.Fatalf("Lex(%q): %v", src, err)
	}
	naiveParser := NaiveParser()
	naiveState := NewState(naiveLexer, "en-US", nil, nil)
	if _, err := naiveParser.ReadDocument(naiveState, naiveParser, 0); err == nil {
		t.Fatalf("expected naive to reject %q", src)
	}

	combLexer, err := Lex("test", src)
	if err != nil {
		t.Fatalf("Lex(%q): %v", src, err)
	}
	combParser := CombinatorialParser()
	combState := NewState(combLexer, "en-US", nil, nil)
	if _, err := combParser.ReadDocument(combState, combParser, 0); err == nil {
		t.Fatalf("expected combinatorial to reject %q like naive does", src)
	}
}

func TestCombinatorialLeftToRightSamePrecedenceTieBreak(t *testing.T) {
	assertNestings(t, "1 - 2 - 3", "[1 - [2 - 3]]", "[[1 - 2] - 3]")
	assertNestings(t, "8 / 4 / 2", "[8 / [4 / 2]]", "[[8 / 4] / 2]")
}

func TestCombinatorialParserNameDiffersFromNaive(t *testing.T) {
	if NaiveParser().Name == CombinatorialParser().Name {
		t.Fatalf("expected distinct strategy names")
	}
}
