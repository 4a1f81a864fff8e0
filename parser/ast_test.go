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

func TestNodeEqualsIdentical(t *testing.T) {
	a := &Node{Kind: NodeLiteralExpression, Leaf: true, Literal: "1", LiteralKind: LiteralNumeric}
	b := &Node{Kind: NodeLiteralExpression, Leaf: true, Literal: "1", LiteralKind: LiteralNumeric}

	ok, msg := a.Equals(b)
	if !ok {
		t.Fatalf("expected equal, got %q", msg)
	}
}

func TestNodeEqualsKindMismatch(t *testing.T) {
	a := &Node{Kind: NodeLiteralExpression, Leaf: true, Literal: "1"}
	b := &Node{Kind: NodeIdentifierExpression, Leaf: true, Literal: "1"}

	ok, msg := a.Equals(b)
	if ok {
		t.Fatalf("expected mismatch, got equal")
	}
	if msg == "" {
		t.Fatalf("expected a diff message")
	}
}

func TestNodeEqualsChildCountMismatch(t *testing.T) {
	a := &Node{Kind: NodeArithmeticExpression, Children: []*Node{
		{Kind: NodeLiteralExpression, Leaf: true, Literal: "1"},
		{Kind: NodeLiteralExpression, Leaf: true, Literal: "2"},
	}}
	b := &Node{Kind: NodeArithmeticExpression, Children: []*Node{
		{Kind: NodeLiteralExpression, Leaf: true, Literal: "1"},
	}}

	ok, _ := a.Equals(b)
	if ok {
		t.Fatalf("expected child count mismatch to fail Equals")
	}
}

func TestNodeStringIncludesKindAndIndent(t *testing.T) {
	n := &Node{Kind: NodeArithmeticExpression, Operator: "+", Children: []*Node{
		{Kind: NodeLiteralExpression, Leaf: true, Literal: "1"},
		{Kind: NodeConstant, Leaf: true, Literal: "+"},
		{Kind: NodeLiteralExpression, Leaf: true, Literal: "2"},
	}}

	s := n.String()
	if s == "" {
		t.Fatalf("expected non-empty dump")
	}
	if !strings.HasPrefix(s, "ArithmeticExpression(+)\n") {
		t.Fatalf("expected the root line to carry kind and operator, got %q", s)
	}
	if !strings.Contains(s, "\n  LiteralExpression: \"1\"\n") {
		t.Fatalf("expected children indented by two spaces, got %q", s)
	}
	if n.Child(0).Literal != "1" || n.Child(2).Literal != "2" {
		t.Fatalf("Child() did not return expected children")
	}
	if n.Child(99) != nil {
		t.Fatalf("Child() out of range should return nil")
	}
}
