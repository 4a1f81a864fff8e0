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

import "testing"

func newTestState(t *testing.T, src string) *State {
	t.Helper()
	lexer, err := Lex("test", src)
	if err != nil {
		t.Fatalf("Lex(%q): %v", src, err)
	}
	return NewState(lexer, "en-US", nil, nil)
}

func TestStateNextIDIsMonotonic(t *testing.T) {
	s := newTestState(t, "1")

	a := s.NextID()
	b := s.NextID()
	c := s.NextID()

	if !(a < b && b < c) {
		t.Fatalf("NextID not monotonic: %d %d %d", a, b, c)
	}
}

func TestStateStartEndContextAttributeIndexing(t *testing.T) {
	s := newTestState(t, "1")

	if _, err := s.StartContext(NodeArithmeticExpression); err != nil {
		t.Fatalf("StartContext parent: %v", err)
	}
	parentID := s.CurrentContextID

	if _, err := s.StartContext(NodeLiteralExpression); err != nil {
		t.Fatalf("StartContext child 1: %v", err)
	}
	child1, err := s.EndContext(&Node{Kind: NodeLiteralExpression, Leaf: true, Literal: "1"})
	if err != nil {
		t.Fatalf("EndContext child 1: %v", err)
	}

	if _, err := s.StartContext(NodeLiteralExpression); err != nil {
		t.Fatalf("StartContext child 2: %v", err)
	}
	child2, err := s.EndContext(&Node{Kind: NodeLiteralExpression, Leaf: true, Literal: "2"})
	if err != nil {
		t.Fatalf("EndContext child 2: %v", err)
	}

	if child1.AttributeIndex != 0 || child2.AttributeIndex != 1 {
		t.Fatalf("attribute indices = %d,%d want 0,1", child1.AttributeIndex, child2.AttributeIndex)
	}
	if s.CurrentContextID != parentID || !s.HasCurrentContext {
		t.Fatalf("current context should have returned to parent %d, got %d (has=%v)",
			parentID, s.CurrentContextID, s.HasCurrentContext)
	}

	root, err := s.EndContext(&Node{Kind: NodeArithmeticExpression, Children: []*Node{child1, child2}})
	if err != nil {
		t.Fatalf("EndContext root: %v", err)
	}
	if s.HasCurrentContext {
		t.Fatalf("expected no open context after closing root")
	}
	if len(root.Children) != 2 {
		t.Fatalf("root.Children = %d, want 2", len(root.Children))
	}
}

func TestStateStartContextAroundPreservesOldParentSlot(t *testing.T) {
	s := newTestState(t, "1")

	if _, err := s.StartContext(NodeArrayWrapper); err != nil {
		t.Fatalf("StartContext wrapper: %v", err)
	}
	if _, err := s.StartContext(NodeLiteralExpression); err != nil {
		t.Fatalf("StartContext leaf: %v", err)
	}
	leaf, err := s.EndContext(&Node{Kind: NodeLiteralExpression, Leaf: true, Literal: "1"})
	if err != nil {
		t.Fatalf("EndContext leaf: %v", err)
	}

	if _, err := s.StartContextAround(NodeArithmeticExpression, leaf); err != nil {
		t.Fatalf("StartContextAround: %v", err)
	}
	wrapped, err := s.EndContext(&Node{Kind: NodeArithmeticExpression, Children: []*Node{leaf}})
	if err != nil {
		t.Fatalf("EndContext wrapped: %v", err)
	}

	if len(wrapped.Children) != 1 || wrapped.Children[0] != leaf {
		t.Fatalf("wrapped node should carry leaf as its only child")
	}
	if leaf.AttributeIndex != 0 {
		t.Fatalf("leaf should have been reseated to attribute index 0, got %d", leaf.AttributeIndex)
	}
}

func TestStateDeleteContextRestoresParentCounter(t *testing.T) {
	s := newTestState(t, "1")

	if _, err := s.StartContext(NodeArithmeticExpression); err != nil {
		t.Fatalf("StartContext parent: %v", err)
	}
	parentID := s.CurrentContextID

	if _, err := s.StartContext(NodeLiteralExpression); err != nil {
		t.Fatalf("StartContext speculative child: %v", err)
	}
	if err := s.DeleteContext(); err != nil {
		t.Fatalf("DeleteContext: %v", err)
	}

	if s.CurrentContextID != parentID || !s.HasCurrentContext {
		t.Fatalf("DeleteContext should pop back to parent %d, got %d", parentID, s.CurrentContextID)
	}

	if _, err := s.StartContext(NodeLiteralExpression); err != nil {
		t.Fatalf("StartContext replacement child: %v", err)
	}
	replacement, err := s.EndContext(&Node{Kind: NodeLiteralExpression, Leaf: true, Literal: "1"})
	if err != nil {
		t.Fatalf("EndContext replacement: %v", err)
	}
	if replacement.AttributeIndex != 0 {
		t.Fatalf("replacement child should reuse attribute index 0 since the deleted one never counted twice, got %d",
			replacement.AttributeIndex)
	}
}

func TestStateIncrementAttributeCounterSkipsSlot(t *testing.T) {
	s := newTestState(t, "1")

	if _, err := s.StartContext(NodeArithmeticExpression); err != nil {
		t.Fatalf("StartContext: %v", err)
	}
	s.IncrementAttributeCounter()

	if _, err := s.StartContext(NodeLiteralExpression); err != nil {
		t.Fatalf("StartContext: %v", err)
	}
	n, err := s.EndContext(&Node{Kind: NodeLiteralExpression, Leaf: true, Literal: "1"})
	if err != nil {
		t.Fatalf("EndContext: %v", err)
	}
	if n.AttributeIndex != 1 {
		t.Fatalf("attribute index = %d, want 1 (slot 0 was skipped)", n.AttributeIndex)
	}
}

func TestStateAssertDoneParsingDetectsLeftoverTokens(t *testing.T) {
	s := newTestState(t, "1 2")

	if err := s.AssertDoneParsing(); err == nil {
		t.Fatalf("expected an error with unconsumed tokens")
	}

	s.Advance()
	s.Advance()

	if err := s.AssertDoneParsing(); err != nil {
		t.Fatalf("expected no error once only EOF remains: %v", err)
	}
}
