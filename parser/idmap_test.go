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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCollectionStartEndContextBasic(t *testing.T) {
	c := NewCollection()

	ctx := c.startContext(1, NodeDocument, 0, false, Position{}, 0, false)
	if ctx.ID != 1 || ctx.Kind != NodeDocument {
		t.Fatalf("unexpected context %+v", ctx)
	}

	astNode := &Node{ID: 1, Kind: NodeDocument}
	parentID, hasParent, err := c.endContext(astNode)
	if err != nil {
		t.Fatalf("endContext: %v", err)
	}
	if hasParent {
		t.Fatalf("root context should have no parent, got %d", parentID)
	}

	if c.AST(1) == nil {
		t.Fatalf("expected AST(1) to be populated after endContext")
	}
	if c.Context(1) != nil {
		t.Fatalf("expected Context(1) to be cleared after endContext")
	}
}

func TestCollectionParentChildBookkeeping(t *testing.T) {
	c := NewCollection()

	c.startContext(1, NodeArithmeticExpression, 0, false, Position{}, 0, false)
	c.startContext(2, NodeLiteralExpression, 1, true, Position{}, 0, true)
	if _, _, err := c.endContext(&Node{ID: 2, Kind: NodeLiteralExpression, Leaf: true, Literal: "1"}); err != nil {
		t.Fatalf("endContext child: %v", err)
	}
	c.startContext(3, NodeLiteralExpression, 1, true, Position{}, 1, true)
	if _, _, err := c.endContext(&Node{ID: 3, Kind: NodeLiteralExpression, Leaf: true, Literal: "2"}); err != nil {
		t.Fatalf("endContext child: %v", err)
	}
	if _, _, err := c.endContext(&Node{ID: 1, Kind: NodeArithmeticExpression, Children: []*Node{
		c.AST(2), c.AST(3),
	}}); err != nil {
		t.Fatalf("endContext root: %v", err)
	}

	children := c.Children(1)
	if len(children) != 2 || children[0] != 2 || children[1] != 3 {
		t.Fatalf("Children(1) = %v, want [2 3]", children)
	}

	parentID, hasParent := c.Parent(2)
	if !hasParent || parentID != 1 {
		t.Fatalf("Parent(2) = (%d,%v), want (1,true)", parentID, hasParent)
	}
}

func TestCollectionStartContextAroundReparentsExisting(t *testing.T) {
	c := NewCollection()

	c.startContext(1, NodeArrayWrapper, 0, false, Position{}, 0, false)
	c.startContext(2, NodeLiteralExpression, 1, true, Position{}, 0, true)
	left := &Node{ID: 2, Kind: NodeLiteralExpression, Leaf: true, Literal: "1"}
	if _, _, err := c.endContext(left); err != nil {
		t.Fatalf("endContext: %v", err)
	}

	ctx := c.startContextAround(3, NodeArithmeticExpression, Position{}, left)
	if ctx.ParentID != 1 || !ctx.HasParent {
		t.Fatalf("new wrapper should inherit left's old parent, got %+v", ctx)
	}

	siblings := c.Children(1)
	if len(siblings) != 1 || siblings[0] != 3 {
		t.Fatalf("parent's children should now be [3], got %v", siblings)
	}

	wrapperChildren := c.Children(3)
	if len(wrapperChildren) != 1 || wrapperChildren[0] != 2 {
		t.Fatalf("wrapper's children should be [2], got %v", wrapperChildren)
	}

	if left.AttributeIndex != 0 || !left.HasAttributeIndex {
		t.Fatalf("reparented node should be attribute index 0, got %+v", left)
	}
}

func TestCollectionStartContextAroundManyReparentsRun(t *testing.T) {
	c := NewCollection()

	c.startContext(1, NodeArrayWrapper, 0, false, Position{}, 0, false)
	mk := func(id int, attr int, lit string) *Node {
		c.startContext(id, NodeLiteralExpression, 1, true, Position{}, attr, true)
		n := &Node{ID: id, Kind: NodeLiteralExpression, Leaf: true, Literal: lit}
		if _, _, err := c.endContext(n); err != nil {
			t.Fatalf("endContext: %v", err)
		}
		return n
	}

	left := mk(2, 0, "1")
	opConst := mk(3, 1, "+")
	right := mk(4, 2, "2")

	c.startContextAroundMany(5, NodeArithmeticExpression, Position{}, []*Node{left, opConst, right})

	siblings := c.Children(1)
	if len(siblings) != 1 || siblings[0] != 5 {
		t.Fatalf("parent's children should collapse to [5], got %v", siblings)
	}

	combinedChildren := c.Children(5)
	if len(combinedChildren) != 3 || combinedChildren[0] != 2 || combinedChildren[1] != 3 || combinedChildren[2] != 4 {
		t.Fatalf("combined node's children should be [2 3 4], got %v", combinedChildren)
	}

	if left.AttributeIndex != 0 || opConst.AttributeIndex != 1 || right.AttributeIndex != 2 {
		t.Fatalf("reparented attribute indices wrong: %d %d %d",
			left.AttributeIndex, opConst.AttributeIndex, right.AttributeIndex)
	}
}

func TestCollectionDeleteContextRemovesSubtree(t *testing.T) {
	c := NewCollection()

	c.startContext(1, NodeArithmeticExpression, 0, false, Position{}, 0, false)
	c.startContext(2, NodeLiteralExpression, 1, true, Position{}, 0, true)

	parentID, hasParent := c.deleteContext(2)
	if !hasParent || parentID != 1 {
		t.Fatalf("deleteContext should report parent (1,true), got (%d,%v)", parentID, hasParent)
	}
	if c.Context(2) != nil {
		t.Fatalf("context 2 should be gone")
	}
	if len(c.Children(1)) != 0 {
		t.Fatalf("parent should have no children left, got %v", c.Children(1))
	}
}

func TestCollectionRecalculateIdsIsContiguousAndFresh(t *testing.T) {
	c := NewCollection()

	c.startContext(10, NodeArithmeticExpression, 0, false, Position{}, 0, false)
	c.startContext(20, NodeLiteralExpression, 10, true, Position{}, 0, true)
	if _, _, err := c.endContext(&Node{ID: 20, Kind: NodeLiteralExpression, Leaf: true, Literal: "1"}); err != nil {
		t.Fatalf("endContext: %v", err)
	}
	c.startContext(30, NodeLiteralExpression, 10, true, Position{}, 1, true)
	if _, _, err := c.endContext(&Node{ID: 30, Kind: NodeLiteralExpression, Leaf: true, Literal: "2"}); err != nil {
		t.Fatalf("endContext: %v", err)
	}

	mapping, next := c.recalculateIds(10, 100)
	want := map[int]int{10: 100, 20: 101, 30: 102}
	if diff := cmp.Diff(want, mapping); diff != "" {
		t.Fatalf("unexpected mapping (-want +got):\n%s", diff)
	}
	if next != 103 {
		t.Fatalf("next = %d, want 103", next)
	}

	c.updateNodeIds(mapping)

	if c.Context(100) == nil {
		t.Fatalf("expected a context at renumbered id 100")
	}
	children := c.Children(100)
	if len(children) != 2 || children[0] != 101 || children[1] != 102 {
		t.Fatalf("renumbered children = %v, want [101 102]", children)
	}
}
