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

func TestRecursivePrimaryChainsInvokeItemAccessFieldSelector(t *testing.T) {
	n, _ := mustParseNaive(t, "f(1)[k]{0}")
	root := documentBody(n)

	if root.Kind != NodeRecursivePrimaryExpression {
		t.Fatalf("root kind = %v, want NodeRecursivePrimaryExpression", root.Kind)
	}
	if len(root.Children) != 4 {
		t.Fatalf("children = %d, want 4 (head + invoke + selector + item-access)", len(root.Children))
	}

	head, invoke, selector, itemAccess := root.Children[0], root.Children[1], root.Children[2], root.Children[3]
	if head.Kind != NodeIdentifierExpression {
		t.Fatalf("head kind = %v, want NodeIdentifierExpression", head.Kind)
	}
	if invoke.Kind != NodeInvokeExpression {
		t.Fatalf("children[1] kind = %v, want NodeInvokeExpression", invoke.Kind)
	}
	if selector.Kind != NodeFieldSelector {
		t.Fatalf("children[2] kind = %v, want NodeFieldSelector", selector.Kind)
	}
	if itemAccess.Kind != NodeItemAccessExpression {
		t.Fatalf("children[3] kind = %v, want NodeItemAccessExpression", itemAccess.Kind)
	}
}

func TestRecursivePrimaryFieldProjection(t *testing.T) {
	n, _ := mustParseNaive(t, "r[[a], [b]]")
	root := documentBody(n)

	if root.Kind != NodeRecursivePrimaryExpression {
		t.Fatalf("root kind = %v, want NodeRecursivePrimaryExpression", root.Kind)
	}
	if len(root.Children) != 2 {
		t.Fatalf("children = %d, want 2 (head + projection)", len(root.Children))
	}
	if root.Children[1].Kind != NodeFieldProjection {
		t.Fatalf("children[1] kind = %v, want NodeFieldProjection", root.Children[1].Kind)
	}
}

func TestRecursivePrimaryOptionalItemAccess(t *testing.T) {
	n, _ := mustParseNaive(t, "f{0}?")
	root := documentBody(n)

	itemAccess := root.Children[1]
	if itemAccess.Kind != NodeItemAccessExpression {
		t.Fatalf("children[1] kind = %v, want NodeItemAccessExpression", itemAccess.Kind)
	}
	last := itemAccess.Children[len(itemAccess.Children)-1]
	if last.Literal != "?" {
		t.Fatalf("expected a trailing '?' constant, got %q", last.Literal)
	}
}

func TestRecursivePrimaryRenumberedSubtreeHasDenseIds(t *testing.T) {
	_, s := mustParseNaive(t, "f(1)[k]{0}")

	ids := s.IDMap.IDsOfKind(NodeRecursivePrimaryExpression)
	if len(ids) != 1 {
		t.Fatalf("expected exactly one RecursivePrimaryExpression, got %v", ids)
	}

	var collect func(id int, seen map[int]bool)
	collect = func(id int, seen map[int]bool) {
		seen[id] = true
		for _, childID := range s.IDMap.Children(id) {
			collect(childID, seen)
		}
	}
	seen := map[int]bool{}
	collect(ids[0], seen)

	min, max := ids[0], ids[0]
	for id := range seen {
		if id < min {
			min = id
		}
		if id > max {
			max = id
		}
	}
	if max-min+1 != len(seen) {
		t.Fatalf("subtree ids are not dense: span [%d,%d] but only %d ids present", min, max, len(seen))
	}
}
