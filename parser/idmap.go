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
	"fmt"
	"sort"

	"github.com/krotik/common/errorutil"
	"github.com/krotik/common/stringutil"
)

/*
ContextNode is an AST node still under construction. It lives in a
Collection's context map until endContext promotes it to an AST node, or
deleteContext discards it and its descendants.
*/
type ContextNode struct {
	ID    int
	Kind  NodeKind
	Start Position // token position at which the node started

	ParentID  int
	HasParent bool

	AttributeIndex    int // this context's own slot under its parent
	HasAttributeIndex bool

	AttributeCounter int // how many direct children, present or skipped, have been accounted for
}

/*
Collection is the mutable graph of in-progress and completed nodes a parse
maintains: NodeIdMap.Collection in spec.md terms. Every id appears in
exactly one of astNodeByID/contextNodeByID (invariant 1); parentIDByID and
childIDsByID are kept in lock-step (invariant 2).
*/
type Collection struct {
	astNodeByID     map[int]*Node
	contextNodeByID map[int]*ContextNode
	parentIDByID    map[int]int
	childIDsByID    map[int][]int
	idsByNodeKind   map[NodeKind]map[int]bool
}

/*
NewCollection returns an empty id map.
*/
func NewCollection() *Collection {
	return &Collection{
		astNodeByID:     make(map[int]*Node),
		contextNodeByID: make(map[int]*ContextNode),
		parentIDByID:    make(map[int]int),
		childIDsByID:    make(map[int][]int),
		idsByNodeKind:   make(map[NodeKind]map[int]bool),
	}
}

/*
Context returns the context node for id, or nil if id does not name an
in-progress node.
*/
func (c *Collection) Context(id int) *ContextNode {
	return c.contextNodeByID[id]
}

/*
AST returns the completed AST node for id, or nil if id does not name a
completed node.
*/
func (c *Collection) AST(id int) *Node {
	return c.astNodeByID[id]
}

/*
Parent returns the parent id of id and whether id has a parent at all.
*/
func (c *Collection) Parent(id int) (int, bool) {
	p, ok := c.parentIDByID[id]
	return p, ok
}

/*
Children returns the ordered child ids of id.
*/
func (c *Collection) Children(id int) []int {
	return c.childIDsByID[id]
}

/*
IDsOfKind returns every id (context or AST) currently tagged with kind, for
fast kind lookup.
*/
func (c *Collection) IDsOfKind(kind NodeKind) []int {
	set := c.idsByNodeKind[kind]
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

/*
registerKind records id under kind in idsByNodeKind.
*/
func (c *Collection) registerKind(kind NodeKind, id int) {
	set, ok := c.idsByNodeKind[kind]
	if !ok {
		set = make(map[int]bool)
		c.idsByNodeKind[kind] = set
	}
	set[id] = true
}

func (c *Collection) unregisterKind(kind NodeKind, id int) {
	if set, ok := c.idsByNodeKind[kind]; ok {
		delete(set, id)
	}
}

/*
startContext mints context id and, if parentID is present, appends id to
childIDsByID[parentID] with attributeIndex parentCounter and sets
parentIDByID[id]=parentID. The parent's attribute counter is incremented by
the caller (State.StartContext), which already holds the parent's
ContextNode.
*/
func (c *Collection) startContext(id int, kind NodeKind, parentID int, hasParent bool, start Position, attributeIndex int, hasAttributeIndex bool) *ContextNode {
	ctx := &ContextNode{
		ID: id, Kind: kind, Start: start, ParentID: parentID, HasParent: hasParent,
		AttributeIndex: attributeIndex, HasAttributeIndex: hasAttributeIndex,
	}
	c.contextNodeByID[id] = ctx

	if hasParent {
		c.parentIDByID[id] = parentID
		c.childIDsByID[parentID] = append(c.childIDsByID[parentID], id)
	}

	c.registerKind(kind, id)

	return ctx
}

/*
startContextAround mints a new context id that takes over existing's slot
under existing's old parent (if any), then reparents existing as the new
context's first child (attribute index 0). Used by the BinOp ladder (the
left operand is read before its wrapper's kind is known to be needed) and by
recursive-primary-expression shaping (spec.md §4.7), which additionally
renumbers the resulting subtree — see State.RenumberSubtree.
*/
func (c *Collection) startContextAround(id int, kind NodeKind, start Position, existing *Node) *ContextNode {
	oldParentID, hadOldParent := c.parentIDByID[existing.ID]

	if hadOldParent {
		c.detachChild(oldParentID, existing.ID)
	}

	ctx := &ContextNode{
		ID: id, Kind: kind, Start: start,
		ParentID: oldParentID, HasParent: hadOldParent,
		AttributeIndex: existing.AttributeIndex, HasAttributeIndex: existing.HasAttributeIndex,
		AttributeCounter: 1,
	}
	c.contextNodeByID[id] = ctx
	c.registerKind(kind, id)

	if hadOldParent {
		c.parentIDByID[id] = oldParentID
		c.childIDsByID[oldParentID] = append(c.childIDsByID[oldParentID], id)
	}

	c.parentIDByID[existing.ID] = id
	c.childIDsByID[id] = append(c.childIDsByID[id], existing.ID)
	existing.AttributeIndex = 0
	existing.HasAttributeIndex = true

	return ctx
}

/*
startContextAroundMany is startContextAround generalized to a contiguous run
of existing sibling nodes (spec.md §4.7's combinatorial BinOp reducer, which
combines an operator with its immediate left/right operands after both were
already fully read): all of existing must currently be consecutive entries
under the same former parent; they become, in order, the new context's
children.
*/
func (c *Collection) startContextAroundMany(id int, kind NodeKind, start Position, existing []*Node) *ContextNode {
	first := existing[0]
	oldParentID, hadOldParent := c.parentIDByID[first.ID]

	ctx := &ContextNode{
		ID: id, Kind: kind, Start: start, ParentID: oldParentID, HasParent: hadOldParent,
		AttributeIndex: first.AttributeIndex, HasAttributeIndex: first.HasAttributeIndex,
		AttributeCounter: len(existing),
	}
	c.contextNodeByID[id] = ctx
	c.registerKind(kind, id)

	if hadOldParent {
		siblings := c.childIDsByID[oldParentID]
		startIdx := -1
		for i, sid := range siblings {
			if sid == first.ID {
				startIdx = i
				break
			}
		}
		errorutil.AssertTrue(startIdx >= 0, "startContextAroundMany: first existing node not found under old parent")

		newSiblings := make([]int, 0, len(siblings)-len(existing)+1)
		newSiblings = append(newSiblings, siblings[:startIdx]...)
		newSiblings = append(newSiblings, id)
		newSiblings = append(newSiblings, siblings[startIdx+len(existing):]...)
		c.childIDsByID[oldParentID] = newSiblings
		c.parentIDByID[id] = oldParentID
	}

	children := make([]int, len(existing))
	for i, n := range existing {
		c.parentIDByID[n.ID] = id
		n.AttributeIndex = i
		n.HasAttributeIndex = true
		children[i] = n.ID
	}
	c.childIDsByID[id] = children

	return ctx
}

/*
endContext requires that the context matches astNode's id and kind, moves it
from the context map to the AST map, and returns the parent id (if any) so
the caller can re-seat the current-context pointer.
*/
func (c *Collection) endContext(astNode *Node) (int, bool, error) {
	ctx, ok := c.contextNodeByID[astNode.ID]
	if !ok {
		return 0, false, c.invariantError(1, fmt.Sprintf(
			"endContext: id %d is not an open context", astNode.ID))
	}

	errorutil.AssertTrue(ctx.Kind == astNode.Kind,
		fmt.Sprintf("endContext: context kind %v does not match ast node kind %v", ctx.Kind, astNode.Kind))

	delete(c.contextNodeByID, astNode.ID)
	c.astNodeByID[astNode.ID] = astNode

	return ctx.ParentID, ctx.HasParent, nil
}

/*
deleteContext removes id and every descendant context/AST node from every
map, and detaches id from its parent's child list. Returns the parent id (if
any) so the caller can re-seat the current-context pointer.
*/
func (c *Collection) deleteContext(id int) (int, bool) {
	parentID, hasParent := c.parentIDByID[id]

	c.deleteSubtree(id)

	if hasParent {
		c.detachChild(parentID, id)
	}

	return parentID, hasParent
}

func (c *Collection) deleteSubtree(id int) {
	for _, childID := range append([]int(nil), c.childIDsByID[id]...) {
		c.deleteSubtree(childID)
	}

	if ctx, ok := c.contextNodeByID[id]; ok {
		c.unregisterKind(ctx.Kind, id)
		delete(c.contextNodeByID, id)
	}
	if n, ok := c.astNodeByID[id]; ok {
		c.unregisterKind(n.Kind, id)
		delete(c.astNodeByID, id)
	}

	delete(c.parentIDByID, id)
	delete(c.childIDsByID, id)
}

func (c *Collection) detachChild(parentID, childID int) {
	children := c.childIDsByID[parentID]
	for i, id := range children {
		if id == childID {
			c.childIDsByID[parentID] = append(children[:i], children[i+1:]...)
			break
		}
	}
}

/*
invariantError builds an InvariantError carrying the violated invariant's
number as structured detail.
*/
func (c *Collection) invariantError(invariant int, detail string) error {
	return &Error{
		Kind:   ErrInvariantError,
		Detail: fmt.Sprintf("invariant %d violated: %v", invariant, detail),
	}
}

/*
recalculateIds walks the subtree rooted at root (parent before children,
children in attribute-index order) and assigns fresh contiguous ids starting
at nextID. It returns the old->new id mapping; it does not itself rewrite
any map (see updateNodeIds).
*/
func (c *Collection) recalculateIds(root int, nextID int) (map[int]int, int) {
	mapping := make(map[int]int)

	var walk func(id int)
	walk = func(id int) {
		mapping[id] = nextID
		nextID++
		for _, childID := range c.childIDsByID[id] {
			walk(childID)
		}
	}
	walk(root)

	return mapping, nextID
}

/*
updateNodeIds rewrites every reference in every id-keyed map consistently
according to mapping (old id -> new id). Both the context and AST maps are
rewritten since a subtree being renumbered may straddle completed and
in-progress nodes (recursive primary shaping reparents a completed head
under a still-open RecursivePrimaryExpression context). AST nodes are
renumbered in place, so a tree already handed back by a production carries
the new ids, and the child list of a parent outside mapping is rewritten
too.
*/
func (c *Collection) updateNodeIds(mapping map[int]int) {
	remapAST := make(map[int]*Node, len(mapping))
	remapContext := make(map[int]*ContextNode, len(mapping))
	remapParent := make(map[int]int, len(mapping))
	remapChildren := make(map[int][]int, len(mapping))

	rewrite := func(id int) int {
		if newID, ok := mapping[id]; ok {
			return newID
		}
		return id
	}

	for oldID, newID := range mapping {
		if n, ok := c.astNodeByID[oldID]; ok {
			c.unregisterKind(n.Kind, oldID)
			n.ID = newID
			remapAST[newID] = n
		}
		if ctx, ok := c.contextNodeByID[oldID]; ok {
			c.unregisterKind(ctx.Kind, oldID)
			ctxCopy := *ctx
			ctxCopy.ID = newID
			if ctxCopy.HasParent {
				ctxCopy.ParentID = rewrite(ctxCopy.ParentID)
			}
			remapContext[newID] = &ctxCopy
		}

		if parentID, ok := c.parentIDByID[oldID]; ok {
			remapParent[newID] = rewrite(parentID)
		}

		if children, ok := c.childIDsByID[oldID]; ok {
			newChildren := make([]int, len(children))
			for i, childID := range children {
				newChildren[i] = rewrite(childID)
			}
			remapChildren[newID] = newChildren
		}
	}

	for oldID := range mapping {
		delete(c.astNodeByID, oldID)
		delete(c.contextNodeByID, oldID)
		delete(c.parentIDByID, oldID)
		delete(c.childIDsByID, oldID)
	}

	for newID, n := range remapAST {
		c.astNodeByID[newID] = n
		c.registerKind(n.Kind, newID)
	}
	for newID, ctx := range remapContext {
		c.contextNodeByID[newID] = ctx
		c.registerKind(ctx.Kind, newID)
	}
	for newID, parentID := range remapParent {
		c.parentIDByID[newID] = parentID
	}
	for newID, children := range remapChildren {
		c.childIDsByID[newID] = children
	}
	for parentID, children := range c.childIDsByID {
		if _, ok := remapChildren[parentID]; !ok {
			for i, childID := range children {
				children[i] = rewrite(childID)
			}
		}
	}
}

/*
dropAbove removes every id strictly greater than maxID from every map, for
use by Checkpoint.Restore.
*/
func (c *Collection) dropAbove(maxID int) {
	for id := range c.contextNodeByID {
		if id > maxID {
			c.deleteSubtree(id)
		}
	}
	for id := range c.astNodeByID {
		if id > maxID {
			c.deleteSubtree(id)
		}
	}
	for parentID, children := range c.childIDsByID {
		kept := children[:0:0]
		for _, childID := range children {
			if childID <= maxID {
				kept = append(kept, childID)
			}
		}
		c.childIDsByID[parentID] = kept
	}
}

/*
ToDebugString renders a one-line-per-node dump of every node currently in
the collection (context nodes marked with a trailing "*"), in id order.
Used by the CLI parse command, never by the parser itself.
*/
func (c *Collection) ToDebugString() string {
	var buf bytes.Buffer

	ids := make([]int, 0, len(c.astNodeByID)+len(c.contextNodeByID))
	for id := range c.astNodeByID {
		ids = append(ids, id)
	}
	for id := range c.contextNodeByID {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		parentID, hasParent := c.parentIDByID[id]
		parentStr := "-"
		if hasParent {
			parentStr = fmt.Sprintf("%d", parentID)
		}

		if n, ok := c.astNodeByID[id]; ok {
			fmt.Fprintf(&buf, "%s#%d %v parent=%s attr=%d\n",
				stringutil.GenerateRollingString(" ", 0), id, n.Kind, parentStr, n.AttributeIndex)
		} else if ctx, ok := c.contextNodeByID[id]; ok {
			fmt.Fprintf(&buf, "#%d %v* parent=%s\n", id, ctx.Kind, parentStr)
		}
	}

	return buf.String()
}
