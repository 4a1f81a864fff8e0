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

/*
readConstant consumes the current token, which must have kind k, and wraps
it in a leaf NodeConstant carrying the token's literal (or its kind's label,
for punctuation/keyword tokens that carry no literal text of their own).
Keyword and punctuation tokens materialize as their own Constant children
throughout the grammar (e.g. IfExpression's "if"/"then"/"else"), mirroring
the published M grammar's concrete syntax tree.
*/
func readConstant(s *State, p *Parser, parent CorrelationID, k Kind) (*Node, error) {
	return trace(s, "Structural", "readConstant", parent, func(id CorrelationID) (*Node, error) {
		if !s.TestKind(k) {
			return nil, newExpectedTokenKindError(s, k)
		}

		if _, err := s.StartContext(NodeConstant); err != nil {
			return nil, err
		}

		text := s.CurrentToken().Literal
		if text == "" {
			text = k.String()
		}

		if err := s.Advance(); err != nil {
			return nil, err
		}

		return s.EndContext(&Node{Kind: NodeConstant, Leaf: true, Literal: text, Operator: text})
	})
}

/*
readAnyConstant is readConstant generalized over a set of acceptable kinds,
used where the grammar accepts one of several operator tokens at the same
slot (e.g. a BinOp's operator, or a unary operator).
*/
func readAnyConstant(s *State, p *Parser, parent CorrelationID, kinds ...Kind) (*Node, error) {
	return trace(s, "Structural", "readAnyConstant", parent, func(id CorrelationID) (*Node, error) {
		if !s.TestAnyOfKind(kinds...) {
			return nil, newExpectedAnyTokenKindError(s, kinds)
		}
		return readConstant(s, p, id, s.CurrentKind)
	})
}

/*
pairedConstant reads a keyword Constant followed by a value (e.g. "as" + a
type) as a NodePairedConstant, per spec.md's "paired constant" internal
structural node. Both readers must be called only after the wrapping
context is open, so they are driven from inside this helper rather than
accepting already-built nodes — a node's id-map parent is fixed at the
moment its own context starts, not by what it is later placed into.
*/
func pairedConstant(s *State, p *Parser, parent CorrelationID, kind NodeKind,
	readConstantFn, readValueFn func(CorrelationID) (*Node, error)) (*Node, error) {

	if _, err := s.StartContext(kind); err != nil {
		return nil, err
	}

	c, err := readConstantFn(parent)
	if err != nil {
		return nil, err
	}

	v, err := readValueFn(parent)
	if err != nil {
		return nil, err
	}

	return s.EndContext(&Node{Kind: kind, Children: []*Node{c, v}})
}

/*
arrayWrapper wraps a homogeneous sequence of sibling nodes (e.g. the csv
sequence of a record's fields) as a NodeArrayWrapper, per spec.md's internal
"comma-separated array" shape. The context must already be open when items
is empty (a production may open the ArrayWrapper context before knowing
whether the list is empty).
*/
func arrayWrapper(s *State, items []*Node) (*Node, error) {
	return s.EndContext(&Node{Kind: NodeArrayWrapper, Children: items})
}

/*
csvNode wraps one value and its optional trailing comma Constant as a
NodeCsv, per spec.md's "comma-separated value" internal structural node.
comma is nil for the final item in a list with no open marker following.
*/
func csvNode(s *State, value, comma *Node) (*Node, error) {
	if _, err := s.StartContext(NodeCsv); err != nil {
		return nil, err
	}
	children := []*Node{value}
	if comma != nil {
		children = append(children, comma)
	} else {
		s.IncrementAttributeCounter()
	}
	return s.EndContext(&Node{Kind: NodeCsv, Children: children})
}

/*
readCsvArray reads a comma-separated, bracket-delimited-by-the-caller
sequence of items produced by readItem, stopping when stop reports true for
the current token kind. A trailing comma directly before a token on which
stop reports true is ExpectedCsvContinuation, unless that token is a `...`
open-record marker (only readFieldSpecificationList's stop accepts one).
*/
func readCsvArray(s *State, p *Parser, parent CorrelationID, readItem func(CorrelationID) (*Node, error), stop func() bool) (*Node, error) {
	if _, err := s.StartContext(NodeArrayWrapper); err != nil {
		return nil, err
	}

	var items []*Node

	for !stop() {
		value, err := readItem(parent)
		if err != nil {
			return nil, err
		}

		var comma *Node
		if s.TestKind(KindComma) {
			comma, err = readConstant(s, p, parent, KindComma)
			if err != nil {
				return nil, err
			}
			if stop() && !s.TestKind(KindEllipsis) {
				return nil, newExpectedCsvContinuationError(s)
			}
		}

		item, err := csvNode(s, value, comma)
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		if comma == nil {
			break
		}
	}

	return arrayWrapper(s, items)
}
