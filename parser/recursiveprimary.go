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
readRecursivePrimaryExpression reshapes an already-completed primary-
expression head into a RecursivePrimaryExpression node (spec.md §4.7): head
is detached from its former parent and reattached as the new node's first
child, then each trailing "(" invoke, "{" item-access, or "[" field
selection/projection suffix is read as a further child; an item-access,
field-selection or field-projection suffix may end in "?", kept as a
Constant child of that suffix. The subtree is
renumbered at the end so its ids stay dense.
*/
func readRecursivePrimaryExpression(s *State, p *Parser, parent CorrelationID, head *Node) (*Node, error) {
	return trace(s, "Primary", "readRecursivePrimaryExpression", parent, func(id CorrelationID) (*Node, error) {
		ctx, err := s.StartContextAround(NodeRecursivePrimaryExpression, head)
		if err != nil {
			return nil, err
		}
		rootID := ctx.ID

		children := []*Node{head}

		for {
			var suffix *Node
			var err error

			switch {
			case s.TestKind(KindLeftParen):
				suffix, err = readInvokeExpression(s, p, id)
			case s.TestKind(KindLeftBrace):
				suffix, err = readItemAccessExpression(s, p, id)
			case s.TestKind(KindLeftBracket):
				suffix, err = readFieldSelectorOrProjection(s, p, id)
			default:
				suffix = nil
			}
			if err != nil {
				return nil, err
			}
			if suffix == nil {
				break
			}
			children = append(children, suffix)
		}

		node, err := s.EndContext(&Node{Kind: NodeRecursivePrimaryExpression, Children: children})
		if err != nil {
			return nil, err
		}

		s.RenumberSubtree(rootID)

		return node, nil
	})
}

/*
readInvokeExpression reads a "(" csv-of-expression ")" suffix.
*/
func readInvokeExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Primary", "readInvokeExpression", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeInvokeExpression); err != nil {
			return nil, err
		}

		leftParen, err := readConstant(s, p, id, KindLeftParen)
		if err != nil {
			return nil, err
		}

		args, err := readCsvArray(s, p, id,
			func(itemParent CorrelationID) (*Node, error) { return p.ReadExpression(s, p, itemParent) },
			func() bool { return s.TestKind(KindRightParen) })
		if err != nil {
			return nil, err
		}

		rightParen, err := readConstant(s, p, id, KindRightParen)
		if err != nil {
			return nil, err
		}

		return s.EndContext(&Node{Kind: NodeInvokeExpression, Children: []*Node{leftParen, args, rightParen}})
	})
}

/*
readItemAccessExpression reads a "{" expression "}" suffix, with an optional
trailing "?" marking the access as optional (the item being absent yields
null instead of an error).
*/
func readItemAccessExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Primary", "readItemAccessExpression", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeItemAccessExpression); err != nil {
			return nil, err
		}

		leftBrace, err := readConstant(s, p, id, KindLeftBrace)
		if err != nil {
			return nil, err
		}

		item, err := p.ReadExpression(s, p, id)
		if err != nil {
			return nil, err
		}

		rightBrace, err := readConstant(s, p, id, KindRightBrace)
		if err != nil {
			return nil, err
		}

		children := []*Node{leftBrace, item, rightBrace}

		if s.TestKind(KindQuestionMark) {
			q, err := readConstant(s, p, id, KindQuestionMark)
			if err != nil {
				return nil, err
			}
			children = append(children, q)
		} else {
			s.IncrementAttributeCounter()
		}

		return s.EndContext(&Node{Kind: NodeItemAccessExpression, Children: children})
	})
}

/*
readFieldSelectorOrProjection resolves the bracket ambiguity at the current
"[" for a recursive-primary suffix position, where a record expression is
not a valid outcome (spec.md §4.7) — only field-selector or field-
projection. readPrimaryExpression's own "[" dispatch (primary-expression
start) goes through readRecordExpression instead, which additionally allows
the record-expression outcome.
*/
func readFieldSelectorOrProjection(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	switch disambiguateBracket(s) {
	case bracketCandidateFieldProjection:
		return readFieldProjection(s, p, parent)
	default:
		return readFieldSelector(s, p, parent)
	}
}

/*
readFieldSelector reads "[" generalizedIdentifier "]" optional-"?".
*/
func readFieldSelector(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Primary", "readFieldSelector", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeFieldSelector); err != nil {
			return nil, err
		}

		leftBracket, err := readConstant(s, p, id, KindLeftBracket)
		if err != nil {
			return nil, err
		}

		name, err := p.ReadGeneralizedIdentifier(s, p, id)
		if err != nil {
			return nil, err
		}

		rightBracket, err := readConstant(s, p, id, KindRightBracket)
		if err != nil {
			return nil, err
		}

		children := []*Node{leftBracket, name, rightBracket}

		if s.TestKind(KindQuestionMark) {
			q, err := readConstant(s, p, id, KindQuestionMark)
			if err != nil {
				return nil, err
			}
			children = append(children, q)
		} else {
			s.IncrementAttributeCounter()
		}

		return s.EndContext(&Node{Kind: NodeFieldSelector, Children: children})
	})
}

/*
readFieldProjection reads "[" "[" generalizedIdentifier "]" ("," "["
generalizedIdentifier "]")* "]" optional-"?".
*/
func readFieldProjection(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Primary", "readFieldProjection", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeFieldProjection); err != nil {
			return nil, err
		}

		leftBracket, err := readConstant(s, p, id, KindLeftBracket)
		if err != nil {
			return nil, err
		}

		names, err := readCsvArray(s, p, id,
			func(itemParent CorrelationID) (*Node, error) { return readBracketedGeneralizedIdentifier(s, p, itemParent) },
			func() bool { return s.TestKind(KindRightBracket) })
		if err != nil {
			return nil, err
		}

		rightBracket, err := readConstant(s, p, id, KindRightBracket)
		if err != nil {
			return nil, err
		}

		children := []*Node{leftBracket, names, rightBracket}

		if s.TestKind(KindQuestionMark) {
			q, err := readConstant(s, p, id, KindQuestionMark)
			if err != nil {
				return nil, err
			}
			children = append(children, q)
		} else {
			s.IncrementAttributeCounter()
		}

		return s.EndContext(&Node{Kind: NodeFieldProjection, Children: children})
	})
}

/*
readBracketedGeneralizedIdentifier reads one "[" generalizedIdentifier "]"
entry of a field projection's name list.
*/
func readBracketedGeneralizedIdentifier(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Primary", "readBracketedGeneralizedIdentifier", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeFieldSelector); err != nil {
			return nil, err
		}

		leftBracket, err := readConstant(s, p, id, KindLeftBracket)
		if err != nil {
			return nil, err
		}

		name, err := p.ReadGeneralizedIdentifier(s, p, id)
		if err != nil {
			return nil, err
		}

		rightBracket, err := readConstant(s, p, id, KindRightBracket)
		if err != nil {
			return nil, err
		}

		return s.EndContext(&Node{Kind: NodeFieldSelector, Children: []*Node{leftBracket, name, rightBracket}})
	})
}
