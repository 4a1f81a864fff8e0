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
readParenthesizedExpression reads "(" expression ")". By the time control
reaches here, readExpression has already ruled out the function-expression
reading for this exact "(" (spec.md §4.6) — a "(" reached as a BinOp operand
rather than through a fresh readExpression call is never a function
expression in this grammar, since a function expression is reachable only at
expression positions, not as an operand.
*/
func readParenthesizedExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Primary", "readParenthesizedExpression", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeParenthesizedExpression); err != nil {
			return nil, err
		}

		leftParen, err := readConstant(s, p, id, KindLeftParen)
		if err != nil {
			return nil, err
		}

		inner, err := p.ReadExpression(s, p, id)
		if err != nil {
			return nil, err
		}

		rightParen, err := readConstant(s, p, id, KindRightParen)
		if err != nil {
			return nil, err
		}

		return s.EndContext(&Node{Kind: NodeParenthesizedExpression, Children: []*Node{leftParen, inner, rightParen}})
	})
}

/*
readFunctionExpression reads ParameterList ("as" nullablePrimitiveType)?
"=>" expression. Only reached from readExpression, once disambiguateParenthesis
has already resolved the current "(" to a function expression.
*/
func readFunctionExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Primary", "readFunctionExpression", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeFunctionExpression); err != nil {
			return nil, err
		}

		params, err := p.ReadParameterList(s, p, id)
		if err != nil {
			return nil, err
		}

		var returnType *Node
		if s.TestKind(KindKeywordAs) {
			rt, err := pairedConstant(s, p, id, NodePairedConstant,
				func(pp CorrelationID) (*Node, error) { return readConstant(s, p, pp, KindKeywordAs) },
				func(pp CorrelationID) (*Node, error) { return p.ReadNullablePrimitiveType(s, p, pp) })
			if err != nil {
				return nil, err
			}
			returnType = rt
		} else {
			s.IncrementAttributeCounter()
		}

		fatArrow, err := readConstant(s, p, id, KindFatArrow)
		if err != nil {
			return nil, err
		}

		body, err := p.ReadExpression(s, p, id)
		if err != nil {
			return nil, err
		}

		children := []*Node{params}
		if returnType != nil {
			children = append(children, returnType)
		}
		children = append(children, fatArrow, body)

		return s.EndContext(&Node{Kind: NodeFunctionExpression, Children: children})
	})
}

/*
readListExpression reads "{" csv-of-expression "}".
*/
func readListExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Primary", "readListExpression", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeListExpression); err != nil {
			return nil, err
		}

		leftBrace, err := readConstant(s, p, id, KindLeftBrace)
		if err != nil {
			return nil, err
		}

		readItem := func(itemParent CorrelationID) (*Node, error) { return p.ReadExpression(s, p, itemParent) }

		items, err := readCsvArray(s, p, id, readItem, func() bool { return s.TestKind(KindRightBrace) })
		if err != nil {
			return nil, err
		}

		rightBrace, err := readConstant(s, p, id, KindRightBrace)
		if err != nil {
			return nil, err
		}

		return s.EndContext(&Node{Kind: NodeListExpression, Children: []*Node{leftBrace, items, rightBrace}})
	})
}

/*
readRecordExpression resolves the bracket ambiguity at the current "[" for a
primary-expression-start position (spec.md §4.6): a record expression, or —
permissively, since this is a syntax-only parser with no semantic rejection
of a bare selector/projection at expression start — a field selector or
field projection.
*/
func readRecordExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	switch disambiguateBracket(s) {
	case bracketCandidateFieldProjection:
		return readFieldProjection(s, p, parent)
	case bracketCandidateFieldSelector:
		return readFieldSelector(s, p, parent)
	default:
		return readRecordLiteralExpression(s, p, parent)
	}
}

/*
readRecordLiteralExpression reads "[" csv-of-(generalizedIdentifier "="
expression) "]".
*/
func readRecordLiteralExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Primary", "readRecordExpression", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeRecordExpression); err != nil {
			return nil, err
		}

		leftBracket, err := readConstant(s, p, id, KindLeftBracket)
		if err != nil {
			return nil, err
		}

		readField := func(itemParent CorrelationID) (*Node, error) { return readGeneralizedIdentifierPairedExpression(s, p, itemParent) }

		fields, err := readCsvArray(s, p, id, readField, func() bool { return s.TestKind(KindRightBracket) })
		if err != nil {
			return nil, err
		}

		rightBracket, err := readConstant(s, p, id, KindRightBracket)
		if err != nil {
			return nil, err
		}

		return s.EndContext(&Node{Kind: NodeRecordExpression, Children: []*Node{leftBracket, fields, rightBracket}})
	})
}

/*
readGeneralizedIdentifierPairedExpression reads generalizedIdentifier "="
expression, the shape of one record field.
*/
func readGeneralizedIdentifierPairedExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Primary", "readGeneralizedIdentifierPairedExpression", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeGeneralizedIdentifierPairedExpression); err != nil {
			return nil, err
		}

		name, err := p.ReadGeneralizedIdentifier(s, p, id)
		if err != nil {
			return nil, err
		}

		eq, err := readConstant(s, p, id, KindEqual)
		if err != nil {
			return nil, err
		}

		value, err := p.ReadExpression(s, p, id)
		if err != nil {
			return nil, err
		}

		return s.EndContext(&Node{Kind: NodeGeneralizedIdentifierPairedExpression, Children: []*Node{name, eq, value}})
	})
}

/*
readKeywordExpression reads one of the #section/#shared/#binary/#date/
#datetime/#datetimezone/#duration/#table/#time keyword forms, optionally
followed by an invoke-style argument list.
*/
func readKeywordExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Primary", "readKeywordExpression", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeKeywordExpression); err != nil {
			return nil, err
		}

		keyword, err := readConstant(s, p, id, s.CurrentKind)
		if err != nil {
			return nil, err
		}

		children := []*Node{keyword}

		if s.TestKind(KindLeftParen) {
			args, err := readInvokeExpression(s, p, id)
			if err != nil {
				return nil, err
			}
			children = append(children, args)
		} else {
			s.IncrementAttributeCounter()
		}

		return s.EndContext(&Node{Kind: NodeKeywordExpression, Children: children})
	})
}
