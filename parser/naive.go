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
	"regexp"
	"strings"
)

/*
NaiveParser returns the full recursive-descent strategy (spec.md §4.5):
every production implemented explicitly, including the seven BinOp
productions as calls into the shared recursiveReadBinOp helper. Grounded in
the teacher's fully-populated astNodeMap, one function per grammar rule
instead of one per token kind.
*/
func NaiveParser() *Parser {
	p := &Parser{Name: "naive"}

	p.ReadDocument = readDocument
	p.ReadExpressionDocument = readExpressionDocument
	p.ReadSectionDocument = readSectionDocument
	p.ReadSectionMember = readSectionMember

	p.ReadExpression = readExpression
	p.ReadEachExpression = readEachExpression
	p.ReadLetExpression = readLetExpression
	p.ReadIfExpression = readIfExpression
	p.ReadErrorRaisingExpression = readErrorRaisingExpression
	p.ReadErrorHandlingExpression = readErrorHandlingExpression

	p.ReadNullCoalescingExpression = readNullCoalescingExpression
	p.ReadLogicalExpression = readLogicalExpression
	p.ReadIsExpression = readIsExpression
	p.ReadAsExpression = readAsExpression
	p.ReadEqualityExpression = readEqualityExpression
	p.ReadRelationalExpression = readRelationalExpression
	p.ReadArithmeticExpression = readArithmeticExpression
	p.ReadMetadataExpression = readMetadataExpression

	p.ReadUnaryExpression = readUnaryExpression
	p.ReadTypeExpression = readTypeExpression

	p.ReadPrimaryExpression = readPrimaryExpression
	p.ReadRecursivePrimaryExpression = readRecursivePrimaryExpression
	p.ReadLiteralExpression = readLiteralExpression
	p.ReadIdentifierExpression = readIdentifierExpression
	p.ReadParenthesizedOrFunctionExpression = readParenthesizedExpression
	p.ReadListExpression = readListExpression
	p.ReadRecordOrFieldSelectionOrProjection = readRecordExpression
	p.ReadKeywordExpression = readKeywordExpression

	p.ReadNullablePrimitiveType = readNullablePrimitiveType
	p.ReadPrimitiveType = readPrimitiveType
	p.ReadIdentifier = readIdentifier
	p.ReadGeneralizedIdentifier = readGeneralizedIdentifier
	p.ReadParameterList = readParameterList
	p.ReadFieldSpecificationList = readFieldSpecificationListProduction

	return p
}

// ===========================================================================
// Document / section
// ===========================================================================

/*
readDocument is the entry production (spec.md §4.5): it speculatively reads
an expression document (expression then EOF); if that fails, it restores to
the start and speculatively reads a section document. Both sites are
checkpoint-protected, per spec.md §7's two documented speculative sites
(this is the first; tryReadPrimitiveType is the second). If both fail, the
error from whichever attempt consumed more tokens wins.
*/
func readDocument(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Document", "readDocument", parent, func(id CorrelationID) (*Node, error) {
		cp, err := s.CreateCheckpoint()
		if err != nil {
			return nil, err
		}

		exprNode, exprErr := p.ReadExpressionDocument(s, p, id)
		if exprErr == nil {
			return exprNode, nil
		}
		exprFailTokenIndex := s.TokenIndex

		if err := s.Restore(cp); err != nil {
			return nil, err
		}

		sectionNode, sectionErr := p.ReadSectionDocument(s, p, id)
		if sectionErr == nil {
			return sectionNode, nil
		}
		sectionFailTokenIndex := s.TokenIndex

		if err := s.Restore(cp); err != nil {
			return nil, err
		}

		if exprFailTokenIndex >= sectionFailTokenIndex {
			return nil, exprErr
		}
		return nil, sectionErr
	})
}

/*
readExpressionDocument reads a bare expression and asserts no tokens remain.
*/
func readExpressionDocument(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Document", "readExpressionDocument", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeDocument); err != nil {
			return nil, err
		}

		expr, err := p.ReadExpression(s, p, id)
		if err != nil {
			return nil, err
		}

		if err := s.AssertDoneParsing(); err != nil {
			return nil, err
		}

		return s.EndContext(&Node{Kind: NodeDocument, Children: []*Node{expr}})
	})
}

/*
readSectionDocument reads an optional literal-attribute record, the
"section" keyword, an optional section name, a ";", then zero or more
section members until EOF.
*/
func readSectionDocument(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Document", "readSectionDocument", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeSection); err != nil {
			return nil, err
		}

		var literalAttributes *Node
		if s.TestKind(KindLeftBracket) {
			attrs, err := p.ReadRecordOrFieldSelectionOrProjection(s, p, id)
			if err != nil {
				return nil, err
			}
			literalAttributes = attrs
		} else {
			s.IncrementAttributeCounter()
		}

		sectionConst, err := readConstant(s, p, id, KindKeywordSection)
		if err != nil {
			return nil, err
		}

		var name *Node
		if s.TestKind(KindIdentifier) {
			name, err = p.ReadIdentifier(s, p, id)
			if err != nil {
				return nil, err
			}
		} else {
			s.IncrementAttributeCounter()
		}

		semi, err := readConstant(s, p, id, KindSemicolon)
		if err != nil {
			return nil, err
		}

		var members []*Node
		for !s.TestKind(KindEOF) {
			m, err := p.ReadSectionMember(s, p, id)
			if err != nil {
				return nil, err
			}
			members = append(members, m)
		}

		membersWrapper, err := arrayWrapperProduction(s, p, id, members)
		if err != nil {
			return nil, err
		}

		children := []*Node{}
		if literalAttributes != nil {
			children = append(children, literalAttributes)
		}
		children = append(children, sectionConst)
		if name != nil {
			children = append(children, name)
		}
		children = append(children, semi, membersWrapper)

		return s.EndContext(&Node{Kind: NodeSection, Children: children})
	})
}

/*
arrayWrapperProduction opens and immediately closes an ArrayWrapper context
around an already-read slice of sibling nodes, for productions that collect
members without going through readCsvArray (no commas between them).
*/
func arrayWrapperProduction(s *State, p *Parser, parent CorrelationID, items []*Node) (*Node, error) {
	if _, err := s.StartContext(NodeArrayWrapper); err != nil {
		return nil, err
	}
	return arrayWrapper(s, items)
}

/*
readSectionMember reads optional literal attributes, optional "shared",
identifier "=" expression, ";".
*/
func readSectionMember(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Document", "readSectionMember", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeSectionMember); err != nil {
			return nil, err
		}

		var literalAttributes *Node
		if s.TestKind(KindLeftBracket) {
			attrs, err := p.ReadRecordOrFieldSelectionOrProjection(s, p, id)
			if err != nil {
				return nil, err
			}
			literalAttributes = attrs
		} else {
			s.IncrementAttributeCounter()
		}

		var shared *Node
		if s.TestKind(KindKeywordShared) {
			c, err := readConstant(s, p, id, KindKeywordShared)
			if err != nil {
				return nil, err
			}
			shared = c
		} else {
			s.IncrementAttributeCounter()
		}

		name, err := p.ReadIdentifier(s, p, id)
		if err != nil {
			return nil, err
		}

		eq, err := readConstant(s, p, id, KindEqual)
		if err != nil {
			return nil, err
		}

		expr, err := p.ReadExpression(s, p, id)
		if err != nil {
			return nil, err
		}

		semi, err := readConstant(s, p, id, KindSemicolon)
		if err != nil {
			return nil, err
		}

		children := []*Node{}
		if literalAttributes != nil {
			children = append(children, literalAttributes)
		}
		if shared != nil {
			children = append(children, shared)
		}
		children = append(children, name, eq, expr, semi)

		return s.EndContext(&Node{Kind: NodeSectionMember, Children: children})
	})
}

// ===========================================================================
// Expression dispatch + flow expressions
// ===========================================================================

/*
readExpression is the LL(1) dispatch over each/let/if/error/try/"(" and the
null-coalescing fallthrough (spec.md §4.5). "(" is ambiguous only here
(function expression vs. falling through to the BinOp ladder, which will
itself treat "(" as parenthesized per readPrimaryExpression) because a
function expression is not reachable as a BinOp operand — only as a full
expression position.
*/
func readExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Expression", "readExpression", parent, func(id CorrelationID) (*Node, error) {
		switch s.CurrentKind {
		case KindKeywordEach:
			return p.ReadEachExpression(s, p, id)
		case KindKeywordLet:
			return p.ReadLetExpression(s, p, id)
		case KindKeywordIf:
			return p.ReadIfExpression(s, p, id)
		case KindKeywordError:
			return p.ReadErrorRaisingExpression(s, p, id)
		case KindKeywordTry:
			return p.ReadErrorHandlingExpression(s, p, id)
		case KindLeftParen:
			candidate, cErr := disambiguateParenthesis(s)
			if cErr != nil {
				return nil, cErr
			}
			if candidate == parenCandidateFunctionExpression {
				return readFunctionExpression(s, p, id)
			}
			return p.ReadNullCoalescingExpression(s, p, id)
		default:
			return p.ReadNullCoalescingExpression(s, p, id)
		}
	})
}

/*
readEachExpression reads "each" expression, sugar for a one-parameter
function over an implicit "_" parameter (spec.md leaves the desugaring to a
downstream semantic phase; the parser only records the raw form).
*/
func readEachExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Flow", "readEachExpression", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeEachExpression); err != nil {
			return nil, err
		}

		eachConst, err := readConstant(s, p, id, KindKeywordEach)
		if err != nil {
			return nil, err
		}

		body, err := p.ReadExpression(s, p, id)
		if err != nil {
			return nil, err
		}

		return s.EndContext(&Node{Kind: NodeEachExpression, Children: []*Node{eachConst, body}})
	})
}

/*
readLetExpression reads "let" identifier "=" expression ("," identifier "="
expression)* "in" expression.
*/
func readLetExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Flow", "readLetExpression", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeLetExpression); err != nil {
			return nil, err
		}

		letConst, err := readConstant(s, p, id, KindKeywordLet)
		if err != nil {
			return nil, err
		}

		variables, err := readCsvArray(s, p, id, func(itemParent CorrelationID) (*Node, error) {
			return trace(s, "Flow", "readIdentifierPairedExpression", itemParent, func(ipeID CorrelationID) (*Node, error) {
				if _, err := s.StartContext(NodeIdentifierPairedExpression); err != nil {
					return nil, err
				}
				name, err := p.ReadIdentifier(s, p, ipeID)
				if err != nil {
					return nil, err
				}
				eq, err := readConstant(s, p, ipeID, KindEqual)
				if err != nil {
					return nil, err
				}
				value, err := p.ReadExpression(s, p, ipeID)
				if err != nil {
					return nil, err
				}
				return s.EndContext(&Node{Kind: NodeIdentifierPairedExpression, Children: []*Node{name, eq, value}})
			})
		}, func() bool { return s.TestKind(KindKeywordIn) })
		if err != nil {
			return nil, err
		}

		inConst, err := readConstant(s, p, id, KindKeywordIn)
		if err != nil {
			return nil, err
		}

		body, err := p.ReadExpression(s, p, id)
		if err != nil {
			return nil, err
		}

		return s.EndContext(&Node{Kind: NodeLetExpression, Children: []*Node{letConst, variables, inConst, body}})
	})
}

/*
readIfExpression reads "if" expression "then" expression "else" expression.
*/
func readIfExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Flow", "readIfExpression", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeIfExpression); err != nil {
			return nil, err
		}

		ifConst, err := readConstant(s, p, id, KindKeywordIf)
		if err != nil {
			return nil, err
		}
		cond, err := p.ReadExpression(s, p, id)
		if err != nil {
			return nil, err
		}
		thenConst, err := readConstant(s, p, id, KindKeywordThen)
		if err != nil {
			return nil, err
		}
		trueExpr, err := p.ReadExpression(s, p, id)
		if err != nil {
			return nil, err
		}
		elseConst, err := readConstant(s, p, id, KindKeywordElse)
		if err != nil {
			return nil, err
		}
		falseExpr, err := p.ReadExpression(s, p, id)
		if err != nil {
			return nil, err
		}

		return s.EndContext(&Node{Kind: NodeIfExpression,
			Children: []*Node{ifConst, cond, thenConst, trueExpr, elseConst, falseExpr}})
	})
}

/*
readErrorRaisingExpression reads "error" expression.
*/
func readErrorRaisingExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Flow", "readErrorRaisingExpression", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeErrorRaisingExpression); err != nil {
			return nil, err
		}

		errConst, err := readConstant(s, p, id, KindKeywordError)
		if err != nil {
			return nil, err
		}

		body, err := p.ReadExpression(s, p, id)
		if err != nil {
			return nil, err
		}

		return s.EndContext(&Node{Kind: NodeErrorRaisingExpression, Children: []*Node{errConst, body}})
	})
}

/*
readErrorHandlingExpression reads "try" expression ("otherwise" expression)?.
*/
func readErrorHandlingExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Flow", "readErrorHandlingExpression", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeErrorHandlingExpression); err != nil {
			return nil, err
		}

		tryConst, err := readConstant(s, p, id, KindKeywordTry)
		if err != nil {
			return nil, err
		}

		protected, err := p.ReadExpression(s, p, id)
		if err != nil {
			return nil, err
		}

		var otherwise *Node
		if s.TestKind(KindKeywordOtherwise) {
			if _, err := s.StartContext(NodeOtherwiseExpression); err != nil {
				return nil, err
			}
			otherwiseConst, err := readConstant(s, p, id, KindKeywordOtherwise)
			if err != nil {
				return nil, err
			}
			handler, err := p.ReadExpression(s, p, id)
			if err != nil {
				return nil, err
			}
			otherwise, err = s.EndContext(&Node{Kind: NodeOtherwiseExpression, Children: []*Node{otherwiseConst, handler}})
			if err != nil {
				return nil, err
			}
		} else {
			s.IncrementAttributeCounter()
		}

		children := []*Node{tryConst, protected}
		if otherwise != nil {
			children = append(children, otherwise)
		}

		return s.EndContext(&Node{Kind: NodeErrorHandlingExpression, Children: children})
	})
}

// ===========================================================================
// BinOp ladder (spec.md §4.5): seven productions + metadata, each delegating
// to recursiveReadBinOp with the next-tighter layer as its operand reader.
// ===========================================================================

func readNullCoalescingExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return recursiveReadBinOp(s, p, parent, "readNullCoalescingExpression", NodeNullCoalescingExpression,
		map[Kind]bool{KindNullCoalescingOperator: true}, false,
		func(pp CorrelationID) (*Node, error) { return p.ReadLogicalExpression(s, p, pp) })
}

func readLogicalExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "BinOp", "readLogicalExpression", parent, func(id CorrelationID) (*Node, error) {
		andLayer := func(pp CorrelationID) (*Node, error) {
			return recursiveReadBinOp(s, p, pp, "readLogicalAndExpression", NodeLogicalExpression,
				map[Kind]bool{KindKeywordAnd: true}, false,
				func(ppp CorrelationID) (*Node, error) { return p.ReadIsExpression(s, p, ppp) })
		}
		return recursiveReadBinOp(s, p, id, "readLogicalOrExpression", NodeLogicalExpression,
			map[Kind]bool{KindKeywordOr: true}, false, andLayer)
	})
}

func readIsExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return recursiveReadBinOp(s, p, parent, "readIsExpression", NodeIsExpression,
		map[Kind]bool{KindKeywordIs: true}, true,
		func(pp CorrelationID) (*Node, error) { return p.ReadAsExpression(s, p, pp) })
}

func readAsExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return recursiveReadBinOp(s, p, parent, "readAsExpression", NodeAsExpression,
		map[Kind]bool{KindKeywordAs: true}, true,
		func(pp CorrelationID) (*Node, error) { return p.ReadEqualityExpression(s, p, pp) })
}

func readEqualityExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return recursiveReadBinOp(s, p, parent, "readEqualityExpression", NodeEqualityExpression,
		map[Kind]bool{KindEqual: true, KindNotEqual: true}, false,
		func(pp CorrelationID) (*Node, error) { return p.ReadRelationalExpression(s, p, pp) })
}

func readRelationalExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return recursiveReadBinOp(s, p, parent, "readRelationalExpression", NodeRelationalExpression,
		map[Kind]bool{KindLessThan: true, KindLessThanEqualTo: true, KindGreaterThan: true, KindGreaterThanEqualTo: true}, false,
		func(pp CorrelationID) (*Node, error) { return p.ReadArithmeticExpression(s, p, pp) })
}

func readArithmeticExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "BinOp", "readArithmeticExpression", parent, func(id CorrelationID) (*Node, error) {
		multiplicativeLayer := func(pp CorrelationID) (*Node, error) {
			return recursiveReadBinOp(s, p, pp, "readArithmeticMultiplicativeExpression", NodeArithmeticExpression,
				map[Kind]bool{KindAsterisk: true, KindDivision: true}, false,
				func(ppp CorrelationID) (*Node, error) { return p.ReadMetadataExpression(s, p, ppp) })
		}
		return recursiveReadBinOp(s, p, id, "readArithmeticAdditiveExpression", NodeArithmeticExpression,
			map[Kind]bool{KindPlus: true, KindMinus: true, KindAmpersand: true}, false, multiplicativeLayer)
	})
}

func readMetadataExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return recursiveReadBinOp(s, p, parent, "readMetadataExpression", NodeMetadataExpression,
		map[Kind]bool{KindKeywordMeta: true}, false,
		func(pp CorrelationID) (*Node, error) { return p.ReadUnaryExpression(s, p, pp) })
}

/*
recursiveReadBinOp is the shared helper the design notes name (§4.5): read
the left operand via next, then repeatedly consume a matching operator
constant and a right operand — a nullable primitive type for is/as
(rightIsNullablePrimitiveType), which ends the layer after one operator, and
otherwise a recursive read of this same layer — producing a right-leaning
tree ("1+2+3" => "1+[2+3]"); left-associative consumers normalize afterward. If no operator follows the left operand, the started
context is deleted and the left operand is returned verbatim (spec.md
§4.2's deleteContext use case).
*/
func recursiveReadBinOp(s *State, p *Parser, parent CorrelationID, name string, kind NodeKind,
	operators map[Kind]bool, rightIsNullablePrimitiveType bool, next func(CorrelationID) (*Node, error)) (*Node, error) {

	return trace(s, "BinOp", name, parent, func(id CorrelationID) (*Node, error) {
		left, err := next(id)
		if err != nil {
			return nil, err
		}

		if !operators[s.CurrentKind] {
			return left, nil
		}

		if _, err := s.StartContextAround(kind, left); err != nil {
			return nil, err
		}

		opConst, err := readAnyConstant(s, p, id, kindSet(operators)...)
		if err != nil {
			return nil, err
		}

		var right *Node
		if rightIsNullablePrimitiveType {
			right, err = p.ReadNullablePrimitiveType(s, p, id)
		} else {
			right, err = recursiveReadBinOp(s, p, id, name, kind, operators, false, next)
		}
		if err != nil {
			return nil, err
		}

		return s.EndContext(&Node{Kind: kind, Operator: opConst.Literal, Children: []*Node{left, opConst, right}})
	})
}

func kindSet(m map[Kind]bool) []Kind {
	out := make([]Kind, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// ===========================================================================
// Unary / type / primary
// ===========================================================================

/*
readUnaryExpression consumes a contiguous sequence of unary operators (+, -,
not) then delegates to readTypeExpression. If no unary operator is present,
no UnaryExpression node is materialized — the type expression is returned
directly (no context was ever opened for the unary layer).
*/
func readUnaryExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Unary", "readUnaryExpression", parent, func(id CorrelationID) (*Node, error) {
		if !unaryOperatorKinds[s.CurrentKind] {
			return p.ReadTypeExpression(s, p, id)
		}

		if _, err := s.StartContext(NodeUnaryExpression); err != nil {
			return nil, err
		}

		var operators []*Node
		for unaryOperatorKinds[s.CurrentKind] {
			c, err := readAnyConstant(s, p, id, KindPlus, KindMinus, KindKeywordNot)
			if err != nil {
				return nil, err
			}
			operators = append(operators, c)
		}

		operand, err := p.ReadTypeExpression(s, p, id)
		if err != nil {
			return nil, err
		}

		children := append(operators, operand)
		return s.EndContext(&Node{Kind: NodeUnaryExpression, Children: children})
	})
}

/*
readTypeExpression dispatches on the "type" keyword (a type-expression
wrapper over a primary type) and otherwise falls through to
readPrimaryExpression — "type" is the only token that distinguishes a type
expression from an ordinary expression at this layer.
*/
func readTypeExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Type", "readTypeExpression", parent, func(id CorrelationID) (*Node, error) {
		if !s.TestKind(KindKeywordType) {
			return p.ReadPrimaryExpression(s, p, id)
		}

		if _, err := s.StartContext(NodeTypePrimaryType); err != nil {
			return nil, err
		}

		typeConst, err := readConstant(s, p, id, KindKeywordType)
		if err != nil {
			return nil, err
		}

		primary, err := readPrimaryType(s, p, id)
		if err != nil {
			return nil, err
		}

		return s.EndContext(&Node{Kind: NodeTypePrimaryType, Children: []*Node{typeConst, primary}})
	})
}

/*
readPrimaryExpression is the LL(1) over the primary-expression forms
(spec.md §4.5): @/identifier, "(" (always parenthesized here — see
readExpression's own disambiguation for the function-expression case), "["
(ambiguous bracket), "{" (list), "..." (not implemented), the #keyword
forms, otherwise a literal. A suffix of "(", "{", or "[" after the head
switches to readRecursivePrimaryExpression.
*/
func readPrimaryExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Primary", "readPrimaryExpression", parent, func(id CorrelationID) (*Node, error) {
		var head *Node
		var err error

		switch {
		case s.TestKind(KindAt) || s.TestKind(KindIdentifier) || s.TestKind(KindQuotedIdentifier):
			head, err = p.ReadIdentifierExpression(s, p, id)
		case s.TestKind(KindLeftParen):
			head, err = p.ReadParenthesizedOrFunctionExpression(s, p, id)
		case s.TestKind(KindLeftBracket):
			head, err = p.ReadRecordOrFieldSelectionOrProjection(s, p, id)
		case s.TestKind(KindLeftBrace):
			head, err = p.ReadListExpression(s, p, id)
		case s.TestKind(KindEllipsis):
			head, err = readNotImplementedExpression(s, p, id)
		case isKeywordExpressionStart(s.CurrentKind):
			head, err = p.ReadKeywordExpression(s, p, id)
		default:
			head, err = p.ReadLiteralExpression(s, p, id)
		}
		if err != nil {
			return nil, err
		}

		if s.TestKind(KindLeftParen) || s.TestKind(KindLeftBrace) || s.TestKind(KindLeftBracket) {
			return p.ReadRecursivePrimaryExpression(s, p, id, head)
		}

		return head, nil
	})
}

func isKeywordExpressionStart(k Kind) bool {
	switch k {
	case KindKeywordHashSection, KindKeywordHashShared, KindKeywordHashBinary,
		KindKeywordHashDate, KindKeywordHashDateTime, KindKeywordHashDateTimeZone,
		KindKeywordHashDuration, KindKeywordHashTable, KindKeywordHashTime:
		return true
	}
	return false
}

/*
readNotImplementedExpression reads the "..." not-implemented-expression
marker primary form.
*/
func readNotImplementedExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	if _, err := s.StartContext(NodeNotImplementedExpression); err != nil {
		return nil, err
	}
	c, err := readConstant(s, p, parent, KindEllipsis)
	if err != nil {
		return nil, err
	}
	return s.EndContext(&Node{Kind: NodeNotImplementedExpression, Children: []*Node{c}})
}

/*
readLiteralExpression reads a numeric/text/logical/null literal leaf.
*/
func readLiteralExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Primary", "readLiteralExpression", parent, func(id CorrelationID) (*Node, error) {
		var lk LiteralKind
		switch s.CurrentKind {
		case KindNumericLiteral:
			lk = LiteralNumeric
		case KindTextLiteral:
			lk = LiteralText
		case KindKeywordTrue, KindKeywordFalse:
			lk = LiteralLogical
		case KindKeywordNull:
			lk = LiteralNull
		default:
			return nil, newExpectedAnyTokenKindError(s, []Kind{KindNumericLiteral, KindTextLiteral, KindKeywordTrue, KindKeywordFalse, KindKeywordNull})
		}

		if _, err := s.StartContext(NodeLiteralExpression); err != nil {
			return nil, err
		}

		text := s.CurrentToken().Literal
		if text == "" {
			text = s.CurrentToken().Kind.String()
		}

		if err := s.Advance(); err != nil {
			return nil, err
		}

		return s.EndContext(&Node{Kind: NodeLiteralExpression, Leaf: true, Literal: text, LiteralKind: lk})
	})
}

/*
readIdentifierExpression reads an optional "@" marker then an identifier.
*/
func readIdentifierExpression(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Primary", "readIdentifierExpression", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeIdentifierExpression); err != nil {
			return nil, err
		}

		var at *Node
		if s.TestKind(KindAt) {
			c, err := readConstant(s, p, id, KindAt)
			if err != nil {
				return nil, err
			}
			at = c
		} else {
			s.IncrementAttributeCounter()
		}

		name, err := p.ReadIdentifier(s, p, id)
		if err != nil {
			return nil, err
		}

		children := []*Node{}
		if at != nil {
			children = append(children, at)
		}
		children = append(children, name)

		return s.EndContext(&Node{Kind: NodeIdentifierExpression, Children: children})
	})
}

/*
readIdentifier reads a plain or quoted identifier leaf.
*/
func readIdentifier(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Primary", "readIdentifier", parent, func(id CorrelationID) (*Node, error) {
		if !s.TestKind(KindIdentifier) && !s.TestKind(KindQuotedIdentifier) {
			return nil, newExpectedAnyTokenKindError(s, []Kind{KindIdentifier, KindQuotedIdentifier})
		}

		if _, err := s.StartContext(NodeIdentifier); err != nil {
			return nil, err
		}

		text := s.CurrentToken().Literal
		if err := s.Advance(); err != nil {
			return nil, err
		}

		return s.EndContext(&Node{Kind: NodeIdentifier, Leaf: true, Literal: text})
	})
}

/*
generalizedIdentifierPattern validates the computed literal of a generalized
identifier: it must start with a letter or underscore and may continue with
letters, digits, underscores, periods and spaces. Any other punctuation, a
control character or an empty text is rejected.
*/
var generalizedIdentifierPattern = regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}_ .]*$`)

/*
readGeneralizedIdentifier greedily consumes tokens until ",", "=", or "]";
the computed literal is the original source text between the start token's
start and the last consumed token's end (not a concatenation of token
texts, since the source may contain spaces the lexer split across several
tokens).
*/
func readGeneralizedIdentifier(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Primary", "readGeneralizedIdentifier", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeGeneralizedIdentifier); err != nil {
			return nil, err
		}

		start := s.CurrentToken().Start
		consumed := 0

		for !s.TestAnyOfKind(KindComma, KindEqual, KindRightBracket, KindEOF) {
			if err := s.Advance(); err != nil {
				return nil, err
			}
			consumed++
		}

		if consumed == 0 {
			return nil, newExpectedGeneralizedIdentifierError(s)
		}

		var end Position
		if s.TokenIndex > 0 {
			end = s.Lexer.TokenAt(s.TokenIndex - 1).End
		}

		text := s.Lexer.Text()[start.CodeUnit:end.CodeUnit]
		text = strings.TrimSpace(text)

		if !generalizedIdentifierPattern.MatchString(text) {
			return nil, newExpectedGeneralizedIdentifierError(s)
		}

		return s.EndContext(&Node{Kind: NodeGeneralizedIdentifier, Leaf: true, Literal: text})
	})
}
