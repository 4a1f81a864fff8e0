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
ProductionFunc is the shape of every grammar production: it receives the
parse state, the strategy record itself (so it can late-bind calls to other
productions, letting an override take effect for recursive descents), and
the CorrelationID of its caller for trace nesting.
*/
type ProductionFunc func(s *State, p *Parser, parent CorrelationID) (*Node, error)

/*
RecursivePrimaryFunc is ReadRecursivePrimaryExpression's shape: unlike every
other production it is never the first reader reached for its node kind —
readPrimaryExpression reads the head (literal, identifier expression,
parenthesized/function expression, list, record/selection/projection, or
keyword expression) itself and only then, on seeing a "(", "{", or "["
suffix, hands the already-completed head node over to be reshaped in place
(spec.md §4.7).
*/
type RecursivePrimaryFunc func(s *State, p *Parser, parent CorrelationID, head *Node) (*Node, error)

/*
Parser is the strategy seam (spec.md §4.4): a record of named production
functions, one per grammar rule, dispatched late-bound through p so that any
single production can be overridden (see CombinatorialParser) without
touching the productions that call it. Grounded in the teacher's
astNodeMap-of-{nullDenotation,leftDenotation,binding} dispatch table, turned
inside-out: the teacher keys its table by token kind, this keys it by
grammar rule name, since the M grammar's ambiguity (bracket/paren
disambiguation) already resolves the token-kind ambiguity before a
production is chosen.
*/
type Parser struct {
	Name string

	ReadDocument          ProductionFunc
	ReadExpressionDocument ProductionFunc
	ReadSectionDocument    ProductionFunc
	ReadSectionMember      ProductionFunc

	ReadExpression              ProductionFunc
	ReadEachExpression           ProductionFunc
	ReadLetExpression            ProductionFunc
	ReadIfExpression             ProductionFunc
	ReadErrorRaisingExpression   ProductionFunc
	ReadErrorHandlingExpression  ProductionFunc

	// The seven BinOp productions (spec.md §4.4/§4.5), plus Metadata which
	// the AST model (ast.go) carries as an eighth layer between Arithmetic
	// and Unary (see DESIGN.md's Open Question 2 resolution). These are the
	// productions CombinatorialParser overrides.
	ReadNullCoalescingExpression ProductionFunc
	ReadLogicalExpression        ProductionFunc
	ReadIsExpression             ProductionFunc
	ReadAsExpression             ProductionFunc
	ReadEqualityExpression       ProductionFunc
	ReadRelationalExpression     ProductionFunc
	ReadArithmeticExpression     ProductionFunc
	ReadMetadataExpression       ProductionFunc

	ReadUnaryExpression ProductionFunc
	ReadTypeExpression   ProductionFunc

	ReadPrimaryExpression              ProductionFunc
	ReadRecursivePrimaryExpression     RecursivePrimaryFunc
	ReadLiteralExpression              ProductionFunc
	ReadIdentifierExpression           ProductionFunc
	ReadParenthesizedOrFunctionExpression ProductionFunc
	ReadListExpression                 ProductionFunc
	ReadRecordOrFieldSelectionOrProjection ProductionFunc
	ReadKeywordExpression              ProductionFunc

	ReadNullablePrimitiveType ProductionFunc
	ReadPrimitiveType          ProductionFunc
	ReadIdentifier             ProductionFunc
	ReadGeneralizedIdentifier  ProductionFunc
	ReadParameterList          ProductionFunc
	ReadFieldSpecificationList ProductionFunc
}

/*
trace wraps a production's body with the Enter/Exit calls every production
makes at its boundaries (spec.md §6 Trace sink), under category/name.
*/
func trace(s *State, category, name string, parent CorrelationID, body func(id CorrelationID) (*Node, error)) (*Node, error) {
	id := s.traceEnter(category, name, parent, nil)
	n, err := body(id)
	if err != nil {
		s.traceExit(id, map[string]interface{}{"error": err.Error()})
	} else {
		s.traceExit(id, nil)
	}
	return n, err
}
