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
isContextualKeyword reports whether the current token is an identifier
whose literal text is exactly text. "nullable" and "optional" are not
reserved words anywhere else in the grammar, so the lexer hands them back as
plain identifiers and the productions that care recognize them by text.
*/
func isContextualKeyword(s *State, text string) bool {
	return s.TestKind(KindIdentifier) && s.CurrentToken().Literal == text
}

/*
readPrimaryType is readPrimaryType (spec.md's primary-type production): try
a primitive type first (the checkpoint-protected probe, spec.md §7's second
documented speculative site); on failure dispatch structurally on the
current token among the remaining primary-type forms.
*/
func readPrimaryType(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	if node, err := tryReadPrimitiveType(s, p, parent); err == nil {
		return node, nil
	}

	switch {
	case isContextualKeyword(s, "nullable"):
		return readNullableType(s, p, parent)
	case s.TestKind(KindLeftBracket):
		return readRecordType(s, p, parent)
	case s.TestKind(KindLeftBrace):
		return readListType(s, p, parent)
	case isContextualKeyword(s, "function"):
		return readFunctionType(s, p, parent)
	case isContextualKeyword(s, "table"):
		return readTableType(s, p, parent)
	default:
		return nil, newInvalidPrimitiveTypeError(s)
	}
}

/*
tryReadPrimitiveType wraps readPrimitiveTypeInner in a checkpoint: on
failure the state is rewound exactly as it was, so readPrimaryType can try
one of the other primary-type forms at the same position (spec.md §7).
*/
func tryReadPrimitiveType(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	cp, err := s.CreateCheckpoint()
	if err != nil {
		return nil, err
	}

	node, err := readPrimitiveTypeInner(s, p, parent)
	if err != nil {
		if restoreErr := s.Restore(cp); restoreErr != nil {
			return nil, restoreErr
		}
		return nil, err
	}

	return node, nil
}

/*
readPrimitiveType is the ReadPrimitiveType production exposed on Parser; it
is always called through tryReadPrimitiveType in practice, but is exported
on the strategy record for an override (or a caller that wants the raw,
unprotected read) to reach directly.
*/
func readPrimitiveType(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return readPrimitiveTypeInner(s, p, parent)
}

/*
readPrimitiveTypeInner reads a primitive type name: the "type" and "null"
keyword tokens, or an identifier whose text is one of token.go's
primitiveTypeNames.
*/
func readPrimitiveTypeInner(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Type", "readPrimitiveType", parent, func(id CorrelationID) (*Node, error) {
		var text string

		switch {
		case s.TestKind(KindKeywordType):
			text = "type"
		case s.TestKind(KindKeywordNull):
			text = "null"
		case s.TestKind(KindIdentifier) && primitiveTypeNames[s.CurrentToken().Literal]:
			text = s.CurrentToken().Literal
		default:
			return nil, newInvalidPrimitiveTypeError(s)
		}

		if _, err := s.StartContext(NodePrimitiveType); err != nil {
			return nil, err
		}

		if err := s.Advance(); err != nil {
			return nil, err
		}

		return s.EndContext(&Node{Kind: NodePrimitiveType, Leaf: true, Literal: text})
	})
}

/*
readNullablePrimitiveType reads an optional "nullable" marker followed by a
primitive type — the restricted type form used by is/as and function
parameter/return annotations.
*/
func readNullablePrimitiveType(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	if !isContextualKeyword(s, "nullable") {
		return tryReadPrimitiveType(s, p, parent)
	}

	return trace(s, "Type", "readNullablePrimitiveType", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeNullablePrimitiveType); err != nil {
			return nil, err
		}

		nullableConst, err := readConstant(s, p, id, KindIdentifier)
		if err != nil {
			return nil, err
		}

		primitive, err := tryReadPrimitiveType(s, p, id)
		if err != nil {
			return nil, err
		}

		return s.EndContext(&Node{Kind: NodeNullablePrimitiveType, Children: []*Node{nullableConst, primitive}})
	})
}

/*
readNullableType reads "nullable" followed by any primary type, used inside
record/list/function/table type shapes (as opposed to
readNullablePrimitiveType's narrower primitive-only form).
*/
func readNullableType(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Type", "readNullableType", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeNullableType); err != nil {
			return nil, err
		}

		nullableConst, err := readConstant(s, p, id, KindIdentifier)
		if err != nil {
			return nil, err
		}

		inner, err := readPrimaryType(s, p, id)
		if err != nil {
			return nil, err
		}

		return s.EndContext(&Node{Kind: NodeNullableType, Children: []*Node{nullableConst, inner}})
	})
}

/*
readListType reads "{" type "}".
*/
func readListType(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Type", "readListType", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeListType); err != nil {
			return nil, err
		}

		leftBrace, err := readConstant(s, p, id, KindLeftBrace)
		if err != nil {
			return nil, err
		}

		item, err := readPrimaryType(s, p, id)
		if err != nil {
			return nil, err
		}

		rightBrace, err := readConstant(s, p, id, KindRightBrace)
		if err != nil {
			return nil, err
		}

		return s.EndContext(&Node{Kind: NodeListType, Children: []*Node{leftBrace, item, rightBrace}})
	})
}

/*
readRecordType reads a field-specification-list directly ("[" ... "]"),
wrapped as a RecordType.
*/
func readRecordType(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Type", "readRecordType", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeRecordType); err != nil {
			return nil, err
		}

		fields, err := p.ReadFieldSpecificationList(s, p, id)
		if err != nil {
			return nil, err
		}

		return s.EndContext(&Node{Kind: NodeRecordType, Children: []*Node{fields}})
	})
}

/*
readTableType reads "table" followed by either a field-specification-list or
a nullable-primitive-type row-type reference.
*/
func readTableType(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Type", "readTableType", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeTableType); err != nil {
			return nil, err
		}

		tableConst, err := readConstant(s, p, id, KindIdentifier)
		if err != nil {
			return nil, err
		}

		var shape *Node
		if s.TestKind(KindLeftBracket) {
			shape, err = p.ReadFieldSpecificationList(s, p, id)
		} else {
			shape, err = p.ReadNullablePrimitiveType(s, p, id)
		}
		if err != nil {
			return nil, err
		}

		return s.EndContext(&Node{Kind: NodeTableType, Children: []*Node{tableConst, shape}})
	})
}

/*
readFunctionType reads "function" "(" csv-of-parameterSpecification ")" "as"
type.
*/
func readFunctionType(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Type", "readFunctionType", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeFunctionType); err != nil {
			return nil, err
		}

		functionConst, err := readConstant(s, p, id, KindIdentifier)
		if err != nil {
			return nil, err
		}

		params, err := p.ReadParameterList(s, p, id)
		if err != nil {
			return nil, err
		}

		returnType, err := pairedConstant(s, p, id, NodePairedConstant,
			func(pp CorrelationID) (*Node, error) { return readConstant(s, p, pp, KindKeywordAs) },
			func(pp CorrelationID) (*Node, error) { return readPrimaryType(s, p, pp) })
		if err != nil {
			return nil, err
		}

		return s.EndContext(&Node{Kind: NodeFunctionType, Children: []*Node{functionConst, params, returnType}})
	})
}

/*
readParameterList reads "(" csv-of-Parameter ")", rejecting a required
parameter that follows an optional one (spec.md's
RequiredParameterAfterOptionalParameter invariant).
*/
func readParameterList(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Type", "readParameterList", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeParameterList); err != nil {
			return nil, err
		}

		leftParen, err := readConstant(s, p, id, KindLeftParen)
		if err != nil {
			return nil, err
		}

		seenOptional := false
		readItem := func(itemParent CorrelationID) (*Node, error) {
			param, isOptional, err := readParameter(s, p, itemParent)
			if err != nil {
				return nil, err
			}
			if isOptional {
				seenOptional = true
			} else if seenOptional {
				return nil, newRequiredParameterAfterOptionalError(s)
			}
			return param, nil
		}

		params, err := readCsvArray(s, p, id, readItem, func() bool { return s.TestKind(KindRightParen) })
		if err != nil {
			return nil, err
		}

		rightParen, err := readConstant(s, p, id, KindRightParen)
		if err != nil {
			return nil, err
		}

		return s.EndContext(&Node{Kind: NodeParameterList, Children: []*Node{leftParen, params, rightParen}})
	})
}

/*
readParameter reads 'optional'? identifier ('as' nullablePrimitiveType)?,
reporting whether the "optional" marker was present.
*/
func readParameter(s *State, p *Parser, parent CorrelationID) (*Node, bool, error) {
	isOptional := isContextualKeyword(s, "optional")

	node, err := trace(s, "Type", "readParameter", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeParameter); err != nil {
			return nil, err
		}

		var optionalConst *Node
		if isOptional {
			c, err := readConstant(s, p, id, KindIdentifier)
			if err != nil {
				return nil, err
			}
			optionalConst = c
		} else {
			s.IncrementAttributeCounter()
		}

		name, err := p.ReadIdentifier(s, p, id)
		if err != nil {
			return nil, err
		}

		var typeAnnotation *Node
		if s.TestKind(KindKeywordAs) {
			t, err := pairedConstant(s, p, id, NodePairedConstant,
				func(pp CorrelationID) (*Node, error) { return readConstant(s, p, pp, KindKeywordAs) },
				func(pp CorrelationID) (*Node, error) { return p.ReadNullablePrimitiveType(s, p, pp) })
			if err != nil {
				return nil, err
			}
			typeAnnotation = t
		} else {
			s.IncrementAttributeCounter()
		}

		children := []*Node{}
		if optionalConst != nil {
			children = append(children, optionalConst)
		}
		children = append(children, name)
		if typeAnnotation != nil {
			children = append(children, typeAnnotation)
		}

		return s.EndContext(&Node{Kind: NodeParameter, Children: children})
	})

	return node, isOptional, err
}

/*
readFieldSpecificationListProduction reads "[" csv-of-FieldSpecification
("..." open-record marker)? "]".
*/
func readFieldSpecificationListProduction(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Type", "readFieldSpecificationList", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeFieldSpecificationList); err != nil {
			return nil, err
		}

		leftBracket, err := readConstant(s, p, id, KindLeftBracket)
		if err != nil {
			return nil, err
		}

		readItem := func(itemParent CorrelationID) (*Node, error) { return readFieldSpecification(s, p, itemParent) }
		stop := func() bool { return s.TestKind(KindRightBracket) || s.TestKind(KindEllipsis) }

		fields, err := readCsvArray(s, p, id, readItem, stop)
		if err != nil {
			return nil, err
		}

		var openMarker *Node
		if s.TestKind(KindEllipsis) {
			c, err := readConstant(s, p, id, KindEllipsis)
			if err != nil {
				return nil, err
			}
			openMarker = c
		} else {
			s.IncrementAttributeCounter()
		}

		rightBracket, err := readConstant(s, p, id, KindRightBracket)
		if err != nil {
			return nil, err
		}

		children := []*Node{leftBracket, fields}
		if openMarker != nil {
			children = append(children, openMarker)
		}
		children = append(children, rightBracket)

		return s.EndContext(&Node{Kind: NodeFieldSpecificationList, Children: children})
	})
}

/*
readFieldSpecification reads 'optional'? generalizedIdentifier
('=' type)?.
*/
func readFieldSpecification(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "Type", "readFieldSpecification", parent, func(id CorrelationID) (*Node, error) {
		if _, err := s.StartContext(NodeFieldSpecification); err != nil {
			return nil, err
		}

		var optionalConst *Node
		if isContextualKeyword(s, "optional") {
			c, err := readConstant(s, p, id, KindIdentifier)
			if err != nil {
				return nil, err
			}
			optionalConst = c
		} else {
			s.IncrementAttributeCounter()
		}

		name, err := p.ReadGeneralizedIdentifier(s, p, id)
		if err != nil {
			return nil, err
		}

		var fieldType *Node
		if s.TestKind(KindEqual) {
			t, err := pairedConstant(s, p, id, NodeFieldTypeSpecification,
				func(pp CorrelationID) (*Node, error) { return readConstant(s, p, pp, KindEqual) },
				func(pp CorrelationID) (*Node, error) { return readPrimaryType(s, p, pp) })
			if err != nil {
				return nil, err
			}
			fieldType = t
		} else {
			s.IncrementAttributeCounter()
		}

		children := []*Node{}
		if optionalConst != nil {
			children = append(children, optionalConst)
		}
		children = append(children, name)
		if fieldType != nil {
			children = append(children, fieldType)
		}

		return s.EndContext(&Node{Kind: NodeFieldSpecification, Children: children})
	})
}
