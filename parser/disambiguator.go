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
parenCandidate is the result of disambiguateParenthesis: which production a
"(" at the current token actually starts.
*/
type parenCandidate int

const (
	parenCandidateParenthesizedExpression parenCandidate = iota
	parenCandidateFunctionExpression
)

/*
disambiguateParenthesis resolves the two-way parenthesis ambiguity (spec.md
§4.6): scanning forward from the current "(" to its matching ")" (tracking
nesting depth) and checking whether the token immediately after is "=>".
This is pure lookahead over PeekKind — it never advances the cursor, so no
checkpoint is needed here; the only checkpoint-protected speculative sites
are readDocument and tryReadPrimitiveType (spec.md §7).
*/
func disambiguateParenthesis(s *State) (parenCandidate, error) {
	depth := 0
	offset := 0

	for {
		k := s.PeekKind(offset)
		if k == KindEOF {
			return parenCandidateParenthesizedExpression, nil
		}

		switch k {
		case KindLeftParen:
			depth++
		case KindRightParen:
			depth--
			if depth == 0 {
				offset++
				goto matched
			}
		}

		offset++
	}

matched:
	if s.PeekKind(offset) == KindFatArrow {
		return parenCandidateFunctionExpression, nil
	}
	return parenCandidateParenthesizedExpression, nil
}

/*
bracketCandidate is the result of disambiguateBracket: which of the three
"[" productions (spec.md §4.6) the current token starts.
*/
type bracketCandidate int

const (
	bracketCandidateRecordExpression bracketCandidate = iota
	bracketCandidateFieldSelector
	bracketCandidateFieldProjection
)

/*
disambiguateBracket resolves the three-way bracket ambiguity: "[[" starts a
field projection; otherwise, a top-level "=" (at bracket depth 1, i.e. not
inside a nested bracket/paren/brace belonging to a field's value) before the
matching "]" means a record expression; absent that, it is a single field
selector. Like disambiguateParenthesis this is pure PeekKind lookahead.
*/
func disambiguateBracket(s *State) bracketCandidate {
	if s.PeekKind(1) == KindLeftBracket {
		return bracketCandidateFieldProjection
	}

	depth := 0
	offset := 0

	for {
		k := s.PeekKind(offset)
		if k == KindEOF {
			return bracketCandidateFieldSelector
		}

		switch k {
		case KindLeftBracket, KindLeftParen, KindLeftBrace:
			depth++
		case KindRightBracket:
			if depth == 1 {
				return bracketCandidateFieldSelector
			}
			depth--
		case KindRightParen, KindRightBrace:
			depth--
		case KindEqual:
			if depth == 1 {
				return bracketCandidateRecordExpression
			}
		}

		offset++
	}
}
