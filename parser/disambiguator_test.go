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

func TestDisambiguateParenthesisFunctionExpression(t *testing.T) {
	s := newTestState(t, "(x as number) => x")
	got, err := disambiguateParenthesis(s)
	if err != nil {
		t.Fatalf("disambiguateParenthesis: %v", err)
	}
	if got != parenCandidateFunctionExpression {
		t.Fatalf("got %v, want parenCandidateFunctionExpression", got)
	}
}

func TestDisambiguateParenthesisParenthesizedExpression(t *testing.T) {
	s := newTestState(t, "(1 + 2) * 3")
	got, err := disambiguateParenthesis(s)
	if err != nil {
		t.Fatalf("disambiguateParenthesis: %v", err)
	}
	if got != parenCandidateParenthesizedExpression {
		t.Fatalf("got %v, want parenCandidateParenthesizedExpression", got)
	}
}

func TestDisambiguateParenthesisNestedFunctionExpression(t *testing.T) {
	s := newTestState(t, "((1 + 2)) => 3")
	got, err := disambiguateParenthesis(s)
	if err != nil {
		t.Fatalf("disambiguateParenthesis: %v", err)
	}
	if got != parenCandidateFunctionExpression {
		t.Fatalf("got %v, want parenCandidateFunctionExpression (nesting must be tracked)", got)
	}
}

func TestDisambiguateBracketFieldSelector(t *testing.T) {
	s := newTestState(t, "[x]")
	if got := disambiguateBracket(s); got != bracketCandidateFieldSelector {
		t.Fatalf("got %v, want bracketCandidateFieldSelector", got)
	}
}

func TestDisambiguateBracketRecordExpression(t *testing.T) {
	s := newTestState(t, "[a = 1, b = 2]")
	if got := disambiguateBracket(s); got != bracketCandidateRecordExpression {
		t.Fatalf("got %v, want bracketCandidateRecordExpression", got)
	}
}

func TestDisambiguateBracketFieldProjection(t *testing.T) {
	s := newTestState(t, "[[a, b]]")
	if got := disambiguateBracket(s); got != bracketCandidateFieldProjection {
		t.Fatalf("got %v, want bracketCandidateFieldProjection", got)
	}
}

func TestDisambiguateBracketIgnoresEqualNestedInsideParens(t *testing.T) {
	s := newTestState(t, "[foo(x = 1)]")
	if got := disambiguateBracket(s); got != bracketCandidateFieldSelector {
		t.Fatalf("got %v, want bracketCandidateFieldSelector (the '=' is nested inside '(...)', not top-level)", got)
	}
}
