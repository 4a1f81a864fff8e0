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

/*
mustParseWith lexes src and runs p.ReadDocument to completion, failing the
test immediately on any lex or parse error. Shared across the strategy,
disambiguator and recursive-primary test files, the way the teacher's own
test files share a handful of "parse or fail" helpers.
*/
func mustParseWith(t *testing.T, p *Parser, src string) (*Node, *State) {
	t.Helper()

	lexer, err := Lex("test", src)
	if err != nil {
		t.Fatalf("Lex(%q): %v", src, err)
	}

	s := NewState(lexer, "en-US", nil, nil)

	n, err := p.ReadDocument(s, p, 0)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}

	return n, s
}

func mustParseNaive(t *testing.T, src string) (*Node, *State) {
	t.Helper()
	return mustParseWith(t, NaiveParser(), src)
}

func mustParseCombinatorial(t *testing.T, src string) (*Node, *State) {
	t.Helper()
	return mustParseWith(t, CombinatorialParser(), src)
}
