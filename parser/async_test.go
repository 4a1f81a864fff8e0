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

func TestParseAsyncMatchesSynchronousParse(t *testing.T) {
	const src = "1 + 2 * 3"

	syncNode, _ := mustParseNaive(t, src)

	lexer, err := Lex("test", src)
	if err != nil {
		t.Fatalf("Lex(%q): %v", src, err)
	}

	p := NaiveParser()
	s := NewState(lexer, "en-US", nil, nil)

	res := <-ParseAsync(s, p)
	if res.Err != nil {
		t.Fatalf("ParseAsync failed: %v", res.Err)
	}

	if ok, msg := syncNode.Equals(res.Node); !ok {
		t.Fatalf("async result differs from synchronous result: %v", msg)
	}
}

func TestParseAsyncReportsError(t *testing.T) {
	const src = "1 +"

	lexer, err := Lex("test", src)
	if err != nil {
		t.Fatalf("Lex(%q): %v", src, err)
	}

	p := NaiveParser()
	s := NewState(lexer, "en-US", nil, nil)

	res := <-ParseAsync(s, p)
	if res.Err == nil {
		t.Fatalf("expected an error for %q, got node: %v", src, res.Node)
	}
	if res.Node != nil {
		t.Fatalf("expected a nil node alongside the error, got: %v", res.Node)
	}
}
