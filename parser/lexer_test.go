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

func TestLexBasicTokens(t *testing.T) {
	snap, err := Lex("test", `1 + "a" and foo <= [x]`)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}

	var kinds []Kind
	for i := 0; i < snap.Len(); i++ {
		kinds = append(kinds, snap.TokenAt(i).Kind)
	}

	last := kinds[len(kinds)-1]
	if last != KindEOF {
		t.Fatalf("last token kind = %v, want KindEOF", last)
	}

	if snap.TokenAt(0).Kind != KindNumericLiteral {
		t.Fatalf("first token kind = %v, want KindNumericLiteral", snap.TokenAt(0).Kind)
	}
}

func TestLexKeywordsAndHashKeywords(t *testing.T) {
	snap, err := Lex("test", "if x then #date(2020,1,1) else y")
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}

	if snap.TokenAt(0).Kind != KindKeywordIf {
		t.Fatalf("token 0 = %v, want KindKeywordIf", snap.TokenAt(0).Kind)
	}

	found := false
	for i := 0; i < snap.Len(); i++ {
		if snap.TokenAt(i).Kind == KindKeywordHashDate {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a KindKeywordHashDate token in %q", "#date(2020,1,1)")
	}
}

func TestLexQuotedIdentifier(t *testing.T) {
	snap, err := Lex("test", `#"my field"`)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if snap.TokenAt(0).Kind != KindQuotedIdentifier {
		t.Fatalf("token 0 = %v, want KindQuotedIdentifier", snap.TokenAt(0).Kind)
	}
	if snap.TokenAt(0).Literal != "my field" {
		t.Fatalf("literal = %q, want %q", snap.TokenAt(0).Literal, "my field")
	}
}

func TestLexNullCoalescingOperator(t *testing.T) {
	snap, err := Lex("test", "a ?? b")
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if snap.TokenAt(1).Kind != KindNullCoalescingOperator {
		t.Fatalf("token 1 = %v, want KindNullCoalescingOperator", snap.TokenAt(1).Kind)
	}
}

func TestSnapshotTextRoundTrip(t *testing.T) {
	src := "1 + 2"
	snap, err := Lex("test", src)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if snap.Text() != src {
		t.Fatalf("Text() = %q, want %q", snap.Text(), src)
	}
}
