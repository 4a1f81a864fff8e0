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

func TestCheckpointRestoreRewindsTokensAndIds(t *testing.T) {
	s := newTestState(t, "1 2 3")

	cp, err := s.CreateCheckpoint()
	if err != nil {
		t.Fatalf("CreateCheckpoint: %v", err)
	}

	s.Advance()
	s.Advance()
	s.NextID()
	s.NextID()

	if err := s.Restore(cp); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if s.TokenIndex != 0 {
		t.Fatalf("TokenIndex after restore = %d, want 0", s.TokenIndex)
	}
	if s.idCounter != 0 {
		t.Fatalf("idCounter after restore = %d, want 0", s.idCounter)
	}
	if s.CurrentKind != KindNumericLiteral {
		t.Fatalf("CurrentKind after restore = %v, want KindNumericLiteral", s.CurrentKind)
	}
}

func TestCheckpointRestoreDropsDiscardedNodes(t *testing.T) {
	s := newTestState(t, "1")

	cp, err := s.CreateCheckpoint()
	if err != nil {
		t.Fatalf("CreateCheckpoint: %v", err)
	}

	if _, err := s.StartContext(NodeArithmeticExpression); err != nil {
		t.Fatalf("StartContext: %v", err)
	}
	speculativeID := s.CurrentContextID

	if err := s.Restore(cp); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if s.IDMap.Context(speculativeID) != nil {
		t.Fatalf("speculative context %d should be gone after restore", speculativeID)
	}
	if s.HasCurrentContext {
		t.Fatalf("expected no open context after restoring to a checkpoint taken before any context was opened")
	}
}

func TestCheckpointRestoreReseatsCurrentContext(t *testing.T) {
	s := newTestState(t, "1")

	if _, err := s.StartContext(NodeArithmeticExpression); err != nil {
		t.Fatalf("StartContext outer: %v", err)
	}
	outerID := s.CurrentContextID

	cp, err := s.CreateCheckpoint()
	if err != nil {
		t.Fatalf("CreateCheckpoint: %v", err)
	}

	if _, err := s.StartContext(NodeLiteralExpression); err != nil {
		t.Fatalf("StartContext inner: %v", err)
	}

	if err := s.Restore(cp); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if s.CurrentContextID != outerID || !s.HasCurrentContext {
		t.Fatalf("current context should be reseated to outer context %d, got %d (has=%v)",
			outerID, s.CurrentContextID, s.HasCurrentContext)
	}
}
