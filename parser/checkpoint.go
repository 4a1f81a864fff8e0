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
Checkpoint is an immutable snapshot of a State sufficient to rewind it. It
is always used around a speculative read whose failure must leave the state
observationally identical to before the read began.
*/
type Checkpoint struct {
	tokenIndex        int
	idCounter         int
	currentContextID  int
	hasCurrentContext bool
}

/*
CreateCheckpoint captures the current token index, id counter, and current
context id.
*/
func (s *State) CreateCheckpoint() (Checkpoint, error) {
	if err := s.pollCancel(); err != nil {
		return Checkpoint{}, err
	}

	return Checkpoint{
		tokenIndex:        s.TokenIndex,
		idCounter:         s.idCounter,
		currentContextID:  s.CurrentContextID,
		hasCurrentContext: s.HasCurrentContext,
	}, nil
}

/*
Restore rewinds s to c: the token index is reset, every id strictly greater
than c's id counter is dropped from every id-keyed map, and the
current-context pointer is re-seated. This is O(k) in the number of nodes
discarded.
*/
func (s *State) Restore(c Checkpoint) error {
	if err := s.pollCancel(); err != nil {
		return err
	}

	s.IDMap.dropAbove(c.idCounter)

	s.TokenIndex = c.tokenIndex
	s.CurrentKind = s.currentToken().Kind
	s.idCounter = c.idCounter
	s.CurrentContextID = c.currentContextID
	s.HasCurrentContext = c.hasCurrentContext

	return nil
}
