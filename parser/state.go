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

import (
	"github.com/krotik/common/datautil"
	"github.com/krotik/common/errorutil"
)

/*
LexerSnapshot is the input boundary supplied by the (external) lexer: a
read-only, randomly-addressable token stream plus the originating text
buffer for slice extraction. A concrete implementation is provided by
Lex in lexer.go.
*/
type LexerSnapshot interface {

	/*
		TokenAt returns the token at index i. i is always in [0,Len()); the
		last token is always a KindEOF token so the parser never has to
		special-case "off the end" lookups.
	*/
	TokenAt(i int) Token

	/*
		Len returns the number of tokens, including the trailing EOF token.
	*/
	Len() int

	/*
		Text returns the full source buffer the tokens were read from.
	*/
	Text() string
}

/*
State is the parse state: a cursor over tokens, the current open-context
pointer, the id map collection, and the external collaborators (locale,
cancellation hook, trace sink). State is not thread-safe and must not be
shared across parses (§5: a parse runs to completion on one goroutine).
*/
type State struct {
	Lexer LexerSnapshot

	TokenIndex  int
	CurrentKind Kind

	IDMap *Collection

	CurrentContextID  int
	HasCurrentContext bool

	Locale string
	Cancel func() bool
	Trace  TraceSink

	idCounter int
}

/*
NewState creates a parse state positioned at the first token. cancel and
trace may be nil, in which case cancellation is never requested and trace
events are discarded.
*/
func NewState(lexer LexerSnapshot, locale string, cancel func() bool, trace TraceSink) *State {
	if trace == nil {
		trace = NopTraceSink{}
	}

	s := &State{
		Lexer:  lexer,
		Locale: locale,
		Cancel: cancel,
		Trace:  trace,
		IDMap:  NewCollection(),
	}

	if lexer.Len() > 0 {
		s.CurrentKind = lexer.TokenAt(0).Kind
	} else {
		s.CurrentKind = KindEOF
	}

	return s
}

/*
currentToken returns the token at the cursor. If the cursor has run past the
end of the stream (which should not normally happen since the stream always
ends in EOF) a virtual end-of-input token is synthesized from the last real
token's end position.
*/
func (s *State) currentToken() Token {
	if s.TokenIndex < s.Lexer.Len() {
		return s.Lexer.TokenAt(s.TokenIndex)
	}

	if s.Lexer.Len() == 0 {
		return Token{Kind: KindEOF}
	}

	last := s.Lexer.TokenAt(s.Lexer.Len() - 1)
	return Token{Kind: KindEOF, Start: last.End, End: last.End}
}

/*
CurrentToken exposes currentToken for productions and the disambiguator.
*/
func (s *State) CurrentToken() Token {
	return s.currentToken()
}

/*
pollCancel is called at every documented suspension point (§5): production
entry/exit, token advancement, context start/end, checkpoint create/restore.
*/
func (s *State) pollCancel() error {
	if s.Cancel != nil && s.Cancel() {
		return newCancelledError(s)
	}
	return nil
}

/*
Advance moves the cursor to the next token and refreshes the cached kind.
Token consumption is strictly monotonic except across an explicit
checkpoint restore (§5).
*/
func (s *State) Advance() error {
	if err := s.pollCancel(); err != nil {
		return err
	}

	s.TokenIndex++
	s.CurrentKind = s.currentToken().Kind

	return nil
}

/*
PeekKind looks ahead offset tokens (offset=1 is the token after current)
without consuming anything.
*/
func (s *State) PeekKind(offset int) Kind {
	idx := s.TokenIndex + offset
	if idx < 0 {
		idx = 0
	}
	if idx >= s.Lexer.Len() {
		if s.Lexer.Len() == 0 {
			return KindEOF
		}
		return KindEOF
	}
	return s.Lexer.TokenAt(idx).Kind
}

/*
TestKind reports whether the current token has kind k.
*/
func (s *State) TestKind(k Kind) bool {
	return s.CurrentKind == k
}

/*
TestAnyOfKind reports whether the current token's kind is any of kinds.
*/
func (s *State) TestAnyOfKind(kinds ...Kind) bool {
	for _, k := range kinds {
		if s.CurrentKind == k {
			return true
		}
	}
	return false
}

/*
NextID mints a fresh, monotonically increasing node id. Ids are never
reused, though a subtree may be renumbered contiguously by recalculateIds.
*/
func (s *State) NextID() int {
	s.idCounter++
	return s.idCounter
}

/*
StartContext mints a new context node of kind, grafts it under the current
context (if any), and makes it the current context. The new context's
attribute index is the parent's running attribute counter, which is then
incremented.
*/
func (s *State) StartContext(kind NodeKind) (*ContextNode, error) {
	if err := s.pollCancel(); err != nil {
		return nil, err
	}

	id := s.NextID()

	parentID := s.CurrentContextID
	hasParent := s.HasCurrentContext

	attributeIndex := 0
	hasAttributeIndex := false

	if hasParent {
		parent := s.IDMap.Context(parentID)
		errorutil.AssertTrue(parent != nil,
			"StartContext: current context id does not name an open context")
		attributeIndex = parent.AttributeCounter
		hasAttributeIndex = true
		parent.AttributeCounter++
	}

	ctx := s.IDMap.startContext(id, kind, parentID, hasParent, s.currentToken().Start, attributeIndex, hasAttributeIndex)

	s.CurrentContextID = id
	s.HasCurrentContext = true

	return ctx, nil
}

/*
EndContext finalizes the current context into a completed Node and pops the
current context to its parent. The caller supplies astNode with its content
fields set (Kind must match the current context's kind; Children, Literal,
LiteralKind, Operator, Leaf as applicable) — EndContext fills in ID,
TokenRange ([ctx.Start, current token's start)), and AttributeIndex from the
context being finalized, since those belong to the id map's bookkeeping, not
to the production's grammar-level concerns.
*/
func (s *State) EndContext(astNode *Node) (*Node, error) {
	if err := s.pollCancel(); err != nil {
		return nil, err
	}

	errorutil.AssertTrue(s.HasCurrentContext, "EndContext: no open context")

	ctx := s.IDMap.Context(s.CurrentContextID)
	errorutil.AssertTrue(ctx != nil, "EndContext: current context id does not name an open context")
	errorutil.AssertTrue(ctx.Kind == astNode.Kind,
		"EndContext: astNode kind does not match the current open context")

	astNode.ID = ctx.ID
	astNode.TokenRange = TokenRange{Start: ctx.Start, End: s.currentToken().Start}
	astNode.AttributeIndex = ctx.AttributeIndex
	astNode.HasAttributeIndex = ctx.HasAttributeIndex

	parentID, hasParent, err := s.IDMap.endContext(astNode)
	if err != nil {
		return nil, err
	}

	s.CurrentContextID = parentID
	s.HasCurrentContext = hasParent

	return astNode, nil
}

/*
StartContextAround mints a new context of kind that takes over existing's
slot under existing's former parent, making existing its first child. It is
used where a wrapper node's necessity (or kind) is only known after its
would-be-first-child has already been fully read and ended: the BinOp
ladder (no wrapper at all is built if no operator follows the left operand)
and recursive-primary-expression shaping (spec.md §4.7).
*/
func (s *State) StartContextAround(kind NodeKind, existing *Node) (*ContextNode, error) {
	if err := s.pollCancel(); err != nil {
		return nil, err
	}

	id := s.NextID()
	ctx := s.IDMap.startContextAround(id, kind, existing.TokenRange.Start, existing)

	s.CurrentContextID = id
	s.HasCurrentContext = true

	return ctx, nil
}

/*
StartContextAroundMany is StartContextAround generalized to a contiguous run
of existing sibling nodes. Used by the combinatorial BinOp reducer
(combinatorial.go), which reads an entire flat operand/operator run before
deciding combine order, so an operand-operator-operand triple is always
already-completed, adjacent, sibling material by the time its wrapper's kind
is known.
*/
func (s *State) StartContextAroundMany(kind NodeKind, existing []*Node) (*ContextNode, error) {
	if err := s.pollCancel(); err != nil {
		return nil, err
	}

	id := s.NextID()
	ctx := s.IDMap.startContextAroundMany(id, kind, existing[0].TokenRange.Start, existing)

	s.CurrentContextID = id
	s.HasCurrentContext = true

	return ctx, nil
}

/*
RenumberSubtree reassigns contiguous, freshly-minted ids to root and every
descendant of root (parent before children, children in attribute-index
order), per spec.md §4.7's requirement that a reshaped recursive-primary
subtree end up with a dense id range. Renumbering always allocates ids past
the current counter rather than reusing root's own old range, so it can
never collide with ids already live elsewhere in the tree.
*/
func (s *State) RenumberSubtree(rootID int) {
	mapping, nextID := s.IDMap.recalculateIds(rootID, s.idCounter+1)
	s.IDMap.updateNodeIds(mapping)
	s.idCounter = nextID - 1
}

/*
DeleteContext discards the current context and all of its descendants,
used when a production decides no node should materialize (e.g. a BinOp
layer with no operator after the left operand).
*/
func (s *State) DeleteContext() error {
	if err := s.pollCancel(); err != nil {
		return err
	}

	errorutil.AssertTrue(s.HasCurrentContext, "DeleteContext: no open context")

	id := s.CurrentContextID
	parentID, hasParent := s.IDMap.deleteContext(id)

	if hasParent {
		parent := s.IDMap.Context(parentID)
		if parent != nil && parent.AttributeCounter > 0 {
			parent.AttributeCounter--
		}
	}

	s.CurrentContextID = parentID
	s.HasCurrentContext = hasParent

	return nil
}

/*
IncrementAttributeCounter records that the next child attribute slot of the
current context is intentionally empty, without starting and immediately
deleting a context for it.
*/
func (s *State) IncrementAttributeCounter() {
	if !s.HasCurrentContext {
		return
	}
	ctx := s.IDMap.Context(s.CurrentContextID)
	errorutil.AssertTrue(ctx != nil, "IncrementAttributeCounter: no open context")
	ctx.AttributeCounter++
}

/*
AssertDoneParsing reports UnusedTokensRemain if tokens other than the
trailing EOF remain.
*/
func (s *State) AssertDoneParsing() error {
	if s.CurrentKind != KindEOF {
		return newUnusedTokensRemainError(s)
	}
	return nil
}

/*
traceEnter/traceExit wrap the TraceSink calls every production makes at its
boundaries (§6 Trace sink), merging production-local details with ambient
context (current token index) via datautil.MergeMaps - the teacher's own
idiom for combining option maps (engine/*.go uses MergeMaps to layer
default and call-specific settings; here it layers ambient and
production-local trace detail).
*/
func (s *State) traceEnter(category, name string, parent CorrelationID, details map[string]interface{}) CorrelationID {
	ambient := map[string]interface{}{"tokenIndex": s.TokenIndex}
	merged := datautil.MergeMaps(ambient, details)
	return s.Trace.Enter(category, name, parent, merged)
}

func (s *State) traceExit(id CorrelationID, details map[string]interface{}) {
	s.Trace.Exit(id, details)
}
