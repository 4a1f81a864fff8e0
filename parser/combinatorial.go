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

import "github.com/krotik/common/sortutil"

/*
CombinatorialParser returns the alternate strategy (spec.md §4.4/§4.5):
the eight-layer BinOp recursive descent collapses into one flat reader,
readCombinatorialBinOp, which reads an entire operand/operator run left to
right and then reduces it with a priority queue instead of by mutual
recursion. Operators of different precedence group the way
recursiveReadBinOp's nested calls group them; within one precedence rank the
leftmost operator folds first, so "1 - 2 - 3" becomes [1 - 2] - 3 where the
naive ladder builds 1 - [2 - 3]. Every other production is inherited
unchanged from NaiveParser, including readUnaryExpression, which the flat
reader calls directly for operand material.
*/
func CombinatorialParser() *Parser {
	p := NaiveParser()
	p.Name = "combinatorial"

	p.ReadNullCoalescingExpression = readCombinatorialBinOp
	p.ReadLogicalExpression = readCombinatorialBinOp
	p.ReadIsExpression = readCombinatorialBinOp
	p.ReadAsExpression = readCombinatorialBinOp
	p.ReadEqualityExpression = readCombinatorialBinOp
	p.ReadRelationalExpression = readCombinatorialBinOp
	p.ReadArithmeticExpression = readCombinatorialBinOp
	p.ReadMetadataExpression = readCombinatorialBinOp

	return p
}

/*
binOpInfo records, for each operator token kind in the BinOp ladder, the node
kind its layer builds and a precedence rank where a SMALLER number binds
tighter (spec.md §4.5's layer order read bottom-up: metadata binds
tightest and is given rank 1; null-coalescing binds loosest and is given
the highest rank). is/as additionally mark their right operand as a
nullable primitive type rather than another operand expression.
*/
type binOpInfo struct {
	kind        NodeKind
	precedence  int
	rightIsType bool
}

var combinatorialOperators = map[Kind]binOpInfo{
	KindKeywordMeta:            {NodeMetadataExpression, 1, false},
	KindAsterisk:               {NodeArithmeticExpression, 2, false},
	KindDivision:               {NodeArithmeticExpression, 2, false},
	KindPlus:                   {NodeArithmeticExpression, 3, false},
	KindMinus:                  {NodeArithmeticExpression, 3, false},
	KindAmpersand:              {NodeArithmeticExpression, 3, false},
	KindLessThan:               {NodeRelationalExpression, 4, false},
	KindLessThanEqualTo:        {NodeRelationalExpression, 4, false},
	KindGreaterThan:            {NodeRelationalExpression, 4, false},
	KindGreaterThanEqualTo:     {NodeRelationalExpression, 4, false},
	KindEqual:                  {NodeEqualityExpression, 5, false},
	KindNotEqual:               {NodeEqualityExpression, 5, false},
	KindKeywordAs:              {NodeAsExpression, 6, true},
	KindKeywordIs:              {NodeIsExpression, 7, true},
	KindKeywordAnd:             {NodeLogicalExpression, 8, false},
	KindKeywordOr:              {NodeLogicalExpression, 9, false},
	KindNullCoalescingOperator: {NodeNullCoalescingExpression, 10, false},
}

/*
flatBinOp is one consumed operator in a readCombinatorialBinOp run, together
with the already-completed operand to its right (operands[0] is the run's
leading operand with no preceding operator, so operands has one more entry
than ops).
*/
type flatBinOp struct {
	constant *Node
	info     binOpInfo
}

/*
readCombinatorialBinOp reads a full operand/operator run in one left-to-right
pass, then reduces it: a sortutil.PriorityQueue is loaded with every
operator's (precedence, stream position) key and popped to the end,
lowest-precedence-rank (tightest-binding) first and leftmost among equal
ranks, each pop folding its still-current left/right neighbours into one
node via StartContextAroundMany — the flat analogue of recursiveReadBinOp's
StartContextAround. The operand and operator nodes were already completed
during the scan, so folding only reparents already-built material. A
doubly linked list over operator positions keeps each remaining operator's
effective left/right operand current as its neighbours get folded away,
so every operator is popped and folded exactly once.

is/as are flattened into this same run (rather than kept as nested layers
the way the naive ladder keeps them) even though their right operand is a
type: naive's is and as layers each read one operator and its type and then
hand back to the looser layers, so after "x as T" only an operator that
binds more loosely than as may follow, and after "x is T" only one that
binds more loosely than is. The scan tracks that one constraint explicitly
(see typeFloor below) so the flattened run only ever
accepts the same language naive does — everything else in the ladder
(arithmetic/relational/equality/logical/null-coalescing/meta) is a
genuinely flat, order-independent precedence table and needs no such
tracking.
*/
func readCombinatorialBinOp(s *State, p *Parser, parent CorrelationID) (*Node, error) {
	return trace(s, "BinOp", "readCombinatorialBinOp", parent, func(id CorrelationID) (*Node, error) {
		first, err := p.ReadUnaryExpression(s, p, id)
		if err != nil {
			return nil, err
		}

		operands := []*Node{first}
		var ops []flatBinOp

		typeFloor := 0

		for {
			info, ok := combinatorialOperators[s.CurrentKind]
			if !ok {
				break
			}

			// typeFloor is the rank of the is/as whose type was read last, or
			// 0 once a looser operator has followed it. naive.go's is and as
			// layers read a single operator and type, so an operator ranked
			// at or below typeFloor is never reached by the nested grammar
			// (e.g. the 'as' in "x is T as U"). Stop the flat scan there and
			// leave it for the caller to reject as a trailing token, keeping
			// the two strategies accepting exactly the same language.
			if info.precedence <= typeFloor {
				break
			}
			typeFloor = 0
			if info.rightIsType {
				typeFloor = info.precedence
			}

			opConst, err := readConstant(s, p, id, s.CurrentKind)
			if err != nil {
				return nil, err
			}

			var right *Node
			if info.rightIsType {
				right, err = p.ReadNullablePrimitiveType(s, p, id)
			} else {
				right, err = p.ReadUnaryExpression(s, p, id)
			}
			if err != nil {
				return nil, err
			}

			operands = append(operands, right)
			ops = append(ops, flatBinOp{constant: opConst, info: info})
		}

		if len(ops) == 0 {
			return first, nil
		}

		n := len(ops)
		effLeft := make([]int, n)
		effRight := make([]int, n)
		prevOp := make([]int, n)
		nextOp := make([]int, n)
		for i := range ops {
			effLeft[i] = i
			effRight[i] = i + 1
			prevOp[i] = i - 1
			nextOp[i] = i + 1
			if nextOp[i] == n {
				nextOp[i] = -1
			}
		}

		pq := sortutil.NewPriorityQueue()
		for i, op := range ops {
			pq.Push(i, op.info.precedence*1000+i)
		}

		finalPos := 0

		for pq.Size() > 0 {
			v := pq.Pop()
			opIdx := v.(int)
			op := ops[opIdx]

			left := operands[effLeft[opIdx]]
			right := operands[effRight[opIdx]]

			if _, err := s.StartContextAroundMany(op.info.kind, []*Node{left, op.constant, right}); err != nil {
				return nil, err
			}
			combined, err := s.EndContext(&Node{
				Kind:     op.info.kind,
				Operator: op.constant.Literal,
				Children: []*Node{left, op.constant, right},
			})
			if err != nil {
				return nil, err
			}

			operands[effLeft[opIdx]] = combined
			finalPos = effLeft[opIdx]

			prv, nxt := prevOp[opIdx], nextOp[opIdx]
			if nxt != -1 {
				effLeft[nxt] = effLeft[opIdx]
				prevOp[nxt] = prv
			}
			if prv != -1 {
				nextOp[prv] = nxt
			}
		}

		return operands[finalPos], nil
	})
}
