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

import "fmt"

/*
Kind identifies the lexical category of a Token.
*/
type Kind int

/*
Token kinds produced by the lexer and consumed by the parser productions.
*/
const (
	KindEOF Kind = iota
	KindError

	// Literals

	KindIdentifier
	KindQuotedIdentifier
	KindNumericLiteral
	KindTextLiteral

	// Keywords

	KindKeywordAnd
	KindKeywordAs
	KindKeywordEach
	KindKeywordElse
	KindKeywordError
	KindKeywordFalse
	KindKeywordIf
	KindKeywordIn
	KindKeywordIs
	KindKeywordLet
	KindKeywordMeta
	KindKeywordNot
	KindKeywordNull
	KindKeywordOr
	KindKeywordOtherwise
	KindKeywordSection
	KindKeywordShared
	KindKeywordThen
	KindKeywordTrue
	KindKeywordTry
	KindKeywordType
	KindKeywordHashSection
	KindKeywordHashShared
	KindKeywordHashBinary
	KindKeywordHashDate
	KindKeywordHashDateTime
	KindKeywordHashDateTimeZone
	KindKeywordHashDuration
	KindKeywordHashTable
	KindKeywordHashTime

	// Grouping / punctuation

	KindLeftParen
	KindRightParen
	KindLeftBracket
	KindRightBracket
	KindLeftBrace
	KindRightBrace
	KindComma
	KindSemicolon
	KindAt
	KindQuestionMark
	KindEllipsis // ...
	KindDotDot   // ..
	KindFatArrow // =>

	// Operators

	KindPlus
	KindMinus
	KindAsterisk
	KindDivision
	KindAmpersand
	KindEqual
	KindNotEqual
	KindLessThan
	KindLessThanEqualTo
	KindGreaterThan
	KindGreaterThanEqualTo
	KindNullCoalescingOperator // ??
)

/*
kindNames gives a human-readable label for each Kind, used by error rendering
and the pretty printer.
*/
var kindNames = map[Kind]string{
	KindEOF:                     "<eof>",
	KindError:                   "<error>",
	KindIdentifier:              "identifier",
	KindQuotedIdentifier:        "quoted identifier",
	KindNumericLiteral:          "number",
	KindTextLiteral:             "text",
	KindKeywordAnd:              "and",
	KindKeywordAs:               "as",
	KindKeywordEach:             "each",
	KindKeywordElse:             "else",
	KindKeywordError:            "error",
	KindKeywordFalse:            "false",
	KindKeywordIf:               "if",
	KindKeywordIn:               "in",
	KindKeywordIs:               "is",
	KindKeywordLet:              "let",
	KindKeywordMeta:             "meta",
	KindKeywordNot:              "not",
	KindKeywordNull:             "null",
	KindKeywordOr:               "or",
	KindKeywordOtherwise:        "otherwise",
	KindKeywordSection:          "section",
	KindKeywordShared:           "shared",
	KindKeywordThen:             "then",
	KindKeywordTrue:             "true",
	KindKeywordTry:              "try",
	KindKeywordType:             "type",
	KindKeywordHashSection:      "#section",
	KindKeywordHashShared:       "#shared",
	KindKeywordHashBinary:       "#binary",
	KindKeywordHashDate:         "#date",
	KindKeywordHashDateTime:     "#datetime",
	KindKeywordHashDateTimeZone: "#datetimezone",
	KindKeywordHashDuration:     "#duration",
	KindKeywordHashTable:        "#table",
	KindKeywordHashTime:         "#time",
	KindLeftParen:               "(",
	KindRightParen:              ")",
	KindLeftBracket:             "[",
	KindRightBracket:            "]",
	KindLeftBrace:               "{",
	KindRightBrace:              "}",
	KindComma:                   ",",
	KindSemicolon:               ";",
	KindAt:                      "@",
	KindQuestionMark:            "?",
	KindEllipsis:                "...",
	KindDotDot:                  "..",
	KindFatArrow:                "=>",
	KindPlus:                    "+",
	KindMinus:                   "-",
	KindAsterisk:                "*",
	KindDivision:                "/",
	KindAmpersand:               "&",
	KindEqual:                   "=",
	KindNotEqual:                "<>",
	KindLessThan:                "<",
	KindLessThanEqualTo:         "<=",
	KindGreaterThan:             ">",
	KindGreaterThanEqualTo:      ">=",
	KindNullCoalescingOperator:  "??",
}

/*
String returns a human-readable label for k.
*/
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("<kind %d>", int(k))
}

/*
Position is a grapheme-aware location inside a lexer snapshot's text buffer.
*/
type Position struct {
	CodeUnit int // byte offset from the start of the buffer
	Line     int // 1-based line number
	Column   int // 1-based code-unit column on the line
	Grapheme int // 1-based grapheme-cluster column on the line
}

/*
Token is a single read-only lexical unit produced by the lexer. Tokens are
owned by the lexer snapshot that produced them and are never mutated by the
parser.
*/
type Token struct {
	Kind    Kind
	Literal string
	Start   Position
	End     Position
}

/*
String returns a short diagnostic rendering of t.
*/
func (t Token) String() string {
	if t.Kind == KindEOF {
		return "<eof>"
	}
	if len(t.Literal) > 0 {
		return fmt.Sprintf("%v %q", t.Kind, t.Literal)
	}
	return t.Kind.String()
}

/*
unaryOperatorKinds is the set of token kinds that may start a unary operator
sequence in readUnaryExpression (both strategies use the naive one; there
is no separate combinatorial fast path).
*/
var unaryOperatorKinds = map[Kind]bool{
	KindPlus:        true,
	KindMinus:       true,
	KindKeywordNot:  true,
}

/*
primitiveTypeNames is the closed set of 17 identifier texts that denote a
primitive type, per readPrimitiveType. "type" and the null literal are
accepted too, but as distinct token kinds rather than identifier text.
*/
var primitiveTypeNames = map[string]bool{
	"any":          true,
	"anynonnull":   true,
	"binary":       true,
	"date":         true,
	"datetime":     true,
	"datetimezone": true,
	"duration":     true,
	"function":     true,
	"list":         true,
	"logical":      true,
	"none":         true,
	"number":       true,
	"record":       true,
	"table":        true,
	"text":         true,
	"time":         true,
	"null":         true,
}
