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
ErrorKind is the closed set of parser-level failure shapes. Token-shape
errors are raised at the failing production and, at the two speculative
sites (readDocument, tryReadPrimitiveType), caught and retried from a
checkpoint; everywhere else they terminate the parse.
*/
type ErrorKind string

/*
Error kinds.
*/
const (
	ErrExpectedTokenKind                     ErrorKind = "ExpectedTokenKind"
	ErrExpectedAnyTokenKind                  ErrorKind = "ExpectedAnyTokenKind"
	ErrExpectedGeneralizedIdentifier          ErrorKind = "ExpectedGeneralizedIdentifier"
	ErrExpectedCsvContinuation                ErrorKind = "ExpectedCsvContinuation"
	ErrInvalidPrimitiveType                   ErrorKind = "InvalidPrimitiveType"
	ErrRequiredParameterAfterOptionalParameter ErrorKind = "RequiredParameterAfterOptionalParameter"
	ErrUnusedTokensRemain                      ErrorKind = "UnusedTokensRemain"
	ErrInvariantError                          ErrorKind = "InvariantError"
	ErrCancelled                                ErrorKind = "Cancelled"
)

/*
Error is the single error type the parser raises. It carries everything an
external localization layer needs to render a human message: the failing
token (or a synthesized end-of-input token), a grapheme-aware position, a
locale tag, and a free-form detail string the renderer may or may not use
verbatim.
*/
type Error struct {
	Kind     ErrorKind
	Token    Token
	Position Position
	Locale   string
	Detail   string
}

/*
Error implements the error interface with a locale-agnostic fallback
rendering; util.Render produces the localized form.
*/
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%v: %v (at %v)", e.Kind, e.Detail, e.Token)
	}
	return fmt.Sprintf("%v (at %v)", e.Kind, e.Token)
}

/*
newExpectedTokenKindError builds an ExpectedTokenKind error for the current
token against a single expected kind.
*/
func newExpectedTokenKindError(s *State, expected Kind) error {
	return &Error{
		Kind:     ErrExpectedTokenKind,
		Token:    s.currentToken(),
		Position: s.currentToken().Start,
		Locale:   s.Locale,
		Detail:   fmt.Sprintf("expected %v, found %v", expected, s.CurrentKind),
	}
}

/*
newExpectedAnyTokenKindError builds an ExpectedAnyTokenKind error for the
current token against a set of acceptable kinds.
*/
func newExpectedAnyTokenKindError(s *State, expected []Kind) error {
	return &Error{
		Kind:     ErrExpectedAnyTokenKind,
		Token:    s.currentToken(),
		Position: s.currentToken().Start,
		Locale:   s.Locale,
		Detail:   fmt.Sprintf("expected one of %v, found %v", expected, s.CurrentKind),
	}
}

/*
newExpectedGeneralizedIdentifierError reports that readGeneralizedIdentifier
could not extract a valid identifier-kind literal.
*/
func newExpectedGeneralizedIdentifierError(s *State) error {
	return &Error{
		Kind:     ErrExpectedGeneralizedIdentifier,
		Token:    s.currentToken(),
		Position: s.currentToken().Start,
		Locale:   s.Locale,
		Detail:   "expected a generalized identifier",
	}
}

/*
newExpectedCsvContinuationError reports a dangling comma before a closer.
*/
func newExpectedCsvContinuationError(s *State) error {
	return &Error{
		Kind:     ErrExpectedCsvContinuation,
		Token:    s.currentToken(),
		Position: s.currentToken().Start,
		Locale:   s.Locale,
		Detail:   "trailing comma before closing token",
	}
}

/*
newInvalidPrimitiveTypeError reports that the current identifier is not one
of the closed set of primitive type names.
*/
func newInvalidPrimitiveTypeError(s *State) error {
	return &Error{
		Kind:     ErrInvalidPrimitiveType,
		Token:    s.currentToken(),
		Position: s.currentToken().Start,
		Locale:   s.Locale,
		Detail:   fmt.Sprintf("%q is not a primitive type", s.currentToken().Literal),
	}
}

/*
newRequiredParameterAfterOptionalError reports a required parameter
following an optional one in a parameter list.
*/
func newRequiredParameterAfterOptionalError(s *State) error {
	return &Error{
		Kind:     ErrRequiredParameterAfterOptionalParameter,
		Token:    s.currentToken(),
		Position: s.currentToken().Start,
		Locale:   s.Locale,
		Detail:   "required parameter cannot follow an optional parameter",
	}
}

/*
newUnusedTokensRemainError reports that assertIsDoneParsing found more
tokens after a would-be-complete expression document.
*/
func newUnusedTokensRemainError(s *State) error {
	return &Error{
		Kind:     ErrUnusedTokensRemain,
		Token:    s.currentToken(),
		Position: s.currentToken().Start,
		Locale:   s.Locale,
		Detail:   "unused tokens remain after the expression",
	}
}

/*
newCancelledError reports that the cancellation hook fired.
*/
func newCancelledError(s *State) error {
	return &Error{
		Kind:     ErrCancelled,
		Token:    s.currentToken(),
		Position: s.currentToken().Start,
		Locale:   s.Locale,
		Detail:   "parse cancelled",
	}
}
