/*
 * pqparse
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package util

import (
	"fmt"

	"github.com/krotik/pqparse/parser"
)

/*
messageTemplates maps a locale tag and error kind to a human-readable
message template taking the error's Detail as its one format argument.
Grounded in the teacher's util/error.go RuntimeError.Error, which builds a
one-line "in %s: %v (%v)"-shaped message from structured fields rather than
the Error type's own locale-agnostic fallback rendering — here that pattern
is generalized from one fixed format string to a table keyed by locale, since
spec.md's Error.Locale field exists specifically so an external renderer can
localize it.
*/
var messageTemplates = map[string]map[parser.ErrorKind]string{
	"en-US": {
		parser.ErrExpectedTokenKind:                     "expected a different token: %v",
		parser.ErrExpectedAnyTokenKind:                  "expected one of several token kinds: %v",
		parser.ErrExpectedGeneralizedIdentifier:          "expected an identifier here: %v",
		parser.ErrExpectedCsvContinuation:                "unexpected trailing comma: %v",
		parser.ErrInvalidPrimitiveType:                   "not a valid primitive type: %v",
		parser.ErrRequiredParameterAfterOptionalParameter: "required parameter follows an optional one: %v",
		parser.ErrUnusedTokensRemain:                      "trailing content after the expression: %v",
		parser.ErrInvariantError:                          "internal parser error: %v",
		parser.ErrCancelled:                               "parse was cancelled: %v",
	},
}

/*
fallbackLocale is used when a requested locale has no template table of its
own; en-US is the only locale this module ships, mirroring the teacher's own
single-locale (untranslated) message set.
*/
const fallbackLocale = "en-US"

/*
Render produces a human-readable, locale-tagged rendering of a parser error.
An unknown locale falls back to fallbackLocale's templates; an error kind
with no template there falls back to the locale-agnostic Error() string.
*/
func Render(err *parser.Error) string {
	templates, ok := messageTemplates[err.Locale]
	if !ok {
		templates = messageTemplates[fallbackLocale]
	}

	template, ok := templates[err.Kind]
	if !ok {
		return err.Error()
	}

	msg := fmt.Sprintf(template, err.Detail)
	return fmt.Sprintf("%v (line %d, column %d)", msg, err.Position.Line, err.Position.Column)
}
