/*
 * pqparse
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package tool

import (
	"io"
	"os"

	"github.com/krotik/common/stringutil"
)

/*
osArgs is a local copy of os.Args (used for unit tests).
*/
var osArgs = os.Args

/*
osStdout is a local copy of os.Stdout (used for unit tests).
*/
var osStdout io.Writer = os.Stdout

/*
osStderr is a local copy of os.Stderr (used for unit tests).
*/
var osStderr io.Writer = os.Stderr

/*
fillTableRow fills a table row of a display table, wrapping a long value
across multiple lines the way the teacher's cli/tool/helper.go does for its
symbol-listing tables.
*/
func fillTableRow(tabData []string, key string, value string) []string {
	tabData = append(tabData, key)

	valSplit := stringutil.ChunkSplit(value, 80, true)
	tabData = append(tabData, valSplit[0])
	for _, valPart := range valSplit[1:] {
		tabData = append(tabData, "")
		tabData = append(tabData, valPart)
	}

	return tabData
}
