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
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/krotik/common/stringutil"
	"github.com/krotik/pqparse/parser"
	"github.com/krotik/pqparse/util"
)

/*
Format reformats every M file under a directory tree in place, grounded in
the teacher's cli/tool/format.go filepath.Walk loop, swapping its
parser.Parse/parser.PrettyPrint call pair for this module's
Lex+ReadDocument+Render pipeline.
*/
func Format() error {
	var err error

	wd, _ := os.Getwd()

	dir := flag.String("dir", wd, "Root directory for M files")
	ext := flag.String("ext", ".pq", "Extension for M files")
	strategy := flag.String("strategy", "naive", "Parser strategy to use (naive or combinatorial)")
	showHelp := flag.Bool("help", false, "Show this help message")

	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output())
		fmt.Fprintln(flag.CommandLine.Output(), fmt.Sprintf("Usage of %s format [options]", osArgs[0]))
		fmt.Fprintln(flag.CommandLine.Output())
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output())
		fmt.Fprintln(flag.CommandLine.Output(), "This tool will format all M files in a directory structure.")
		fmt.Fprintln(flag.CommandLine.Output())
	}

	if len(osArgs) >= 2 {
		flag.CommandLine.Parse(osArgs[2:])

		if *showHelp {
			flag.Usage()
			return nil
		}
	}

	p, perr := strategyByName(*strategy)
	if perr != nil {
		return perr
	}

	fmt.Fprintln(flag.CommandLine.Output(), fmt.Sprintf("Formatting all %v files in %v", *ext, *dir))

	// Every file under *dir is resolved through one FileSourceLocator
	// rooted at *dir, so a relative name that leads out of the tree is
	// refused (the locator's isSubpath guard compares cleaned paths and does
	// not resolve symlinks), the way the
	// teacher's own importLocator keeps script-level imports confined to
	// its root directory.
	locator := &util.FileSourceLocator{Root: *dir}

	// Every processed file earns a row in a summary table printed once the
	// walk completes, grounded in the teacher's own displaySymbols table
	// (cli/tool/interpret.go): a header pair followed by one fillTableRow
	// per entry, rendered through stringutil.PrintGraphicStringTable.
	tabData := []string{"File", "Status"}

	err = filepath.Walk(*dir,
		func(path string, info os.FileInfo, err error) error {
			if err == nil && !info.IsDir() && strings.HasSuffix(path, *ext) {
				var ferr error
				var data string

				rel, rerr := filepath.Rel(*dir, path)
				if rerr != nil {
					return rerr
				}

				if data, ferr = locator.Resolve(rel); ferr == nil {
					var lexer parser.LexerSnapshot
					var n *parser.Node

					if lexer, ferr = parser.Lex(path, data); ferr == nil {
						s := parser.NewState(lexer, "en-US", nil, nil)
						if n, ferr = p.ReadDocument(s, p, 0); ferr == nil {
							ioutil.WriteFile(path, []byte(parser.Render(n)), info.Mode())
						}
					}
				}

				status := "formatted"
				if ferr != nil {
					status = ferr.Error()
					fmt.Fprintln(flag.CommandLine.Output(), fmt.Sprintf("Could not format %v: %v", path, ferr))
				}

				tabData = fillTableRow(tabData, rel, status)
			}
			return err
		})

	if len(tabData) > 2 {
		fmt.Fprint(flag.CommandLine.Output(), stringutil.PrintGraphicStringTable(tabData, 2, 1,
			stringutil.SingleDoubleLineTable))
	}

	return err
}

/*
strategyByName resolves a parser strategy by its config.DefaultStrategy-style
name, shared between the format and parse commands.
*/
func strategyByName(name string) (*parser.Parser, error) {
	switch name {
	case "naive":
		return parser.NaiveParser(), nil
	case "combinatorial":
		return parser.CombinatorialParser(), nil
	}
	return nil, fmt.Errorf("unknown parser strategy: %v", name)
}
