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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/krotik/common/fileutil"
	"github.com/krotik/common/termutil"
	"github.com/krotik/pqparse/config"
	"github.com/krotik/pqparse/parser"
	"github.com/krotik/pqparse/util"
)

/*
Parse parses one or more M files (or, with -i, reads one expression per line
from the console) and prints each resulting AST. Grounded in the teacher's
cli/tool/interpret.go CLIInterpreter.Interpret, trading its runtime/eval loop
for a parse/print loop, and keeping its log-file and interactive-terminal
setup nearly verbatim.
*/
func Parse() error {
	var err error

	strategy := flag.String("strategy", config.Str(config.DefaultStrategy), "Parser strategy to use (naive or combinatorial)")
	logFile := flag.String("logfile", "", "File to write a parse trace to (empty disables tracing)")
	interactive := flag.Bool("i", false, "Read one expression per line from the console")
	showHelp := flag.Bool("help", false, "Show this help message")

	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output())
		fmt.Fprintln(flag.CommandLine.Output(), fmt.Sprintf("Usage of %s parse [options] [file ...]", osArgs[0]))
		fmt.Fprintln(flag.CommandLine.Output())
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output())
		fmt.Fprintln(flag.CommandLine.Output(), "This tool parses M files (or, with -i, lines typed at the console) and prints their AST.")
		fmt.Fprintln(flag.CommandLine.Output())
	}

	if len(osArgs) >= 2 {
		flag.CommandLine.Parse(osArgs[2:])

		if *showHelp {
			flag.Usage()
			return nil
		}
	}

	p, err := strategyByName(*strategy)
	if err != nil {
		return err
	}

	trace, err := traceSink(*logFile)
	if err != nil {
		return err
	}

	if *interactive {
		return interpretInteractive(p, trace)
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return nil
	}

	for _, path := range args {
		if ok, _ := fileutil.PathExists(path); !ok {
			fmt.Fprintln(osStderr, fmt.Sprintf("File does not exist: %v", path))
			continue
		}

		// Resolve through a FileSourceLocator rooted at the file's own
		// directory, so a malicious relative path can never escape it
		// (util.FileSourceLocator's isSubpath guard) even though the path
		// itself was already confirmed to exist above.
		locator := &util.FileSourceLocator{Root: filepath.Dir(path)}

		data, rerr := locator.Resolve(filepath.Base(path))
		if rerr != nil {
			fmt.Fprintln(osStderr, fmt.Sprintf("Could not read %v: %v", path, rerr))
			continue
		}

		if perr := parseAndPrint(p, trace, path, data); perr != nil {
			fmt.Fprintln(osStderr, perr)
		}
	}

	return nil
}

/*
traceSink resolves the trace sink for -logfile: a NullTraceSink when no log
file is named, otherwise a BufferTraceSink writing to a MultiFileBuffer that
rolls over by size.
*/
func traceSink(logFile string) (parser.TraceSink, error) {
	if logFile == "" {
		return util.NewNullTraceSink(), nil
	}

	var logWriter io.Writer
	var err error

	rollover := fileutil.SizeBasedRolloverCondition(1000000)
	logWriter, err = fileutil.NewMultiFileBuffer(logFile, fileutil.ConsecutiveNumberIterator(10), rollover)
	if err != nil {
		return nil, fmt.Errorf("could not open trace log %v: %v", logFile, err)
	}

	return util.NewBufferTraceSink(logWriter), nil
}

/*
parseAndPrint lexes and parses one named source and prints its AST, rendering
any parse error through util.Render for a locale-aware message.
*/
func parseAndPrint(p *parser.Parser, trace parser.TraceSink, name, src string) error {
	lexer, err := parser.Lex(name, src)
	if err != nil {
		return fmt.Errorf("%v: %v", name, err)
	}

	s := parser.NewState(lexer, "en-US", nil, trace)

	n, err := p.ReadDocument(s, p, 0)
	if err != nil {
		if perr, ok := err.(*parser.Error); ok {
			return fmt.Errorf("%v: %v", name, util.Render(perr))
		}
		return fmt.Errorf("%v: %v", name, err)
	}

	fmt.Fprintln(osStdout, fmt.Sprintf("%v:", name))
	fmt.Fprintln(osStdout, s.IDMap.ToDebugString())
	fmt.Fprintln(osStdout, parser.Render(n))

	return nil
}

/*
interpretInteractive drops into a console loop reading one M expression per
line, echoing its AST, grounded in the teacher's Interpret's interactive
branch (AddHistoryMixin over a fresh ConsoleLineTerminal, looping NextLine
until an exit line or error).
*/
func interpretInteractive(p *parser.Parser, trace parser.TraceSink) error {
	term, err := termutil.NewConsoleLineTerminal(os.Stdout)
	if err != nil {
		return err
	}

	term, err = termutil.AddHistoryMixin(term, "", func(s string) bool {
		return isExitLine(s)
	})
	if err != nil {
		return err
	}

	if err = term.StartTerm(); err != nil {
		return err
	}
	defer term.StopTerm()

	fmt.Fprintln(osStdout, fmt.Sprintf("pqparse %v", config.ProductVersion))
	fmt.Fprintln(osStdout, "Type 'q' or 'quit' to exit")

	line, err := term.NextLine()
	for err == nil && !isExitLine(line) {
		trimmed := strings.TrimSpace(line)

		if trimmed != "" {
			if perr := parseAndPrint(p, trace, "<console>", trimmed); perr != nil {
				fmt.Fprintln(osStderr, perr)
			}
		}

		line, err = term.NextLine()
	}

	if err == io.EOF {
		err = nil
	}

	return err
}

/*
isExitLine reports whether a console line requests the interactive loop end.
*/
func isExitLine(s string) bool {
	trimmed := strings.TrimSpace(s)
	return trimmed == "q" || trimmed == "quit"
}
