/*
 * pqparse
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/krotik/pqparse/cli/tool"
	"github.com/krotik/pqparse/config"
)

func main() {

	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)

	flag.Usage = func() {
		fmt.Println(fmt.Sprintf("Usage of %s <tool>", os.Args[0]))
		fmt.Println()
		fmt.Println(fmt.Sprintf("pqparse %v - M formula language parser", config.ProductVersion))
		fmt.Println()
		fmt.Println("Available commands:")
		fmt.Println()
		fmt.Println("    parse    Parse M files or console input and print their AST")
		fmt.Println("    format   Format all M files in a directory structure")
		fmt.Println()
		fmt.Println(fmt.Sprintf("Use %s <command> -help for more information about a given command.", os.Args[0]))
		fmt.Println()
	}

	if err := flag.CommandLine.Parse(os.Args[1:]); err == nil {

		if len(flag.Args()) > 0 {

			switch flag.Args()[0] {
			case "parse":
				err = tool.Parse()
			case "format":
				err = tool.Format()
			default:
				flag.Usage()
			}

		} else {
			err = tool.Parse()
		}

		if err != nil {
			fmt.Println(fmt.Sprintf("Error: %v", err))
		}
	}
}
