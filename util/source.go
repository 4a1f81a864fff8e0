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
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
)

/*
SourceLocator resolves a path to M source text, for the CLI's batch-parsing
convenience (spec.md leaves the lexer an external collaborator; a locator is
how the CLI turns a path argument into text without the core package ever
needing to know what a filesystem is).
*/
type SourceLocator interface {
	/*
		Resolve returns the source text named by path.
	*/
	Resolve(path string) (string, error)
}

/*
MemorySourceLocator holds a given set of sources in memory, grounded in the
teacher's MemoryImportLocator — used by tests and by embedding examples that
want deterministic input without touching disk.
*/
type MemorySourceLocator struct {
	Files map[string]string
}

/*
Resolve implements SourceLocator.
*/
func (l *MemorySourceLocator) Resolve(path string) (string, error) {
	res, ok := l.Files[path]
	if !ok {
		return "", fmt.Errorf("could not find source path: %v", path)
	}
	return res, nil
}

/*
FileSourceLocator resolves paths against a root directory on disk, grounded
in the teacher's FileImportLocator, rejecting any path that escapes Root.
*/
type FileSourceLocator struct {
	Root string
}

/*
Resolve implements SourceLocator.
*/
func (l *FileSourceLocator) Resolve(path string) (string, error) {
	var res string

	full := filepath.Clean(filepath.Join(l.Root, path))

	ok, err := isSubpath(l.Root, full)
	if err == nil && !ok {
		err = fmt.Errorf("source path is outside of root: %v", path)
	}

	if err == nil {
		var b []byte
		if b, err = ioutil.ReadFile(full); err != nil {
			err = fmt.Errorf("could not read source path %v: %v", path, err)
		} else {
			res = string(b)
		}
	}

	return res, err
}

/*
isSubpath checks if sub is a descendant path of root.
*/
func isSubpath(root, sub string) (bool, error) {
	rel, err := filepath.Rel(root, sub)
	return err == nil &&
		!strings.HasPrefix(rel, fmt.Sprintf("..%v", string(os.PathSeparator))) &&
		rel != "..", err
}
