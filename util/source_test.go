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
	"testing"

	"github.com/krotik/common/errorutil"
	"github.com/krotik/common/fileutil"
)

const sourceTestDir = "sourcetest"

/*
TestFileSourceLocator mirrors the teacher's TestImportLocater: same
outside-root rejection, same missing-file error, same successful-read path,
ground for this module's FileSourceLocator.
*/
func TestFileSourceLocator(t *testing.T) {
	if res, _ := fileutil.PathExists(sourceTestDir); res {
		os.RemoveAll(sourceTestDir)
	}

	if err := os.Mkdir(sourceTestDir, 0770); err != nil {
		t.Fatalf("could not create test dir: %v", err)
	}
	defer os.RemoveAll(sourceTestDir)

	if err := os.Mkdir(filepath.Join(sourceTestDir, "test1"), 0770); err != nil {
		t.Fatalf("could not create test dir: %v", err)
	}

	srcContent := "1 + 1"
	if err := ioutil.WriteFile(filepath.Join(sourceTestDir, "test1", "myfile.pq"),
		[]byte(srcContent), 0770); err != nil {
		t.Fatalf("could not write test file: %v", err)
	}

	fsl := &FileSourceLocator{Root: sourceTestDir}

	res, err := fsl.Resolve(filepath.Join("..", "t"))
	expectedError := fmt.Sprintf("source path is outside of root: ..%vt", string(os.PathSeparator))
	if res != "" || err == nil || err.Error() != expectedError {
		t.Fatalf("unexpected result: %v, %v", res, err)
	}

	res, err = fsl.Resolve(filepath.Join("test1", "missing.pq"))
	if res != "" || err == nil || !strings.HasPrefix(err.Error(), "could not read source path") {
		t.Fatalf("unexpected result: %v, %v", res, err)
	}

	res, err = fsl.Resolve(filepath.Join("test1", "myfile.pq"))
	errorutil.AssertOk(err)
	if res != srcContent {
		t.Fatalf("unexpected result: %v, %v", res, err)
	}
}

/*
TestMemorySourceLocator mirrors the teacher's MemoryImportLocator half of
TestImportLocater.
*/
func TestMemorySourceLocator(t *testing.T) {
	msl := &MemorySourceLocator{Files: map[string]string{
		"foo":  "bar",
		"test": "test1",
	}}

	if _, err := msl.Resolve("xxx"); err == nil || err.Error() != "could not find source path: xxx" {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := msl.Resolve("foo")
	errorutil.AssertOk(err)
	if res != "bar" {
		t.Fatalf("unexpected result: %v, %v", res, err)
	}

	res, err = msl.Resolve("test")
	errorutil.AssertOk(err)
	if res != "test1" {
		t.Fatalf("unexpected result: %v, %v", res, err)
	}
}
