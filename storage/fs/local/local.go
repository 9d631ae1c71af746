// Copyright 2016 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package local implements the fs.FS interface using local files.
// Metadata is not stored.
package local

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/context"

	storagefs "github.com/classicvalues/lisa/storage/fs"
)

// impl is an fs.FS backed by local disk.
type impl struct {
	root string
}

// NewFS constructs an FS that writes to the provided directory.
func NewFS(root string) storagefs.FS {
	return &impl{root}
}

// NewWriter creates a file under the root directory, creating parent
// directories as needed. metadata is ignored.
func (f *impl) NewWriter(ctx context.Context, name string, metadata map[string]string) (storagefs.Writer, error) {
	if err := os.MkdirAll(filepath.Join(f.root, filepath.Dir(name)), 0777); err != nil {
		return nil, err
	}
	w, err := os.Create(filepath.Join(f.root, name))
	if err != nil {
		return nil, err
	}
	return &wrapper{w}, nil
}

// List returns the names of files under the root directory beginning
// with prefix, relative to the root and in lexical order.
func (f *impl) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(f.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(f.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(rel, prefix) {
			names = append(names, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

type wrapper struct {
	*os.File
}

// CloseWithError closes the file and attempts to unlink it.
func (w *wrapper) CloseWithError(error) error {
	w.Close()
	return os.Remove(w.Name())
}
