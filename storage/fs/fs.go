// Copyright 2016 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fs provides a backend-agnostic filesystem layer for
// archiving sweep artifacts and reports.
package fs

import (
	"bytes"
	"sort"
	"strings"
	"sync"

	"golang.org/x/net/context"
)

// An FS stores sweep artifacts and reports.
type FS interface {
	// NewWriter returns a Writer for a given file name and metadata.
	NewWriter(ctx context.Context, name string, metadata map[string]string) (Writer, error)
	// List returns the names of stored files beginning with prefix,
	// in lexical order.
	List(ctx context.Context, prefix string) ([]string, error)
}

// A Writer is an io.WriteCloser that commits the file on Close.
type Writer interface {
	Write(p []byte) (n int, err error)
	Close() error
	// CloseWithError abandons the writing of the file, removing
	// any partially written data.
	CloseWithError(error) error
}

// MemFS is an in-memory filesystem implementing the FS interface.
type MemFS struct {
	mu       sync.Mutex
	content  map[string][]byte
	metadata map[string]map[string]string
}

// NewMemFS constructs a new, empty MemFS.
func NewMemFS() *MemFS {
	return &MemFS{
		content:  make(map[string][]byte),
		metadata: make(map[string]map[string]string),
	}
}

// NewWriter returns a Writer for the named file. The file appears in
// the filesystem when the Writer is closed.
func (fs *MemFS) NewWriter(_ context.Context, name string, metadata map[string]string) (Writer, error) {
	meta := make(map[string]string)
	for k, v := range metadata {
		meta[k] = v
	}
	return &memWriter{fs: fs, name: name, meta: meta}, nil
}

// List returns the names of stored files beginning with prefix.
func (fs *MemFS) List(_ context.Context, prefix string) ([]string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var names []string
	for name := range fs.content {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// ReadFile returns the content of a stored file.
func (fs *MemFS) ReadFile(name string) ([]byte, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	data, ok := fs.content[name]
	return data, ok
}

// Metadata returns the metadata stored with a file.
func (fs *MemFS) Metadata(name string) map[string]string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.metadata[name]
}

type memWriter struct {
	bytes.Buffer
	fs   *MemFS
	name string
	meta map[string]string
}

func (w *memWriter) Close() error {
	w.fs.mu.Lock()
	defer w.fs.mu.Unlock()
	w.fs.content[w.name] = w.Bytes()
	w.fs.metadata[w.name] = w.meta
	return nil
}

func (w *memWriter) CloseWithError(error) error {
	w.Reset()
	return nil
}
