// Copyright 2016 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gcs implements the fs.FS interface using Google Cloud
// Storage.
package gcs

import (
	"cloud.google.com/go/storage"
	"golang.org/x/net/context"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	storagefs "github.com/classicvalues/lisa/storage/fs"
)

// impl is an fs.FS backed by a Google Cloud Storage bucket.
type impl struct {
	bucket *storage.BucketHandle
}

// NewFS creates an FS that writes to the provided bucket. Credentials
// come from the client options, or from Application Default
// Credentials when none are given.
func NewFS(ctx context.Context, bucketName string, opts ...option.ClientOption) (storagefs.FS, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &impl{client.Bucket(bucketName)}, nil
}

// NewWriter returns a Writer that stores the named object together
// with its metadata when closed.
func (f *impl) NewWriter(ctx context.Context, name string, metadata map[string]string) (storagefs.Writer, error) {
	w := f.bucket.Object(name).NewWriter(ctx)
	w.Metadata = metadata
	return w, nil
}

// List returns the names of objects beginning with prefix.
func (f *impl) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	it := f.bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		names = append(names, attrs.Name)
	}
	return names, nil
}
