// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Sweepsave stores a sweep's aggregated report in the results
// database and optionally archives the raw artifacts.
//
// Usage:
//
//	sweepsave -config runbook.yml [-driver name] [-db dsn] [-table name] [-bucket name] [-v] artifactdir
//
// Sweepsave aggregates the artifact directory the same way sweepstat
// does, using the sweep matrix and environment metadata from the
// runbook, and executes the report's insert statement against the
// database the runbook names. The -driver, -db, and -table flags
// override the runbook's database section; mysql DSNs may use the
// cloudsql network to reach Cloud SQL instances.
//
// With -bucket, the raw artifacts and the rendered insert statement
// are also archived to a Google Cloud Storage bucket under
// <testcase>/<date>/, with the test case and date attached as object
// metadata. Credentials come from Application Default Credentials.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	_ "github.com/go-sql-driver/mysql"

	"github.com/classicvalues/lisa/storage/db"
	_ "github.com/classicvalues/lisa/storage/db/sqlite3"
	"github.com/classicvalues/lisa/storage/fs"
	"github.com/classicvalues/lisa/storage/fs/gcs"
	"github.com/classicvalues/lisa/sweep"
	"github.com/classicvalues/lisa/sweepstat"
)

var (
	configFile = flag.String("config", "", "sweep runbook `file` naming the matrix, environment, and database")
	driver     = flag.String("driver", "", "database `driver` (mysql or sqlite3), overriding the runbook")
	dsn        = flag.String("db", "", "database `dsn`, overriding the runbook")
	table      = flag.String("table", "", "results table `name`, overriding the runbook")
	date       = flag.String("date", time.Now().Format("2006-01-02"), "test `date` recorded with the report")
	bucket     = flag.String("bucket", "", "archive artifacts and report to GCS `bucket`")
	verbose    = flag.Bool("v", false, "print verbose log messages")
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage of sweepsave:
	sweepsave [flags] artifactdir
`)
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("sweepsave: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
	}
	dir := flag.Arg(0)
	if *configFile == "" {
		log.Fatal("a runbook is required (-config)")
	}
	rb, err := sweep.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	if *driver != "" {
		rb.DB.Driver = *driver
	}
	if *dsn != "" {
		rb.DB.DSN = *dsn
	}
	if *table != "" {
		rb.DB.Table = *table
	}
	if rb.DB.Driver == "" || rb.DB.DSN == "" {
		log.Fatal("no database: set db in the runbook or -driver/-db")
	}
	env := rb.Env
	env.TestDate = *date

	coll, err := sweepstat.CollectDir(dir, rb.Matrix, func(err error) { log.Print(err) })
	if err != nil {
		log.Fatal(err)
	}
	results := coll.Results(rb.Matrix)
	if *verbose {
		for _, r := range results {
			log.Printf("%s: %s", r.Metadata(), r.Summary())
		}
	}

	start := time.Now()
	d, err := db.OpenSQL(rb.DB.Driver, rb.DB.DSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer d.Close()

	ctx := context.Background()
	if err := d.SaveReport(ctx, rb.DB.Table, env, results); err != nil {
		log.Fatalf("save report: %v", err)
	}
	if *verbose {
		s := ""
		if len(results) != 1 {
			s = "s"
		}
		log.Printf("%d row%s saved to %s in %.2f seconds.", len(results), s, rb.DB.Table, time.Since(start).Seconds())
	}

	if *bucket != "" {
		ts, err := google.DefaultTokenSource(ctx, storage.ScopeReadWrite)
		if err != nil {
			log.Fatalf("credentials: %v", err)
		}
		fsys, err := gcs.NewFS(ctx, *bucket, option.WithTokenSource(ts))
		if err != nil {
			log.Fatalf("bucket: %v", err)
		}
		prefix := env.TestCaseName + "/" + env.TestDate + "/"
		meta := map[string]string{"testcase": env.TestCaseName, "date": env.TestDate}
		stmt := sweepstat.InsertStatement(rb.DB.Table, env, results)
		n, err := archive(ctx, fsys, prefix, meta, dir, stmt)
		if err != nil {
			log.Fatalf("archive: %v", err)
		}
		if *verbose {
			s := ""
			if n != 1 {
				s = "s"
			}
			log.Printf("%d file%s archived.", n, s)
		}
		fmt.Printf("gs://%s/%s\n", *bucket, prefix)
	}
}

// archive copies every artifact in dir plus the rendered insert
// statement into fsys under prefix, attaching meta to each object.
// It returns the number of files written.
func archive(ctx context.Context, fsys fs.FS, prefix string, meta map[string]string, dir, stmt string) (int, error) {
	if names, err := fsys.List(ctx, prefix); err == nil && len(names) > 0 {
		log.Printf("%d object(s) already archived under %s", len(names), prefix)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, ent.Name()))
		if err != nil {
			return n, err
		}
		if err := put(ctx, fsys, prefix+ent.Name(), meta, data); err != nil {
			return n, err
		}
		n++
	}
	if stmt != "" {
		if err := put(ctx, fsys, prefix+"report.sql", meta, []byte(stmt+"\n")); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// put writes one file to fsys, abandoning it on error.
func put(ctx context.Context, fsys fs.FS, name string, meta map[string]string, data []byte) error {
	w, err := fsys.NewWriter(ctx, name, meta)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.CloseWithError(err)
		return err
	}
	return w.Close()
}
