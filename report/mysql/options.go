//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

package mysql

import (
	"database/sql"
	"time"
)

// defaultInitTimeout bounds schema initialization at construction.
const defaultInitTimeout = 10 * time.Second

type options struct {
	dsn            string
	tablePrefix    string
	skipSchemaInit bool
	initTimeout    time.Duration
	db             *sql.DB
}

func newOptions(opt ...Option) *options {
	opts := &options{initTimeout: defaultInitTimeout}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures the MySQL report manager.
type Option func(*options)

// WithDSN sets the MySQL data source name.
func WithDSN(dsn string) Option {
	return func(o *options) {
		o.dsn = dsn
	}
}

// WithTablePrefix sets a prefix for the report table name.
func WithTablePrefix(prefix string) Option {
	return func(o *options) {
		o.tablePrefix = prefix
	}
}

// WithSkipSchemaInit skips creating the report table at construction.
func WithSkipSchemaInit() Option {
	return func(o *options) {
		o.skipSchemaInit = true
	}
}

// WithInitTimeout bounds the schema initialization at construction.
func WithInitTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.initTimeout = timeout
		}
	}
}

// WithDB injects an existing database handle instead of opening one from
// the DSN. The manager takes ownership and closes it on Close.
func WithDB(db *sql.DB) Option {
	return func(o *options) {
		o.db = db
	}
}
