//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

package local

// defaultBaseDir is the directory reports are stored under when none is configured.
const defaultBaseDir = "eval_reports"

type options struct {
	baseDir string
}

func newOptions(opt ...Option) *options {
	opts := &options{baseDir: defaultBaseDir}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures the local report manager.
type Option func(*options)

// WithBaseDir sets the base directory reports are stored under.
func WithBaseDir(baseDir string) Option {
	return func(o *options) {
		if baseDir != "" {
			o.baseDir = baseDir
		}
	}
}
