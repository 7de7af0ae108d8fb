//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

package evalsuite

import "trpc.group/trpc-go/trpc-tooleval/evalcase"

type options struct {
	cases       []*evalcase.EvalCase
	parallelism int
}

func newOptions(opt ...Option) *options {
	opts := &options{parallelism: 1}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures an EvalSuite.
type Option func(*options)

// WithCases seeds the suite with evaluation cases.
func WithCases(cases ...*evalcase.EvalCase) Option {
	return func(o *options) {
		o.cases = append(o.cases, cases...)
	}
}

// WithParallelism sets the number of cases evaluated concurrently per
// model. Values below two keep evaluation sequential.
func WithParallelism(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.parallelism = n
		}
	}
}
