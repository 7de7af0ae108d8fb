//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

package evalsuite

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"trpc.group/trpc-go/trpc-tooleval/evalcase"
	"trpc.group/trpc-go/trpc-tooleval/report"
)

type runCaseParam struct {
	idx      int
	ctx      context.Context
	provider ToolCallProvider
	model    string
	evalCase *evalcase.EvalCase
	suite    *EvalSuite
	reports  []*report.CaseReport
	errs     []error
	wg       *sync.WaitGroup
}

func (p *runCaseParam) reset() {
	p.idx = 0
	p.ctx = nil
	p.provider = nil
	p.model = ""
	p.evalCase = nil
	p.suite = nil
	p.reports = nil
	p.errs = nil
	p.wg = nil
}

var runCaseParamPool = &sync.Pool{
	New: func() any { return new(runCaseParam) },
}

func createRunCasePool(size int) (*ants.PoolWithFunc, error) {
	if size <= 0 {
		return nil, errors.New("pool size must be greater than 0")
	}
	pool, err := ants.NewPoolWithFunc(size, func(args any) {
		param, ok := args.(*runCaseParam)
		if !ok {
			panic("run case pool args type error")
		}
		wg := param.wg
		defer func() {
			wg.Done()
			param.reset()
			runCaseParamPool.Put(param)
		}()
		param.reports[param.idx], param.errs[param.idx] = param.suite.runCase(
			param.ctx, param.provider, param.model, param.evalCase)
	})
	if err != nil {
		return nil, fmt.Errorf("create run case pool: %w", err)
	}
	return pool, nil
}

// runCasesParallel evaluates the suite's cases through a bounded worker
// pool, filling caseReports and caseErrs by case index.
func (s *EvalSuite) runCasesParallel(
	ctx context.Context,
	provider ToolCallProvider,
	model string,
	caseReports []*report.CaseReport,
	caseErrs []error,
) error {
	pool, err := createRunCasePool(s.parallelism)
	if err != nil {
		return err
	}
	defer pool.Release()
	var wg sync.WaitGroup
	for i, c := range s.cases {
		param := runCaseParamPool.Get().(*runCaseParam)
		param.idx = i
		param.ctx = ctx
		param.provider = provider
		param.model = model
		param.evalCase = c
		param.suite = s
		param.reports = caseReports
		param.errs = caseErrs
		param.wg = &wg
		wg.Add(1)
		if err := pool.Invoke(param); err != nil {
			wg.Done()
			param.reset()
			runCaseParamPool.Put(param)
			return fmt.Errorf("submit case %s: %w", c.Name(), err)
		}
	}
	wg.Wait()
	return nil
}
