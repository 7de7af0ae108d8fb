//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

// Package evalsuite runs collections of evaluation cases against models and
// aggregates their results into reports.
package evalsuite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"trpc.group/trpc-go/trpc-tooleval/evalcase"
	"trpc.group/trpc-go/trpc-tooleval/log"
	"trpc.group/trpc-go/trpc-tooleval/report"
	"trpc.group/trpc-go/trpc-tooleval/status"
	"trpc.group/trpc-go/trpc-tooleval/toolcall"
)

// ToolCallProvider obtains the tool calls a model chooses for a
// conversation. It is the boundary to the chat completion component:
// retry and timeout policy live behind this interface, not in the suite.
type ToolCallProvider interface {
	// ToolCalls returns the tool calls the model chose for the conversation.
	ToolCalls(ctx context.Context, model string, messages []evalcase.Message) ([]toolcall.Actual, error)
}

// EvalSuite owns an ordered collection of evaluation cases sharing a system
// message. Running the suite does not mutate it.
type EvalSuite struct {
	name          string
	systemMessage string
	cases         []*evalcase.EvalCase
	parallelism   int
}

// New creates an EvalSuite with the given name and system message.
func New(name, systemMessage string, opt ...Option) *EvalSuite {
	opts := newOptions(opt...)
	return &EvalSuite{
		name:          name,
		systemMessage: systemMessage,
		cases:         append([]*evalcase.EvalCase(nil), opts.cases...),
		parallelism:   opts.parallelism,
	}
}

// Name returns the suite name.
func (s *EvalSuite) Name() string { return s.name }

// Cases returns a copy of the suite's cases in order.
func (s *EvalSuite) Cases() []*evalcase.EvalCase {
	return append([]*evalcase.EvalCase(nil), s.cases...)
}

// AddCase appends a case to the suite.
func (s *EvalSuite) AddCase(c *evalcase.EvalCase) error {
	if c == nil {
		return errors.New("case is nil")
	}
	s.cases = append(s.cases, c)
	return nil
}

// ExtendCase derives a new case from the most recently added one to script
// a multi-turn scenario: the prior case's conversation plus its user
// message become the new case's history. Expected calls, critics and
// rubric are inherited unless overridden by the given options.
func (s *EvalSuite) ExtendCase(name, userMessage string, opt ...evalcase.Option) (*evalcase.EvalCase, error) {
	if len(s.cases) == 0 {
		return nil, errors.New("no cases to extend, add a case first")
	}
	last := s.cases[len(s.cases)-1]
	history := append(last.AdditionalMessages(), evalcase.Message{
		Role:    evalcase.RoleUser,
		Content: last.UserMessage(),
	})
	base := []evalcase.Option{
		evalcase.WithExpectedToolCalls(last.ExpectedToolCalls()...),
		evalcase.WithCritics(last.Critics()...),
		evalcase.WithRubric(last.Rubric()),
		evalcase.WithAdditionalMessages(history...),
	}
	c, err := evalcase.New(name, userMessage, append(base, opt...)...)
	if err != nil {
		return nil, fmt.Errorf("extend case %s: %w", last.Name(), err)
	}
	s.cases = append(s.cases, c)
	return c, nil
}

// Run evaluates every case against every model and returns the aggregated
// report. Collaborator failures are recorded as failed case reports and do
// not abort the run; critic configuration errors abort only the affected
// case and are aggregated into the returned error alongside the report.
func (s *EvalSuite) Run(ctx context.Context, provider ToolCallProvider, models ...string) (*report.Report, error) {
	if provider == nil {
		return nil, errors.New("tool call provider is nil")
	}
	if len(models) == 0 {
		return nil, errors.New("no models to evaluate")
	}
	result := &report.Report{
		SuiteName:         s.name,
		CreationTimestamp: time.Now().UTC(),
	}
	var evalErrs error
	for _, model := range models {
		log.Infof("running suite %s against model %s", s.name, model)
		caseReports, err := s.runCases(ctx, provider, model)
		if err != nil {
			evalErrs = multierror.Append(evalErrs, err)
		}
		result.ModelReports = append(result.ModelReports, &report.ModelReport{
			Model:       model,
			CaseReports: caseReports,
		})
	}
	return result, evalErrs
}

// runCases evaluates all cases against one model, sequentially or through
// the worker pool when parallelism is configured.
func (s *EvalSuite) runCases(ctx context.Context, provider ToolCallProvider, model string) ([]*report.CaseReport, error) {
	caseReports := make([]*report.CaseReport, len(s.cases))
	caseErrs := make([]error, len(s.cases))
	if s.parallelism > 1 {
		if err := s.runCasesParallel(ctx, provider, model, caseReports, caseErrs); err != nil {
			return nil, err
		}
	} else {
		for i, c := range s.cases {
			caseReports[i], caseErrs[i] = s.runCase(ctx, provider, model, c)
		}
	}
	var combined error
	for _, err := range caseErrs {
		if err != nil {
			combined = multierror.Append(combined, err)
		}
	}
	return caseReports, combined
}

// runCase evaluates a single case against one model. The returned error is
// non-nil only for evaluation errors (critic misconfiguration); provider
// failures are folded into the case report.
func (s *EvalSuite) runCase(ctx context.Context, provider ToolCallProvider, model string, c *evalcase.EvalCase) (*report.CaseReport, error) {
	log.Debugf("running case %s against model %s", c.Name(), model)
	caseReport := &report.CaseReport{
		CaseName:          c.Name(),
		UserMessage:       c.UserMessage(),
		ExpectedToolCalls: c.ExpectedToolCalls(),
	}
	actualToolCalls, err := provider.ToolCalls(ctx, model, s.conversation(c))
	if err != nil {
		log.Warnf("case %s against model %s: obtain tool calls: %v", c.Name(), model, err)
		caseReport.ErrorMessage = fmt.Sprintf("obtain tool calls: %v", err)
		caseReport.Result = &evalcase.Result{Classification: status.ClassificationFail}
		return caseReport, nil
	}
	caseReport.ActualToolCalls = actualToolCalls
	evaluation, err := c.Evaluate(actualToolCalls)
	if err != nil {
		caseReport.ErrorMessage = fmt.Sprintf("evaluate: %v", err)
		caseReport.Result = &evalcase.Result{Classification: status.ClassificationFail}
		return caseReport, fmt.Errorf("case %s against model %s: %w", c.Name(), model, err)
	}
	caseReport.Result = evaluation
	return caseReport, nil
}

// conversation assembles the messages presented to the model for one case.
func (s *EvalSuite) conversation(c *evalcase.EvalCase) []evalcase.Message {
	messages := make([]evalcase.Message, 0, len(c.AdditionalMessages())+2)
	if s.systemMessage != "" {
		messages = append(messages, evalcase.Message{Role: evalcase.RoleSystem, Content: s.systemMessage})
	}
	messages = append(messages, c.AdditionalMessages()...)
	messages = append(messages, evalcase.Message{Role: evalcase.RoleUser, Content: c.UserMessage()})
	return messages
}
