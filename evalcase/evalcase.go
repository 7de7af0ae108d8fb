//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

// Package evalcase defines evaluation cases and the matching and scoring of
// actual tool calls against the expected ones.
package evalcase

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"trpc.group/trpc-go/trpc-tooleval/critic"
	"trpc.group/trpc-go/trpc-tooleval/toolcall"
)

// ErrValidation marks an invalid case, critic or rubric configuration
// detected at construction time. It is checked with errors.Is.
var ErrValidation = errors.New("eval case validation error")

// Critic weight policy bounds enforced at construction unless disabled.
const (
	// maxCriticWeightSum is the maximum total weight across user critics.
	maxCriticWeightSum = 1.0
	// minCriticWeight is the minimum weight of a single critic.
	minCriticWeight = 0.1
)

// weightEpsilon absorbs float accumulation error in the weight sum check.
const weightEpsilon = 1e-9

// EvalCase represents one evaluation scenario: a user message, the tool
// calls it should produce, the critics scoring their arguments, and the
// rubric classifying the outcome. Cases are constructed once, validated at
// construction and treated as read-only afterward, so a case is safe to
// evaluate concurrently.
type EvalCase struct {
	name               string
	userMessage        string
	expectedToolCalls  []toolcall.Expected
	critics            []critic.Critic
	rubric             Rubric
	additionalMessages []Message
}

type options struct {
	expectedToolCalls        []toolcall.Expected
	critics                  []critic.Critic
	rubric                   *Rubric
	additionalMessages       []Message
	weightValidationDisabled bool
}

func newOptions(opt ...Option) *options {
	opts := &options{}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures an EvalCase.
type Option func(*options)

// WithExpectedToolCalls sets the tool calls this case expects.
func WithExpectedToolCalls(calls ...toolcall.Expected) Option {
	return func(o *options) {
		o.expectedToolCalls = calls
	}
}

// WithCritics sets the critics scoring tool call arguments.
func WithCritics(critics ...critic.Critic) Option {
	return func(o *options) {
		o.critics = critics
	}
}

// WithRubric sets the case rubric.
func WithRubric(rubric Rubric) Option {
	return func(o *options) {
		o.rubric = &rubric
	}
}

// WithAdditionalMessages sets prior conversation turns presented before the
// user message, for multi-turn scenarios.
func WithAdditionalMessages(messages ...Message) Option {
	return func(o *options) {
		o.additionalMessages = messages
	}
}

// WithWeightValidationDisabled disables the critic weight policy (weight
// sum at most 1, per-critic floor). Cases that rely solely on tool
// selection scoring need no critics at all.
func WithWeightValidationDisabled() Option {
	return func(o *options) {
		o.weightValidationDisabled = true
	}
}

// New creates an EvalCase and validates its configuration. Violations are
// aggregated and wrapped in ErrValidation.
func New(name, userMessage string, opt ...Option) (*EvalCase, error) {
	opts := newOptions(opt...)
	rubric := NewRubric(defaultFailThreshold, defaultWarnThreshold)
	if opts.rubric != nil {
		rubric = *opts.rubric
	}
	c := &EvalCase{
		name:               name,
		userMessage:        userMessage,
		expectedToolCalls:  append([]toolcall.Expected(nil), opts.expectedToolCalls...),
		critics:            append([]critic.Critic(nil), opts.critics...),
		rubric:             rubric,
		additionalMessages: append([]Message(nil), opts.additionalMessages...),
	}
	if err := c.validate(opts.weightValidationDisabled); err != nil {
		return nil, err
	}
	return c, nil
}

// Default rubric thresholds, matching the conventional 0.8 fail / 0.9 warn
// bars used by tool call eval suites.
const (
	defaultFailThreshold = 0.8
	defaultWarnThreshold = 0.9
)

// validate checks the rubric and critic configuration.
func (c *EvalCase) validate(weightValidationDisabled bool) error {
	var violations error
	if c.name == "" {
		violations = multierror.Append(violations, errors.New("case name is empty"))
	}
	if c.rubric.FailThreshold < 0 || c.rubric.FailThreshold > 1 {
		violations = multierror.Append(violations,
			fmt.Errorf("fail threshold %v is outside [0, 1]", c.rubric.FailThreshold))
	}
	if c.rubric.WarnThreshold < 0 || c.rubric.WarnThreshold > 1 {
		violations = multierror.Append(violations,
			fmt.Errorf("warn threshold %v is outside [0, 1]", c.rubric.WarnThreshold))
	}
	if c.rubric.FailThreshold > c.rubric.WarnThreshold {
		violations = multierror.Append(violations,
			fmt.Errorf("fail threshold %v exceeds warn threshold %v", c.rubric.FailThreshold, c.rubric.WarnThreshold))
	}
	weightSum := 0.0
	for _, cr := range c.critics {
		if cr == nil {
			violations = multierror.Append(violations, errors.New("critic is nil"))
			continue
		}
		weight := cr.Weight()
		if weight <= 0 || weight > 1 {
			violations = multierror.Append(violations,
				fmt.Errorf("critic %s weight %v is outside (0, 1]", cr.Field(), weight))
			continue
		}
		if !weightValidationDisabled && weight < minCriticWeight {
			violations = multierror.Append(violations,
				fmt.Errorf("critic %s weight %v is below the %v floor", cr.Field(), weight, minCriticWeight))
		}
		weightSum += weight
	}
	if !weightValidationDisabled && weightSum > maxCriticWeightSum+weightEpsilon {
		violations = multierror.Append(violations,
			fmt.Errorf("critic weight sum %v exceeds %v", weightSum, maxCriticWeightSum))
	}
	if violations != nil {
		return fmt.Errorf("%w: case %s: %w", ErrValidation, c.name, violations)
	}
	return nil
}

// Name returns the case name.
func (c *EvalCase) Name() string { return c.name }

// UserMessage returns the user input for this case.
func (c *EvalCase) UserMessage() string { return c.userMessage }

// Rubric returns the case rubric.
func (c *EvalCase) Rubric() Rubric { return c.rubric }

// ExpectedToolCalls returns a copy of the expected tool calls.
func (c *EvalCase) ExpectedToolCalls() []toolcall.Expected {
	return append([]toolcall.Expected(nil), c.expectedToolCalls...)
}

// Critics returns a copy of the case critics.
func (c *EvalCase) Critics() []critic.Critic {
	return append([]critic.Critic(nil), c.critics...)
}

// AdditionalMessages returns a copy of the prior conversation turns.
func (c *EvalCase) AdditionalMessages() []Message {
	return append([]Message(nil), c.additionalMessages...)
}
