//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

package evalcase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-tooleval/critic"
	"trpc.group/trpc-go/trpc-tooleval/toolcall"
)

func TestNewDefaults(t *testing.T) {
	c, err := New("greet", "say hello")
	require.NoError(t, err)
	assert.Equal(t, "greet", c.Name())
	assert.Equal(t, "say hello", c.UserMessage())
	assert.Equal(t, 0.8, c.Rubric().FailThreshold)
	assert.Equal(t, 0.9, c.Rubric().WarnThreshold)
	assert.Empty(t, c.ExpectedToolCalls())
	assert.Empty(t, c.Critics())
	assert.Empty(t, c.AdditionalMessages())
}

func TestNewAccessorsCopy(t *testing.T) {
	expected := []toolcall.Expected{{Name: "send_email"}}
	c, err := New("copy", "message",
		WithExpectedToolCalls(expected...),
		WithAdditionalMessages(Message{Role: RoleUser, Content: "earlier"}),
	)
	require.NoError(t, err)

	calls := c.ExpectedToolCalls()
	calls[0].Name = "mutated"
	assert.Equal(t, "send_email", c.ExpectedToolCalls()[0].Name)

	messages := c.AdditionalMessages()
	messages[0].Content = "mutated"
	assert.Equal(t, "earlier", c.AdditionalMessages()[0].Content)
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		caseName string
		opts     []Option
	}{
		{name: "empty case name", caseName: ""},
		{
			name:     "fail threshold out of range",
			caseName: "bad",
			opts:     []Option{WithRubric(NewRubric(1.5, 0.9))},
		},
		{
			name:     "warn threshold out of range",
			caseName: "bad",
			opts:     []Option{WithRubric(NewRubric(0.5, -0.1))},
		},
		{
			name:     "fail above warn",
			caseName: "bad",
			opts:     []Option{WithRubric(NewRubric(0.9, 0.8))},
		},
		{
			name:     "nil critic",
			caseName: "bad",
			opts:     []Option{WithCritics(nil)},
		},
		{
			name:     "zero weight",
			caseName: "bad",
			opts:     []Option{WithCritics(critic.NewBinary("to", 0))},
		},
		{
			name:     "weight above one",
			caseName: "bad",
			opts:     []Option{WithCritics(critic.NewBinary("to", 1.5))},
		},
		{
			name:     "weight below floor",
			caseName: "bad",
			opts:     []Option{WithCritics(critic.NewBinary("to", 0.05))},
		},
		{
			name:     "weight sum above one",
			caseName: "bad",
			opts: []Option{WithCritics(
				critic.NewBinary("to", 0.6),
				critic.NewBinary("subject", 0.6),
			)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.caseName, "message", tt.opts...)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestNewValidationAggregatesViolations(t *testing.T) {
	_, err := New("bad", "message",
		WithRubric(NewRubric(0.9, 0.8)),
		WithCritics(critic.NewBinary("to", 0.05)),
	)
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "exceeds warn threshold")
	assert.Contains(t, err.Error(), "below the 0.1 floor")
}

func TestNewWeightValidationDisabled(t *testing.T) {
	// Sum above one and a sub-floor weight both pass with the policy off.
	c, err := New("loose", "message",
		WithWeightValidationDisabled(),
		WithCritics(
			critic.NewBinary("to", 0.05),
			critic.NewBinary("subject", 0.8),
			critic.NewBinary("body", 0.8),
		),
	)
	require.NoError(t, err)
	assert.Len(t, c.Critics(), 3)

	// A weight outside (0, 1] stays invalid regardless of the policy.
	_, err = New("loose", "message",
		WithWeightValidationDisabled(),
		WithCritics(critic.NewBinary("to", 1.5)),
	)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewWeightSumAtBoundary(t *testing.T) {
	_, err := New("boundary", "message",
		WithCritics(
			critic.NewBinary("to", 0.5),
			critic.NewBinary("subject", 0.3),
			critic.NewBinary("body", 0.2),
		),
	)
	assert.NoError(t, err)
}
