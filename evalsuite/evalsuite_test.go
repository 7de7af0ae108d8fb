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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-tooleval/critic"
	"trpc.group/trpc-go/trpc-tooleval/evalcase"
	"trpc.group/trpc-go/trpc-tooleval/status"
	"trpc.group/trpc-go/trpc-tooleval/toolcall"
)

// fakeProvider answers tool call requests from a canned table keyed by the
// last user message, recording every conversation it receives.
type fakeProvider struct {
	mu            sync.Mutex
	responses     map[string][]toolcall.Actual
	errs          map[string]error
	conversations [][]evalcase.Message
}

func (p *fakeProvider) ToolCalls(
	ctx context.Context, model string, messages []evalcase.Message,
) ([]toolcall.Actual, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conversations = append(p.conversations, messages)
	key := messages[len(messages)-1].Content
	if err, ok := p.errs[key]; ok {
		return nil, err
	}
	return p.responses[key], nil
}

func newEmailCase(t *testing.T, name, userMessage, to string) *evalcase.EvalCase {
	t.Helper()
	c, err := evalcase.New(name, userMessage,
		evalcase.WithExpectedToolCalls(toolcall.Expected{
			Name: "send_email",
			Args: map[string]any{"to": to},
		}),
		evalcase.WithCritics(critic.NewBinary("to", 1.0)),
		evalcase.WithRubric(evalcase.NewRubric(0.5, 0.8)),
	)
	require.NoError(t, err)
	return c
}

func TestRun(t *testing.T) {
	suite := New("email", "You are an email assistant.",
		WithCases(
			newEmailCase(t, "exact", "email alice", "a@example.com"),
			newEmailCase(t, "wrong recipient", "email bob", "b@example.com"),
		),
	)
	provider := &fakeProvider{
		responses: map[string][]toolcall.Actual{
			"email alice": {{Name: "send_email", Args: map[string]any{"to": "a@example.com"}}},
			"email bob":   {{Name: "send_email", Args: map[string]any{"to": "c@example.com"}}},
		},
	}

	result, err := suite.Run(context.Background(), provider, "model-a")
	require.NoError(t, err)
	assert.Equal(t, "email", result.SuiteName)
	assert.False(t, result.CreationTimestamp.IsZero())
	require.Len(t, result.ModelReports, 1)

	modelReport := result.ModelReports[0]
	assert.Equal(t, "model-a", modelReport.Model)
	require.Len(t, modelReport.CaseReports, 2)

	exact := modelReport.CaseReports[0]
	assert.Equal(t, "exact", exact.CaseName)
	assert.Empty(t, exact.ErrorMessage)
	require.NotNil(t, exact.Result)
	assert.Equal(t, status.ClassificationPass, exact.Result.Classification)

	wrong := modelReport.CaseReports[1]
	require.NotNil(t, wrong.Result)
	assert.Equal(t, status.ClassificationWarn, wrong.Result.Classification)
	assert.InDelta(t, 0.5, wrong.Result.Score, 1e-9)
}

func TestRunConversationAssembly(t *testing.T) {
	suite := New("email", "You are an email assistant.",
		WithCases(newEmailCase(t, "exact", "email alice", "a@example.com")),
	)
	provider := &fakeProvider{responses: map[string][]toolcall.Actual{}}

	_, err := suite.Run(context.Background(), provider, "model-a")
	require.NoError(t, err)
	require.Len(t, provider.conversations, 1)

	messages := provider.conversations[0]
	require.Len(t, messages, 2)
	assert.Equal(t, evalcase.RoleSystem, messages[0].Role)
	assert.Equal(t, "You are an email assistant.", messages[0].Content)
	assert.Equal(t, evalcase.RoleUser, messages[1].Role)
	assert.Equal(t, "email alice", messages[1].Content)
}

func TestRunProviderError(t *testing.T) {
	suite := New("email", "system",
		WithCases(
			newEmailCase(t, "broken", "email alice", "a@example.com"),
			newEmailCase(t, "working", "email bob", "b@example.com"),
		),
	)
	provider := &fakeProvider{
		responses: map[string][]toolcall.Actual{
			"email bob": {{Name: "send_email", Args: map[string]any{"to": "b@example.com"}}},
		},
		errs: map[string]error{"email alice": errors.New("rate limited")},
	}

	result, err := suite.Run(context.Background(), provider, "model-a")
	// A provider failure marks the case failed but does not fail the run.
	require.NoError(t, err)
	reports := result.ModelReports[0].CaseReports
	require.Len(t, reports, 2)

	broken := reports[0]
	assert.Contains(t, broken.ErrorMessage, "rate limited")
	require.NotNil(t, broken.Result)
	assert.Equal(t, status.ClassificationFail, broken.Result.Classification)

	working := reports[1]
	assert.Empty(t, working.ErrorMessage)
	assert.Equal(t, status.ClassificationPass, working.Result.Classification)
}

func TestRunCriticConfigurationError(t *testing.T) {
	c, err := evalcase.New("degenerate", "set limit",
		evalcase.WithExpectedToolCalls(toolcall.Expected{
			Name: "set_limit",
			Args: map[string]any{"limit": 5.0},
		}),
		evalcase.WithCritics(critic.NewNumeric("limit", 1.0, 10, 10)),
	)
	require.NoError(t, err)
	suite := New("limits", "system", WithCases(c))
	provider := &fakeProvider{
		responses: map[string][]toolcall.Actual{
			"set limit": {{Name: "set_limit", Args: map[string]any{"limit": 5.0}}},
		},
	}

	result, runErr := suite.Run(context.Background(), provider, "model-a")
	require.Error(t, runErr)
	assert.ErrorIs(t, runErr, critic.ErrConfiguration)
	// The report is still produced with the failure recorded.
	require.NotNil(t, result)
	caseReport := result.ModelReports[0].CaseReports[0]
	assert.Contains(t, caseReport.ErrorMessage, "evaluate")
	assert.Equal(t, status.ClassificationFail, caseReport.Result.Classification)
}

func TestRunMultipleModels(t *testing.T) {
	suite := New("email", "system",
		WithCases(newEmailCase(t, "exact", "email alice", "a@example.com")),
	)
	provider := &fakeProvider{
		responses: map[string][]toolcall.Actual{
			"email alice": {{Name: "send_email", Args: map[string]any{"to": "a@example.com"}}},
		},
	}

	result, err := suite.Run(context.Background(), provider, "model-a", "model-b")
	require.NoError(t, err)
	require.Len(t, result.ModelReports, 2)
	assert.Equal(t, "model-a", result.ModelReports[0].Model)
	assert.Equal(t, "model-b", result.ModelReports[1].Model)
}

func TestRunParallel(t *testing.T) {
	cases := make([]*evalcase.EvalCase, 0, 8)
	responses := make(map[string][]toolcall.Actual, 8)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		cases = append(cases, newEmailCase(t, name, "email "+name, name+"@example.com"))
		responses["email "+name] = []toolcall.Actual{
			{Name: "send_email", Args: map[string]any{"to": name + "@example.com"}},
		}
	}
	suite := New("email", "system", WithCases(cases...), WithParallelism(4))
	provider := &fakeProvider{responses: responses}

	result, err := suite.Run(context.Background(), provider, "model-a")
	require.NoError(t, err)
	reports := result.ModelReports[0].CaseReports
	require.Len(t, reports, 8)
	for i, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		assert.Equal(t, name, reports[i].CaseName)
		require.NotNil(t, reports[i].Result)
		assert.Equal(t, status.ClassificationPass, reports[i].Result.Classification)
	}
}

func TestRunInvalidInput(t *testing.T) {
	suite := New("email", "system")
	_, err := suite.Run(context.Background(), nil, "model-a")
	assert.Error(t, err)

	provider := &fakeProvider{}
	_, err = suite.Run(context.Background(), provider)
	assert.Error(t, err)
}

func TestAddCase(t *testing.T) {
	suite := New("email", "system")
	assert.Error(t, suite.AddCase(nil))

	c := newEmailCase(t, "exact", "email alice", "a@example.com")
	require.NoError(t, suite.AddCase(c))
	require.Len(t, suite.Cases(), 1)
	assert.Equal(t, "exact", suite.Cases()[0].Name())
}

func TestExtendCase(t *testing.T) {
	suite := New("email", "system")
	_, err := suite.ExtendCase("orphan", "follow up")
	assert.Error(t, err)

	first := newEmailCase(t, "first", "email alice", "a@example.com")
	require.NoError(t, suite.AddCase(first))

	second, err := suite.ExtendCase("second", "now email bob",
		evalcase.WithExpectedToolCalls(toolcall.Expected{
			Name: "send_email",
			Args: map[string]any{"to": "b@example.com"},
		}),
	)
	require.NoError(t, err)
	require.Len(t, suite.Cases(), 2)

	// The first case's turn becomes conversation history.
	history := second.AdditionalMessages()
	require.Len(t, history, 1)
	assert.Equal(t, evalcase.RoleUser, history[0].Role)
	assert.Equal(t, "email alice", history[0].Content)

	// Critics and rubric are inherited, expected calls overridden.
	assert.Len(t, second.Critics(), 1)
	assert.Equal(t, first.Rubric(), second.Rubric())
	require.Len(t, second.ExpectedToolCalls(), 1)
	assert.Equal(t, "b@example.com", second.ExpectedToolCalls()[0].Args["to"])
}

func TestExtendCaseConversation(t *testing.T) {
	suite := New("email", "system prompt")
	require.NoError(t, suite.AddCase(newEmailCase(t, "first", "email alice", "a@example.com")))
	_, err := suite.ExtendCase("second", "also email bob",
		evalcase.WithExpectedToolCalls(toolcall.Expected{
			Name: "send_email",
			Args: map[string]any{"to": "b@example.com"},
		}),
	)
	require.NoError(t, err)

	provider := &fakeProvider{responses: map[string][]toolcall.Actual{}}
	_, err = suite.Run(context.Background(), provider, "model-a")
	require.NoError(t, err)
	require.Len(t, provider.conversations, 2)

	extended := provider.conversations[1]
	require.Len(t, extended, 3)
	assert.Equal(t, "system prompt", extended[0].Content)
	assert.Equal(t, "email alice", extended[1].Content)
	assert.Equal(t, "also email bob", extended[2].Content)
}
