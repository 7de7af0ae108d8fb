//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

// Package openai adapts the OpenAI chat completion API to the suite's
// tool call provider interface.
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"
	"trpc.group/trpc-go/trpc-tooleval/evalcase"
	"trpc.group/trpc-go/trpc-tooleval/log"
	"trpc.group/trpc-go/trpc-tooleval/toolcall"
)

// ToolDefinition describes one tool offered to the model. Parameters is a
// JSON schema object in the OpenAI function calling format.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Provider obtains tool calls from the OpenAI chat completion API. It
// satisfies the evalsuite.ToolCallProvider interface.
type Provider struct {
	client openai.Client
	opts   options
}

// New creates an OpenAI-backed tool call provider offering the given tools.
func New(tools []ToolDefinition, opt ...Option) (*Provider, error) {
	opts := newOptions(opt...)
	if len(tools) == 0 {
		return nil, errors.New("no tools to offer")
	}
	opts.tools = tools
	return &Provider{
		client: openai.NewClient(opts.clientOpts...),
		opts:   *opts,
	}, nil
}

// ToolCalls sends the conversation to the model and returns the tool calls
// it chose.
func (p *Provider) ToolCalls(
	ctx context.Context, model string, messages []evalcase.Message,
) ([]toolcall.Actual, error) {
	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(model),
		Messages: convertMessages(messages),
		Tools:    convertTools(p.opts.tools),
	}
	if p.opts.temperature != nil {
		params.Temperature = openai.Float(*p.opts.temperature)
	}
	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("chat completion returned no choices")
	}
	choice := resp.Choices[0]
	actualToolCalls := make([]toolcall.Actual, 0, len(choice.Message.ToolCalls))
	for _, tc := range choice.Message.ToolCalls {
		actual, err := toolcall.ParseActual(tc.Function.Name, []byte(tc.Function.Arguments))
		if err != nil {
			return nil, fmt.Errorf("tool call %s: %w", tc.Function.Name, err)
		}
		actualToolCalls = append(actualToolCalls, actual)
	}
	log.Debugf("model %s produced %d tool calls", model, len(actualToolCalls))
	return actualToolCalls, nil
}

func convertMessages(messages []evalcase.Message) []openai.ChatCompletionMessageParamUnion {
	converted := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case evalcase.RoleSystem:
			converted = append(converted, openai.SystemMessage(msg.Content))
		case evalcase.RoleAssistant:
			converted = append(converted, openai.AssistantMessage(msg.Content))
		default:
			converted = append(converted, openai.UserMessage(msg.Content))
		}
	}
	return converted
}

func convertTools(tools []ToolDefinition) []openai.ChatCompletionToolParam {
	converted := make([]openai.ChatCompletionToolParam, 0, len(tools))
	for _, t := range tools {
		converted = append(converted, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        t.Name,
				Description: openai.String(t.Description),
				Parameters:  shared.FunctionParameters(t.Parameters),
			},
		})
	}
	return converted
}
