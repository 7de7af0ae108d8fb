//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

package openai

import (
	openaiopt "github.com/openai/openai-go/option"
)

type options struct {
	tools       []ToolDefinition
	temperature *float64
	clientOpts  []openaiopt.RequestOption
}

func newOptions(opt ...Option) *options {
	opts := &options{}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures the OpenAI provider.
type Option func(*options)

// WithAPIKey sets the API key. The client falls back to the standard
// environment variables when unset.
func WithAPIKey(apiKey string) Option {
	return func(o *options) {
		if apiKey != "" {
			o.clientOpts = append(o.clientOpts, openaiopt.WithAPIKey(apiKey))
		}
	}
}

// WithBaseURL points the client at an OpenAI-compatible endpoint.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		if baseURL != "" {
			o.clientOpts = append(o.clientOpts, openaiopt.WithBaseURL(baseURL))
		}
	}
}

// WithTemperature sets the sampling temperature for completion requests.
func WithTemperature(temperature float64) Option {
	return func(o *options) {
		o.temperature = &temperature
	}
}

// WithClientOptions appends raw client request options, for settings the
// dedicated options do not cover.
func WithClientOptions(clientOpts ...openaiopt.RequestOption) Option {
	return func(o *options) {
		o.clientOpts = append(o.clientOpts, clientOpts...)
	}
}
