//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

// Package toolcall defines the tool call records compared during evaluation.
package toolcall

import (
	"encoding/json"
	"fmt"
)

// Expected describes a tool call the evaluated system is expected to make.
// Expected calls are authored once by the test writer and never mutated.
type Expected struct {
	// Name is the tool name.
	Name string `json:"name"`
	// Args maps argument field names to their expected values.
	Args map[string]any `json:"args,omitempty"`
}

// Actual describes a tool call the evaluated system actually made.
// Actual calls are produced fresh per run.
type Actual struct {
	// Name is the tool name.
	Name string `json:"name"`
	// Args maps argument field names to the values the system chose.
	Args map[string]any `json:"args,omitempty"`
}

// ParseActual builds an Actual from a tool name and raw JSON arguments,
// as delivered by chat completion APIs.
func ParseActual(name string, rawArgs []byte) (Actual, error) {
	call := Actual{Name: name}
	if len(rawArgs) == 0 {
		return call, nil
	}
	if err := json.Unmarshal(rawArgs, &call.Args); err != nil {
		return Actual{}, fmt.Errorf("unmarshal arguments of tool call %s: %w", name, err)
	}
	return call, nil
}

// NameSet returns the set of tool names among the given names.
func NameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// ExpectedNames returns the tool names of the given expected calls in order.
func ExpectedNames(calls []Expected) []string {
	names := make([]string, 0, len(calls))
	for _, call := range calls {
		names = append(names, call.Name)
	}
	return names
}

// ActualNames returns the tool names of the given actual calls in order.
func ActualNames(calls []Actual) []string {
	names := make([]string, 0, len(calls))
	for _, call := range calls {
		names = append(names, call.Name)
	}
	return names
}
