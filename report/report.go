//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

// Package report provides suite run reports and their storage.
package report

import (
	"context"
	"time"

	"trpc.group/trpc-go/trpc-tooleval/evalcase"
	"trpc.group/trpc-go/trpc-tooleval/toolcall"
)

// Report aggregates the results of one suite run across models.
type Report struct {
	// ReportID uniquely identifies this report.
	ReportID string `json:"reportId,omitempty"`
	// SuiteName identifies the suite that produced this report.
	SuiteName string `json:"suiteName,omitempty"`
	// CreationTimestamp when this report was created.
	CreationTimestamp time.Time `json:"creationTimestamp,omitempty"`
	// ModelReports contains per-model results in run order.
	ModelReports []*ModelReport `json:"modelReports,omitempty"`
}

// ModelReport contains the case results for a single model.
type ModelReport struct {
	// Model identifies the evaluated model.
	Model string `json:"model"`
	// CaseReports contains one entry per case, in suite order.
	CaseReports []*CaseReport `json:"caseReports,omitempty"`
}

// CaseReport records the evaluation of one case against one model.
type CaseReport struct {
	// CaseName identifies the case.
	CaseName string `json:"caseName"`
	// UserMessage echoes the case's user input.
	UserMessage string `json:"userMessage,omitempty"`
	// ExpectedToolCalls echoes the calls the case expected.
	ExpectedToolCalls []toolcall.Expected `json:"expectedToolCalls,omitempty"`
	// ActualToolCalls records the calls the model made.
	ActualToolCalls []toolcall.Actual `json:"actualToolCalls,omitempty"`
	// Result is the scored outcome. It is present even when ErrorMessage is
	// set, carrying the fail classification assigned to the broken run.
	Result *evalcase.Result `json:"result,omitempty"`
	// ErrorMessage contains diagnostics when obtaining or scoring the tool
	// calls failed.
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// Manager defines the interface for storing suite run reports.
type Manager interface {
	// Save stores a report and returns its ID, assigning one if absent.
	Save(ctx context.Context, suiteName string, report *Report) (string, error)
	// Get retrieves a report by ID.
	Get(ctx context.Context, suiteName, reportID string) (*Report, error)
	// List returns the stored report IDs for a suite, newest first.
	List(ctx context.Context, suiteName string) ([]string, error)
	// Close closes the manager and releases owned resources.
	Close() error
}
