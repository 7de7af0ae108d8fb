//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in-memory storage implementation for suite reports.
package inmemory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"trpc.group/trpc-go/trpc-tooleval/internal/clone"
	"trpc.group/trpc-go/trpc-tooleval/report"
)

// manager implements the report.Manager interface using in-memory storage.
//
// Each API returns deep-cloned objects to avoid accidental mutation by callers.
type manager struct {
	mu      sync.RWMutex
	reports map[string]map[string]*report.Report
	order   map[string][]string
}

// New creates a new in-memory report manager.
func New() report.Manager {
	return &manager{
		reports: make(map[string]map[string]*report.Report),
		order:   make(map[string][]string),
	}
}

// Save stores a deep copy of the report, assigning an ID when absent.
func (m *manager) Save(ctx context.Context, suiteName string, r *report.Report) (string, error) {
	_ = ctx
	if suiteName == "" {
		return "", errors.New("suite name is empty")
	}
	if r == nil {
		return "", errors.New("report is nil")
	}
	stored, err := clone.Clone(r)
	if err != nil {
		return "", fmt.Errorf("clone report: %w", err)
	}
	if stored.ReportID == "" {
		stored.ReportID = fmt.Sprintf("%s_%s", suiteName, uuid.New().String())
	}
	if stored.CreationTimestamp.IsZero() {
		stored.CreationTimestamp = time.Now().UTC()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reports[suiteName]; !ok {
		m.reports[suiteName] = make(map[string]*report.Report)
	}
	if _, exists := m.reports[suiteName][stored.ReportID]; !exists {
		m.order[suiteName] = append(m.order[suiteName], stored.ReportID)
	}
	m.reports[suiteName][stored.ReportID] = stored
	return stored.ReportID, nil
}

// Get returns a deep copy of the stored report. If the report does not
// exist, os.ErrNotExist is returned.
func (m *manager) Get(ctx context.Context, suiteName, reportID string) (*report.Report, error) {
	_ = ctx
	m.mu.RLock()
	defer m.mu.RUnlock()
	bySuite, ok := m.reports[suiteName]
	if !ok {
		return nil, fmt.Errorf("%w: report %s", os.ErrNotExist, reportID)
	}
	stored, ok := bySuite[reportID]
	if !ok {
		return nil, fmt.Errorf("%w: report %s", os.ErrNotExist, reportID)
	}
	cloned, err := clone.Clone(stored)
	if err != nil {
		return nil, fmt.Errorf("clone report %s: %w", reportID, err)
	}
	return cloned, nil
}

// List returns the stored report IDs for a suite, newest first.
func (m *manager) List(ctx context.Context, suiteName string) ([]string, error) {
	_ = ctx
	m.mu.RLock()
	defer m.mu.RUnlock()
	stored := m.order[suiteName]
	ids := make([]string, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		ids = append(ids, stored[i])
	}
	return ids, nil
}

// Close implements report.Manager.
func (m *manager) Close() error {
	return nil
}
