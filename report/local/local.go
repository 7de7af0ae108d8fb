//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

// Package local provides a local filesystem storage implementation for suite reports.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"trpc.group/trpc-go/trpc-tooleval/report"
)

const reportFileExt = ".json"

// manager implements the report.Manager interface on the local filesystem.
// Each report is stored as one JSON file under <baseDir>/<suiteName>/.
type manager struct {
	mu      sync.Mutex
	baseDir string
}

// New creates a new local filesystem report manager.
func New(opt ...Option) report.Manager {
	opts := newOptions(opt...)
	return &manager{baseDir: opts.baseDir}
}

// Save writes the report as a JSON file, assigning an ID when absent.
func (m *manager) Save(ctx context.Context, suiteName string, r *report.Report) (string, error) {
	_ = ctx
	if suiteName == "" {
		return "", errors.New("suite name is empty")
	}
	if r == nil {
		return "", errors.New("report is nil")
	}
	stored := *r
	if stored.ReportID == "" {
		stored.ReportID = fmt.Sprintf("%s_%s", suiteName, uuid.New().String())
	}
	if stored.CreationTimestamp.IsZero() {
		stored.CreationTimestamp = time.Now().UTC()
	}
	data, err := json.MarshalIndent(&stored, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report %s: %w", stored.ReportID, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	dir := filepath.Join(m.baseDir, suiteName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, stored.ReportID+reportFileExt)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report file %s: %w", path, err)
	}
	return stored.ReportID, nil
}

// Get reads a report back from its JSON file. If the report does not
// exist, the error wraps os.ErrNotExist.
func (m *manager) Get(ctx context.Context, suiteName, reportID string) (*report.Report, error) {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	path := filepath.Join(m.baseDir, suiteName, reportID+reportFileExt)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report file %s: %w", path, err)
	}
	var r report.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal report file %s: %w", path, err)
	}
	return &r, nil
}

// List returns the stored report IDs for a suite, newest first by file
// modification time.
func (m *manager) List(ctx context.Context, suiteName string) ([]string, error) {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	dir := filepath.Join(m.baseDir, suiteName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read report directory %s: %w", dir, err)
	}
	type reportFile struct {
		id      string
		modTime time.Time
	}
	files := make([]reportFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), reportFileExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat report file %s: %w", entry.Name(), err)
		}
		files = append(files, reportFile{
			id:      strings.TrimSuffix(entry.Name(), reportFileExt),
			modTime: info.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].modTime.Equal(files[j].modTime) {
			return files[i].id > files[j].id
		}
		return files[i].modTime.After(files[j].modTime)
	})
	ids := make([]string, 0, len(files))
	for _, f := range files {
		ids = append(ids, f.id)
	}
	return ids, nil
}

// Close implements report.Manager.
func (m *manager) Close() error {
	return nil
}
