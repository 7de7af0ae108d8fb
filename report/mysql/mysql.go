//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

// Package mysql provides a MySQL storage implementation for suite reports.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	// Register the mysql driver.
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"trpc.group/trpc-go/trpc-tooleval/report"
)

var _ report.Manager = (*manager)(nil)

type manager struct {
	opts  options
	db    *sql.DB
	table string
}

// New creates a MySQL-backed report manager.
func New(opt ...Option) (report.Manager, error) {
	opts := newOptions(opt...)
	db := opts.db
	if db == nil {
		if opts.dsn == "" {
			return nil, errors.New("mysql dsn is empty")
		}
		var err error
		db, err = sql.Open("mysql", opts.dsn)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
	}
	m := &manager{
		opts:  *opts,
		db:    db,
		table: opts.tablePrefix + "suite_reports",
	}
	if !opts.skipSchemaInit {
		ctx, cancel := context.WithTimeout(context.Background(), opts.initTimeout)
		defer cancel()
		if err := m.ensureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init database failed: %w", err)
		}
	}
	return m, nil
}

// ensureSchema creates the report table when it does not exist yet.
func (m *manager) ensureSchema(ctx context.Context) error {
	query := fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (
		   id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		   suite_name VARCHAR(255) NOT NULL,
		   report_id VARCHAR(512) NOT NULL,
		   model_reports LONGTEXT,
		   created_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
		   updated_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6) ON UPDATE CURRENT_TIMESTAMP(6),
		   PRIMARY KEY (id),
		   UNIQUE KEY uk_suite_report (suite_name, report_id)
		 ) ENGINE = InnoDB DEFAULT CHARSET = utf8mb4`,
		m.table,
	)
	if _, err := m.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create table %s: %w", m.table, err)
	}
	return nil
}

// Close implements report.Manager.
func (m *manager) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}

// Save upserts a report into MySQL, assigning an ID when absent.
func (m *manager) Save(ctx context.Context, suiteName string, r *report.Report) (string, error) {
	if suiteName == "" {
		return "", errors.New("suite name is empty")
	}
	if r == nil {
		return "", errors.New("report is nil")
	}
	reportID := r.ReportID
	if reportID == "" {
		reportID = fmt.Sprintf("%s_%s", suiteName, uuid.New().String())
	}
	modelReports := r.ModelReports
	if modelReports == nil {
		modelReports = []*report.ModelReport{}
	}
	payload, err := json.Marshal(modelReports)
	if err != nil {
		return "", fmt.Errorf("marshal model reports: %w", err)
	}
	query := fmt.Sprintf(
		`INSERT INTO %s (suite_name, report_id, model_reports)
		 VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE
		   model_reports = VALUES(model_reports),
		   updated_at = CURRENT_TIMESTAMP(6)`,
		m.table,
	)
	if _, err := m.db.ExecContext(ctx, query, suiteName, reportID, payload); err != nil {
		return "", fmt.Errorf("store report %s.%s: %w", suiteName, reportID, err)
	}
	return reportID, nil
}

// Get loads a report from MySQL. If the report does not exist, the error
// wraps os.ErrNotExist.
func (m *manager) Get(ctx context.Context, suiteName, reportID string) (*report.Report, error) {
	if suiteName == "" {
		return nil, errors.New("suite name is empty")
	}
	if reportID == "" {
		return nil, errors.New("report id is empty")
	}
	var (
		payload   []byte
		createdAt time.Time
	)
	query := fmt.Sprintf(
		"SELECT model_reports, created_at FROM %s WHERE suite_name = ? AND report_id = ?",
		m.table,
	)
	row := m.db.QueryRowContext(ctx, query, suiteName, reportID)
	if err := row.Scan(&payload, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("report %s.%s not found: %w", suiteName, reportID, os.ErrNotExist)
		}
		return nil, fmt.Errorf("load report %s.%s: %w", suiteName, reportID, err)
	}
	var modelReports []*report.ModelReport
	if err := json.Unmarshal(payload, &modelReports); err != nil {
		return nil, fmt.Errorf("unmarshal model reports %s.%s: %w", suiteName, reportID, err)
	}
	return &report.Report{
		ReportID:          reportID,
		SuiteName:         suiteName,
		CreationTimestamp: createdAt,
		ModelReports:      modelReports,
	}, nil
}

// List lists report IDs for the given suite from MySQL, newest first.
func (m *manager) List(ctx context.Context, suiteName string) ([]string, error) {
	if suiteName == "" {
		return nil, errors.New("suite name is empty")
	}
	query := fmt.Sprintf(
		"SELECT report_id FROM %s WHERE suite_name = ? ORDER BY created_at DESC",
		m.table,
	)
	rows, err := m.db.QueryContext(ctx, query, suiteName)
	if err != nil {
		return nil, fmt.Errorf("list reports for suite %s: %w", suiteName, err)
	}
	defer rows.Close()
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan report id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate report ids: %w", err)
	}
	return ids, nil
}
