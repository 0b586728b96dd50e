// Package validate reports consistency problems in a campaign store.
package validate

import (
	"context"
	"fmt"

	"loreweaver/internal/store"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeIndexMissing  = "index_row_missing"
	codeIndexStale    = "index_row_stale"
	codeIndexMismatch = "index_row_mismatch"
	codeDangling      = "dangling_reference"
)

type Issue struct {
	Severity Severity
	Code     string
	Message  string
	Entity   store.EntityRef
	Table    string
	RowID    string
}

type Report struct {
	Issues []Issue
}

// Errors counts issues of error severity.
func (r *Report) Errors() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Warnings counts issues of warning severity.
func (r *Report) Warnings() int {
	return len(r.Issues) - r.Errors()
}

// Run checks that the search index agrees with its source rows and that
// every untyped association still resolves. Index drift is reported as an
// error, a dangling association as a warning.
func Run(ctx context.Context, checker Checker) (*Report, error) {
	if checker == nil {
		return nil, fmt.Errorf("checker is required")
	}

	issues := make([]Issue, 0)

	drift, err := checker.VerifyIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("verify index: %w", err)
	}
	for _, d := range drift {
		issues = append(issues, issueFromDrift(d))
	}

	dangling, err := checker.DanglingReferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("list dangling references: %w", err)
	}
	for _, ref := range dangling {
		issues = append(issues, Issue{
			Severity: SeverityWarn,
			Code:     codeDangling,
			Message:  fmt.Sprintf("%s row %s points at missing %s %s", ref.Table, ref.RowID, ref.Endpoint.Type, ref.Endpoint.ID),
			Entity:   ref.Endpoint,
			Table:    ref.Table,
			RowID:    ref.RowID,
		})
	}

	return &Report{Issues: issues}, nil
}

func issueFromDrift(d store.IndexDrift) Issue {
	issue := Issue{
		Severity: SeverityError,
		Entity:   d.Ref,
		Table:    "search_index",
		RowID:    d.Ref.ID,
	}
	switch d.Reason {
	case store.DriftMissing:
		issue.Code = codeIndexMissing
		issue.Message = fmt.Sprintf("%s %q has no search index row", d.Ref.Type, d.Name)
	case store.DriftStale:
		issue.Code = codeIndexStale
		issue.Message = fmt.Sprintf("search index row for %s %s has no source row", d.Ref.Type, d.Ref.ID)
	default:
		issue.Code = codeIndexMismatch
		issue.Message = fmt.Sprintf("search index row for %s %q is out of date", d.Ref.Type, d.Name)
	}
	return issue
}
