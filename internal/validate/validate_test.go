package validate

import (
	"context"
	"errors"
	"testing"

	"loreweaver/internal/store"
)

type mockChecker struct {
	drift     []store.IndexDrift
	dangling  []store.DanglingReference
	verifyErr error
}

func (m *mockChecker) VerifyIndex(ctx context.Context) ([]store.IndexDrift, error) {
	return m.drift, m.verifyErr
}

func (m *mockChecker) DanglingReferences(ctx context.Context) ([]store.DanglingReference, error) {
	return m.dangling, nil
}

func TestRun_Clean(t *testing.T) {
	report, err := Run(context.Background(), &mockChecker{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(report.Issues) != 0 || report.Errors() != 0 {
		t.Fatalf("expected clean report, got %+v", report.Issues)
	}
}

func TestRun_IndexDrift(t *testing.T) {
	tests := []struct {
		reason string
		code   string
	}{
		{store.DriftMissing, codeIndexMissing},
		{store.DriftStale, codeIndexStale},
		{store.DriftMismatch, codeIndexMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			checker := &mockChecker{drift: []store.IndexDrift{{
				Ref:    store.EntityRef{Type: store.KindCharacter, ID: "c1"},
				Name:   "Ireena",
				Reason: tt.reason,
			}}}
			report, err := Run(context.Background(), checker)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if !hasIssueCode(report.Issues, tt.code) {
				t.Fatalf("expected %s issue, got %+v", tt.code, report.Issues)
			}
			if report.Errors() != 1 || report.Warnings() != 0 {
				t.Errorf("expected 1 error and 0 warnings, got %d and %d", report.Errors(), report.Warnings())
			}
		})
	}
}

func TestRun_DanglingReference(t *testing.T) {
	checker := &mockChecker{dangling: []store.DanglingReference{{
		Table:    "relationships",
		RowID:    "r1",
		Endpoint: store.EntityRef{Type: store.KindLocation, ID: "gone"},
	}}}

	report, err := Run(context.Background(), checker)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !hasIssueCode(report.Issues, codeDangling) {
		t.Fatalf("expected dangling reference issue")
	}
	if report.Errors() != 0 || report.Warnings() != 1 {
		t.Errorf("expected 0 errors and 1 warning, got %d and %d", report.Errors(), report.Warnings())
	}
	if report.Issues[0].Entity.ID != "gone" {
		t.Errorf("expected endpoint on issue, got %+v", report.Issues[0])
	}
}

func TestRun_CheckerError(t *testing.T) {
	boom := errors.New("boom")
	if _, err := Run(context.Background(), &mockChecker{verifyErr: boom}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped checker error, got %v", err)
	}
}

func TestRun_NilChecker(t *testing.T) {
	if _, err := Run(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil checker")
	}
}

func hasIssueCode(issues []Issue, code string) bool {
	for _, issue := range issues {
		if issue.Code == code {
			return true
		}
	}
	return false
}
