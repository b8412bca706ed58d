package health

import (
	"context"
	"errors"
	"testing"
)

type stubIndex struct{ ready bool }

func (s stubIndex) Ready() bool { return s.ready }

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubChecker struct{ err error }

func (s stubChecker) HealthCheck(context.Context) error { return s.err }

func TestCheck_Initializing(t *testing.T) {
	svc := New(stubIndex{ready: false}, nil, nil)

	report := svc.Check(context.Background())
	if report.Status != Initializing {
		t.Fatalf("status = %s, want %s", report.Status, Initializing)
	}
	if report.Checks["index"] != CheckError {
		t.Errorf("index check = %s", report.Checks["index"])
	}
}

func TestCheck_Healthy(t *testing.T) {
	svc := New(stubIndex{ready: true}, stubPinger{}, stubChecker{})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Fatalf("status = %s, want %s", report.Status, Healthy)
	}
	for name, result := range report.Checks {
		if result != CheckOK {
			t.Errorf("check %s = %s", name, result)
		}
	}
}

func TestCheck_DegradedOnCacheFailure(t *testing.T) {
	svc := New(stubIndex{ready: true}, stubPinger{err: errors.New("connection refused")}, nil)

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Fatalf("status = %s, want %s", report.Status, Degraded)
	}
	if report.Checks["cache"] != CheckError {
		t.Errorf("cache check = %s", report.Checks["cache"])
	}
	if report.Checks["index"] != CheckOK {
		t.Errorf("index check = %s", report.Checks["index"])
	}
}

func TestCheck_DegradedOnVectorizerFailure(t *testing.T) {
	svc := New(stubIndex{ready: true}, nil, stubChecker{err: errors.New("401 unauthorized")})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Fatalf("status = %s, want %s", report.Status, Degraded)
	}
}

func TestCheck_NilDependenciesSkipped(t *testing.T) {
	svc := New(stubIndex{ready: true}, nil, nil)

	report := svc.Check(context.Background())
	if _, ok := report.Checks["cache"]; ok {
		t.Error("cache check must be absent when no cache is configured")
	}
	if _, ok := report.Checks["vectorizer"]; ok {
		t.Error("vectorizer check must be absent when no checker is configured")
	}
}
