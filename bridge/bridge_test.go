package bridge

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/skillsenselab/shellkit/errors"
)

type mapResolver map[string]interface{}

func (m mapResolver) Resolve(key string) (interface{}, error) {
	svc, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("no registration for %q", key)
	}
	return svc, nil
}

func fullResolver() mapResolver {
	return mapResolver{
		Shell.Config:    "config-instance",
		Shell.Logger:    "logger-instance",
		Shell.Session:   "session-instance",
		Shell.Validator: "validator-instance",
		Shell.Hub:       "hub-instance",
	}
}

func TestLookupBeforePublishNotReady(t *testing.T) {
	reg := NewRegistry()
	if reg.Published() {
		t.Fatal("registry published before any publish")
	}

	_, err := reg.Lookup(Shell.Session)
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeBridgeNotReady {
		t.Fatalf("err = %v, want BRIDGE_NOT_READY", err)
	}
}

func TestPublishInstallsAllServices(t *testing.T) {
	reg := NewRegistry()
	b := New(fullResolver(), reg, nil)

	if err := b.Publish(context.Background()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !reg.Published() {
		t.Fatal("registry not published")
	}

	for _, name := range Shell.All() {
		svc, err := reg.Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		if svc == nil {
			t.Fatalf("Lookup(%q) returned nil", name)
		}
	}

	select {
	case <-reg.Ready():
	default:
		t.Fatal("readiness channel not closed after publish")
	}
}

func TestPublishFailureLeavesRegistryUnready(t *testing.T) {
	reg := NewRegistry()
	partial := fullResolver()
	delete(partial, Shell.Session)
	b := New(partial, reg, nil)

	err := b.Publish(context.Background())
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeBridgeIncomplete {
		t.Fatalf("err = %v, want BRIDGE_INCOMPLETE", err)
	}
	if appErr.Details["key"] != Shell.Session {
		t.Fatalf("details = %v, want failing key", appErr.Details)
	}

	if reg.Published() {
		t.Fatal("failed publish must not install a snapshot")
	}
	select {
	case <-reg.Ready():
		t.Fatal("readiness channel closed after failed publish")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRepublishReplacesSnapshotAndRenotifies(t *testing.T) {
	reg := NewRegistry()
	resolver := fullResolver()
	b := New(resolver, reg, nil)

	var notified atomic.Int32
	reg.OnReady(func() { notified.Add(1) })

	if err := b.Publish(context.Background()); err != nil {
		t.Fatalf("first Publish: %v", err)
	}
	if got := notified.Load(); got != 1 {
		t.Fatalf("notified %d times, want 1", got)
	}

	resolver[Shell.Session] = "session-v2"
	if err := b.Publish(context.Background()); err != nil {
		t.Fatalf("second Publish: %v", err)
	}
	if got := notified.Load(); got != 2 {
		t.Fatalf("notified %d times, want 2", got)
	}

	svc, err := reg.Lookup(Shell.Session)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if svc != "session-v2" {
		t.Fatalf("session = %v, want replacement", svc)
	}
}

func TestOnReadyAfterPublishRunsImmediately(t *testing.T) {
	reg := NewRegistry()
	b := New(fullResolver(), reg, nil)
	if err := b.Publish(context.Background()); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	ran := false
	reg.OnReady(func() { ran = true })
	if !ran {
		t.Fatal("late OnReady listener did not run")
	}
}

func TestOnReadyRunsOncePerPublish(t *testing.T) {
	reg := NewRegistry()
	resolver := fullResolver()
	b := New(resolver, reg, nil)

	var early, late atomic.Int32
	reg.OnReady(func() { early.Add(1) })

	if err := b.Publish(context.Background()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	reg.OnReady(func() { late.Add(1) })

	if got := early.Load(); got != 1 {
		t.Fatalf("early listener ran %d times after one publish, want 1", got)
	}
	if got := late.Load(); got != 1 {
		t.Fatalf("late listener ran %d times on registration, want 1", got)
	}

	if err := b.Publish(context.Background()); err != nil {
		t.Fatalf("second Publish: %v", err)
	}
	if got := early.Load(); got != 2 {
		t.Fatalf("early listener ran %d times after republish, want 2", got)
	}
	if got := late.Load(); got != 2 {
		t.Fatalf("late listener ran %d times after republish, want 2", got)
	}
}

func TestLookupUnknownKey(t *testing.T) {
	reg := NewRegistry()
	b := New(fullResolver(), reg, nil)
	if err := b.Publish(context.Background()); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	_, err := reg.Lookup("missing")
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeNotFound {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}

func TestLookupTyped(t *testing.T) {
	reg := NewRegistry()
	b := New(fullResolver(), reg, nil)
	if err := b.Publish(context.Background()); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	s, err := LookupTyped[string](reg, Shell.Config)
	if err != nil {
		t.Fatalf("LookupTyped: %v", err)
	}
	if s != "config-instance" {
		t.Fatalf("got %q", s)
	}

	_, err = LookupTyped[int](reg, Shell.Config)
	if err == nil || !strings.Contains(err.Error(), "type") {
		t.Fatalf("expected type mismatch error, got %v", err)
	}
}

func TestNamesSorted(t *testing.T) {
	reg := NewRegistry()
	if names := reg.Names(); names != nil {
		t.Fatalf("names before publish = %v, want nil", names)
	}

	b := New(fullResolver(), reg, nil)
	if err := b.Publish(context.Background()); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	names := reg.Names()
	if len(names) != len(Shell.All()) {
		t.Fatalf("got %d names, want %d", len(names), len(Shell.All()))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}
