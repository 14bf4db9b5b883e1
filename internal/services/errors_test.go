package services

import (
	"context"
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	wrapped := Wrap(ErrNotFound, "homestars", "search", "no result link", nil)
	if !errors.Is(wrapped, ErrNotFound) {
		t.Fatalf("expected ErrNotFound marker, got %v", wrapped)
	}
	want := "not found: homestars: search: no result link"
	if wrapped.Error() != want {
		t.Fatalf("message = %q, want %q", wrapped.Error(), want)
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	wrapped := Wrap(nil, "", "", "", errors.New("boom"))
	if !errors.Is(wrapped, ErrTransient) {
		t.Fatalf("expected ErrTransient fallback, got %v", wrapped)
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(Wrap(ErrConfiguration, "licenses", "init", "missing api key", nil)) {
		t.Fatal("configuration errors should be fatal")
	}
	if IsFatal(Wrap(ErrTransient, "licenses", "lookup", "", errors.New("503"))) {
		t.Fatal("transient errors should not be fatal")
	}
	if IsFatal(ErrBudgetExhausted) {
		t.Fatal("budget exhaustion is expected operation, not fatal")
	}
}

func TestContextCarriers(t *testing.T) {
	ctx := context.Background()
	if _, ok := JobFromContext(ctx); ok {
		t.Fatal("empty context should carry no job")
	}
	ctx = WithJob(ctx, "ratings")
	ctx = WithProvider(ctx, "prov-42")
	ctx = WithRun(ctx, "run-token")

	if job, ok := JobFromContext(ctx); !ok || job != "ratings" {
		t.Fatalf("job = %q ok=%v", job, ok)
	}
	if id, ok := ProviderFromContext(ctx); !ok || id != "prov-42" {
		t.Fatalf("provider = %q ok=%v", id, ok)
	}
	if token, ok := RunFromContext(ctx); !ok || token != "run-token" {
		t.Fatalf("run = %q ok=%v", token, ok)
	}
}
