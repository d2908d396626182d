package slug

import (
	"context"
	"errors"
	"regexp"
	"testing"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Red Shoes":            "red-shoes",
		"  Red   Shoes  ":      "red-shoes",
		"Rode Schoenen!":       "rode-schoenen",
		"C++ In Depth, 2nd Ed": "c-in-depth-2nd-ed",
		"already-a-slug":       "already-a-slug",
		"UPPER":                "upper",
		"---":                  "",
	}
	for title, want := range cases {
		if got := Make(title); got != want {
			t.Errorf("Make(%q) = %q, want %q", title, got, want)
		}
	}
}

func TestUniqueReturnsBaseWhenFree(t *testing.T) {
	exists := func(_ context.Context, _ string) (bool, error) { return false, nil }

	got, err := Unique(context.Background(), "Red Shoes", exists)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "red-shoes" {
		t.Fatalf("got %q, want red-shoes", got)
	}
}

func TestUniqueAppendsRandomSuffixOnCollision(t *testing.T) {
	exists := func(_ context.Context, candidate string) (bool, error) {
		return candidate == "red-shoes", nil
	}

	got, err := Unique(context.Background(), "Red Shoes", exists)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !regexp.MustCompile(`^red-shoes-\d{7}$`).MatchString(got) {
		t.Fatalf("got %q, want red-shoes with 7-digit suffix", got)
	}
}

func TestUniqueFallsBackAfterExhaustion(t *testing.T) {
	probes := 0
	exists := func(_ context.Context, _ string) (bool, error) {
		probes++
		return true, nil
	}

	got, err := Unique(context.Background(), "Red Shoes", exists)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Base probe plus the bounded retry loop.
	if probes != 1+maxAttempts {
		t.Fatalf("probed %d times, want %d", probes, 1+maxAttempts)
	}
	if !regexp.MustCompile(`^red-shoes-[0-9a-f]{16}$`).MatchString(got) {
		t.Fatalf("got %q, want hex fallback suffix", got)
	}
}

func TestUniquePropagatesProbeError(t *testing.T) {
	probeErr := errors.New("db down")
	exists := func(_ context.Context, _ string) (bool, error) { return false, probeErr }

	if _, err := Unique(context.Background(), "Red Shoes", exists); !errors.Is(err, probeErr) {
		t.Fatalf("got %v, want probe error", err)
	}
}

func TestNumericIDStaysInRange(t *testing.T) {
	exists := func(_ context.Context, _ int64) (bool, error) { return false, nil }

	for i := 0; i < 100; i++ {
		id, err := NumericID(context.Background(), 1_000_000_000, 9_999_999_999, exists)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id < 1_000_000_000 || id > 9_999_999_999 {
			t.Fatalf("id %d outside 10-digit range", id)
		}
	}
}

func TestNumericIDExhaustsAfterBoundedAttempts(t *testing.T) {
	probes := 0
	exists := func(_ context.Context, _ int64) (bool, error) {
		probes++
		return true, nil
	}

	if _, err := NumericID(context.Background(), 1, 10, exists); err == nil {
		t.Fatal("expected error when every candidate is taken")
	}
	if probes != maxAttempts {
		t.Fatalf("probed %d times, want %d", probes, maxAttempts)
	}
}

func TestNumericIDRejectsInvalidRange(t *testing.T) {
	exists := func(_ context.Context, _ int64) (bool, error) { return false, nil }
	if _, err := NumericID(context.Background(), 10, 1, exists); err == nil {
		t.Fatal("expected error for inverted range")
	}
}
