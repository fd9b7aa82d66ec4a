// errcmp provides small helpers for asserting on errors in tests.
package errcmp

import (
	"errors"
	"strings"
	"testing"
)

// Match reports whether err matches expected.
// An empty expected string matches only a nil error, otherwise err's message must contain it.
func Match(err error, expected string) bool {
	if expected == "" {
		return err == nil
	}
	return err != nil && strings.Contains(err.Error(), expected)
}

// MustMatch fails the test if err doesn't match expected (see Match).
func MustMatch(t testing.TB, err error, expected string) {
	t.Helper()
	if Match(err, expected) {
		return
	}
	if expected == "" {
		t.Fatalf("expected no error, got %v", err)
	}
	t.Fatalf("expected error containing %q, got %v", expected, err)
}

// MustBe fails the test unless errors.Is(err, target).
func MustBe(t testing.TB, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("expected error wrapping %v, got %v", target, err)
	}
}
