// Package testutil provides shared test infrastructure for the simulator.
// It does not import sim/, so in-package tests of sim/ may use it.
package testutil

import (
	"errors"
	"math"
	"testing"
)

// Const is a deterministic delay distribution.
type Const float64

func (c Const) Sample() float64 { return float64(c) }

// Sequence returns its values in order, repeating the last one forever.
type Sequence struct {
	Values []float64
	next   int
}

func (s *Sequence) Sample() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[min(s.next, len(s.Values)-1)]
	s.next++
	return v
}

// RecoverPanic runs fn and returns the value it panicked with, or nil.
func RecoverPanic(fn func()) (recovered any) {
	defer func() {
		recovered = recover()
	}()
	fn()
	return nil
}

// RequireContractViolation fails the test unless fn panics with an error
// matching target under errors.Is.
func RequireContractViolation(t *testing.T, target error, fn func()) {
	t.Helper()
	r := RecoverPanic(fn)
	if r == nil {
		t.Fatalf("expected panic wrapping %v, got none", target)
	}
	err, ok := r.(error)
	if !ok {
		t.Fatalf("expected panic with an error value, got %T: %v", r, r)
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected panic wrapping %v, got %v", target, err)
	}
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
