package model

import "testing"

func TestBaseEstimator_StateTransitions(t *testing.T) {
	var e BaseEstimator
	if e.IsFitted() {
		t.Error("IsFitted() = true for a zero-value estimator, want false")
	}

	e.SetFitted()
	if !e.IsFitted() {
		t.Error("IsFitted() = false after SetFitted(), want true")
	}

	e.Reset()
	if e.IsFitted() {
		t.Error("IsFitted() = true after Reset(), want false")
	}
}
