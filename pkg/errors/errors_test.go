package errors

import (
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "NotFittedError",
			err:  NewNotFittedError("StandardScaler", "Transform"),
			want: "pipeml: StandardScaler: this estimator is not fitted yet. Call Fit() before using Transform()",
		},
		{
			name: "DimensionError rows",
			err:  NewDimensionError("pipeline.Fit", 10, 8, 0),
			want: "pipeml: pipeline.Fit: dimension mismatch on axis 0 (rows). Expected 10, got 8",
		},
		{
			name: "DimensionError features",
			err:  NewDimensionError("PCA.Transform", 4, 3, 1),
			want: "pipeml: PCA.Transform: dimension mismatch on axis 1 (features). Expected 4, got 3",
		},
		{
			name: "UnknownComponentError",
			err:  NewUnknownComponentError("nope", []string{"pca", "scale"}),
			want: `pipeml: unknown component "nope" (registered: pca, scale)`,
		},
		{
			name: "UnknownComponentError empty registry",
			err:  NewUnknownComponentError("nope", nil),
			want: `pipeml: unknown component "nope" (registry is empty)`,
		},
		{
			name: "SyntaxError",
			err:  NewSyntaxError("a |", 2, "expected '|>'"),
			want: `pipeml: syntax error at offset 2 in "a |": expected '|>'`,
		},
		{
			name: "ValidationError",
			err:  NewValidationError("k", "must be at least 2", 1),
			want: "pipeml: validation failed for parameter 'k': must be at least 2 (got: 1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAs_ThroughWrapping(t *testing.T) {
	err := Wrap(NewNotFittedError("PCA", "Transform"), "scoring fold 3")

	var nfErr *NotFittedError
	if !As(err, &nfErr) {
		t.Fatal("As() failed to find NotFittedError through Wrap()")
	}
	if nfErr.ModelName != "PCA" {
		t.Errorf("ModelName = %q, want %q", nfErr.ModelName, "PCA")
	}
}

func TestAllFoldsFailedError_Unwrap(t *testing.T) {
	inner := NewNotFittedError("PCA", "Transform")
	err := NewAllFoldsFailedError(5, inner)

	var allErr *AllFoldsFailedError
	if !As(err, &allErr) {
		t.Fatalf("As() error = %T, want *AllFoldsFailedError", err)
	}
	var nfErr *NotFittedError
	if !As(err, &nfErr) {
		t.Error("As() failed to reach the first failure through Unwrap()")
	}
	if !strings.Contains(err.Error(), "all 5 cross-validation folds failed") {
		t.Errorf("Error() = %q, missing fold count", err.Error())
	}
}

func TestSafeExecute(t *testing.T) {
	if err := SafeExecute("op", func() error { return nil }); err != nil {
		t.Errorf("SafeExecute() error = %v, want nil", err)
	}

	sentinel := New("boom")
	if err := SafeExecute("op", func() error { return sentinel }); !Is(err, sentinel) {
		t.Errorf("SafeExecute() error = %v, want the function's own error", err)
	}

	err := SafeExecute("fold", func() error { panic("bad component") })
	if err == nil {
		t.Fatal("SafeExecute() error = nil, want recovered panic")
	}
	var panicErr *PanicError
	if !As(err, &panicErr) {
		t.Fatalf("SafeExecute() error = %T, want *PanicError", err)
	}
	if panicErr.Operation != "fold" {
		t.Errorf("Operation = %q, want %q", panicErr.Operation, "fold")
	}
	if panicErr.PanicValue != "bad component" {
		t.Errorf("PanicValue = %v, want %q", panicErr.PanicValue, "bad component")
	}
	if panicErr.StackTrace == "" {
		t.Error("StackTrace is empty")
	}
}

func TestWarn_CustomHandler(t *testing.T) {
	var got error
	SetWarningHandler(func(w error) { got = w })
	defer SetWarningHandler(func(error) {})

	w := NewUndefinedMetricWarning("precision", "no predicted samples", 0)
	Warn(w)

	if got != w {
		t.Errorf("handler received %v, want %v", got, w)
	}
}
