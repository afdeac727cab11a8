package migrate

import (
	"errors"
	"testing"
)

func TestClassify_InvocationError(t *testing.T) {
	class := Classify(nil, errors.New("transport down"))

	if class.Class != ClassFailed {
		t.Errorf("Expected ClassFailed, got: %v", class.Class)
	}
	if class.Detail != "transport down" {
		t.Errorf("Expected error detail, got: %q", class.Detail)
	}
}

func TestClassify_DirectStatuses(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		class   Class
		detail  string
	}{
		{"applied", Direct{Status: StatusApplied}, ClassApplied, ""},
		{"complete counts as applied", Direct{Status: StatusComplete}, ClassApplied, ""},
		{"error with detail", Direct{Status: StatusError, Error: "boom"}, ClassFailed, "boom"},
		{"error without detail", Direct{Status: StatusError}, ClassFailed, "Unknown error"},
		{"skipped with reason", Direct{Status: StatusSkipped, Reason: "not needed"}, ClassSkipped, "not needed"},
		{"skipped without reason", Direct{Status: StatusSkipped}, ClassSkipped, "Unknown"},
		{"unknown status", Direct{Status: Status("weird")}, ClassSkipped, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class := Classify(tt.outcome, nil)
			if class.Class != tt.class {
				t.Errorf("Expected class %v, got: %v", tt.class, class.Class)
			}
			if class.Detail != tt.detail {
				t.Errorf("Expected detail %q, got: %q", tt.detail, class.Detail)
			}
		})
	}
}

func TestClassify_WrappedUnwrapsFirstEntry(t *testing.T) {
	outcome := Wrapped{Results: []Outcome{
		Direct{Status: StatusApplied},
		Direct{Status: StatusError, Error: "ignored second entry"},
	}}

	class := Classify(outcome, nil)

	if class.Class != ClassApplied {
		t.Errorf("Expected ClassApplied from first sub-result, got: %v", class.Class)
	}
}

func TestClassify_WrappedErrorKeepsDefaults(t *testing.T) {
	class := Classify(Wrapped{Results: []Outcome{Direct{Status: StatusError}}}, nil)

	if class.Class != ClassFailed {
		t.Errorf("Expected ClassFailed, got: %v", class.Class)
	}
	if class.Detail != "Unknown error" {
		t.Errorf("Expected default error detail, got: %q", class.Detail)
	}
}

func TestClassify_UnwrapIsOneLevelOnly(t *testing.T) {
	// A wrapped result nested inside a wrapped result is not unwrapped
	// again; it falls through to the permissive skip.
	outcome := Wrapped{Results: []Outcome{
		Wrapped{Results: []Outcome{Direct{Status: StatusApplied}}},
	}}

	class := Classify(outcome, nil)

	if class.Class != ClassSkipped {
		t.Errorf("Expected ClassSkipped for double nesting, got: %v", class.Class)
	}
}

func TestClassify_PermissiveDefaults(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
	}{
		{"nil outcome", nil},
		{"unrecognized", Unrecognized{}},
		{"empty wrapped", Wrapped{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class := Classify(tt.outcome, nil)
			if class.Class != ClassSkipped {
				t.Errorf("Expected ClassSkipped, got: %v", class.Class)
			}
			if class.Detail != "" {
				t.Errorf("Expected no detail, got: %q", class.Detail)
			}
		})
	}
}
