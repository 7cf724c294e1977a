package logger

import "testing"

func TestLoggerNeverNil(t *testing.T) {
	if Logger() == nil {
		t.Fatal("Logger returned nil before Init")
	}
	Init()
	if Logger() == nil {
		t.Fatal("Logger returned nil after Init")
	}
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() {
		if err := SetLevel("info"); err != nil {
			t.Fatalf("restoring level: %v", err)
		}
	})

	tests := []struct {
		name        string
		input       string
		expected    string
		expectError bool
	}{
		{name: "debug", input: "debug", expected: "debug"},
		{name: "info", input: "info", expected: "info"},
		{name: "warn", input: "warn", expected: "warn"},
		{name: "warning_alias", input: "warning", expected: "warn"},
		{name: "error", input: "error", expected: "error"},
		{name: "mixed_case", input: "DEBUG", expected: "debug"},
		{name: "unknown", input: "loud", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SetLevel(tt.input)
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for level %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("SetLevel(%q) failed: %v", tt.input, err)
			}
			if got := Level(); got != tt.expected {
				t.Errorf("expected level %q, got %q", tt.expected, got)
			}
		})
	}
}
