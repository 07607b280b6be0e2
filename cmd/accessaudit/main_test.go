package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func TestExitStatus(t *testing.T) {
	shown := &reportedError{err: errors.New("connection refused")}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantOutput string
	}{
		{"success", nil, 0, ""},
		{"plain error is printed", errors.New("bad flag"), 1, "Error: bad flag\n"},
		{"shown error is not printed again", shown, 1, ""},
		{"wrapped shown error", fmt.Errorf("run: %w", shown), 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if got := exitStatus(&buf, tt.err); got != tt.wantStatus {
				t.Errorf("exitStatus() = %d, want %d", got, tt.wantStatus)
			}
			if buf.String() != tt.wantOutput {
				t.Errorf("output = %q, want %q", buf.String(), tt.wantOutput)
			}
		})
	}
}

func TestReportedError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := &reportedError{err: cause}

	if !errors.Is(err, cause) {
		t.Error("reportedError should unwrap to its cause")
	}
	if err.Error() != "disk full" {
		t.Errorf("Error() = %q", err.Error())
	}
}
