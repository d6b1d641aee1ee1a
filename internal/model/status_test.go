package model

import "testing"

// TestStatusString tests the String method of Status.
func TestStatusString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		status   Status
		expected string
		ok       bool
	}{
		{StatusSucceeded, "succeeded", true},
		{StatusSkipped, "skipped", true},
		{StatusFailed, "failed", false},
		{StatusTimedOut, "timed out", false},
		{StatusInterrupted, "interrupted", false},
		{Status(999), "unknown", false},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.status.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.status.String(), tc.expected)
			}
			if tc.status.OK() != tc.ok {
				t.Errorf("OK() = %v, expected %v", tc.status.OK(), tc.ok)
			}
		})
	}
}

// TestStatusUnmarshalText tests decoding of stored status values.
func TestStatusUnmarshalText(t *testing.T) {
	t.Parallel()

	var s Status
	if err := s.UnmarshalText([]byte("timed out")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != StatusTimedOut {
		t.Errorf("got %v, expected %v", s, StatusTimedOut)
	}

	if err := s.UnmarshalText([]byte("bogus")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != StatusFailed {
		t.Errorf("unknown status should decode to failed, got %v", s)
	}
}
