package util

import "testing"

func TestTruncateDetails_ShortString(t *testing.T) {
	input := "authenticated as tester"
	result := TruncateDetails(input, DefaultDetailsMaxLen)
	if result != input {
		t.Errorf("TruncateDetails() should not truncate short strings, got %q", result)
	}
}

func TestTruncateDetails_ExactLimit(t *testing.T) {
	input := "12345678901234567890" // 20 chars
	result := TruncateDetails(input, 20)
	if result != input {
		t.Errorf("TruncateDetails() should not truncate at exact limit, got %q", result)
	}
}

func TestTruncateDetails_LongString(t *testing.T) {
	input := "1234567890abcdefghij" // 20 chars
	result := TruncateDetails(input, 10)
	if result != "1234567890... [truncated, 20 bytes total]" {
		t.Errorf("TruncateDetails() = %q", result)
	}
}

func TestTruncateDetails_EmptyString(t *testing.T) {
	if result := TruncateDetails("", 10); result != "" {
		t.Errorf("TruncateDetails() should return empty for empty input, got %q", result)
	}
}
