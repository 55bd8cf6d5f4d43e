package common

import (
	"errors"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ok   bool
	}{
		{"valid", "secret!12", true},
		{"exactly eight", "abcdefg#", true},
		{"too short", "ab#", false},
		{"no special", "abcdefghij", false},
		{"empty", "", false},
		{"multibyte counts runes", "çãõéíó@ú", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.in)
			if tc.ok && err != nil {
				t.Fatalf("ValidatePassword(%q) unexpected error: %v", tc.in, err)
			}
			if !tc.ok && !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("ValidatePassword(%q) = %v, want ErrWeakPassword", tc.in, err)
			}
		})
	}
}

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}
