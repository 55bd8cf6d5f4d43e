package common

import (
	"strings"
	"unicode/utf8"
)

const passwordSpecials = "@#$%^&+=!"

// ValidatePassword enforces the registration rule: at least 8 characters and
// at least one character from passwordSpecials.
func ValidatePassword(p string) error {
	if utf8.RuneCountInString(p) < 8 || !strings.ContainsAny(p, passwordSpecials) {
		return ErrWeakPassword
	}
	return nil
}

// WipeByteArray overwrites b with zeros. Nil is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
