package services

import (
	"regexp"
	"strings"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail accepts local@domain.tld with no whitespace.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPassword requires at least 8 characters, one uppercase letter and one digit.
func ValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var upper, digit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return upper && digit
}

// ValidPhone accepts 10 or 11 digits once separators are stripped.
func ValidPhone(phone string) bool {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
	return len(digits) >= 10 && len(digits) <= 11
}
