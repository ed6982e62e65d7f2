package validator

import (
	"net/mail"
	"unicode"
)

const (
	minPasswordLen = 8
	maxNameLen     = 200
)

func IsValidEmail(email string) bool {
	if email == "" {
		return false
	}

	addr, err := mail.ParseAddress(email)

	return err == nil && addr.Address == email
}

func IsValidPassword(password string) bool {
	if len(password) < minPasswordLen {
		return false
	}

	var hasLetter, hasDigit bool

	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	return hasLetter && hasDigit
}

func IsValidName(name string) bool {
	return name != "" && len(name) <= maxNameLen
}
