package auth

import "strings"

// Symbols is the set of characters that satisfy the symbol rule.
const Symbols = `!@#$%^&*(),.?":{}|<>`

// ValidatePassword applies the password policy and returns the first violated rule, or nil.
//
// Usernames and passwords are compared exactly: no trimming, case folding or length limits.
func ValidatePassword(username, password string) error {
	switch {
	case !strings.ContainsFunc(password, isASCIILetter):
		return ErrMissingLetter
	case !strings.ContainsFunc(password, isASCIIDigit):
		return ErrMissingDigit
	case !strings.ContainsAny(password, Symbols):
		return ErrMissingSymbol
	case username == password:
		return ErrUsernameEqualsPassword
	}
	return nil
}

func isASCIILetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isASCIIDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
