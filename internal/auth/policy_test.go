package auth

import (
	"errors"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	tc := []struct {
		name     string
		username string
		password string
		want     error
	}{
		{name: "empty password", username: "alice", password: "", want: ErrMissingLetter},
		{name: "digits and symbols only", username: "alice", password: "1234!@#$", want: ErrMissingLetter},
		{name: "non-ascii letters do not count", username: "alice", password: "ñü1!", want: ErrMissingLetter},
		{name: "letter missing even when username matches", username: "12!", password: "12!", want: ErrMissingLetter},
		{name: "letters only", username: "alice", password: "password", want: ErrMissingDigit},
		{name: "letters and symbols", username: "alice", password: "pass!word", want: ErrMissingDigit},
		{name: "bob fails at digit first", username: "bob", password: "bob", want: ErrMissingDigit},
		{name: "letters and digits", username: "alice", password: "passw0rd", want: ErrMissingSymbol},
		{name: "symbol outside set", username: "alice", password: "passw0rd-_+=", want: ErrMissingSymbol},
		{name: "username equals password", username: "bob1!", password: "bob1!", want: ErrUsernameEqualsPassword},
		{name: "comparison is case-sensitive", username: "BOB1!", password: "bob1!", want: nil},
		{name: "no trimming", username: "bob1! ", password: "bob1!", want: nil},
		{name: "valid", username: "alice", password: "Passw0rd!", want: nil},
		{name: "empty username is allowed", username: "", password: "a1!", want: nil},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.username, tt.password)
			if err != tt.want {
				t.Errorf("ValidatePassword(%q, %q) = %v, want %v", tt.username, tt.password, err, tt.want)
			}
		})
	}
}

func TestValidatePasswordSymbols(t *testing.T) {
	for _, symbol := range Symbols {
		password := "a1" + string(symbol)
		if err := ValidatePassword("alice", password); err != nil {
			t.Errorf("symbol %q should satisfy the policy, got %v", symbol, err)
		}
	}
}

func TestValidationError(t *testing.T) {
	for _, err := range []error{ErrMissingLetter, ErrMissingDigit, ErrMissingSymbol, ErrUsernameEqualsPassword} {
		if !errors.Is(err, ErrValidation) {
			t.Errorf("%v should match ErrValidation", err)
		}
	}

	if errors.Is(ErrMissingLetter, ErrMissingDigit) {
		t.Error("distinct rules should not match each other")
	}

	if errors.Is(ErrInvalidCredentials, ErrValidation) {
		t.Error("login errors are not validation errors")
	}

	if ErrMissingDigit.Error() != "Password must contain at least one number." {
		t.Errorf("unexpected message %q", ErrMissingDigit.Error())
	}
}
