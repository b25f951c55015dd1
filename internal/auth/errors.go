package auth

import "errors"

// ErrValidation matches every password policy violation via [errors.Is].
var ErrValidation = errors.New("validation failed")

// ValidationError is a single password policy violation. Its message is user-facing.
type ValidationError struct {
	Rule    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is reports whether target is [ErrValidation] so callers can match the whole family.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Password policy violations, in the order they are checked.
var (
	ErrMissingLetter          = &ValidationError{Rule: "letter", Message: "Password must contain at least one letter."}
	ErrMissingDigit           = &ValidationError{Rule: "digit", Message: "Password must contain at least one number."}
	ErrMissingSymbol          = &ValidationError{Rule: "symbol", Message: "Password must contain at least one symbol."}
	ErrUsernameEqualsPassword = &ValidationError{Rule: "username", Message: "Username and password should not be the same."}
)

var (
	ErrUnknownUser        = errors.New("no username found, please create a new account")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrStorage            = errors.New("credential storage failed")
)
