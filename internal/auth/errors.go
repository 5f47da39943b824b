package auth

import "fmt"

// ErrorKind classifies why a request could not be authenticated.
type ErrorKind int

const (
	MissingToken ErrorKind = iota + 1
	InvalidToken
	ExpiredToken
	UnknownIdentity
)

func (k ErrorKind) String() string {
	switch k {
	case MissingToken:
		return "missing_token"
	case InvalidToken:
		return "invalid_token"
	case ExpiredToken:
		return "expired_token"
	case UnknownIdentity:
		return "unknown_identity"
	default:
		return fmt.Sprintf("auth_error(%d)", int(k))
	}
}

// AuthError is returned by the gate when a request carries no usable credential.
type AuthError struct {
	Kind ErrorKind
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *AuthError) Unwrap() error { return e.Err }

// Message is the client-facing text for the failure.
func (e *AuthError) Message() string {
	switch e.Kind {
	case MissingToken:
		return "Access denied. No valid token provided."
	case ExpiredToken:
		return "Token has expired."
	case UnknownIdentity:
		return "Token is not valid. User not found."
	default:
		return "Token is not valid."
	}
}
