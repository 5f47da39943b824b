package dto

import "github.com/spec-kit/contact-service/pkg/util/errorutil"

// Envelope wraps every JSON response body.
type Envelope struct {
	Success    bool                   `json:"success"`
	Message    string                 `json:"message"`
	Data       any                    `json:"data,omitempty"`
	Pagination *PaginationResponse    `json:"pagination,omitempty"`
	Code       string                 `json:"code,omitempty"`
	Errors     []errorutil.FieldError `json:"errors,omitempty"`
}

// OK builds a success envelope.
func OK(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Fail builds an error envelope from a domain error.
func Fail(err *errorutil.DomainError) Envelope {
	return Envelope{
		Success: false,
		Message: err.Message,
		Code:    err.Code,
		Errors:  err.Fields,
	}
}
