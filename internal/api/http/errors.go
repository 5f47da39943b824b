package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/contact-service/internal/auth"
	"github.com/spec-kit/contact-service/internal/service"
	"github.com/spec-kit/contact-service/pkg/util/errorutil"
)

// toDomainError maps every error the handlers can return onto the
// response error shape. Anything unrecognized becomes a 500.
func toDomainError(err error) *errorutil.DomainError {
	if domainErr, ok := errorutil.AsDomainError(err); ok {
		return domainErr
	}

	var (
		validationErr *service.ValidationError
		authErr       *auth.AuthError
		conflictErr   *service.ConflictError
		notFoundErr   *service.NotFoundError
		credErr       *service.CredentialsError
		storeErr      *service.StoreError
		fiberErr      *fiber.Error
	)

	switch {
	case errors.As(err, &validationErr):
		fields := make([]errorutil.FieldError, 0, len(validationErr.Fields))
		for _, f := range validationErr.Fields {
			fields = append(fields, errorutil.FieldError{Field: f.Field, Message: f.Message})
		}
		return errorutil.NewValidationError("Validation failed", fields)
	case errors.As(err, &authErr):
		return errorutil.NewUnauthorized(authCode(authErr.Kind), authErr.Message())
	case errors.As(err, &conflictErr):
		return errorutil.NewBadRequest(errorutil.CodeDuplicateEmail, conflictErr.Message)
	case errors.As(err, &notFoundErr):
		return errorutil.NewNotFound(notFoundErr.Resource)
	case errors.As(err, &credErr):
		return errorutil.NewUnauthorized(errorutil.CodeInvalidCredentials, "Invalid email or password")
	case errors.As(err, &storeErr):
		return errorutil.NewInternalError(storeErr)
	case errors.As(err, &fiberErr):
		if fiberErr.Code >= fiber.StatusInternalServerError {
			return errorutil.NewInternalError(fiberErr)
		}
		return errorutil.NewDomainError(errorutil.CodeBadRequest, fiberErr.Message, fiberErr.Code)
	default:
		return errorutil.NewInternalError(err)
	}
}

func authCode(kind auth.ErrorKind) string {
	switch kind {
	case auth.MissingToken:
		return errorutil.CodeMissingToken
	case auth.ExpiredToken:
		return errorutil.CodeTokenExpired
	case auth.UnknownIdentity:
		return errorutil.CodeUnknownIdentity
	default:
		return errorutil.CodeInvalidToken
	}
}
