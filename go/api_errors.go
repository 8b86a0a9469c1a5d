package quickbiteserver

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	menuapp "github.com/Apurer/quickbite-api/internal/domains/menu/application"
	menuports "github.com/Apurer/quickbite-api/internal/domains/menu/ports"
	orderapp "github.com/Apurer/quickbite-api/internal/domains/orders/application"
	orderdomain "github.com/Apurer/quickbite-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/quickbite-api/internal/domains/orders/ports"
	userapp "github.com/Apurer/quickbite-api/internal/domains/users/application"
	userports "github.com/Apurer/quickbite-api/internal/domains/users/ports"
	"github.com/Apurer/quickbite-api/internal/shared/access"
	apierrors "github.com/Apurer/quickbite-api/internal/shared/errors"
)

// errorTable is evaluated top to bottom. InvalidStatus is also an order
// input error, so it must precede the generic validation rows.
var errorTable = apierrors.Table{
	{Target: orderdomain.ErrInvalidStatus, Problem: apierrors.ErrInvalidStatus},
	{Target: userapp.ErrInvalidInput, Problem: apierrors.ErrValidation},
	{Target: menuapp.ErrInvalidInput, Problem: apierrors.ErrValidation},
	{Target: orderapp.ErrInvalidInput, Problem: apierrors.ErrValidation},
	{Target: userports.ErrInvalidCredentials, Problem: apierrors.ErrInvalidCredentials},
	{Target: access.ErrUnauthenticated, Problem: apierrors.ErrUnauthorized},
	{Target: access.ErrForbidden, Problem: apierrors.ErrForbidden},
	{Target: userports.ErrNotFound, Problem: apierrors.ErrNotFound},
	{Target: menuports.ErrNotFound, Problem: apierrors.ErrNotFound},
	{Target: orderports.ErrNotFound, Problem: apierrors.ErrNotFound},
	{Target: userports.ErrAlreadyExists, Problem: apierrors.ErrConflict},
}

var responder = apierrors.NewResponder(bindingErrors, errorTable.Mapper())

// bindingErrors turns request decoding failures into 400 problems.
func bindingErrors(err error) (apierrors.ProblemDetail, bool) {
	var fields validator.ValidationErrors
	if errors.As(err, &fields) {
		details := make(map[string]string, len(fields))
		for _, fe := range fields {
			details[fe.Field()] = fieldMessage(fe)
		}
		return apierrors.NewValidationProblem("request validation failed", details), true
	}
	var bindErr badRequestError
	if errors.As(err, &bindErr) {
		return apierrors.ErrBadRequest.WithDetail(bindErr.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

type badRequestError struct{ err error }

func (e badRequestError) Error() string { return e.err.Error() }
func (e badRequestError) Unwrap() error { return e.err }

// bind decodes the JSON body into dst. Any failure is a client error.
func bind(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		var fields validator.ValidationErrors
		if errors.As(err, &fields) {
			return err
		}
		return badRequestError{err: err}
	}
	return nil
}

// respondError maps err through the error table and writes the problem.
func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

// respondProblem writes problem as-is.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}
