package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/quickbite-api/internal/domains/users/domain"
	"github.com/Apurer/quickbite-api/internal/domains/users/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid user input")
	// ErrAuthentication wraps authentication failures.
	ErrAuthentication = errors.New("authentication failed")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrUsernameLength) ||
		errors.Is(err, domain.ErrUsernameCharset) ||
		errors.Is(err, domain.ErrPasswordLength) ||
		errors.Is(err, domain.ErrPasswordSymbol) ||
		errors.Is(err, domain.ErrEmptyPassword) {
		return kindError{kind: ErrInvalidInput, err: err}
	}
	if errors.Is(err, ports.ErrInvalidCredentials) {
		return kindError{kind: ErrAuthentication, err: err}
	}
	return err
}

func notFound(field, value string) error {
	return fmt.Errorf("%w with %s: %s", ports.ErrNotFound, field, value)
}

// kindError tags err with an application error kind while keeping the
// domain message as its text.
type kindError struct {
	kind error
	err  error
}

func (e kindError) Error() string   { return e.err.Error() }
func (e kindError) Unwrap() []error { return []error{e.kind, e.err} }
