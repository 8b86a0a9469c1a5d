package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/quickbite-api/internal/domains/orders/domain"
	"github.com/Apurer/quickbite-api/internal/domains/orders/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingUser) ||
		errors.Is(err, domain.ErrMissingItem) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidStatus) {
		return kindError{kind: ErrInvalidInput, err: err}
	}
	return err
}

func notFound(id string, err error) error {
	if errors.Is(err, ports.ErrNotFound) {
		return fmt.Errorf("%w with id: %s", ports.ErrNotFound, id)
	}
	return err
}

// kindError tags err with an application error kind while keeping the
// domain message as its text.
type kindError struct {
	kind error
	err  error
}

func (e kindError) Error() string   { return e.err.Error() }
func (e kindError) Unwrap() []error { return []error{e.kind, e.err} }
