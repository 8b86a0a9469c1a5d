package errors

import "errors"

// Mapping binds a sentinel error to the problem it is answered with.
type Mapping struct {
	Target  error
	Problem ProblemDetail
}

// Table is an ordered error-kind table. The first Target matched by
// errors.Is wins, so more specific sentinels must come first.
type Table []Mapping

// Lookup returns the problem for err, carrying err's message as detail.
func (t Table) Lookup(err error) (ProblemDetail, bool) {
	if err == nil {
		return ProblemDetail{}, false
	}
	for _, m := range t {
		if errors.Is(err, m.Target) {
			return m.Problem.WithDetail(err.Error()), true
		}
	}
	return ProblemDetail{}, false
}

// Mapper adapts the table to a ChainedResponder.
func (t Table) Mapper() ErrorMapper {
	return t.Lookup
}
