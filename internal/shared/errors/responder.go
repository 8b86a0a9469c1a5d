package errors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper turns an error into the problem it should be answered with.
// ok is false when the mapper does not recognise err.
type ErrorMapper func(err error) (problem ProblemDetail, ok bool)

// Responder writes problem+json bodies, consulting its mappers in order.
// Errors no mapper recognises become an opaque 500.
type Responder struct {
	typePrefix string
	mappers    []ErrorMapper
}

// NewResponder returns a responder that tries mappers in the given order.
func NewResponder(mappers ...ErrorMapper) *Responder {
	return &Responder{mappers: mappers}
}

// WithTypePrefix makes relative problem types absolute, for example
// "https://quickbite.example" + "/problems/not-found".
func (r *Responder) WithTypePrefix(prefix string) *Responder {
	r.typePrefix = prefix
	return r
}

// Respond writes problem and aborts the handler chain. Instance defaults
// to the request path.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.typePrefix != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.typePrefix + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.AbortWithStatusJSON(problem.Status, problem)
}

// RespondError maps err and responds. Unmapped causes are attached to the
// gin context for the request logger and never reach the body.
func (r *Responder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	_ = c.Error(err)
	r.Respond(c, ErrInternal.WithDetail("an unexpected error occurred"))
}
