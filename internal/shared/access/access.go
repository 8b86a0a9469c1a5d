// Package access holds the path-to-role rule table and the request identity.
package access

import (
	"errors"
	"path"
	"strings"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("insufficient role for this resource")
)

// Level is the kind of check a Requirement performs.
type Level int

const (
	LevelPublic Level = iota
	LevelAuthenticated
	LevelRole
)

// Requirement is what a request must satisfy to reach a handler.
type Requirement struct {
	Level Level
	Role  string
}

func Public() Requirement           { return Requirement{Level: LevelPublic} }
func AuthenticatedAny() Requirement { return Requirement{Level: LevelAuthenticated} }
func RequireRole(role string) Requirement {
	return Requirement{Level: LevelRole, Role: role}
}

// Check returns nil when id satisfies r. A nil id means the caller is
// anonymous.
func (r Requirement) Check(id *Identity) error {
	switch r.Level {
	case LevelPublic:
		return nil
	case LevelAuthenticated:
		if id == nil {
			return ErrUnauthenticated
		}
		return nil
	default:
		if id == nil {
			return ErrUnauthenticated
		}
		if id.Role != r.Role {
			return ErrForbidden
		}
		return nil
	}
}

// Rule matches requests by method and Ant-style path pattern: `*` spans one
// segment (or part of one, as in `*.html`), `**` spans any number.
// No methods means every method.
type Rule struct {
	Methods     []string
	Patterns    []string
	Requirement Requirement
}

func (r Rule) matches(method, requestPath string) bool {
	if len(r.Methods) > 0 {
		ok := false
		for _, m := range r.Methods {
			if strings.EqualFold(m, method) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	segments := split(requestPath)
	for _, pattern := range r.Patterns {
		if matchSegments(split(pattern), segments) {
			return true
		}
	}
	return false
}

// Policy evaluates rules in order; the first match wins and Fallback
// applies when nothing matches.
type Policy struct {
	Rules    []Rule
	Fallback Requirement
}

// Resolve returns the requirement governing method and path.
func (p Policy) Resolve(method, requestPath string) Requirement {
	for _, rule := range p.Rules {
		if rule.matches(method, requestPath) {
			return rule.Requirement
		}
	}
	return p.Fallback
}

const RoleAdmin = "ADMIN"

// DefaultPolicy is the QuickBite rule table.
func DefaultPolicy() Policy {
	admin := RequireRole(RoleAdmin)
	return Policy{
		Rules: []Rule{
			{Methods: []string{"PUT"}, Patterns: []string{"/auth/changeRole/*"}, Requirement: admin},
			{Methods: []string{"GET"}, Patterns: []string{"/auth"}, Requirement: admin},
			{Patterns: []string{"/", "/*.html", "/css/**", "/js/**", "/favicon.ico", "/healthz", "/auth/**"}, Requirement: Public()},
			{Methods: []string{"GET"}, Patterns: []string{"/menu"}, Requirement: Public()},
			{Methods: []string{"POST"}, Patterns: []string{"/order/place"}, Requirement: AuthenticatedAny()},
			{Methods: []string{"GET"}, Patterns: []string{"/order/user/*"}, Requirement: AuthenticatedAny()},
			{Patterns: []string{"/admin/**", "/order/all", "/order/pending"}, Requirement: admin},
			{Methods: []string{"PUT"}, Patterns: []string{"/order/*/status"}, Requirement: admin},
			{Methods: []string{"POST"}, Patterns: []string{"/menu"}, Requirement: admin},
			{Methods: []string{"PUT", "DELETE"}, Patterns: []string{"/menu/*"}, Requirement: admin},
		},
		Fallback: AuthenticatedAny(),
	}
}

func split(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func matchSegments(pattern, segments []string) bool {
	for len(pattern) > 0 {
		head := pattern[0]
		if head == "**" {
			rest := pattern[1:]
			for i := 0; i <= len(segments); i++ {
				if matchSegments(rest, segments[i:]) {
					return true
				}
			}
			return false
		}
		if len(segments) == 0 {
			return false
		}
		if ok, err := path.Match(head, segments[0]); err != nil || !ok {
			return false
		}
		pattern, segments = pattern[1:], segments[1:]
	}
	return len(segments) == 0
}
