package domain

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Role is the access level attached to a user account.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleAdmin   Role = "ADMIN"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 50
	minPasswordLength = 6
	passwordSymbols   = "@#$%^&+=!*()"
)

var (
	ErrUsernameLength  = errors.New("Username must be between 3 and 50 characters")
	ErrUsernameCharset = errors.New("Username can only contain letters, numbers, and underscores")
	ErrPasswordLength  = errors.New("Password must be at least 6 characters")
	ErrPasswordSymbol  = errors.New("Password must contain at least one symbol (@#$%^&+=!*())")
	ErrEmptyPassword   = errors.New("password is required")
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// User is a registered QuickBite account. PasswordHash never leaves the
// application layer; projections strip it.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	OrderIDs     []string
}

// RoleOrDefault is the stored role, STUDENT when none was assigned.
func (u *User) RoleOrDefault() Role {
	if u.Role == "" {
		return RoleStudent
	}
	return u.Role
}

// NewUser builds a STUDENT account from an already hashed password.
func NewUser(username, passwordHash string) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, ErrEmptyPassword
	}
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         RoleStudent,
	}, nil
}

// ValidateUsername enforces length and charset rules.
func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < minUsernameLength || n > maxUsernameLength {
		return ErrUsernameLength
	}
	if !usernamePattern.MatchString(username) {
		return ErrUsernameCharset
	}
	return nil
}

// ValidatePassword checks a plaintext password before it is hashed.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return ErrPasswordLength
	}
	if !strings.ContainsAny(password, passwordSymbols) {
		return ErrPasswordSymbol
	}
	return nil
}

// ChangeRole replaces the role verbatim. Values other than STUDENT and
// ADMIN are stored as given and simply never satisfy an admin rule.
func (u *User) ChangeRole(role string) {
	u.Role = Role(role)
}

// AttachOrder records an order id on the back-reference list.
func (u *User) AttachOrder(orderID string) {
	u.OrderIDs = append(u.OrderIDs, orderID)
}

// IsAdmin reports whether the account carries the ADMIN role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Clone returns a deep copy so stores never share slices with callers.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	if u.OrderIDs != nil {
		cp.OrderIDs = append([]string(nil), u.OrderIDs...)
	}
	return &cp
}
