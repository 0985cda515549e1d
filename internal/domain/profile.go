package domain

import (
	"errors"
	"strings"
)

// ErrEmptyProfileField is returned when a display name or email is blank.
var ErrEmptyProfileField = errors.New("please enter name and email")

// DefaultGreeting is shown when no profile is set.
const DefaultGreeting = "Good Day!"

// Profile is the cosmetic identity shown on the dashboard.
// It is not an account and carries no authentication.
type Profile struct {
	Name  string
	Email string
}

// NewProfile trims and validates the name and email.
func NewProfile(name, email string) (*Profile, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, ErrEmptyProfileField
	}
	return &Profile{Name: name, Email: email}, nil
}

// Greeting returns the name to greet, falling back to DefaultGreeting.
func (p *Profile) Greeting() string {
	if p == nil || p.Name == "" {
		return DefaultGreeting
	}
	return p.Name
}
