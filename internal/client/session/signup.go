package session

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

const MinPasswordLength = 8

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SignUpRequest is the registration form. Email doubles as the username.
type SignUpRequest struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// ValidationError lists the form fields that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the form before anything is sent to the provider.
func (r SignUpRequest) Validate() error {
	fields := map[string]string{}

	if strings.TrimSpace(r.FullName) == "" {
		fields["fullName"] = "Full name is required"
	}

	switch email := strings.TrimSpace(r.Email); {
	case email == "":
		fields["email"] = "Email is required"
	case !emailRe.MatchString(email):
		fields["email"] = "Enter a valid email"
	}

	switch {
	case r.Password == "":
		fields["password"] = "Password is required"
	case len([]rune(r.Password)) < MinPasswordLength:
		fields["password"] = "Password must be at least 8 characters"
	}

	switch {
	case r.ConfirmPassword == "":
		fields["confirmPassword"] = "Please confirm your password"
	case r.Password != r.ConfirmPassword:
		fields["confirmPassword"] = "Passwords do not match"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// IsValidation reports whether err is a form validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PasswordStrength scores pw from 0 to 100.
func PasswordStrength(pw string) int {
	n := len([]rune(pw))
	score := 0
	if n >= 8 {
		score += 25
	}
	if n >= 12 {
		score += 25
	}

	var lower, upper, digit, other bool
	for _, r := range pw {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case unicode.IsDigit(r) && r < unicode.MaxASCII:
			digit = true
		default:
			other = true
		}
	}
	if lower && upper {
		score += 25
	}
	if digit {
		score += 15
	}
	if other {
		score += 10
	}
	return min(score, 100)
}

// StrengthLabel names a PasswordStrength score.
func StrengthLabel(score int) string {
	switch {
	case score <= 0:
		return ""
	case score < 40:
		return "Weak"
	case score < 70:
		return "Medium"
	default:
		return "Strong"
	}
}
