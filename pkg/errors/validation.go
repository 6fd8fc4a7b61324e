package errors

import (
	"net/mail"
	"strings"
	"unicode"
)

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateCustomerName validates the name on an order.
//
// Validation rules:
//   - Name cannot be empty or whitespace only
//   - Maximum length of 200 characters
//   - No control characters
func ValidateCustomerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidOrder, "name is required")
	}
	if len(name) > 200 {
		return New(ErrCodeInvalidOrder, "name too long (max 200 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidOrder, "name contains invalid control characters")
		}
	}
	return nil
}

// ValidateEmail validates an email address using RFC 5322 address parsing.
// Display names ("Jane <jane@example.com>") are rejected; only the bare
// address is accepted.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return New(ErrCodeInvalidOrder, "email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return New(ErrCodeInvalidOrder, "invalid email address: %q", email)
	}
	return nil
}

// ValidatePhone validates a phone number.
// Digits, spaces, dashes, dots, parentheses and a leading plus are accepted;
// at least 6 digits are required.
func ValidatePhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return New(ErrCodeInvalidOrder, "phone is required")
	}

	digits := 0
	for i, r := range phone {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
		default:
			return New(ErrCodeInvalidOrder, "phone contains invalid character %q", r)
		}
	}
	if digits < 6 {
		return New(ErrCodeInvalidOrder, "phone must contain at least 6 digits")
	}
	return nil
}
