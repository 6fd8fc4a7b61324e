package errors

import (
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.com/photo.jpg", false},
		{"http", "http://example.com/photo.png", false},

		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"file", "file:///etc/passwd", true},
		{"javascript", "javascript:alert(1)", true},
		{"no scheme", "example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCustomerName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Jane Doe", false},
		{"unicode", "Zoë Ångström", false},

		{"empty", "", true},
		{"whitespace", "   ", true},
		{"too long", string(make([]byte, 300)), true},
		{"control char", "Jane\x01Doe", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCustomerName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCustomerName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "jane@example.com", false},
		{"plus", "jane+walls@example.co.uk", false},

		{"empty", "", true},
		{"no at", "jane.example.com", true},
		{"display name", "Jane <jane@example.com>", true},
		{"spaces", "jane @example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidOrder) {
				t.Errorf("ValidateEmail(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidOrder)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"digits", "0123456789", false},
		{"international", "+49 30 1234567", false},
		{"formatted", "(555) 123-4567", false},

		{"empty", "", true},
		{"too short", "12345", true},
		{"letters", "555-CALL-NOW", true},
		{"plus in middle", "49+301234567", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhone(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePhone(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
