package middleware

import (
	"errors"
	"testing"

	"github.com/mmynk/societyledger/internal/auth"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"missing", "", "", auth.ErrMissingToken},
		{"wrong scheme", "Basic abc", "", auth.ErrInvalidToken},
		{"no token", "Bearer ", "", auth.ErrInvalidToken},
		{"extra parts", "Bearer a b", "", auth.ErrInvalidToken},
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bearerToken(tt.header)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("bearerToken(%q) error = %v, want %v", tt.header, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("bearerToken(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}
