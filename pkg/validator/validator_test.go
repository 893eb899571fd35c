package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr error
	}{
		{name: "valid http", url: "http://example.com", wantErr: nil},
		{name: "valid https", url: "https://example.com/path?q=1#frag", wantErr: nil},
		{name: "empty", url: "", wantErr: ErrEmptyURL},
		{name: "whitespace only", url: "  \t ", wantErr: ErrEmptyURL},
		{name: "no scheme", url: "example.com", wantErr: ErrInvalidScheme},
		{name: "ftp scheme", url: "ftp://example.com", wantErr: ErrInvalidScheme},
		{name: "javascript scheme", url: "javascript:alert(1)", wantErr: ErrInvalidScheme},
		{name: "no host", url: "https://", wantErr: ErrInvalidHost},
		{name: "control characters", url: "https://example.com/\x00", wantErr: ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrValidation)
			}
		})
	}
}
