package tweets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"empty", "", true},
		{"whitespace only", "   \n\t", true},
		{"normal", "یک توییت معمولی", false},
		{"exactly at cap", strings.Repeat("x", 280), false},
		{"over cap", strings.Repeat("x", 281), true},
		// The cap counts characters, not bytes: 280 Persian letters are
		// 560 bytes but still valid.
		{"multibyte at cap", strings.Repeat("س", 280), false},
		{"multibyte over cap", strings.Repeat("س", 281), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateText(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
