package classgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		key      string
		expected string
	}{
		{"id", "Id"},
		{"user_name", "UserName"},
		{"userName", "UserName"},
		{"user-name", "UserName"},
		{"HTTPStatus", "HTTPStatus"},
		{"api_URL", "ApiURL"},
		{"item2", "Item2"},
		{"item_2", "Item2"},
		{"2fa", "Fa"},
		{"__42__answer", "Answer"},
		{"a1b", "A1b"},
		{"$type", "Type"},
		{"naïve", "NaVe"},
		{"@@", ""},
		{"", ""},
		{"123", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.key))
		})
	}
}

func TestNormalizeName_NeverStartsWithDigit(t *testing.T) {
	for _, key := range []string{"1", "9lives", "-3d", "0_x"} {
		name := NormalizeName(key)
		if name != "" {
			assert.False(t, isDigit(name[0]), "NormalizeName(%q) = %q", key, name)
		}
	}
}
