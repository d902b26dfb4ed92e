package validation

import (
	"errors"
	"testing"

	"lingo-days/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestValidator_Struct(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(loginForm{Email: "a@b.co", Password: "secret1"}))

	err := v.Struct(loginForm{Email: "not-an-email", Password: "123"})
	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 2)
	assert.Equal(t, "email", verrs[0].Field)
	assert.Equal(t, domain.CodeInvalidFormat, verrs[0].Code)
	assert.Equal(t, "password", verrs[1].Field)
	assert.Equal(t, domain.CodeOutOfRange, verrs[1].Code)

	err = v.Struct(loginForm{})
	require.True(t, errors.As(err, &verrs))
	for _, e := range verrs {
		assert.Equal(t, domain.CodeMissingField, e.Code)
	}
}

func TestValidator_ValidateCompletion(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		day       int
		score     int
		timeSpent int
		fields    []string
	}{
		{"valid", 1, 90, 10, nil},
		{"upper bounds", 30, 100, MaxTimeSpent, nil},
		{"day zero", 0, 50, 5, []string{"day"}},
		{"day past course", 31, 50, 5, []string{"day"}},
		{"score too high", 2, 101, 5, []string{"score"}},
		{"negative time", 2, 50, -1, []string{"timeSpent"}},
		{"everything wrong", -1, -1, -1, []string{"day", "score", "timeSpent"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateCompletion(tt.day, tt.score, tt.timeSpent)
			var got []string
			for _, e := range errs {
				got = append(got, e.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}
