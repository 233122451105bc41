package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name     string  `validate:"required,notblank"`
	Email    string  `validate:"required,email"`
	Password string  `validate:"required,min=6"`
	Nick     *string `validate:"omitempty,notblank"`
}

func TestValidateStruct(t *testing.T) {
	blank := "   "

	errs := ValidateStruct(signup{Name: "  ", Email: "nope", Password: "123", Nick: &blank})

	require.Len(t, errs, 4)
	assert.Equal(t, "Name", errs[0].Field)
	assert.Equal(t, "notblank", errs[0].Tag)
	assert.Equal(t, "Please provide a valid email.", errs[1].Msg)
	assert.Equal(t, "min", errs[2].Tag)
	assert.Equal(t, "Nick", errs[3].Field)

	assert.Empty(t, ValidateStruct(signup{Name: "Ann", Email: "ann@example.com", Password: "secret"}))
}
