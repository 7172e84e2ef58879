package validation

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Gin's validator engine resolves rules from the binding tag.
type signupPayload struct {
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

func engine(t *testing.T) *validator.Validate {
	t.Helper()
	Init()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	return v
}

func TestAliasesAcceptValidInput(t *testing.T) {
	v := engine(t)
	err := v.Struct(signupPayload{Username: "alice99", Email: "alice@example.com", Password: "password123"})
	assert.NoError(t, err)
}

func TestAliasesRejectInvalidInput(t *testing.T) {
	v := engine(t)

	err := v.Struct(signupPayload{Username: "a!", Email: "not-an-email", Password: "short"})
	require.Error(t, err)

	details := ToDetails(err)
	// field keys come from the json tags, not the Go names
	assert.Contains(t, details, "username")
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
	assert.Equal(t, "must be a valid email", details["email"])
}

func TestToDetailsRequired(t *testing.T) {
	v := engine(t)
	err := v.Struct(signupPayload{})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "is required", details["username"])
}

func TestToDetailsNonValidationError(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("boom")))
}
