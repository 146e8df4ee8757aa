package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	valid := []string{
		"a@b.com",
		"user.name+tag@sub.example.co",
		"x@y.io",
	}
	for _, addr := range valid {
		assert.True(t, Email(addr), "expected valid: %s", addr)
	}

	invalid := []string{
		"",
		"plainaddress",
		"no-domain@",
		"@no-local.com",
		"missing-dot@domain",
		"two@@at.com",
		"white space@domain.com",
		"user@dom ain.com",
	}
	for _, addr := range invalid {
		assert.False(t, Email(addr), "expected invalid: %s", addr)
	}
}

func TestStruct_UsesOTPEmailTag(t *testing.T) {
	type req struct {
		Email string `validate:"required,otp_email"`
	}

	assert.NoError(t, Struct(&req{Email: "a@b.com"}))
	err := Struct(&req{Email: "not-an-email"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "otp_email")
}
