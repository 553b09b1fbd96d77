package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordTemplate_Render(t *testing.T) {
	tmpl, err := NewPasswordTemplate()
	require.NoError(t, err)

	html, text, err := tmpl.Render(NewPasswordContext{
		Company:      "Acme",
		UserName:     "Maria",
		TempPassword: "aB3xY9kQ2z",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Acme")
	assert.Contains(t, html, "Maria")
	assert.Contains(t, html, "aB3xY9kQ2z")
	assert.Contains(t, text, "aB3xY9kQ2z")
}

func TestNewPasswordTemplate_NoUserName(t *testing.T) {
	tmpl, err := NewPasswordTemplate()
	require.NoError(t, err)

	html, _, err := tmpl.Render(NewPasswordContext{
		Company:      "Acme",
		TempPassword: "aB3xY9kQ2z",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Hi there,")
}

func TestNewPasswordTemplate_Validation(t *testing.T) {
	tmpl, err := NewPasswordTemplate()
	require.NoError(t, err)

	_, _, err = tmpl.Render(NewPasswordContext{TempPassword: "x"})
	assert.ErrorIs(t, err, ErrCompanyRequired)

	_, _, err = tmpl.Render(NewPasswordContext{Company: "Acme"})
	assert.ErrorIs(t, err, ErrTempPasswordRequired)
}
