package templates

import (
	"errors"
	"strings"
)

var (
	ErrCompanyRequired      = errors.New("company name is required")
	ErrTempPasswordRequired = errors.New("temporary password is required")
)

// NewPasswordContext feeds the email sent by the password-reset flow: the
// account's old password no longer works, this message carries the
// replacement.
type NewPasswordContext struct {
	Company      string
	UserName     string
	TempPassword string
}

func NewPasswordTemplate() (*TypedTemplate[NewPasswordContext], error) {
	htmlTmpl := `
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<title>Your New Password</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h2>{{.Company}}</h2>
		<p>{{if .UserName}}Hi {{.UserName}},{{else}}Hi there,{{end}}</p>
		<p>We received a request to reset your password. Your new temporary password is:</p>
		<div style="text-align: center; margin: 30px 0;">
			<code style="background-color: #f4f4f4; padding: 12px 30px; font-size: 1.2em; border-radius: 5px; display: inline-block;">{{.TempPassword}}</code>
		</div>
		<p>Sign in with it and change it right away.</p>
		<p>If you didn't request a password reset, contact support immediately: your previous password no longer works.</p>
	</div>
</body>
</html>
`

	textTmpl := `
Your New Password

{{if .UserName}}Hi {{.UserName}},{{else}}Hi there,{{end}}

We received a request to reset your {{.Company}} password. Your new temporary password is:

    {{.TempPassword}}

Sign in with it and change it right away.

If you didn't request a password reset, contact support immediately: your previous password no longer works.
`

	parser := func(context NewPasswordContext) (NewPasswordContext, error) {
		context.Company = strings.TrimSpace(context.Company)
		context.UserName = strings.TrimSpace(context.UserName)

		if context.Company == "" {
			return context, ErrCompanyRequired
		}
		if context.TempPassword == "" {
			return context, ErrTempPasswordRequired
		}

		return context, nil
	}

	return NewTemplate("new_password", htmlTmpl, textTmpl, parser)
}
